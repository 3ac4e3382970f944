package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type platformRequest struct {
	Platform  string   `json:"platform" validate:"required,platform"`
	Platforms []string `json:"platforms" validate:"omitempty,max=3,dive,platform"`
	Mode      string   `json:"mode" validate:"omitempty,oneof=strict lenient"`
	Language  string   `json:"language" validate:"omitempty,len=2"`
}

func TestValidate_Platform(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       platformRequest
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name: "valid",
			req:  platformRequest{Platform: "youtube", Platforms: []string{"tiktok", "x_twitter"}},
		},
		{
			name: "case insensitive",
			req:  platformRequest{Platform: "LinkedIn"},
		},
		{
			name:      "missing",
			req:       platformRequest{},
			wantField: "platform",
			wantTag:   "required",
			wantMsg:   "platform is required",
		},
		{
			name:      "unknown",
			req:       platformRequest{Platform: "myspace"},
			wantField: "platform",
			wantTag:   "platform",
			wantMsg:   "platform must be a supported platform",
		},
		{
			name:      "unknown in list",
			req:       platformRequest{Platform: "twitch", Platforms: []string{"facebook", "orkut"}},
			wantField: "platforms[1]",
			wantTag:   "platform",
		},
		{
			name:      "too many platforms",
			req:       platformRequest{Platform: "twitch", Platforms: []string{"facebook", "tiktok", "youtube", "linkedin"}},
			wantField: "platforms",
			wantTag:   "max",
			wantMsg:   "platforms must be at most 3",
		},
		{
			name:      "bad mode",
			req:       platformRequest{Platform: "twitch", Mode: "loose"},
			wantField: "mode",
			wantTag:   "oneof",
			wantMsg:   "mode must be one of: strict lenient",
		},
		{
			name:      "bad language",
			req:       platformRequest{Platform: "twitch", Language: "eng"},
			wantField: "language",
			wantTag:   "len",
			wantMsg:   "language must be exactly 2 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			errs, ok := err.(ValidationErrors)
			require.True(t, ok, "expected ValidationErrors type")
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
			assert.Equal(t, tt.wantTag, errs[0].Tag)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errs[0].Message)
			}
		})
	}
}

func TestNew_RegistersCustomTags(t *testing.T) {
	assert.NotPanics(t, func() { New() })
}

func TestMustRegister_Panics(t *testing.T) {
	assert.Panics(t, func() { mustRegister(validator.New(), "", validatePlatform) })
	assert.Panics(t, func() { mustRegister(validator.New(), "platform", nil) })
}

func TestValidate_NotAStruct(t *testing.T) {
	err := New().Validate("youtube")
	require.Error(t, err)

	_, ok := err.(ValidationErrors)
	assert.False(t, ok)
}

func TestValidationErrors_Error(t *testing.T) {
	tests := []struct {
		name     string
		errs     ValidationErrors
		expected string
	}{
		{name: "empty", errs: ValidationErrors{}, expected: ""},
		{
			name:     "single",
			errs:     ValidationErrors{{Message: "content is required"}},
			expected: "content is required",
		},
		{
			name: "multiple",
			errs: ValidationErrors{
				{Message: "content is required"},
				{Message: "platform must be a supported platform"},
			},
			expected: "content is required; platform must be a supported platform",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errs.Error())
		})
	}
}
