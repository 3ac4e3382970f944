package producer

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewCircuitBreaker_ReportsStateChanges(t *testing.T) {
	var transitions []gobreaker.State
	cb := NewCircuitBreaker[int]("producer", CBConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		OnStateChange: func(name string, _, to gobreaker.State) {
			assert.Equal(t, "producer", name)
			transitions = append(transitions, to)
		},
	}, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (int, error) { return 0, errors.New("boom") })
	}

	assert.Equal(t, []gobreaker.State{gobreaker.StateOpen}, transitions)
	assert.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestNewCircuitBreaker_StaysClosedBelowMinimum(t *testing.T) {
	cb := NewCircuitBreaker[int]("producer", CBConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureRatio: 0.5}, zap.NewNop())

	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(func() (int, error) { return 0, errors.New("boom") })
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}
