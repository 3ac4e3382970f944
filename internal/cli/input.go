package cli

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"social-content-service/internal/domain"
)

// readInput reads path, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// decodeRecord parses a YAML or JSON record. JSON is accepted because it is
// valid YAML.
func decodeRecord(data []byte) (*domain.Record, error) {
	var record domain.Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	record.Normalize()

	return &record, nil
}

// resolvePlatform picks the platform from the flag or the record. When both
// are set they must agree.
func resolvePlatform(flag string, record *domain.Record) (domain.Platform, error) {
	switch {
	case flag == "" && record.Platform == "":
		return "", fmt.Errorf("no platform: set --platform or the record's platform field")
	case flag == "":
		return domain.ParsePlatform(string(record.Platform))
	}

	p, err := domain.ParsePlatform(flag)
	if err != nil {
		return "", err
	}
	if record.Platform != "" {
		recorded, err := domain.ParsePlatform(string(record.Platform))
		if err != nil {
			return "", err
		}
		if recorded != p {
			return "", fmt.Errorf("record platform %q does not match --platform %q", record.Platform, flag)
		}
	}

	return p, nil
}
