package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadAgileFixture reads a saved unit-rates API response from disk, so tests
// and offline runs never make live calls.
func LoadAgileFixture(path string) (*AgileRatesResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agile fixture: %w", err)
	}
	var rates AgileRatesResponse
	if err := json.Unmarshal(raw, &rates); err != nil {
		return nil, fmt.Errorf("failed to parse agile fixture: %w", err)
	}
	return &rates, nil
}

// SaveAgileFixture writes a unit-rates response to disk as indented JSON.
func SaveAgileFixture(rates *AgileRatesResponse, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(rates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rates: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write agile fixture: %w", err)
	}
	return nil
}
