package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/commitlab/pubs/internal/filter"
)

// ReadState loads a saved filter state. A missing file yields a fresh state.
func ReadState(path string) (*filter.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return filter.NewState(), nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	s := filter.NewState()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	s.Normalize()
	return s, nil
}

// WriteState saves the filter state, replacing any previous file.
func WriteState(path string, s *filter.State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
