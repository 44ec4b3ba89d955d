// Package baseline persists transition-rate baselines to the local
// filesystem as JSON files.
package baseline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mberan/tfm/pkg/domain"
)

// FileStore implements ports.BaselineStore using the local filesystem.
// It stores baselines as JSON files in a configured directory, in the
// same shape as the tracker's TransitionRates output.
type FileStore struct {
	BasePath string
}

// NewFileStore creates a new FileStore with the given base path.
// If basePath is empty, it defaults to ".tfm".
func NewFileStore(basePath string) *FileStore {
	if basePath == "" {
		basePath = ".tfm"
	}
	return &FileStore{BasePath: basePath}
}

// Save persists the rates to a JSON file.
func (f *FileStore) Save(ctx context.Context, name string, rates domain.Rates) error {
	if name == "" {
		return fmt.Errorf("baseline name cannot be empty")
	}

	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure baseline directory: %w", err)
	}

	data, err := json.MarshalIndent(rates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rates: %w", err)
	}

	if err := os.WriteFile(f.path(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write baseline file: %w", err)
	}

	return nil
}

// Load retrieves the rates from a JSON file.
func (f *FileStore) Load(ctx context.Context, name string) (domain.Rates, error) {
	if name == "" {
		return nil, fmt.Errorf("baseline name cannot be empty")
	}

	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrBaselineNotFound
		}
		return nil, fmt.Errorf("failed to read baseline file: %w", err)
	}

	var rates domain.Rates
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("failed to unmarshal baseline: %w", err)
	}

	return rates, nil
}

// Delete removes the baseline file.
func (f *FileStore) Delete(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("baseline name cannot be empty")
	}

	err := os.Remove(f.path(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete baseline file: %w", err)
	}
	return nil
}

func (f *FileStore) path(name string) string {
	return filepath.Join(f.BasePath, name+".json")
}
