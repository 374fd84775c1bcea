package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"manajet-service/internal/domain/entity"
	"manajet-service/internal/domain/repository"
)

// FileFleetRepository implements the FleetRepository interface on a flat
// JSON file, the storage format the CLI deployments use.
type FileFleetRepository struct {
	path string
}

// NewFileFleetRepository creates a new file-backed fleet repository
func NewFileFleetRepository(path string) repository.FleetRepository {
	return &FileFleetRepository{path: path}
}

// Load reads the snapshot from disk. A missing file yields an empty
// snapshot, not an error.
func (r *FileFleetRepository) Load(ctx context.Context) (*entity.Snapshot, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return entity.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	snapshot := entity.NewSnapshot()
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return snapshot, nil
}

// Save writes the snapshot atomically via a temp file rename.
func (r *FileFleetRepository) Save(ctx context.Context, snapshot *entity.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".fleet-*.json")
	if err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return os.Rename(tmp.Name(), r.path)
}
