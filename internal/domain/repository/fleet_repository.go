package repository

import (
	"context"

	"manajet-service/internal/domain/entity"
)

// FleetRepository defines the interface for persisting the fleet snapshot.
// The core is agnostic to the backing store; it loads once at startup and
// saves the whole snapshot after each successful mutation, last write wins.
type FleetRepository interface {
	Load(ctx context.Context) (*entity.Snapshot, error)
	Save(ctx context.Context, snapshot *entity.Snapshot) error
}
