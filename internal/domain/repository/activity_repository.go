package repository

import (
	"context"

	"manajet-service/internal/domain/entity"
)

// ActivityRepository defines the interface for the audit log.
type ActivityRepository interface {
	Record(ctx context.Context, activity *entity.Activity) error
	Recent(ctx context.Context, limit int64) ([]*entity.Activity, error)
}
