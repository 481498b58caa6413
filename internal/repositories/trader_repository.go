package repositories

import (
	"context"

	"merchantgate/internal/models"
)

// TraderRepository defines the interface for trader profile data access.
type TraderRepository interface {
	// Upsert inserts the profile as a supplier, or overwrites an existing row and marks it both.
	// The returned type is what was persisted.
	Upsert(ctx context.Context, userID string, profile models.TraderProfile) (models.TraderType, error)
	GetByUserID(ctx context.Context, userID string) (*models.Trader, error)
}
