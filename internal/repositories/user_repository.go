package repositories

import (
	"context"

	"merchantgate/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetConnectionMode(ctx context.Context, cognitoSub string) (models.ConnectionMode, error)
	GetVerificationStatus(ctx context.Context, cognitoSub string) (models.VerificationStatus, error)
	GetInternalUserID(ctx context.Context, cognitoSub string) (string, error)
	SetConnectionMode(ctx context.Context, userID string, mode models.ConnectionMode) error
}
