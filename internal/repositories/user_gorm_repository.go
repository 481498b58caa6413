package repositories

import (
	"context"
	"errors"
	"fmt"

	"merchantgate/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetConnectionMode returns the connection mode of the user with the given subject.
func (r *GORMUserRepository) GetConnectionMode(ctx context.Context, cognitoSub string) (models.ConnectionMode, error) {
	user, err := r.findBySub(ctx, cognitoSub, "connection_mode")
	if err != nil {
		return "", err
	}
	return user.ConnectionMode, nil
}

// GetVerificationStatus returns the verification status of the user with the given subject.
func (r *GORMUserRepository) GetVerificationStatus(ctx context.Context, cognitoSub string) (models.VerificationStatus, error) {
	user, err := r.findBySub(ctx, cognitoSub, "verification_status")
	if err != nil {
		return "", err
	}
	return user.VerificationStatus, nil
}

// GetInternalUserID returns the store-assigned id of the user with the given subject.
func (r *GORMUserRepository) GetInternalUserID(ctx context.Context, cognitoSub string) (string, error) {
	user, err := r.findBySub(ctx, cognitoSub, "id")
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// SetConnectionMode updates the connection mode of exactly the user with the given id.
// An unknown id updates nothing and is not an error.
func (r *GORMUserRepository) SetConnectionMode(ctx context.Context, userID string, mode models.ConnectionMode) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("connection_mode", mode)
	if res.Error != nil {
		return fmt.Errorf("failed to set connection mode for user %s: %w", userID, res.Error)
	}
	return nil
}

func (r *GORMUserRepository) findBySub(ctx context.Context, cognitoSub string, column string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select(column).
		Where("cognito_sub = ?", cognitoSub).
		Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by subject %s: %w", cognitoSub, err)
	}
	return &user, nil
}
