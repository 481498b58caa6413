package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"merchantgate/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User // keyed by id
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.CognitoSub == user.CognitoSub {
			return fmt.Errorf("failed to create user: subject %s already exists", user.CognitoSub)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.ConnectionMode == "" {
		user.ConnectionMode = models.ConnectionModeCustomer
	}
	if user.VerificationStatus == "" {
		user.VerificationStatus = models.VerificationStatusNone
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

// GetConnectionMode returns the connection mode of the user with the given subject.
func (r *MockUserRepository) GetConnectionMode(_ context.Context, cognitoSub string) (models.ConnectionMode, error) {
	user, err := r.bySub(cognitoSub)
	if err != nil {
		return "", err
	}
	return user.ConnectionMode, nil
}

// GetVerificationStatus returns the verification status of the user with the given subject.
func (r *MockUserRepository) GetVerificationStatus(_ context.Context, cognitoSub string) (models.VerificationStatus, error) {
	user, err := r.bySub(cognitoSub)
	if err != nil {
		return "", err
	}
	return user.VerificationStatus, nil
}

// GetInternalUserID returns the id of the user with the given subject.
func (r *MockUserRepository) GetInternalUserID(_ context.Context, cognitoSub string) (string, error) {
	user, err := r.bySub(cognitoSub)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// SetConnectionMode updates the connection mode of a user. Unknown ids are ignored.
func (r *MockUserRepository) SetConnectionMode(_ context.Context, userID string, mode models.ConnectionMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	user.ConnectionMode = mode
	user.UpdatedAt = time.Now()
	r.users[userID] = user
	return nil
}

func (r *MockUserRepository) bySub(cognitoSub string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.CognitoSub == cognitoSub {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}
