package repositories

import (
	"context"
	"sync"
	"time"

	"merchantgate/internal/models"
)

// MockTraderRepository is an in-memory implementation of TraderRepository.
type MockTraderRepository struct {
	traders map[string]models.Trader // keyed by user id
	nextID  uint
	mu      sync.Mutex
}

// NewMockTraderRepository creates a new instance of MockTraderRepository.
func NewMockTraderRepository() *MockTraderRepository {
	return &MockTraderRepository{
		traders: make(map[string]models.Trader),
	}
}

// Upsert inserts or overwrites the trader of a user.
func (r *MockTraderRepository) Upsert(_ context.Context, userID string, profile models.TraderProfile) (models.TraderType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	trader, ok := r.traders[userID]
	if ok {
		trader.TraderType = models.TraderTypeBoth
	} else {
		r.nextID++
		trader = models.Trader{
			ID:         r.nextID,
			UserID:     userID,
			TraderType: models.TraderTypeSupplier,
			CreatedAt:  now,
		}
	}
	trader.Apply(profile)
	trader.UpdatedAt = now
	r.traders[userID] = trader
	return trader.TraderType, nil
}

// GetByUserID returns the trader of a user.
func (r *MockTraderRepository) GetByUserID(_ context.Context, userID string) (*models.Trader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trader, ok := r.traders[userID]
	if !ok {
		return nil, ErrTraderNotFound
	}
	return &trader, nil
}
