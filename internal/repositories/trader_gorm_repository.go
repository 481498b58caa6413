package repositories

import (
	"context"
	"errors"
	"fmt"

	"merchantgate/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMTraderRepository is a GORM implementation of TraderRepository.
type GORMTraderRepository struct {
	db *gorm.DB
}

// NewGORMTraderRepository creates a new instance of GORMTraderRepository.
func NewGORMTraderRepository(db *gorm.DB) *GORMTraderRepository {
	return &GORMTraderRepository{
		db: db,
	}
}

// Upsert reads and writes the trader row for userID in a single transaction.
// The unique index on user_id turns a racing second insert into ErrTraderConflict.
func (r *GORMTraderRepository) Upsert(ctx context.Context, userID string, profile models.TraderProfile) (models.TraderType, error) {
	var traderType models.TraderType
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Trader
		err := tx.Where("user_id = ?", userID).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			trader := models.Trader{UserID: userID, TraderType: models.TraderTypeSupplier}
			trader.Apply(profile)
			if err := tx.Omit(clause.Associations).Create(&trader).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrTraderConflict
				}
				return fmt.Errorf("failed to create trader: %w", err)
			}
			traderType = models.TraderTypeSupplier
			return nil
		case err != nil:
			return fmt.Errorf("failed to get trader for user %s: %w", userID, err)
		}

		existing.Apply(profile)
		existing.TraderType = models.TraderTypeBoth
		res := tx.Model(&models.Trader{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"company_name":  existing.CompanyName,
				"afm":           existing.AFM,
				"address":       existing.Address,
				"business_type": existing.BusinessType,
				"postal_code":   existing.PostalCode,
				"city":          existing.City,
				"phone_number":  existing.PhoneNumber,
				"trader_type":   existing.TraderType,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update trader for user %s: %w", userID, res.Error)
		}
		traderType = models.TraderTypeBoth
		return nil
	})
	if err != nil {
		return "", err
	}
	return traderType, nil
}

// GetByUserID retrieves the trader profile of a user.
func (r *GORMTraderRepository) GetByUserID(ctx context.Context, userID string) (*models.Trader, error) {
	var trader models.Trader
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&trader).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTraderNotFound
		}
		return nil, fmt.Errorf("failed to get trader for user %s: %w", userID, err)
	}
	return &trader, nil
}
