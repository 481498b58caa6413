package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConnectionMode is the role a user holds on the marketplace.
type ConnectionMode string

const (
	ConnectionModeCustomer ConnectionMode = "customer"
	ConnectionModeSupplier ConnectionMode = "supplier"
	ConnectionModeBoth     ConnectionMode = "both"
)

// IsMerchant reports whether the mode lets the user sell.
func (m ConnectionMode) IsMerchant() bool {
	return m == ConnectionModeSupplier || m == ConnectionModeBoth
}

// VerificationStatus describes how far a user's identity and business have been vetted.
type VerificationStatus string

const (
	VerificationStatusNone    VerificationStatus = "none"
	VerificationStatusPartial VerificationStatus = "partial"
	VerificationStatusFull    VerificationStatus = "full"
)

// User represents an account registered with the identity provider.
type User struct {
	ID                 string             `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CognitoSub         string             `json:"cognito_sub" gorm:"uniqueIndex;not null;type:varchar(64)"`
	ConnectionMode     ConnectionMode     `json:"connection_mode" gorm:"type:varchar(16);not null;default:customer"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:varchar(16);not null;default:none"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// TableName keeps the table name the rest of the platform already uses.
func (User) TableName() string {
	return "user"
}

// BeforeCreate assigns a UUID when the caller did not supply one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
