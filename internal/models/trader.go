package models

import "time"

// TraderType mirrors the owning user's connection mode at registration time.
type TraderType string

const (
	TraderTypeSupplier TraderType = "supplier"
	TraderTypeBoth     TraderType = "both"
)

// TraderProfile holds the merchant fields a user submits when registering.
type TraderProfile struct {
	CompanyName  string `json:"companyName" validate:"required,max=255"`
	AFM          string `json:"afm" validate:"required,max=32"`
	Address      string `json:"address" validate:"max=255"`
	BusinessType string `json:"businessType" validate:"max=128"`
	PostalCode   string `json:"postalCode" validate:"max=16"`
	City         string `json:"city" validate:"max=128"`
	PhoneNumber  string `json:"phoneNumber" validate:"max=32"`
}

// Trader is the merchant profile attached to a user. There is at most one per user.
type Trader struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       string     `json:"user_id" gorm:"uniqueIndex;not null;type:varchar(36)"`
	User         User       `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CompanyName  string     `json:"company_name" gorm:"type:varchar(255)"`
	AFM          string     `json:"afm" gorm:"column:afm;type:varchar(32)"`
	Address      string     `json:"address" gorm:"type:varchar(255)"`
	BusinessType string     `json:"business_type" gorm:"type:varchar(128)"`
	PostalCode   string     `json:"postal_code" gorm:"type:varchar(16)"`
	City         string     `json:"city" gorm:"type:varchar(128)"`
	PhoneNumber  string     `json:"phone_number" gorm:"type:varchar(32)"`
	TraderType   TraderType `json:"trader_type" gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the trader table name.
func (Trader) TableName() string {
	return "trader"
}

// Apply copies every mutable profile field onto the trader.
func (t *Trader) Apply(p TraderProfile) {
	t.CompanyName = p.CompanyName
	t.AFM = p.AFM
	t.Address = p.Address
	t.BusinessType = p.BusinessType
	t.PostalCode = p.PostalCode
	t.City = p.City
	t.PhoneNumber = p.PhoneNumber
}
