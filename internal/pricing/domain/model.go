// Package domain contains the pricing catalog models shared by the
// resolver, calculator and order costing services.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

const (
	// StandardProfileName is the profile the resolver falls back to when a
	// user has no active assignment.
	StandardProfileName = "Standard"

	// DefaultProfileName is the built-in profile of last resort. It never
	// exists in the database.
	DefaultProfileName = "Default"
)

// PricingProfile is a named price list assignable to users.
//
// BasePrice and PricePerGB are the retired formula-pricing columns. They
// stay in the schema for compatibility with old rows; the calculation
// engine never reads them and PricePerGB must be null while IsTiered.
type PricingProfile struct {
	ID            snowflake.ID     `gorm:"primaryKey" json:"id"`
	Name          string           `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description   *string          `gorm:"type:text" json:"description,omitempty"`
	BasePrice     *decimal.Decimal `gorm:"type:decimal(12,2)" json:"base_price,omitempty"`
	PricePerGB    *decimal.Decimal `gorm:"type:decimal(12,4)" json:"price_per_gb,omitempty"`
	MinimumCharge decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"minimum_charge"`
	IsActive      bool             `gorm:"not null;default:true" json:"is_active"`
	IsTiered      bool             `gorm:"not null;default:true" json:"is_tiered"`
	Tiers         []PricingTier    `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"tiers,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TableName sets the database table name.
func (PricingProfile) TableName() string { return "pricing_profiles" }

// Normalize forces the profile into tiered mode. Formula pricing is dead
// at the calculation layer, so legacy rows with IsTiered=false are
// collapsed into tiered at the resolver boundary and never propagate.
func (p *PricingProfile) Normalize() *PricingProfile {
	p.IsTiered = true
	p.PricePerGB = nil
	return p
}

// PricingTier is one exact-match price point within a profile. AllocationGB
// is unique per profile; the engine depends on that for lookup to be
// well-defined (enforced by the schema, validated at profile-edit time).
type PricingTier struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	ProfileID    snowflake.ID    `gorm:"not null;index;uniqueIndex:uniq_profile_allocation" json:"profile_id"`
	AllocationGB decimal.Decimal `gorm:"type:decimal(12,4);not null;uniqueIndex:uniq_profile_allocation" json:"allocation_gb"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName sets the database table name.
func (PricingTier) TableName() string { return "pricing_tiers" }

// ProfileAssignment links a user to a profile. At most one active
// assignment exists per user.
type ProfileAssignment struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"not null;index" json:"user_id"`
	ProfileID snowflake.ID `gorm:"not null" json:"profile_id"`
	IsActive  bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TableName sets the database table name.
func (ProfileAssignment) TableName() string { return "user_pricing_profiles" }

// DefaultProfile returns the built-in profile of last resort. Callers get
// a fresh value each time; nothing at runtime mutates the defaults.
func DefaultProfile() *PricingProfile {
	return &PricingProfile{
		Name:          DefaultProfileName,
		MinimumCharge: decimal.NewFromInt(10),
		IsActive:      true,
		IsTiered:      true,
		Tiers:         DefaultTiers(),
	}
}

// DefaultTiers returns the built-in tier set, ascending by allocation.
func DefaultTiers() []PricingTier {
	return []PricingTier{
		{AllocationGB: decimal.NewFromInt(1), Price: decimal.NewFromInt(5)},
		{AllocationGB: decimal.NewFromInt(2), Price: decimal.NewFromInt(10)},
		{AllocationGB: decimal.NewFromInt(5), Price: decimal.NewFromInt(25)},
		{AllocationGB: decimal.NewFromInt(10), Price: decimal.NewFromInt(50)},
	}
}

// Allocation is the engine's view of one order line: an opaque reference
// plus the data size to price. Cost is filled in by the calculator.
type Allocation struct {
	Ref          string          `json:"ref"`
	AllocationGB decimal.Decimal `json:"allocation_gb"`
	Cost         decimal.Decimal `json:"cost"`
}

// InvalidAllocation describes one unpriceable entry in a validation report.
type InvalidAllocation struct {
	Ref          string          `json:"entry_ref"`
	AllocationGB decimal.Decimal `json:"allocation_gb"`
	Reason       string          `json:"reason"`
}

// ValidationReport is the batch pre-flight result for a set of entries.
type ValidationReport struct {
	IsValid        bool                `json:"is_valid"`
	InvalidEntries []InvalidAllocation `json:"invalid_entries"`
}
