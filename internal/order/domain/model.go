// Package domain contains the order models and the contracts around order
// cost recomputation.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusProcessed OrderStatus = "processed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a bundle-allocation order. Cost and EstimatedCost are derived
// from the entries but persisted: they normally equal the summed entry
// costs floored by the profile's minimum charge, except when a recompute
// safety guard kept a prior value.
type Order struct {
	ID                 snowflake.ID    `gorm:"primaryKey" json:"id"`
	UserID             snowflake.ID    `gorm:"index" json:"user_id"`
	Status             OrderStatus     `gorm:"type:text;not null;default:'pending'" json:"status"`
	TotalData          decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0" json:"total_data"`
	Cost               decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cost"`
	EstimatedCost      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"estimated_cost"`
	PricingProfileID   *snowflake.ID   `gorm:"index" json:"pricing_profile_id,omitempty"`
	PricingProfileName string          `gorm:"type:text" json:"pricing_profile_name"`
	Entries            []OrderEntry    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"entries,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// Clone returns a deep copy so recomputation can produce a new order value
// without touching the caller's.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	out := *o
	out.Entries = make([]OrderEntry, len(o.Entries))
	copy(out.Entries, o.Entries)
	return &out
}

// OrderEntry is one phone-number/allocation line within an order. Cost,
// when set, corresponds to an exact tier price (or the documented
// highest-tier fallback) at the time it was last computed.
type OrderEntry struct {
	ID           snowflake.ID    `gorm:"primaryKey" json:"id"`
	OrderID      snowflake.ID    `gorm:"not null;index" json:"order_id"`
	PhoneNumber  string          `gorm:"type:text;not null" json:"phone_number"`
	AllocationGB decimal.Decimal `gorm:"type:decimal(12,4);not null" json:"allocation_gb"`
	Status       *string         `gorm:"type:text" json:"status,omitempty"`
	Cost         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName sets the database table name.
func (OrderEntry) TableName() string { return "order_entries" }
