package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	ListEntries(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]OrderEntry, error)
	// ListIDsAfter pages order ids ascending for batch recompute drivers.
	ListIDsAfter(ctx context.Context, db *gorm.DB, afterID snowflake.ID, limit int) ([]snowflake.ID, error)
	UpdateCost(ctx context.Context, db *gorm.DB, orderID snowflake.ID, cost, estimatedCost decimal.Decimal, profileID *snowflake.ID, profileName string) error
	UpdateEntryCost(ctx context.Context, db *gorm.DB, entryID snowflake.ID, cost decimal.Decimal) error
}
