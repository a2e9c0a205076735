package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindActiveAssignment(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*ProfileAssignment, error)
	FindProfileByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PricingProfile, error)
	FindProfileByName(ctx context.Context, db *gorm.DB, name string) (*PricingProfile, error)
	FindAnyActiveProfile(ctx context.Context, db *gorm.DB) (*PricingProfile, error)
	ListProfiles(ctx context.Context, db *gorm.DB) ([]PricingProfile, error)
	ListTiers(ctx context.Context, db *gorm.DB, profileID snowflake.ID) ([]PricingTier, error)
}
