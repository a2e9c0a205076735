package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	// ResolveProfile walks the fallback chain (assignment, Standard, any
	// active, built-in default) and never fails; every returned profile is
	// normalized to tiered mode. UserID 0 means unknown and skips straight
	// past the assignment lookup.
	ResolveProfile(ctx context.Context, userID snowflake.ID) *PricingProfile

	// GetTiers loads a profile's tiers ascending by allocation size. An
	// empty slice is a valid result, not an error.
	GetTiers(ctx context.Context, profileID snowflake.ID) ([]PricingTier, error)

	// Quote resolves the user's profile and prices a single allocation
	// under the strict exact-match policy.
	Quote(ctx context.Context, userID snowflake.ID, allocationGB decimal.Decimal) (decimal.Decimal, *PricingProfile, error)

	// ValidateForUser runs the non-throwing batch check against the user's
	// resolved profile.
	ValidateForUser(ctx context.Context, userID snowflake.ID, entries []Allocation) (ValidationReport, *PricingProfile, error)

	// GetProfile and ListProfiles expose read-only catalog access for the
	// API layer.
	GetProfile(ctx context.Context, id snowflake.ID) (*PricingProfile, error)
	ListProfiles(ctx context.Context) ([]PricingProfile, error)
}
