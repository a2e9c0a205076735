package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	pricingdomain "github.com/pdushie/bundle-management-app-sub001/internal/pricing/domain"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo pricingdomain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo pricingdomain.Repository
}

func New(p Params) pricingdomain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("pricing.service"),
		repo: p.Repo,
	}
}

// ResolveProfile walks the fallback chain. A lookup failure at any step
// logs and falls through to the next step, so the chain always terminates
// at the built-in default and the resolver itself never fails.
func (s *Service) ResolveProfile(ctx context.Context, userID snowflake.ID) *pricingdomain.PricingProfile {
	if userID != 0 {
		assignment, err := s.repo.FindActiveAssignment(ctx, s.db, userID)
		if err != nil {
			s.log.Warn("profile assignment lookup failed",
				zap.Int64("user_id", int64(userID)), zap.Error(err))
		} else if assignment != nil {
			profile, err := s.repo.FindProfileByID(ctx, s.db, assignment.ProfileID)
			if err != nil {
				s.log.Warn("assigned profile lookup failed",
					zap.Int64("profile_id", int64(assignment.ProfileID)), zap.Error(err))
			} else if profile != nil && profile.IsActive {
				return profile.Normalize()
			}
		}
	}

	profile, err := s.repo.FindProfileByName(ctx, s.db, pricingdomain.StandardProfileName)
	if err != nil {
		s.log.Warn("standard profile lookup failed", zap.Error(err))
	} else if profile != nil && profile.IsActive {
		return profile.Normalize()
	}

	profile, err = s.repo.FindAnyActiveProfile(ctx, s.db)
	if err != nil {
		s.log.Warn("active profile lookup failed", zap.Error(err))
	} else if profile != nil {
		return profile.Normalize()
	}

	s.log.Warn("no active profile found, using built-in default",
		zap.Int64("user_id", int64(userID)))
	return pricingdomain.DefaultProfile()
}

func (s *Service) GetTiers(ctx context.Context, profileID snowflake.ID) ([]pricingdomain.PricingTier, error) {
	if profileID == 0 {
		// Built-in default profile has no database rows.
		return pricingdomain.DefaultTiers(), nil
	}
	return s.repo.ListTiers(ctx, s.db, profileID)
}

func (s *Service) Quote(ctx context.Context, userID snowflake.ID, allocationGB decimal.Decimal) (decimal.Decimal, *pricingdomain.PricingProfile, error) {
	profile := s.ResolveProfile(ctx, userID)

	tiers, err := s.GetTiers(ctx, profile.ID)
	if err != nil {
		return decimal.Zero, nil, err
	}

	cost, err := CalculateEntryCost(allocationGB, profile, tiers)
	if err != nil {
		return decimal.Zero, profile, err
	}
	return cost, profile, nil
}

func (s *Service) ValidateForUser(ctx context.Context, userID snowflake.ID, entries []pricingdomain.Allocation) (pricingdomain.ValidationReport, *pricingdomain.PricingProfile, error) {
	profile := s.ResolveProfile(ctx, userID)

	tiers, err := s.GetTiers(ctx, profile.ID)
	if err != nil {
		return pricingdomain.ValidationReport{}, nil, err
	}

	return ValidateOrderPricing(entries, tiers), profile, nil
}

func (s *Service) GetProfile(ctx context.Context, id snowflake.ID) (*pricingdomain.PricingProfile, error) {
	profile, err := s.repo.FindProfileByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, pricingdomain.ErrProfileNotFound
	}
	return profile, nil
}

func (s *Service) ListProfiles(ctx context.Context) ([]pricingdomain.PricingProfile, error) {
	return s.repo.ListProfiles(ctx, s.db)
}
