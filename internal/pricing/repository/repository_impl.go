package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/bwmarrin/snowflake"
	pricingdomain "github.com/pdushie/bundle-management-app-sub001/internal/pricing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() pricingdomain.Repository {
	return &repo{}
}

func (r *repo) FindActiveAssignment(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*pricingdomain.ProfileAssignment, error) {
	var a pricingdomain.ProfileAssignment
	err := db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("updated_at DESC").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repo) FindProfileByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*pricingdomain.PricingProfile, error) {
	var p pricingdomain.PricingProfile
	err := db.WithContext(ctx).
		Preload("Tiers").
		Where("id = ?", id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sortTiers(p.Tiers)
	return &p, nil
}

func (r *repo) FindProfileByName(ctx context.Context, db *gorm.DB, name string) (*pricingdomain.PricingProfile, error) {
	var p pricingdomain.PricingProfile
	err := db.WithContext(ctx).
		Preload("Tiers").
		Where("name = ?", name).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sortTiers(p.Tiers)
	return &p, nil
}

func (r *repo) FindAnyActiveProfile(ctx context.Context, db *gorm.DB) (*pricingdomain.PricingProfile, error) {
	var p pricingdomain.PricingProfile
	err := db.WithContext(ctx).
		Preload("Tiers").
		Where("is_active = ?", true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sortTiers(p.Tiers)
	return &p, nil
}

func (r *repo) ListProfiles(ctx context.Context, db *gorm.DB) ([]pricingdomain.PricingProfile, error) {
	var items []pricingdomain.PricingProfile
	err := db.WithContext(ctx).
		Preload("Tiers").
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for i := range items {
		sortTiers(items[i].Tiers)
	}
	return items, nil
}

func (r *repo) ListTiers(ctx context.Context, db *gorm.DB, profileID snowflake.ID) ([]pricingdomain.PricingTier, error) {
	var tiers []pricingdomain.PricingTier
	err := db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Find(&tiers).Error
	if err != nil {
		return nil, err
	}
	sortTiers(tiers)
	return tiers, nil
}

// sortTiers orders ascending by allocation in Go rather than in SQL so the
// ordering holds regardless of how the backend stores the decimal column.
func sortTiers(tiers []pricingdomain.PricingTier) {
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].AllocationGB.LessThan(tiers[j].AllocationGB)
	})
}
