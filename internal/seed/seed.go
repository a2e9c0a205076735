// Package seed provisions the baseline pricing catalog on first boot.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	pricingdomain "github.com/pdushie/bundle-management-app-sub001/internal/pricing/domain"
)

// EnsureStandardProfile creates the "Standard" profile with the built-in
// tier set if it does not exist. Safe to run on every startup.
func EnsureStandardProfile(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id node is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing pricingdomain.PricingProfile
		err := tx.Where("name = ?", pricingdomain.StandardProfileName).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		defaults := pricingdomain.DefaultProfile()
		profile := pricingdomain.PricingProfile{
			ID:            node.Generate(),
			Name:          pricingdomain.StandardProfileName,
			MinimumCharge: defaults.MinimumCharge,
			IsActive:      true,
			IsTiered:      true,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		for _, tier := range defaults.Tiers {
			row := pricingdomain.PricingTier{
				ID:           node.Generate(),
				ProfileID:    profile.ID,
				AllocationGB: tier.AllocationGB,
				Price:        tier.Price,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
