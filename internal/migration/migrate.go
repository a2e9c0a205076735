// Package migration keeps the pricing and order schema current.
package migration

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	orderdomain "github.com/pdushie/bundle-management-app-sub001/internal/order/domain"
	pricingdomain "github.com/pdushie/bundle-management-app-sub001/internal/pricing/domain"
)

func Run(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&pricingdomain.PricingProfile{},
		&pricingdomain.PricingTier{},
		&pricingdomain.ProfileAssignment{},
		&orderdomain.Order{},
		&orderdomain.OrderEntry{},
	)
	if err != nil {
		return err
	}
	log.Info("schema migrated")
	return nil
}

var Module = fx.Module("migration",
	fx.Invoke(Run),
)
