package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	orderdomain "github.com/pdushie/bundle-management-app-sub001/internal/order/domain"
)

type repo struct{}

func Provide() orderdomain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*orderdomain.Order, error) {
	var o orderdomain.Order
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) ListEntries(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]orderdomain.OrderEntry, error) {
	var entries []orderdomain.OrderEntry
	err := db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) ListIDsAfter(ctx context.Context, db *gorm.DB, afterID snowflake.ID, limit int) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) UpdateCost(ctx context.Context, db *gorm.DB, orderID snowflake.ID, cost, estimatedCost decimal.Decimal, profileID *snowflake.ID, profileName string) error {
	return db.WithContext(ctx).
		Model(&orderdomain.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"cost":                 cost,
			"estimated_cost":       estimatedCost,
			"pricing_profile_id":   profileID,
			"pricing_profile_name": profileName,
			"updated_at":           time.Now().UTC(),
		}).Error
}

func (r *repo) UpdateEntryCost(ctx context.Context, db *gorm.DB, entryID snowflake.ID, cost decimal.Decimal) error {
	return db.WithContext(ctx).
		Model(&orderdomain.OrderEntry{}).
		Where("id = ?", entryID).
		Updates(map[string]any{
			"cost":       cost,
			"updated_at": time.Now().UTC(),
		}).Error
}
