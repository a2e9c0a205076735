package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	orderdomain "github.com/pdushie/bundle-management-app-sub001/internal/order/domain"
	"github.com/pdushie/bundle-management-app-sub001/internal/order/repository"
	pricingdomain "github.com/pdushie/bundle-management-app-sub001/internal/pricing/domain"
	pricingservice "github.com/pdushie/bundle-management-app-sub001/internal/pricing/service"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Pricing pricingdomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    orderdomain.Repository
	pricing pricingdomain.Service
}

func New(p Params) orderdomain.CostService {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("order.cost"),
		repo:    repository.Provide(),
		pricing: p.Pricing,
	}
}

// EnsureOrderCosts recomputes all entry costs and the order total. It is
// fail-soft end to end: it runs from contexts (order creation, bulk
// migrations, admin recompute) where an unhandled failure is worse than a
// best-effort stale result, so every failure path degrades instead of
// aborting and the input is never mutated.
func (s *Service) EnsureOrderCosts(ctx context.Context, order *orderdomain.Order, userID snowflake.ID) (result *orderdomain.Order) {
	if order == nil {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("order cost recompute panicked, keeping stored costs",
				zap.Int64("order_id", int64(order.ID)), zap.Any("panic", r))
			result = order.Clone()
		}
	}()

	effectiveUser := userID
	if effectiveUser == 0 {
		effectiveUser = order.UserID
	}

	profile := s.pricing.ResolveProfile(ctx, effectiveUser)

	tiers, err := s.pricing.GetTiers(ctx, profile.ID)
	if err != nil {
		// Store unreachable. Whatever costs the order already carries beat
		// a recompute against data we cannot read.
		s.log.Error("tier lookup failed, keeping stored costs",
			zap.Int64("order_id", int64(order.ID)),
			zap.String("profile", profile.Name),
			zap.Error(err))
		return order.Clone()
	}
	if len(tiers) == 0 {
		// Trade strict correctness for availability at the order level: an
		// empty catalog (mid-migration, admin mistake) must not leave the
		// aggregator with nothing to price against.
		if len(profile.Tiers) > 0 {
			tiers = profile.Tiers
		} else {
			tiers = pricingdomain.DefaultTiers()
		}
		s.log.Warn("profile has no stored tiers, using fallback tier set",
			zap.Int64("order_id", int64(order.ID)),
			zap.String("profile", profile.Name),
			zap.Int("fallback_tiers", len(tiers)))
	}

	next := order.Clone()
	rawTotal := decimal.Zero
	for i := range next.Entries {
		cost, err := pricingservice.CalculateEntryCost(next.Entries[i].AllocationGB, profile, tiers)
		if err != nil {
			// One bad entry must not poison the whole recompute. The
			// highest tier's price is the conservative stand-in.
			cost = maxTierPrice(tiers).Round(2)
			s.log.Warn("no exact tier for entry, using highest tier price",
				zap.Int64("order_id", int64(order.ID)),
				zap.String("entry_ref", next.Entries[i].PhoneNumber),
				zap.String("allocation_gb", next.Entries[i].AllocationGB.String()),
				zap.String("fallback_cost", cost.String()))
		}
		next.Entries[i].Cost = cost
		rawTotal = rawTotal.Add(cost)
	}

	total := rawTotal
	if total.LessThan(profile.MinimumCharge) {
		total = profile.MinimumCharge
	}
	total = total.Round(2)

	// Zero-cost guard: a zero total for an order that declares data is
	// almost certainly a transient lookup problem, not a free order. Never
	// let such a pass erase a previously computed bill.
	if total.IsZero() && order.TotalData.GreaterThan(decimal.Zero) &&
		(!order.Cost.IsZero() || !order.EstimatedCost.IsZero()) {
		s.log.Warn("recompute yielded zero for a non-empty order, keeping prior costs",
			zap.Int64("order_id", int64(order.ID)),
			zap.String("prior_cost", order.Cost.String()),
			zap.String("prior_estimated_cost", order.EstimatedCost.String()))
		return order.Clone()
	}

	next.Cost = total
	next.EstimatedCost = total
	if profile.ID != 0 {
		id := profile.ID
		next.PricingProfileID = &id
	} else {
		next.PricingProfileID = nil
	}
	next.PricingProfileName = profile.Name

	return next
}

func (s *Service) RecomputeOrder(ctx context.Context, orderID snowflake.ID) (*orderdomain.Order, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next := s.EnsureOrderCosts(ctx, order, 0)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.UpdateCost(ctx, tx, next.ID, next.Cost, next.EstimatedCost, next.PricingProfileID, next.PricingProfileName); err != nil {
			return err
		}
		for _, entry := range next.Entries {
			if err := s.repo.UpdateEntryCost(ctx, tx, entry.ID, entry.Cost); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return next, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID snowflake.ID) (*orderdomain.Order, error) {
	return s.loadOrder(ctx, orderID)
}

// loadOrder fetches an order with its entries attached, the shape the
// aggregator expects.
func (s *Service) loadOrder(ctx context.Context, orderID snowflake.ID) (*orderdomain.Order, error) {
	order, err := s.repo.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, orderdomain.ErrOrderNotFound
	}

	entries, err := s.repo.ListEntries(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	order.Entries = entries
	return order, nil
}

// maxTierPrice returns the price of the tier with the largest allocation.
// It scans rather than trusting slice order so the fallback stays correct
// even for an unsorted tier set.
func maxTierPrice(tiers []pricingdomain.PricingTier) decimal.Decimal {
	if len(tiers) == 0 {
		return decimal.Zero
	}
	max := tiers[0]
	for _, tier := range tiers[1:] {
		if tier.AllocationGB.GreaterThan(max.AllocationGB) {
			max = tier
		}
	}
	return max.Price
}
