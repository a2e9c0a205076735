package service

import (
	"github.com/shopspring/decimal"

	pricingdomain "github.com/pdushie/bundle-management-app-sub001/internal/pricing/domain"
)

// CalculateEntryCost prices a single allocation against a tier catalog
// under the strict exact-match policy: the allocation must equal a tier's
// size in decimal value, no nearest-tier substitution and no
// interpolation. Silently picking the closest tier would misprice
// customers, so a miss is an error, not a guess.
//
// Comparison happens on decimal values, never on binary floats, so
// 0.1+0.2 style representation error cannot cause a false mismatch.
func CalculateEntryCost(allocationGB decimal.Decimal, profile *pricingdomain.PricingProfile, tiers []pricingdomain.PricingTier) (decimal.Decimal, error) {
	name := ""
	if profile != nil {
		name = profile.Name
	}

	if len(tiers) == 0 {
		return decimal.Zero, &pricingdomain.NoPricingError{
			AllocationGB: allocationGB,
			ProfileName:  name,
			Reason:       pricingdomain.ErrNoPricingTiers,
		}
	}

	for _, tier := range tiers {
		if tier.AllocationGB.Equal(allocationGB) {
			return tier.Price.Round(2), nil
		}
	}

	return decimal.Zero, &pricingdomain.NoPricingError{
		AllocationGB: allocationGB,
		ProfileName:  name,
	}
}

// CalculateEntryCosts prices a batch of entries, failing on the first
// unpriceable one. This is the strict convenience wrapper used by
// authoring flows; the non-throwing counterpart is ValidateOrderPricing.
func CalculateEntryCosts(entries []pricingdomain.Allocation, profile *pricingdomain.PricingProfile, tiers []pricingdomain.PricingTier) ([]pricingdomain.Allocation, error) {
	out := make([]pricingdomain.Allocation, len(entries))
	for i, entry := range entries {
		cost, err := CalculateEntryCost(entry.AllocationGB, profile, tiers)
		if err != nil {
			return nil, err
		}
		entry.Cost = cost
		out[i] = entry
	}
	return out, nil
}
