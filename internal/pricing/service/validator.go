package service

import (
	pricingdomain "github.com/pdushie/bundle-management-app-sub001/internal/pricing/domain"
)

const reasonNoExactTier = "allocation does not match any pricing tier"

// ValidateOrderPricing batch-checks entries against a tier catalog without
// failing, so the UI can show every problem at once instead of stopping on
// the first bad entry. An empty tier set marks every entry invalid.
func ValidateOrderPricing(entries []pricingdomain.Allocation, tiers []pricingdomain.PricingTier) pricingdomain.ValidationReport {
	report := pricingdomain.ValidationReport{IsValid: true}

	if len(tiers) == 0 {
		for _, entry := range entries {
			report.InvalidEntries = append(report.InvalidEntries, pricingdomain.InvalidAllocation{
				Ref:          entry.Ref,
				AllocationGB: entry.AllocationGB,
				Reason:       pricingdomain.ErrNoPricingTiers.Error(),
			})
		}
		report.IsValid = len(entries) == 0
		return report
	}

	for _, entry := range entries {
		matched := false
		for _, tier := range tiers {
			if tier.AllocationGB.Equal(entry.AllocationGB) {
				matched = true
				break
			}
		}
		if !matched {
			report.IsValid = false
			report.InvalidEntries = append(report.InvalidEntries, pricingdomain.InvalidAllocation{
				Ref:          entry.Ref,
				AllocationGB: entry.AllocationGB,
				Reason:       reasonNoExactTier,
			})
		}
	}

	return report
}
