package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoPricingTiers marks a profile with no tiers at all.
	ErrNoPricingTiers = errors.New("no pricing tiers available in profile")

	// ErrProfileUnavailable means no profile could be resolved. The resolver
	// terminates at the built-in default so this should be unreachable, but
	// callers must not assume that.
	ErrProfileUnavailable = errors.New("no pricing profile could be resolved")

	// ErrPersistenceUnavailable wraps store failures surfaced to fail-soft
	// callers.
	ErrPersistenceUnavailable = errors.New("pricing store unavailable")

	// ErrProfileNotFound marks a catalog read for an id that does not exist.
	ErrProfileNotFound = errors.New("pricing profile not found")
)

// NoPricingError reports an allocation with no exact tier match in the
// given profile. Reason, when set, carries the underlying condition
// (ErrNoPricingTiers for an empty tier set).
type NoPricingError struct {
	AllocationGB decimal.Decimal
	ProfileName  string
	Reason       error
}

func (e *NoPricingError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("no price for %sGB in profile %q: %v", e.AllocationGB, e.ProfileName, e.Reason)
	}
	return fmt.Sprintf("no price for %sGB in profile %q: allocation does not match any tier", e.AllocationGB, e.ProfileName)
}

func (e *NoPricingError) Unwrap() error { return e.Reason }
