package costbasis

import (
	"fmt"

	"github.com/Rhymond/go-money"
)

// ValidateCurrency checks that the code is a known ISO-4217 currency.
// The empty code is accepted as the weak "no currency yet" value.
func ValidateCurrency(code string) error {
	if code == "" {
		return nil
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}

// validateAllocations checks that allocation weights are positive, symbols
// are non-empty and unique, and that the weights sum to 100%.
func validateAllocations(allocations []Allocation) error {
	if len(allocations) == 0 {
		return fmt.Errorf("schedule needs at least one allocation")
	}
	seen := make(map[string]struct{}, len(allocations))
	var sum Percent
	for _, a := range allocations {
		if a.Symbol == "" {
			return fmt.Errorf("allocation symbol is missing")
		}
		if _, dup := seen[a.Symbol]; dup {
			return fmt.Errorf("duplicate allocation for %q", a.Symbol)
		}
		seen[a.Symbol] = struct{}{}
		if a.Weight <= 0 {
			return fmt.Errorf("allocation weight for %q must be positive, got %s", a.Symbol, a.Weight)
		}
		sum += a.Weight
	}
	if !sum.Equal(100) {
		return fmt.Errorf("allocation weights must sum to 100%%, got %s", sum)
	}
	return nil
}
