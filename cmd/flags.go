package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/openfolio/costbasis"
	"github.com/shopspring/decimal"
)

// parseAmount parses a decimal flag value exactly, without a float round trip.
func parseAmount(s, currency string) (costbasis.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return costbasis.Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return costbasis.M(d, currency), nil
}

func parseQuantity(s string) (costbasis.Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return costbasis.Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return costbasis.Q(d), nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// parsePreference builds a day preference from the -weekday and -day flags.
func parsePreference(weekday string, day int) (costbasis.DayPreference, error) {
	if weekday != "" && day > 0 {
		return costbasis.DayPreference{}, fmt.Errorf("-weekday and -day are mutually exclusive")
	}
	if weekday != "" {
		w, err := parseWeekday(weekday)
		if err != nil {
			return costbasis.DayPreference{}, err
		}
		return costbasis.OnWeekday(w), nil
	}
	if day > 0 {
		return costbasis.OnDayOfMonth(day), nil
	}
	return costbasis.DayPreference{}, nil
}

// parseAllocations parses "VTI=60,BND=40" into allocations.
func parseAllocations(s string) ([]costbasis.Allocation, error) {
	var allocations []costbasis.Allocation
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		symbol, weight, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("invalid allocation %q, want SYMBOL=WEIGHT", part)
		}
		var w float64
		if _, err := fmt.Sscanf(weight, "%g", &w); err != nil {
			return nil, fmt.Errorf("invalid allocation weight %q: %w", weight, err)
		}
		allocations = append(allocations, costbasis.Allocation{
			Symbol: strings.TrimSpace(symbol),
			Weight: costbasis.Percent(w),
		})
	}
	return allocations, nil
}
