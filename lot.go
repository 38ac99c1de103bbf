package costbasis

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// longTermHoldingDays is the holding period, in days, beyond which a lot
// is classified as long-term for tax purposes (US-style threshold).
const longTermHoldingDays = 365

// Lot represents a single purchase of a security, tracked separately for
// cost basis calculations. A lot is immutable once created: a correction
// is a new lot, never an in-place edit of historical fact.
//
// Costs are carried in two currencies. FXRate is the exchange rate frozen
// at purchase time, expressed in base currency units per one secondary
// unit, so that price_secondary = price_base / FXRate.
type Lot struct {
	On            Date
	Shares        Quantity
	Price         Money // per-share price in the base currency
	CostBase      Money // Shares * Price
	CostSecondary Money
	FXRate        decimal.Decimal
}

// NewLot builds a lot from a purchase event, deriving both cost totals.
// It rejects non-positive shares, a negative price, and a non-positive FX rate.
func NewLot(on Date, shares Quantity, price Money, fxRate decimal.Decimal, secondaryCurrency string) (Lot, error) {
	if !shares.IsPositive() {
		return Lot{}, fmt.Errorf("lot shares must be positive, got %s", shares)
	}
	if price.IsNegative() {
		return Lot{}, fmt.Errorf("lot price cannot be negative, got %s", price)
	}
	if !fxRate.IsPositive() {
		return Lot{}, fmt.Errorf("lot fx rate must be positive, got %s", fxRate)
	}
	if err := ValidateCurrency(price.Currency()); err != nil {
		return Lot{}, err
	}
	if err := ValidateCurrency(secondaryCurrency); err != nil {
		return Lot{}, err
	}
	costBase := price.Mul(shares)
	return Lot{
		On:            on,
		Shares:        shares,
		Price:         price,
		CostBase:      costBase,
		CostSecondary: costBase.DivRate(fxRate, secondaryCurrency),
		FXRate:        fxRate,
	}, nil
}

// SecondaryPrice returns the per-share price converted to the secondary currency.
func (l Lot) SecondaryPrice() Money {
	return l.Price.DivRate(l.FXRate, l.CostSecondary.Currency())
}

// HoldingDays returns the number of whole days the lot has been held as of a date.
func (l Lot) HoldingDays(asOf Date) int { return asOf.Sub(l.On) }

// IsLongTerm reports whether the lot has been held strictly longer than
// the long-term threshold as of a date. The classification of a given lot
// flips from short- to long-term as asOf advances; callers must pass the
// date they are reporting for.
func (l Lot) IsLongTerm(asOf Date) bool { return l.HoldingDays(asOf) > longTermHoldingDays }

// MarshalJSON implements the json.Marshaler interface for Lot.
func (l Lot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", l.On)
	w.Append("shares", l.Shares)
	w.Append("price", l.Price)
	w.Append("fx", l.FXRate)
	w.Append("secondaryCurrency", l.CostSecondary.Currency())
	return w.MarshalJSON()
}
