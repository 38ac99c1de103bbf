package costbasis

import (
	"fmt"
	"slices"
)

// LotLedger is an append-only collection of purchase lots keyed by symbol.
//
// Lots are kept in insertion order and are never merged: each purchase
// event remains a distinct lot for tax-lot accounting fidelity. The
// ledger is the source of truth; summaries are recomputed from it on
// every query and never persisted independently.
type LotLedger struct {
	symbols []string // first-appearance order
	lots    map[string][]Lot
}

// NewLotLedger returns an empty ledger.
func NewLotLedger() *LotLedger {
	return &LotLedger{lots: make(map[string][]Lot)}
}

// AddLot appends a lot for a symbol. It rejects an empty symbol and a lot
// that does not satisfy the construction invariants (zero shares lots are
// invalid input, not silently summed).
func (l *LotLedger) AddLot(symbol string, lot Lot) error {
	if symbol == "" {
		return fmt.Errorf("lot symbol is missing")
	}
	if !lot.Shares.IsPositive() {
		return fmt.Errorf("lot for %q has non-positive shares %s", symbol, lot.Shares)
	}
	if !lot.FXRate.IsPositive() {
		return fmt.Errorf("lot for %q has non-positive fx rate %s", symbol, lot.FXRate)
	}
	if _, ok := l.lots[symbol]; !ok {
		l.symbols = append(l.symbols, symbol)
	}
	l.lots[symbol] = append(l.lots[symbol], lot)
	return nil
}

// Symbols returns all symbols in first-appearance order.
func (l *LotLedger) Symbols() []string {
	return slices.Clone(l.symbols)
}

// Lots returns a copy of all lots for a symbol, in insertion order.
func (l *LotLedger) Lots(symbol string) []Lot {
	return slices.Clone(l.lots[symbol])
}

// LotsByDate returns the lots for a symbol sorted by purchase date.
// The sort is stable, so same-day lots keep their insertion order.
func (l *LotLedger) LotsByDate(symbol string, ascending bool) []Lot {
	lots := slices.Clone(l.lots[symbol])
	slices.SortStableFunc(lots, func(a, b Lot) int {
		switch {
		case a.On.Before(b.On):
			return -1
		case a.On.After(b.On):
			return 1
		default:
			return 0
		}
	})
	if !ascending {
		slices.Reverse(lots)
	}
	return lots
}

// TotalShares returns the total number of shares held for a symbol.
func (l *LotLedger) TotalShares(symbol string) Quantity {
	var total Quantity
	for _, lot := range l.lots[symbol] {
		total = total.Add(lot.Shares)
	}
	return total
}

// TotalCostBase returns the total base-currency cost for a symbol.
func (l *LotLedger) TotalCostBase(symbol string) Money {
	var total Money
	for _, lot := range l.lots[symbol] {
		total = total.Add(lot.CostBase)
	}
	return total
}

// TotalCostSecondary returns the total secondary-currency cost for a symbol.
func (l *LotLedger) TotalCostSecondary(symbol string) Money {
	var total Money
	for _, lot := range l.lots[symbol] {
		total = total.Add(lot.CostSecondary)
	}
	return total
}

// ShortTermLots returns the lots held for at most the long-term threshold as of a date.
func (l *LotLedger) ShortTermLots(symbol string, asOf Date) []Lot {
	var lots []Lot
	for _, lot := range l.lots[symbol] {
		if !lot.IsLongTerm(asOf) {
			lots = append(lots, lot)
		}
	}
	return lots
}

// LongTermLots returns the lots held strictly longer than the long-term threshold as of a date.
func (l *LotLedger) LongTermLots(symbol string, asOf Date) []Lot {
	var lots []Lot
	for _, lot := range l.lots[symbol] {
		if lot.IsLongTerm(asOf) {
			lots = append(lots, lot)
		}
	}
	return lots
}
