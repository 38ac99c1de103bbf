package costbasis

import (
	"github.com/shopspring/decimal"
)

// Quote carries current market data for a symbol: the per-share price in
// the base currency and, optionally, the current FX rate in the same
// convention as [Lot.FXRate]. A zero FXRate means the rate is unknown.
type Quote struct {
	Price  Money
	FXRate decimal.Decimal
}

// TaxBucket aggregates the lots on one side of the long-term threshold.
// Gain is only meaningful when HasGain is true (it needs a market price).
type TaxBucket struct {
	Shares  Quantity
	Cost    Money
	Gain    Money
	HasGain bool
}

// Summary is the aggregated cost basis of one symbol as of a date.
//
// The market-dependent fields (MarketValue, Gain, GainPct, the bucket
// gains, CurrentValueSecondary) are only meaningful when HasQuote is
// true. An unknown price is reported as absent, never as a break-even
// zero.
type Summary struct {
	Symbol string
	AsOf   Date

	TotalShares      Quantity
	CostBase         Money
	CostSecondary    Money
	AvgCostBase      Money
	AvgCostSecondary Money

	// WeightedFXRate is the average of the lots' FX rates weighted by
	// each lot's base-currency cost, not a simple mean.
	WeightedFXRate decimal.Decimal

	ShortTerm TaxBucket
	LongTerm  TaxBucket

	Lots []Lot

	HasQuote              bool
	MarketValue           Money
	Gain                  Money
	GainPct               Percent
	CurrentValueSecondary Money
}

// Summarize aggregates a set of lots for one symbol into a Summary.
//
// It is a pure function: lots are assumed validated (see [NewLot] and
// [LotLedger.AddLot]), asOf fixes the tax classification, and quote may
// be nil when no market price is available. Every ratio is defined as
// zero when its denominator is zero; an empty lot list yields an
// all-zero summary.
func Summarize(symbol string, lots []Lot, asOf Date, quote *Quote) *Summary {
	s := &Summary{Symbol: symbol, AsOf: asOf, Lots: lots}

	weighted := decimal.Zero // Σ fx × cost
	for _, lot := range lots {
		s.TotalShares = s.TotalShares.Add(lot.Shares)
		s.CostBase = s.CostBase.Add(lot.CostBase)
		s.CostSecondary = s.CostSecondary.Add(lot.CostSecondary)
		weighted = weighted.Add(lot.FXRate.Mul(lot.CostBase.value))

		if lot.IsLongTerm(asOf) {
			s.LongTerm.Shares = s.LongTerm.Shares.Add(lot.Shares)
			s.LongTerm.Cost = s.LongTerm.Cost.Add(lot.CostBase)
		} else {
			s.ShortTerm.Shares = s.ShortTerm.Shares.Add(lot.Shares)
			s.ShortTerm.Cost = s.ShortTerm.Cost.Add(lot.CostBase)
		}
	}

	if !s.TotalShares.IsZero() {
		s.AvgCostBase = s.CostBase.Div(s.TotalShares)
		s.AvgCostSecondary = s.CostSecondary.Div(s.TotalShares)
	}
	if !s.CostBase.IsZero() {
		s.WeightedFXRate = weighted.Div(s.CostBase.value)
	}

	if quote == nil {
		return s
	}
	s.HasQuote = true
	s.MarketValue = quote.Price.Mul(s.TotalShares)
	s.Gain = s.MarketValue.Sub(s.CostBase)
	s.GainPct = s.Gain.PercentOf(s.CostBase)

	// Both buckets are priced with the same current price, applied
	// proportionally to each bucket's shares.
	s.ShortTerm.Gain = quote.Price.Mul(s.ShortTerm.Shares).Sub(s.ShortTerm.Cost)
	s.ShortTerm.HasGain = true
	s.LongTerm.Gain = quote.Price.Mul(s.LongTerm.Shares).Sub(s.LongTerm.Cost)
	s.LongTerm.HasGain = true

	if quote.FXRate.IsPositive() {
		s.CurrentValueSecondary = s.MarketValue.DivRate(quote.FXRate, s.CostSecondary.Currency())
	}
	return s
}
