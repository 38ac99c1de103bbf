// Package costbasis implements cost-basis accounting over purchase lots
// and dollar-cost-averaging (DCA) schedule arithmetic.
//
// The package is a pure compute core: it owns no I/O. Prices, FX rates
// and persisted state enter as already-resolved values, and every
// computation that depends on "now" takes an explicit as-of date.
//
// The main entry points are:
//   - [LotLedger] and [Summarize] for cost basis, unrealized gains and
//     the short/long-term tax split,
//   - [NextDate] for recurrence arithmetic,
//   - [Simulate] for replaying a schedule over a historical price series,
//   - [Project] for forward compounding projections.
package costbasis
