package costbasis

import (
	"fmt"
)

// PriceModel supplies the per-share price of the simulated symbol on a
// given date. It is the only collaborator of the simulator; production
// callers back it with historical data (see [History.Model]), tests with
// a fixed function. Returning false means no price is known for that
// date, which stops the simulation.
type PriceModel func(on Date) (Money, bool)

// SimulationStep is the state of the simulated position after one execution.
type SimulationStep struct {
	On       Date
	Price    Money
	Invested Money    // cumulative
	Shares   Quantity // cumulative
	Value    Money    // Shares at this step's price
}

// Simulation is the replay of a hypothetical recurring purchase plan
// over a historical price path. It is query-scoped and never persisted.
type Simulation struct {
	Symbol    string
	Amount    Money
	Frequency Frequency
	Start     Date
	End       Date

	Steps []SimulationStep

	Invested   Money
	Shares     Quantity
	FinalValue Money // Shares at the most recent price
	AvgCost    Money
	Return     Money
	ReturnPct  Percent
}

// Simulate replays a recurring purchase of 'amount' at 'freq' from start
// to end inclusive, buying at the model's price on each execution date.
//
// The result is fully determined by the inputs: same price model and
// date range, same output, bit for bit. A date without a price is an
// error, the simulation cannot proceed past a gap.
func Simulate(symbol string, amount Money, freq Frequency, pref DayPreference, start, end Date, prices PriceModel) (*Simulation, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("simulation amount must be positive, got %s", amount)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("simulation range is inverted: %s after %s", start, end)
	}
	sim := &Simulation{
		Symbol:    symbol,
		Amount:    amount,
		Frequency: freq,
		Start:     start,
		End:       end,
		Invested:  M(0, amount.Currency()),
	}

	var lastPrice Money
	for on := FirstDate(start, freq, pref); !on.After(end); on = NextDate(on, freq, pref) {
		price, ok := prices(on)
		if !ok {
			return nil, fmt.Errorf("no price for %s on %s", symbol, on)
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("invalid price %s for %s on %s", price, symbol, on)
		}
		lastPrice = price
		sim.Invested = sim.Invested.Add(amount)
		sim.Shares = sim.Shares.Add(amount.DivPrice(price))
		sim.Steps = append(sim.Steps, SimulationStep{
			On:       on,
			Price:    price,
			Invested: sim.Invested,
			Shares:   sim.Shares,
			Value:    price.Mul(sim.Shares),
		})
	}

	if len(sim.Steps) == 0 {
		return sim, nil
	}
	sim.FinalValue = lastPrice.Mul(sim.Shares)
	sim.AvgCost = sim.Invested.Div(sim.Shares)
	sim.Return = sim.FinalValue.Sub(sim.Invested)
	sim.ReturnPct = sim.Return.PercentOf(sim.Invested)
	return sim, nil
}
