package costbasis

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// projectionBandRatio is the flat uncertainty band applied to every
// projected value: low = value*0.9, high = value*1.1. It is an
// illustrative policy constant, not a statistical model; in particular
// it does not widen with the projection horizon.
const projectionBandRatio = 0.10

// ProjectionStep is the projected state at the end of one month.
type ProjectionStep struct {
	On       Date
	Invested Money
	Value    Money
	Low      Money
	High     Money
}

// Projection extrapolates a live schedule forward at an assumed constant
// annual return. It is query-scoped and never persisted.
type Projection struct {
	ScheduleID          string
	Months              int
	AnnualReturn        Percent
	MonthlyContribution Money

	Steps []ProjectionStep

	Invested   Money
	FinalValue Money
	Low        Money
	High       Money
	Return     Money
	ReturnPct  Percent
}

// Project compounds a schedule's contributions monthly for the given
// number of months, starting from zero holdings at 'from'.
//
// The assumed annual return converts to an effective monthly rate of
// annual/12/100, and any execution frequency converts to a
// monthly-equivalent contribution of amount * perYear/12. Each month m:
//
//	value[m] = value[m-1]*(1+rate) + contribution
//	invested[m] = invested[m-1] + contribution
func Project(s *Schedule, months int, annualReturn Percent, from Date) (*Projection, error) {
	if s == nil {
		return nil, fmt.Errorf("projection needs a schedule")
	}
	if months <= 0 {
		return nil, fmt.Errorf("projection months must be positive, got %d", months)
	}

	rate := decimal.NewFromFloat(float64(annualReturn)).
		Div(decimal.NewFromInt(12)).
		Div(decimal.NewFromInt(100))
	growth := decimal.NewFromInt(1).Add(rate)
	perMonth := decimal.NewFromInt(int64(s.Frequency.PerYear())).Div(decimal.NewFromInt(12))
	contribution := s.Amount.MulDecimal(perMonth)

	low := decimal.NewFromFloat(1 - projectionBandRatio)
	high := decimal.NewFromFloat(1 + projectionBandRatio)

	p := &Projection{
		ScheduleID:          s.ID,
		Months:              months,
		AnnualReturn:        annualReturn,
		MonthlyContribution: contribution,
		Invested:            M(0, s.Amount.Currency()),
		FinalValue:          M(0, s.Amount.Currency()),
	}

	value := M(0, s.Amount.Currency())
	invested := M(0, s.Amount.Currency())
	for m := 1; m <= months; m++ {
		value = value.MulDecimal(growth).Add(contribution)
		invested = invested.Add(contribution)
		p.Steps = append(p.Steps, ProjectionStep{
			On:       from.AddMonth(m),
			Invested: invested,
			Value:    value,
			Low:      value.MulDecimal(low),
			High:     value.MulDecimal(high),
		})
	}

	last := p.Steps[len(p.Steps)-1]
	p.Invested = last.Invested
	p.FinalValue = last.Value
	p.Low = last.Low
	p.High = last.High
	p.Return = p.FinalValue.Sub(p.Invested)
	p.ReturnPct = p.Return.PercentOf(p.Invested)
	return p, nil
}
