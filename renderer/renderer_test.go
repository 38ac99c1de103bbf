package renderer

import (
	"strings"
	"testing"

	"github.com/openfolio/costbasis"
	"github.com/shopspring/decimal"
)

func contains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	one := decimal.NewFromInt(1)
	lot1, err := costbasis.NewLot(costbasis.MustParse("2024-01-01"), costbasis.Q(10), costbasis.M(100, "USD"), one, "USD")
	if err != nil {
		t.Fatal(err)
	}
	lot2, err := costbasis.NewLot(costbasis.MustParse("2024-06-01"), costbasis.Q(8), costbasis.M(131.25, "USD"), one, "USD")
	if err != nil {
		t.Fatal(err)
	}
	asOf := costbasis.MustParse("2025-03-01")
	quote := &costbasis.Quote{Price: costbasis.M(120, "USD")}
	s := costbasis.Summarize("VTI", []costbasis.Lot{lot1, lot2}, asOf, quote)

	got := RenderSummary(s)
	contains(t, got,
		"# Cost Basis for VTI on 2025-03-01",
		"Cost Basis: $2,050.00",
		"Market Value: $2,160.00",
		"Unrealized Gain: +$110.00",
		"## Tax Classification",
		"| Long-term | 10 | $1,000.00 | +$200.00 |",
		"| Short-term | 8 | $1,050.00 | -$90.00 |",
		"| 2024-01-01 | 10 | $100.00 | $1,000.00 | long-term |",
		"| 2024-06-01 | 8 | $131.25 | $1,050.00 | short-term |",
	)
	if strings.Contains(got, "error") {
		t.Errorf("template error leaked into output:\n%s", got)
	}
}

func TestRenderSummary_NoQuote(t *testing.T) {
	s := costbasis.Summarize("VTI", nil, costbasis.MustParse("2025-03-01"), nil)
	got := RenderSummary(s)
	contains(t, got, "Market Value: n/a (no current price)", "n/a")
	if strings.Contains(got, "Unrealized Gain") {
		t.Errorf("gain rendered without a quote:\n%s", got)
	}
}

func TestRenderSimulation(t *testing.T) {
	prices := map[string]float64{"2024-01-15": 10, "2024-02-15": 40}
	model := func(on costbasis.Date) (costbasis.Money, bool) {
		p, ok := prices[on.String()]
		return costbasis.M(p, "USD"), ok
	}
	sim, err := costbasis.Simulate("VTI", costbasis.M(100, "USD"), costbasis.Monthly,
		costbasis.OnDayOfMonth(15), costbasis.MustParse("2024-01-10"), costbasis.MustParse("2024-02-28"), model)
	if err != nil {
		t.Fatal(err)
	}

	got := RenderSimulation(sim)
	contains(t, got,
		"# DCA Simulation for VTI",
		"Investing $100.00 monthly from 2024-01-10 to 2024-02-28.",
		"Final Value: $500.00",
		"Return: +$300.00 (+150.00%)",
		"| 2024-01-15 | $10.00 |",
		"| 2024-02-15 | $40.00 |",
	)
}

func TestRenderSimulation_Empty(t *testing.T) {
	sim, err := costbasis.Simulate("VTI", costbasis.M(100, "USD"), costbasis.Monthly,
		costbasis.OnDayOfMonth(28), costbasis.MustParse("2024-01-10"), costbasis.MustParse("2024-01-15"),
		func(costbasis.Date) (costbasis.Money, bool) { return costbasis.M(10, "USD"), true })
	if err != nil {
		t.Fatal(err)
	}
	contains(t, RenderSimulation(sim), "No executions fall within the range.")
}

func TestRenderProjection(t *testing.T) {
	s, err := costbasis.NewSchedule("brokerage",
		[]costbasis.Allocation{{Symbol: "VTI", Weight: 100}},
		costbasis.M(100, "USD"), costbasis.Monthly, costbasis.DayPreference{},
		costbasis.MustParse("2024-01-10"))
	if err != nil {
		t.Fatal(err)
	}
	p, err := costbasis.Project(s, 12, 0, costbasis.MustParse("2024-01-10"))
	if err != nil {
		t.Fatal(err)
	}

	got := RenderProjection(p)
	contains(t, got,
		"# Projection over 12 months",
		"constant 0.00% annual return",
		"Invested: $1,200.00",
		"Projected Value: $1,200.00 (between $1,080.00 and $1,320.00)",
		"## Monthly Outlook",
	)
}
