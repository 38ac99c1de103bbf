package costbasis

import (
	"iter"
	"slices"
)

// History stores a chronological price series for one symbol.
// It ensures that dates are unique and the series is always sorted.
type History struct {
	days   []Date
	prices []Money
}

// Len returns the number of points in the history.
func (h *History) Len() int { return len(h.days) }

// Append adds a point to the history. An existing value at that date is
// overwritten, which gives higher priority to the last data.
func (h *History) Append(on Date, price Money) *History {
	if i := slices.Index(h.days, on); i >= 0 {
		h.prices[i] = price
		return h
	}
	i, _ := slices.BinarySearchFunc(h.days, on, compareDates)
	h.days = slices.Insert(h.days, i, on)
	h.prices = slices.Insert(h.prices, i, price)
	return h
}

// Get returns the price at 'day' and true, or zero value and false.
func (h *History) Get(day Date) (Money, bool) {
	if i := slices.Index(h.days, day); i >= 0 {
		return h.prices[i], true
	}
	return Money{}, false
}

// ValueAsOf returns the price on a given day, or the most recent price
// before it. It returns false when the history has no point on or before
// the day.
func (h *History) ValueAsOf(day Date) (Money, bool) {
	i, found := slices.BinarySearchFunc(h.days, day, compareDates)
	if found {
		return h.prices[i], true
	}
	if i == 0 {
		return Money{}, false // no date on or before the given day
	}
	return h.prices[i-1], true
}

// Latest returns the latest date and price in the history.
// If the history is empty, it returns zero values.
func (h *History) Latest() (Date, Money) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, Money{}
	}
	return h.days[last], h.prices[last]
}

// Values returns an iterator over all date/price pairs in chronological order.
func (h *History) Values() iter.Seq2[Date, Money] {
	return func(yield func(Date, Money) bool) {
		for i, on := range h.days {
			if !yield(on, h.prices[i]) {
				return
			}
		}
	}
}

// Model adapts the history into a [PriceModel]. A date between two
// points resolves to the most recent close on or before it, so weekend
// or holiday executions use the last trading day's price. Only dates
// before the first point have no price.
func (h *History) Model() PriceModel {
	return h.ValueAsOf
}

func compareDates(d, t Date) int {
	switch {
	case d.Before(t):
		return -1
	case d.After(t):
		return 1
	default:
		return 0
	}
}
