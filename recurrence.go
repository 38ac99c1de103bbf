package costbasis

import (
	"fmt"
	"time"
)

// maxPreferredDayOfMonth caps monthly day preferences so that the result
// exists in every month. Executions can therefore never land on the
// 29th-31st, even in long months.
const maxPreferredDayOfMonth = 28

// DayPreference optionally pins executions to a weekday (weekly) or a
// day of the month (monthly). The zero value means no preference.
type DayPreference struct {
	Weekday    time.Weekday // honored only when HasWeekday is set
	HasWeekday bool
	DayOfMonth int // 0 means none; clamped to maxPreferredDayOfMonth
}

// IsZero reports whether no preference is set.
func (p DayPreference) IsZero() bool { return !p.HasWeekday && p.DayOfMonth == 0 }

// OnWeekday returns a preference for a weekday.
func OnWeekday(w time.Weekday) DayPreference {
	return DayPreference{Weekday: w, HasWeekday: true}
}

// OnDayOfMonth returns a preference for a day of the month.
func OnDayOfMonth(day int) DayPreference {
	return DayPreference{DayOfMonth: day}
}

// NextDate computes the next execution date after 'from' for a frequency
// and an optional day preference. It is a pure function of its inputs.
//
// Weekly advances 7 days and then shifts forward (never backward) within
// the following week to land on the preferred weekday. Biweekly is a
// plain 14 days: the weekday preference is deliberately not applied, as
// the shift could move an execution up to 6 extra days and change the
// cadence. Monthly advances one calendar month and then pins the day to
// min(preferred, 28). Quarterly advances three calendar months with no
// day adjustment.
//
// Dates are civil days anchored at midnight UTC, so a daylight-saving
// transition can neither skip nor duplicate an execution day.
func NextDate(from Date, freq Frequency, pref DayPreference) Date {
	switch freq {
	case Daily:
		return from.Add(1)
	case Weekly:
		next := from.Add(7)
		if pref.HasWeekday {
			shift := (int(pref.Weekday) - int(next.Weekday()) + 7) % 7
			next = next.Add(shift)
		}
		return next
	case Biweekly:
		return from.Add(14)
	case Monthly:
		if pref.DayOfMonth > 0 {
			// pin the day before advancing so a day-29..31 anchor
			// cannot overflow past the next month
			return NewDate(from.Year(), from.Month()+1, clampDayOfMonth(pref.DayOfMonth))
		}
		return from.AddMonth(1)
	case Quarterly:
		return from.AddMonth(3)
	default:
		panic(fmt.Sprintf("unknown frequency %d", freq))
	}
}

// FirstDate computes the earliest execution date on or after the anchor
// that is consistent with the frequency and day preference.
func FirstDate(anchor Date, freq Frequency, pref DayPreference) Date {
	switch {
	case freq == Weekly && pref.HasWeekday:
		shift := (int(pref.Weekday) - int(anchor.Weekday()) + 7) % 7
		return anchor.Add(shift)
	case freq == Monthly && pref.DayOfMonth > 0:
		day := clampDayOfMonth(pref.DayOfMonth)
		first := NewDate(anchor.Year(), anchor.Month(), day)
		if first.Before(anchor) {
			first = NewDate(anchor.Year(), anchor.Month()+1, day)
		}
		return first
	default:
		return anchor
	}
}

func clampDayOfMonth(day int) int {
	if day > maxPreferredDayOfMonth {
		return maxPreferredDayOfMonth
	}
	return day
}
