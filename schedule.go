package costbasis

import (
	"fmt"

	"github.com/google/uuid"
)

// ScheduleStatus is the lifecycle state of a DCA schedule.
//
// Allowed transitions: active -> paused -> active, active/paused ->
// cancelled, active -> completed (end date passed or max executions
// reached). Cancelled and completed are terminal.
type ScheduleStatus int

const (
	ScheduleActive ScheduleStatus = iota
	SchedulePaused
	ScheduleCancelled
	ScheduleCompleted
)

func (s ScheduleStatus) String() string {
	switch s {
	case ScheduleActive:
		return "active"
	case SchedulePaused:
		return "paused"
	case ScheduleCancelled:
		return "cancelled"
	case ScheduleCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

func ParseScheduleStatus(s string) (ScheduleStatus, error) {
	switch s {
	case "active":
		return ScheduleActive, nil
	case "paused":
		return SchedulePaused, nil
	case "cancelled":
		return ScheduleCancelled, nil
	case "completed":
		return ScheduleCompleted, nil
	default:
		return 0, fmt.Errorf("unknown schedule status %q", s)
	}
}

// Terminal reports whether no further transition is allowed.
func (s ScheduleStatus) Terminal() bool {
	return s == ScheduleCancelled || s == ScheduleCompleted
}

// Allocation assigns a percentage of each execution to one symbol.
type Allocation struct {
	Symbol string  `json:"symbol"`
	Weight Percent `json:"weight"`
}

// Schedule is a recurring purchase plan. Its Next date always holds the
// earliest upcoming date consistent with the frequency and preference;
// paused and terminal schedules keep a frozen Next date.
type Schedule struct {
	ID            string
	Account       string
	Allocations   []Allocation
	Amount        Money // invested per execution
	Frequency     Frequency
	Preference    DayPreference
	Start         Date
	End           Date // zero means open-ended
	MaxExecutions int  // 0 means unlimited

	Next       Date
	Invested   Money // cumulative completed amount
	Executions int   // completed execution count
	Status     ScheduleStatus
}

// NewSchedule validates and creates an active schedule. Allocation
// weights must sum to 100%; this is the only place the sum is checked.
// The first execution date is the earliest date on or after start
// consistent with the frequency and preference.
func NewSchedule(account string, allocations []Allocation, amount Money, freq Frequency, pref DayPreference, start Date) (*Schedule, error) {
	if account == "" {
		return nil, fmt.Errorf("schedule account is missing")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("schedule amount must be positive, got %s", amount)
	}
	if err := ValidateCurrency(amount.Currency()); err != nil {
		return nil, err
	}
	if err := validateAllocations(allocations); err != nil {
		return nil, err
	}
	if start.IsZero() {
		return nil, fmt.Errorf("schedule start date is missing")
	}
	return &Schedule{
		ID:          uuid.NewString(),
		Account:     account,
		Allocations: allocations,
		Amount:      amount,
		Frequency:   freq,
		Preference:  pref,
		Start:       start,
		Next:        FirstDate(start, freq, pref),
		Invested:    M(0, amount.Currency()),
		Status:      ScheduleActive,
	}, nil
}

// Pause freezes an active schedule. The Next date stops advancing.
func (s *Schedule) Pause() error {
	if s.Status != ScheduleActive {
		return fmt.Errorf("cannot pause a %s schedule", s.Status)
	}
	s.Status = SchedulePaused
	return nil
}

// Resume reactivates a paused schedule. The next execution is recomputed
// from 'now': the stale pre-pause date is never resurrected.
func (s *Schedule) Resume(now Date) error {
	if s.Status != SchedulePaused {
		return fmt.Errorf("cannot resume a %s schedule", s.Status)
	}
	anchor := now
	if anchor.Before(s.Start) {
		anchor = s.Start
	}
	s.Next = FirstDate(anchor, s.Frequency, s.Preference)
	s.Status = ScheduleActive
	s.completeIfExhausted()
	return nil
}

// Cancel terminates an active or paused schedule. No further executions.
func (s *Schedule) Cancel() error {
	if s.Status.Terminal() {
		return fmt.Errorf("cannot cancel a %s schedule", s.Status)
	}
	s.Status = ScheduleCancelled
	return nil
}

// NewExecution records a pending firing for the schedule's next date.
// Multi-symbol schedules fire one execution per allocation, splitting
// the amount by weight.
func (s *Schedule) NewExecution(a Allocation) Execution {
	part := s.Amount.MulDecimal(newDecimal(float64(a.Weight) / 100))
	return NewExecution(s.ID, a.Symbol, part, s.Next)
}

// RecordExecution applies one firing of the schedule: the Next date
// advances regardless of the outcome, and the cumulative totals grow
// only for completed executions. A failed execution is retried by
// recording a fresh one (see [Execution.Retry]), not by replaying.
func (s *Schedule) RecordExecution(e Execution) error {
	if s.Status != ScheduleActive {
		return fmt.Errorf("cannot execute a %s schedule", s.Status)
	}
	if e.ScheduleID != s.ID {
		return fmt.Errorf("execution %s belongs to schedule %s, not %s", e.ID, e.ScheduleID, s.ID)
	}
	if e.Status == ExecCompleted {
		s.Invested = s.Invested.Add(e.Amount)
		s.Executions++
	}
	s.Next = NextDate(s.Next, s.Frequency, s.Preference)
	s.completeIfExhausted()
	return nil
}

// completeIfExhausted moves an active schedule to completed once its end
// date is passed or its execution budget is spent.
func (s *Schedule) completeIfExhausted() {
	if s.Status != ScheduleActive {
		return
	}
	if !s.End.IsZero() && s.Next.After(s.End) {
		s.Status = ScheduleCompleted
	}
	if s.MaxExecutions > 0 && s.Executions >= s.MaxExecutions {
		s.Status = ScheduleCompleted
	}
}

// MarshalJSON implements the json.Marshaler interface for Schedule.
func (s *Schedule) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("record", recSchedule)
	w.Append("id", s.ID)
	w.Append("account", s.Account)
	w.Append("allocations", s.Allocations)
	w.Append("amount", s.Amount)
	w.Append("frequency", s.Frequency)
	if s.Preference.HasWeekday {
		w.Append("weekday", int(s.Preference.Weekday))
	}
	w.Optional("dayOfMonth", s.Preference.DayOfMonth)
	w.Append("start", s.Start)
	w.Optional("end", s.End)
	w.Optional("maxExecutions", s.MaxExecutions)
	w.Append("next", s.Next)
	w.Append("invested", s.Invested)
	w.Append("executions", s.Executions)
	w.Append("status", s.Status.String())
	return w.MarshalJSON()
}

// ScheduleBook holds the known schedules and their execution history.
type ScheduleBook struct {
	Schedules  []*Schedule
	Executions []Execution
}

// Get returns the schedule with the given ID, or nil.
func (b *ScheduleBook) Get(id string) *Schedule {
	for _, s := range b.Schedules {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// ExecutionsFor returns the executions recorded for a schedule, in order.
func (b *ScheduleBook) ExecutionsFor(scheduleID string) []Execution {
	var out []Execution
	for _, e := range b.Executions {
		if e.ScheduleID == scheduleID {
			out = append(out, e)
		}
	}
	return out
}
