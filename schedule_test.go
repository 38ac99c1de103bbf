package costbasis

import (
	"testing"
	"time"
)

func mustSchedule(t *testing.T, freq Frequency, pref DayPreference, start string) *Schedule {
	t.Helper()
	s, err := NewSchedule("brokerage", []Allocation{{Symbol: "VTI", Weight: 100}},
		M(100, "USD"), freq, pref, MustParse(start))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewSchedule(t *testing.T) {
	s := mustSchedule(t, Monthly, OnDayOfMonth(15), "2024-01-10")
	if s.Status != ScheduleActive {
		t.Errorf("Status = %s, want active", s.Status)
	}
	if s.ID == "" {
		t.Error("schedule has no ID")
	}
	// earliest consistent date on or after the start
	if s.Next.String() != "2024-01-15" {
		t.Errorf("Next = %s, want 2024-01-15", s.Next)
	}
	if !s.Invested.IsZero() || s.Invested.Currency() != "USD" {
		t.Errorf("Invested = %s, want $0.00", s.Invested)
	}
}

func TestNewSchedule_Invalid(t *testing.T) {
	start := MustParse("2024-01-10")
	full := []Allocation{{Symbol: "VTI", Weight: 100}}
	testCases := []struct {
		name        string
		account     string
		allocations []Allocation
		amount      Money
		start       Date
	}{
		{"no account", "", full, M(100, "USD"), start},
		{"zero amount", "brokerage", full, M(0, "USD"), start},
		{"negative amount", "brokerage", full, M(-100, "USD"), start},
		{"no allocations", "brokerage", nil, M(100, "USD"), start},
		{"sum under 100", "brokerage", []Allocation{{Symbol: "VTI", Weight: 60}}, M(100, "USD"), start},
		{"sum over 100", "brokerage", []Allocation{{Symbol: "VTI", Weight: 60}, {Symbol: "BND", Weight: 60}}, M(100, "USD"), start},
		{"duplicate symbol", "brokerage", []Allocation{{Symbol: "VTI", Weight: 50}, {Symbol: "VTI", Weight: 50}}, M(100, "USD"), start},
		{"zero weight", "brokerage", []Allocation{{Symbol: "VTI", Weight: 0}, {Symbol: "BND", Weight: 100}}, M(100, "USD"), start},
		{"no start", "brokerage", full, M(100, "USD"), Date{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSchedule(tc.account, tc.allocations, tc.amount, Monthly, DayPreference{}, tc.start)
			if err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSchedule_StateMachine(t *testing.T) {
	s := mustSchedule(t, Monthly, DayPreference{}, "2024-01-15")

	if err := s.Resume(MustParse("2024-02-01")); err == nil {
		t.Error("resumed an active schedule")
	}
	if err := s.Pause(); err != nil {
		t.Fatal(err)
	}
	if err := s.Pause(); err == nil {
		t.Error("paused a paused schedule")
	}
	if err := s.Resume(MustParse("2024-02-01")); err != nil {
		t.Fatal(err)
	}
	if err := s.Cancel(); err != nil {
		t.Fatal(err)
	}
	if s.Status != ScheduleCancelled || !s.Status.Terminal() {
		t.Errorf("Status = %s, want terminal cancelled", s.Status)
	}

	// cancelled is terminal
	if err := s.Pause(); err == nil {
		t.Error("paused a cancelled schedule")
	}
	if err := s.Resume(MustParse("2024-03-01")); err == nil {
		t.Error("resumed a cancelled schedule")
	}
	if err := s.Cancel(); err == nil {
		t.Error("cancelled a cancelled schedule")
	}
	if err := s.RecordExecution(s.NewExecution(s.Allocations[0])); err == nil {
		t.Error("executed a cancelled schedule")
	}
}

// Resuming recomputes Next from the resume date. The stale pre-pause
// date must not come back, even after a long pause.
func TestSchedule_ResumeRecomputesNext(t *testing.T) {
	s := mustSchedule(t, Monthly, OnDayOfMonth(15), "2024-01-10")
	if s.Next.String() != "2024-01-15" {
		t.Fatalf("Next = %s, want 2024-01-15", s.Next)
	}
	if err := s.Pause(); err != nil {
		t.Fatal(err)
	}
	if err := s.Resume(MustParse("2024-03-20")); err != nil {
		t.Fatal(err)
	}
	if s.Next.String() != "2024-04-15" {
		t.Errorf("Next after resume = %s, want 2024-04-15", s.Next)
	}
}

func TestSchedule_RecordExecution(t *testing.T) {
	s := mustSchedule(t, Monthly, OnDayOfMonth(15), "2024-01-10")

	// a completed execution advances Next and grows the totals
	e := s.NewExecution(s.Allocations[0])
	if !e.Amount.Equal(M(100, "USD")) {
		t.Fatalf("execution amount = %s, want $100.00", e.Amount)
	}
	done, err := e.Complete(Q(10), M(10, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordExecution(done); err != nil {
		t.Fatal(err)
	}
	if s.Executions != 1 || !s.Invested.Equal(M(100, "USD")) {
		t.Errorf("after completion: %d executions, %s invested", s.Executions, s.Invested)
	}
	if s.Next.String() != "2024-02-15" {
		t.Errorf("Next = %s, want 2024-02-15", s.Next)
	}

	// a failed execution advances Next but not the totals
	failed, err := s.NewExecution(s.Allocations[0]).Fail("insufficient funds")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordExecution(failed); err != nil {
		t.Fatal(err)
	}
	if s.Executions != 1 || !s.Invested.Equal(M(100, "USD")) {
		t.Errorf("after failure: %d executions, %s invested", s.Executions, s.Invested)
	}
	if s.Next.String() != "2024-03-15" {
		t.Errorf("Next = %s, want 2024-03-15", s.Next)
	}

	// an execution from another schedule is rejected
	stranger := NewExecution("other-schedule", "VTI", M(100, "USD"), s.Next)
	if err := s.RecordExecution(stranger); err == nil {
		t.Error("accepted an execution from another schedule")
	}
}

func TestSchedule_CompletesOnMaxExecutions(t *testing.T) {
	s := mustSchedule(t, Monthly, OnDayOfMonth(15), "2024-01-10")
	s.MaxExecutions = 2

	for i := 0; i < 2; i++ {
		done, err := s.NewExecution(s.Allocations[0]).Complete(Q(10), M(10, "USD"))
		if err != nil {
			t.Fatal(err)
		}
		if err := s.RecordExecution(done); err != nil {
			t.Fatal(err)
		}
	}
	if s.Status != ScheduleCompleted {
		t.Errorf("Status = %s, want completed after 2 of 2 executions", s.Status)
	}
	if err := s.RecordExecution(s.NewExecution(s.Allocations[0])); err == nil {
		t.Error("executed a completed schedule")
	}
}

func TestSchedule_CompletesOnEndDate(t *testing.T) {
	s := mustSchedule(t, Monthly, OnDayOfMonth(15), "2024-01-10")
	s.End = MustParse("2024-02-20")

	done, err := s.NewExecution(s.Allocations[0]).Complete(Q(10), M(10, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordExecution(done); err != nil {
		t.Fatal(err)
	}
	// Next is 2024-02-15, still before the end
	if s.Status != ScheduleActive {
		t.Fatalf("Status = %s, want active", s.Status)
	}

	done, err = s.NewExecution(s.Allocations[0]).Complete(Q(10), M(10, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RecordExecution(done); err != nil {
		t.Fatal(err)
	}
	// Next would be 2024-03-15, past the end date
	if s.Status != ScheduleCompleted {
		t.Errorf("Status = %s, want completed", s.Status)
	}
}

// A multi-symbol schedule splits each firing by allocation weight.
func TestSchedule_SplitAllocations(t *testing.T) {
	s, err := NewSchedule("brokerage",
		[]Allocation{{Symbol: "VTI", Weight: 70}, {Symbol: "BND", Weight: 30}},
		M(200, "USD"), Weekly, OnWeekday(time.Monday), MustParse("2024-01-15"))
	if err != nil {
		t.Fatal(err)
	}
	vti := s.NewExecution(s.Allocations[0])
	bnd := s.NewExecution(s.Allocations[1])
	if !vti.Amount.Equal(M(140, "USD")) {
		t.Errorf("VTI amount = %s, want $140.00", vti.Amount)
	}
	if !bnd.Amount.Equal(M(60, "USD")) {
		t.Errorf("BND amount = %s, want $60.00", bnd.Amount)
	}
	if !vti.Amount.Add(bnd.Amount).Equal(s.Amount) {
		t.Error("split amounts do not add up to the schedule amount")
	}
}

func TestExecution_Complete(t *testing.T) {
	e := NewExecution("sched", "VTI", M(100, "USD"), MustParse("2024-01-15"))
	if e.Status != ExecPending {
		t.Fatalf("Status = %s, want pending", e.Status)
	}

	// 10 shares at $10.05 is $100.50: within the 1% tolerance
	done, err := e.Complete(Q(10), M(10.05, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != ExecCompleted {
		t.Errorf("Status = %s, want completed", done.Status)
	}
	// the original record is a value, left pending
	if e.Status != ExecPending {
		t.Errorf("original mutated to %s", e.Status)
	}

	// 10 shares at $11 is $110: 10% off, rejected
	if _, err := e.Complete(Q(10), M(11, "USD")); err == nil {
		t.Error("accepted a 10% drift")
	}
	if _, err := e.Complete(Q(0), M(10, "USD")); err == nil {
		t.Error("accepted zero shares")
	}
	// a completed execution is immutable
	if _, err := done.Complete(Q(10), M(10, "USD")); err == nil {
		t.Error("completed a completed execution")
	}
}

func TestExecution_FailAndRetry(t *testing.T) {
	e := NewExecution("sched", "VTI", M(100, "USD"), MustParse("2024-01-15"))
	failed, err := e.Fail("market closed")
	if err != nil {
		t.Fatal(err)
	}
	if failed.Status != ExecFailed || failed.Reason != "market closed" {
		t.Errorf("failed = %s %q", failed.Status, failed.Reason)
	}

	// retry creates a fresh pending record, never mutates the failed one
	retried, err := failed.Retry(MustParse("2024-01-16"))
	if err != nil {
		t.Fatal(err)
	}
	if retried.ID == failed.ID {
		t.Error("retry reused the failed execution's ID")
	}
	if retried.Status != ExecPending {
		t.Errorf("retried status = %s, want pending", retried.Status)
	}
	if !retried.Amount.Equal(failed.Amount) || retried.Symbol != failed.Symbol || retried.ScheduleID != failed.ScheduleID {
		t.Error("retry changed the execution terms")
	}
	if failed.Status != ExecFailed {
		t.Errorf("retry mutated the failed record to %s", failed.Status)
	}

	// only failed executions can be retried
	if _, err := e.Retry(MustParse("2024-01-16")); err == nil {
		t.Error("retried a pending execution")
	}
	done, err := e.Complete(Q(10), M(10, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := done.Retry(MustParse("2024-01-16")); err == nil {
		t.Error("retried a completed execution")
	}
	if _, err := done.Fail("nope"); err == nil {
		t.Error("failed a completed execution")
	}
}

func TestScheduleBook(t *testing.T) {
	s1 := mustSchedule(t, Monthly, DayPreference{}, "2024-01-15")
	s2 := mustSchedule(t, Weekly, DayPreference{}, "2024-01-15")
	book := &ScheduleBook{Schedules: []*Schedule{s1, s2}}
	book.Executions = append(book.Executions,
		NewExecution(s1.ID, "VTI", M(100, "USD"), s1.Next),
		NewExecution(s2.ID, "VTI", M(100, "USD"), s2.Next),
		NewExecution(s1.ID, "VTI", M(100, "USD"), s1.Next),
	)

	if got := book.Get(s2.ID); got != s2 {
		t.Error("Get did not find the schedule")
	}
	if got := book.Get("missing"); got != nil {
		t.Error("Get found a missing schedule")
	}
	if got := book.ExecutionsFor(s1.ID); len(got) != 2 {
		t.Errorf("ExecutionsFor = %d executions, want 2", len(got))
	}
}
