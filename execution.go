package costbasis

import (
	"fmt"

	"github.com/google/uuid"
)

// ExecutionStatus is the lifecycle state of a single schedule firing.
type ExecutionStatus int

const (
	ExecPending ExecutionStatus = iota
	ExecCompleted
	ExecFailed
	ExecCancelled
)

func (s ExecutionStatus) String() string {
	switch s {
	case ExecPending:
		return "pending"
	case ExecCompleted:
		return "completed"
	case ExecFailed:
		return "failed"
	case ExecCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func ParseExecutionStatus(s string) (ExecutionStatus, error) {
	switch s {
	case "pending":
		return ExecPending, nil
	case "completed":
		return ExecCompleted, nil
	case "failed":
		return ExecFailed, nil
	case "cancelled":
		return ExecCancelled, nil
	default:
		return 0, fmt.Errorf("unknown execution status %q", s)
	}
}

// completionTolerance bounds the relative rounding drift allowed between
// shares*price and the executed amount.
const completionTolerance = 0.01

// Execution records one firing of a schedule. A completed execution is
// immutable; a failed one is retried by creating a new record, never by
// mutating the failed one, so the audit trail is preserved.
type Execution struct {
	ID         string
	ScheduleID string
	Symbol     string
	Amount     Money
	Shares     Quantity
	Price      Money
	On         Date
	Status     ExecutionStatus
	Reason     string // failure detail, empty otherwise
}

// NewExecution records a pending firing of a schedule.
func NewExecution(scheduleID, symbol string, amount Money, on Date) Execution {
	return Execution{
		ID:         uuid.NewString(),
		ScheduleID: scheduleID,
		Symbol:     symbol,
		Amount:     amount,
		On:         on,
		Status:     ExecPending,
	}
}

// Complete returns a completed copy of a pending execution. It verifies
// that shares*price matches the executed amount within the rounding
// tolerance.
func (e Execution) Complete(shares Quantity, price Money) (Execution, error) {
	if e.Status != ExecPending {
		return e, fmt.Errorf("cannot complete a %s execution", e.Status)
	}
	if !shares.IsPositive() {
		return e, fmt.Errorf("completed execution needs positive shares, got %s", shares)
	}
	got := price.Mul(shares)
	drift := got.Sub(e.Amount)
	if drift.IsNegative() {
		drift = drift.Neg()
	}
	limit := e.Amount.MulDecimal(newDecimal(completionTolerance))
	if drift.GreaterThan(limit) {
		return e, fmt.Errorf("execution mismatch: %s shares at %s is %s, expected %s", shares, price, got, e.Amount)
	}
	e.Shares = shares
	e.Price = price
	e.Status = ExecCompleted
	return e, nil
}

// Fail returns a failed copy of a pending execution, carrying zero
// shares and the failure reason.
func (e Execution) Fail(reason string) (Execution, error) {
	if e.Status != ExecPending {
		return e, fmt.Errorf("cannot fail a %s execution", e.Status)
	}
	e.Shares = Quantity{}
	e.Price = Money{}
	e.Status = ExecFailed
	e.Reason = reason
	return e, nil
}

// Retry creates a new pending execution for the same schedule, symbol
// and amount. Only failed executions can be retried.
func (e Execution) Retry(on Date) (Execution, error) {
	if e.Status != ExecFailed {
		return Execution{}, fmt.Errorf("cannot retry a %s execution", e.Status)
	}
	return NewExecution(e.ScheduleID, e.Symbol, e.Amount, on), nil
}

// MarshalJSON implements the json.Marshaler interface for Execution.
func (e Execution) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("record", recExecution)
	w.Append("id", e.ID)
	w.Append("schedule", e.ScheduleID)
	w.Append("symbol", e.Symbol)
	w.Append("amount", e.Amount)
	w.Optional("shares", e.Shares)
	w.Optional("price", e.Price)
	w.Append("date", e.On)
	w.Append("status", e.Status.String())
	w.Optional("reason", e.Reason)
	return w.MarshalJSON()
}
