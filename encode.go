package costbasis

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// recordType is a typed string identifying each JSONL record.
type recordType string

const (
	recLot       recordType = "lot"
	recSchedule  recordType = "schedule"
	recExecution recordType = "execution"
)

// moneyCmd is a specialized struct to decode a money value from its two fields.
type moneyCmd struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (a moneyCmd) Money() Money {
	return M(a.Amount, a.Currency)
}

// lotCmd is a specialized struct for decoding a lot line.
type lotCmd struct {
	Symbol            string          `json:"symbol"`
	Date              Date            `json:"date"`
	Shares            Quantity        `json:"shares"`
	Price             moneyCmd        `json:"price"`
	FX                decimal.Decimal `json:"fx"`
	SecondaryCurrency string          `json:"secondaryCurrency"`
}

// EncodeLot writes one lot as a JSONL line.
func EncodeLot(w io.Writer, symbol string, lot Lot) error {
	var jw jsonObjectWriter
	jw.Append("record", recLot)
	jw.Append("symbol", symbol)
	jw.EmbedFrom(lot)
	data, err := jw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal lot: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write lot: %w", err)
	}
	return nil
}

// EncodeLotLedger persists a whole ledger in JSONL format, one lot per
// line, symbols in first-appearance order.
func EncodeLotLedger(w io.Writer, ledger *LotLedger) error {
	for _, symbol := range ledger.Symbols() {
		for _, lot := range ledger.Lots(symbol) {
			if err := EncodeLot(w, symbol, lot); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeLotLedger reads a JSONL stream of lot records into a ledger.
// Lots are rebuilt through [NewLot], so the construction invariants are
// re-checked and the cost totals rederived.
func DecodeLotLedger(r io.Reader) (*LotLedger, error) {
	ledger := NewLotLedger()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // skip empty lines
		}
		rec, err := recordKind(line)
		if err != nil {
			return nil, err
		}
		if rec != recLot {
			return nil, fmt.Errorf("unexpected %q record in lot ledger", rec)
		}
		var temp lotCmd
		if err := json.Unmarshal(line, &temp); err != nil {
			return nil, fmt.Errorf("invalid lot line %q: %w", string(line), err)
		}
		lot, err := NewLot(temp.Date, temp.Shares, temp.Price.Money(), temp.FX, temp.SecondaryCurrency)
		if err != nil {
			return nil, fmt.Errorf("invalid lot on %s: %w", temp.Date, err)
		}
		if err := ledger.AddLot(temp.Symbol, lot); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return ledger, nil
}

// scheduleCmd is a specialized struct for decoding a schedule line.
type scheduleCmd struct {
	ID            string       `json:"id"`
	Account       string       `json:"account"`
	Allocations   []Allocation `json:"allocations"`
	Amount        moneyCmd     `json:"amount"`
	Frequency     Frequency    `json:"frequency"`
	Weekday       *int         `json:"weekday"`
	DayOfMonth    int          `json:"dayOfMonth"`
	Start         Date         `json:"start"`
	End           Date         `json:"end"`
	MaxExecutions int          `json:"maxExecutions"`
	Next          Date         `json:"next"`
	Invested      moneyCmd     `json:"invested"`
	Executions    int          `json:"executions"`
	Status        string       `json:"status"`
}

// executionCmd is a specialized struct for decoding an execution line.
type executionCmd struct {
	ID       string   `json:"id"`
	Schedule string   `json:"schedule"`
	Symbol   string   `json:"symbol"`
	Amount   moneyCmd `json:"amount"`
	Shares   Quantity `json:"shares"`
	Price    moneyCmd `json:"price"`
	Date     Date     `json:"date"`
	Status   string   `json:"status"`
	Reason   string   `json:"reason"`
}

// EncodeScheduleBook persists schedules then executions in JSONL format.
func EncodeScheduleBook(w io.Writer, book *ScheduleBook) error {
	for _, s := range book.Schedules {
		if err := encodeLine(w, s); err != nil {
			return err
		}
	}
	for _, e := range book.Executions {
		if err := encodeLine(w, e); err != nil {
			return err
		}
	}
	return nil
}

func encodeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// DecodeScheduleBook reads a JSONL stream of schedule and execution records.
func DecodeScheduleBook(r io.Reader) (*ScheduleBook, error) {
	book := &ScheduleBook{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		rec, err := recordKind(line)
		if err != nil {
			return nil, err
		}
		switch rec {
		case recSchedule:
			var temp scheduleCmd
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, fmt.Errorf("invalid schedule line %q: %w", string(line), err)
			}
			status, err := ParseScheduleStatus(temp.Status)
			if err != nil {
				return nil, err
			}
			pref := DayPreference{DayOfMonth: temp.DayOfMonth}
			if temp.Weekday != nil {
				pref.Weekday = time.Weekday(*temp.Weekday)
				pref.HasWeekday = true
			}
			book.Schedules = append(book.Schedules, &Schedule{
				ID:            temp.ID,
				Account:       temp.Account,
				Allocations:   temp.Allocations,
				Amount:        temp.Amount.Money(),
				Frequency:     temp.Frequency,
				Preference:    pref,
				Start:         temp.Start,
				End:           temp.End,
				MaxExecutions: temp.MaxExecutions,
				Next:          temp.Next,
				Invested:      temp.Invested.Money(),
				Executions:    temp.Executions,
				Status:        status,
			})
		case recExecution:
			var temp executionCmd
			if err := json.Unmarshal(line, &temp); err != nil {
				return nil, fmt.Errorf("invalid execution line %q: %w", string(line), err)
			}
			status, err := ParseExecutionStatus(temp.Status)
			if err != nil {
				return nil, err
			}
			book.Executions = append(book.Executions, Execution{
				ID:         temp.ID,
				ScheduleID: temp.Schedule,
				Symbol:     temp.Symbol,
				Amount:     temp.Amount.Money(),
				Shares:     temp.Shares,
				Price:      temp.Price.Money(),
				On:         temp.Date,
				Status:     status,
				Reason:     temp.Reason,
			})
		default:
			return nil, fmt.Errorf("unexpected %q record in schedule book", rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return book, nil
}

// recordKind reads the record discriminator of a JSONL line.
func recordKind(line []byte) (recordType, error) {
	var identifier struct {
		Record recordType `json:"record"`
	}
	if err := json.Unmarshal(line, &identifier); err != nil {
		return "", fmt.Errorf("could not identify record in line %q: %w", string(line), err)
	}
	return identifier.Record, nil
}
