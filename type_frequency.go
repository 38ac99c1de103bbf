package costbasis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Frequency is the cadence of a recurring purchase schedule.
type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Biweekly
	Monthly
	Quarterly
)

func (f Frequency) String() string {
	switch f {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Biweekly:
		return "biweekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	default:
		panic(fmt.Sprintf("unknown frequency %d", f))
	}
}

// PerYear returns the number of executions per calendar year.
func (f Frequency) PerYear() int {
	switch f {
	case Daily:
		return 365
	case Weekly:
		return 52
	case Biweekly:
		return 26
	case Monthly:
		return 12
	case Quarterly:
		return 4
	default:
		panic(fmt.Sprintf("unknown frequency %d", f))
	}
}

func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "biweekly", "fortnightly":
		return Biweekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	default:
		return Daily, fmt.Errorf("unknown frequency %q", s)
	}
}

// MarshalJSON encodes the frequency as its lowercase name.
func (f Frequency) MarshalJSON() ([]byte, error) { return json.Marshal(f.String()) }

func (f *Frequency) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseFrequency(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}
