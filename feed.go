package costbasis

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// ParsePriceFeed reads an end-of-day price document from a provider and
// extracts a price [History] in the given currency.
//
// Two document shapes are accepted: a bare array of points, or an object
// wrapping the array under "prices":
//
//	[{"date": "2024-01-02", "close": 101.5}, ...]
//	{"prices": [{"date": "2024-01-02", "close": "101,5"}, ...]}
//
// Providers are sloppy about number formatting, so a close value may be
// a JSON number or a string (possibly with a decimal comma). That
// tolerance lives here, at the ingestion boundary, and nowhere else:
// the compute functions only ever see validated Money values.
func ParsePriceFeed(r io.Reader, currency string) (*History, error) {
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("invalid price feed: %w", err)
	}

	root := "$"
	if _, ok := jobj.(map[string]any); ok {
		root = "$.prices"
	}

	jdates, err := jsonpath.Get(root+"[*].date", jobj)
	if err != nil {
		return nil, fmt.Errorf("price feed has no dates: %w", err)
	}
	jcloses, err := jsonpath.Get(root+"[*].close", jobj)
	if err != nil {
		return nil, fmt.Errorf("price feed has no closes: %w", err)
	}

	dates, ok := jdates.([]any)
	if !ok {
		return nil, fmt.Errorf("price feed dates are not a list")
	}
	closes, ok := jcloses.([]any)
	if !ok {
		return nil, fmt.Errorf("price feed closes are not a list")
	}
	if len(dates) != len(closes) {
		return nil, fmt.Errorf("price feed has %d dates but %d closes", len(dates), len(closes))
	}

	history := &History{}
	for i := range dates {
		str, ok := dates[i].(string)
		if !ok {
			return nil, fmt.Errorf("price feed date %v is not a string", dates[i])
		}
		on, err := ParseDate(str)
		if err != nil {
			return nil, fmt.Errorf("price feed: %w", err)
		}
		val, err := feedClose(closes[i])
		if err != nil {
			return nil, fmt.Errorf("price feed close on %s: %w", on, err)
		}
		history.Append(on, M(val, currency))
	}
	return history, nil
}

// feedClose decodes a close value that is either a number or a string.
// The match is exhaustive: anything else is a malformed feed.
func feedClose(jval any) (float64, error) {
	switch v := jval.(type) {
	case float64:
		return v, nil
	case string:
		// some feeds format numbers with a decimal comma
		s := strings.ReplaceAll(v, ",", ".")
		s = strings.ReplaceAll(s, " ", "")
		val, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid close %q: %w", v, err)
		}
		return val, nil
	default:
		return 0, fmt.Errorf("close is a %T, want number or string", jval)
	}
}
