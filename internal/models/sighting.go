package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-sql/civil"
)

// Sighting represents a single plate sighting returned by the backend
type Sighting struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plateNumber"`
	Region      string `json:"region"`
	Timestamp   Millis `json:"timestamp"`
}

// SightingList is the envelope of the get-list endpoint
type SightingList struct {
	Data []Sighting `json:"data"`
}

// Millis is an instant in epoch milliseconds.
// The backend sends it either as a JSON number or as a decimal string.
type Millis int64

// UnmarshalJSON accepts 1635769200000 and "1635769200000"
func (m *Millis) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
		raw = s
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Fractional millisecond values are truncated
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return fmt.Errorf("invalid timestamp %q: %w", raw, err)
		}
		v = int64(f)
	}
	*m = Millis(v)
	return nil
}

// Time converts the instant to a time.Time in the local zone
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

// MillisOf returns the epoch millisecond value of t
func MillisOf(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// DateLayout is the wire format of startDate / endDate
const DateLayout = "2006-01-02"

// FilterSpec holds the user's current filter criteria.
// A zero StartDate or EndDate means the bound is absent.
type FilterSpec struct {
	Region    string     // case-insensitive substring, empty means no constraint
	StartDate civil.Date // inclusive lower bound
	EndDate   civil.Date // inclusive upper bound, compared at start of day
}

// HasStart reports whether a start bound is set
func (f FilterSpec) HasStart() bool {
	return f.StartDate != civil.Date{}
}

// HasEnd reports whether an end bound is set
func (f FilterSpec) HasEnd() bool {
	return f.EndDate != civil.Date{}
}

// IsEmpty reports whether no filter is active
func (f FilterSpec) IsEmpty() bool {
	return f.Region == "" && !f.HasStart() && !f.HasEnd()
}

// ParseDate parses a YYYY-MM-DD value.
// ok is false for empty or malformed input, which callers treat as "absent".
func ParseDate(s string) (d civil.Date, ok bool) {
	if s == "" {
		return civil.Date{}, false
	}
	d, err := civil.ParseDate(s)
	if err != nil || !d.IsValid() {
		return civil.Date{}, false
	}
	return d, true
}

// FormatDate renders d as YYYY-MM-DD, or "" when absent
func FormatDate(d civil.Date) string {
	if d == (civil.Date{}) {
		return ""
	}
	return d.String()
}

// ViewState is the user-controlled state of the list view
type ViewState struct {
	Filter FilterSpec
	Page   int // 1-based, always >= 1
}
