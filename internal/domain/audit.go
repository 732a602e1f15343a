package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// ClinicQuery is the user-supplied input for one audit run. All fields are
// optional free text; the query is immutable once captured.
type ClinicQuery struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

// SentinelText is how an absent metric value is rendered for humans. It is
// presentation vocabulary only; code branches on Value.Present, never on this
// string.
const SentinelText = "Search limited"

// Value is the outcome of a single metric probe. The zero value is the
// "insufficient data" sentinel.
type Value struct {
	present bool
	text    string
}

// Absent returns the sentinel value.
func Absent() Value { return Value{} }

// SomeText wraps a concrete textual outcome.
func SomeText(s string) Value { return Value{present: true, text: s} }

// SomeInt wraps a concrete integer outcome.
func SomeInt(n int) Value { return SomeText(strconv.Itoa(n)) }

// Present reports whether the value carries data.
func (v Value) Present() bool { return v.present }

// Text returns the raw text, empty for the sentinel.
func (v Value) Text() string { return v.text }

func (v Value) String() string {
	if !v.present {
		return SentinelText
	}
	return v.text
}

// MarshalJSON encodes the sentinel as null so API consumers can distinguish
// missing data without matching on display text.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.present {
		return []byte("null"), nil
	}
	return json.Marshal(v.text)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Value{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*v = SomeText(s)
	return nil
}

// Metric is one named audit finding plus the advice it triggered.
type Metric struct {
	Name   string `json:"name"`
	Value  Value  `json:"value"`
	Advice string `json:"advice,omitempty"`
}

// Section groups metrics for display. Metric order within a section is
// insertion order and is significant for rendering, not semantics.
type Section struct {
	Title   string   `json:"title"`
	Metrics []Metric `json:"metrics"`
}

// Score is the weighted Smile Score breakdown. Composite is the rounded sum
// of the three buckets by construction.
type Score struct {
	Composite  float64 `json:"composite"`
	Visibility float64 `json:"visibility"`
	Reputation float64 `json:"reputation"`
	Experience float64 `json:"experience"`
}

// Report is the full output of one audit run.
type Report struct {
	Clinic      ClinicQuery `json:"clinic"`
	Sections    []Section   `json:"sections"`
	Score       Score       `json:"score"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// ThemeTally is one review theme with its keyword hit count.
type ThemeTally struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}
