package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fallback labels used when a trend carries no score.
const (
	ScoreUnknown = "?"
	ScoreNA      = "N/A"
)

// DefaultTopic labels a trend whose topic field is missing.
const DefaultTopic = "Unknown"

// scoreKeys is the fallback chain for a trend's score. The scout endpoint
// sends "score" for analysed trends and "relevance" for mock ones; raw
// signals only carry "engagement".
var scoreKeys = []string{"score", "relevance", "engagement"}

// leadingNumberRe matches the numeric prefix of strings like "85%" or " 72 pts".
var leadingNumberRe = regexp.MustCompile(`^\s*[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?`)

// ScoreClass buckets a numeric score for display.
type ScoreClass string

const (
	ScoreNone   ScoreClass = ""
	ScoreLow    ScoreClass = "low"
	ScoreMedium ScoreClass = "medium"
	ScoreHigh   ScoreClass = "high"
)

// Score is a loosely typed trend score: a JSON number, a numeric string, or
// a free-form label such as "N/A".
type Score struct {
	Label   string
	Value   float64
	Numeric bool
	Present bool
}

// Display returns the score label, or fallback when no score was sent.
func (s Score) Display(fallback string) string {
	if !s.Present {
		return fallback
	}
	return s.Label
}

// Class returns high (>= 80), medium (>= 60) or low for numeric scores.
func (s Score) Class() ScoreClass {
	if !s.Numeric {
		return ScoreNone
	}
	switch {
	case s.Value >= 80:
		return ScoreHigh
	case s.Value >= 60:
		return ScoreMedium
	default:
		return ScoreLow
	}
}

func parseScore(raw json.RawMessage) Score {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Score{}
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return Score{
			Label:   strconv.FormatFloat(n, 'f', -1, 64),
			Value:   n,
			Numeric: true,
			Present: true,
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		sc := Score{Label: s, Present: true}
		if m := leadingNumberRe.FindString(s); m != "" {
			if v, err := strconv.ParseFloat(strings.TrimSpace(m), 64); err == nil {
				sc.Value, sc.Numeric = v, true
			}
		}
		return sc
	}

	return Score{Label: string(raw), Present: true}
}

// Trend is one scored trend signal.
type Trend struct {
	Topic     string
	Score     Score
	Rationale string
}

// DecodeTrend decodes a trend payload. Payloads of the form
// {"trend": {...}} are unwrapped; flat payloads are used as is.
func DecodeTrend(data json.RawMessage) (Trend, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return Trend{}, fmt.Errorf("trend payload is not an object: %w", err)
	}

	if inner, ok := fields["trend"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(inner, &nested); err == nil && nested != nil {
			fields = nested
		}
	}

	t := Trend{
		Topic:     textField(fields["topic"]),
		Rationale: textField(fields["rationale"]),
	}
	if t.Topic == "" {
		t.Topic = DefaultTopic
	}
	for _, key := range scoreKeys {
		if s := parseScore(fields[key]); s.Present {
			t.Score = s
			break
		}
	}
	return t, nil
}

// textField renders a JSON value as display text: strings verbatim, null or
// missing as "", anything else as its compact JSON form.
func textField(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
