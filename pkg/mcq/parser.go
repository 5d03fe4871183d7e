package mcq

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedOutput marks generator output that cannot become a Question.
// Callers treat it as a spent attempt, never as a request failure.
var ErrMalformedOutput = errors.New("malformed generator output")

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

type rawQuestion struct {
	Question   string            `json:"question"`
	Options    []json.RawMessage `json:"options"`
	Correct    json.RawMessage   `json:"correct"`
	Difficulty string            `json:"difficulty"`
	TimeSecs   json.RawMessage   `json:"time_secs"`
}

// ParseResponse extracts the JSON object embedded in raw generator text and
// validates it into a Question. The requested difficulty labels the result.
func ParseResponse(raw string, requested Difficulty) (*Question, error) {
	span := jsonObjectPattern.FindString(raw)
	if span == "" {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedOutput)
	}

	var rq rawQuestion
	if err := json.Unmarshal([]byte(span), &rq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	text := strings.TrimSpace(rq.Question)
	if text == "" {
		return nil, fmt.Errorf("%w: empty question", ErrMalformedOutput)
	}

	if len(rq.Options) != len(OptionLabels) {
		return nil, fmt.Errorf("%w: expected %d options, got %d", ErrMalformedOutput, len(OptionLabels), len(rq.Options))
	}

	var opts [4]string
	for i, entry := range rq.Options {
		opt, err := parseOption(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: option %d: %v", ErrMalformedOutput, i, err)
		}
		opts[i] = opt
	}

	correct, err := parseCorrect(rq.Correct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	return &Question{
		Text:       text,
		Options:    Options{A: opts[0], B: opts[1], C: opts[2], D: opts[3]},
		Correct:    correct,
		Difficulty: requested,
		TimeSecs:   parseTimeSecs(rq.TimeSecs),
	}, nil
}

// parseOption keeps strings as their value and renders numbers and booleans as
// their JSON literal, so "3.5" and 3.5 become the same option text.
func parseOption(raw json.RawMessage) (string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "", errors.New("missing value")
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	case '{', '[':
		return "", fmt.Errorf("unsupported value %s", trimmed)
	}
	return trimmed, nil
}

// parseCorrect accepts a label ("B") or a 0-based index (1 or "1").
func parseCorrect(raw json.RawMessage) (OptionLabel, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.New("missing correct answer")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if label, ok := ParseOptionLabel(s); ok {
			return label, nil
		}
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			if label, ok := LabelForIndex(i); ok {
				return label, nil
			}
		}
		return "", fmt.Errorf("invalid correct answer %q", s)
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f == math.Trunc(f) {
			if label, ok := LabelForIndex(int(f)); ok {
				return label, nil
			}
		}
		return "", fmt.Errorf("correct index %v out of range", f)
	}

	return "", fmt.Errorf("invalid correct answer %s", string(raw))
}

func parseTimeSecs(raw json.RawMessage) int {
	if len(raw) == 0 {
		return DefaultTimeSecs
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil && f >= 1 && f <= math.MaxInt32 {
		return int(f)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			return n
		}
	}
	return DefaultTimeSecs
}
