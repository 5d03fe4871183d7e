package mcq

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties is the canonical iteration order for difficulty distributions.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty accepts any casing of Easy, Medium or Hard.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

type OptionLabel string

const (
	OptionA OptionLabel = "A"
	OptionB OptionLabel = "B"
	OptionC OptionLabel = "C"
	OptionD OptionLabel = "D"
)

// OptionLabels maps option position to label. Position i of a generator's
// options array is stored under OptionLabels[i].
var OptionLabels = [4]OptionLabel{OptionA, OptionB, OptionC, OptionD}

// LabelForIndex maps a 0-based option index to its label.
func LabelForIndex(i int) (OptionLabel, bool) {
	if i < 0 || i >= len(OptionLabels) {
		return "", false
	}
	return OptionLabels[i], true
}

// IndexForLabel is the inverse of LabelForIndex.
func IndexForLabel(l OptionLabel) (int, bool) {
	for i, candidate := range OptionLabels {
		if candidate == l {
			return i, true
		}
	}
	return -1, false
}

// ParseOptionLabel accepts "A".."D" in any case.
func ParseOptionLabel(s string) (OptionLabel, bool) {
	label := OptionLabel(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := IndexForLabel(label); !ok {
		return "", false
	}
	return label, true
}

const DefaultTimeSecs = 60

type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Get returns the option text stored under label.
func (o Options) Get(l OptionLabel) string {
	switch l {
	case OptionA:
		return o.A
	case OptionB:
		return o.B
	case OptionC:
		return o.C
	case OptionD:
		return o.D
	}
	return ""
}

// Source records the passage a generated question was drawn from.
type Source struct {
	PassageID  uuid.UUID `json:"passage_id"`
	Similarity float64   `json:"similarity"`
}

// Question is a complete multiple-choice question as it flows through generation and finalization.
type Question struct {
	Text       string      `json:"question"`
	Options    Options     `json:"options"`
	Correct    OptionLabel `json:"correct"`
	Difficulty Difficulty  `json:"difficulty"`
	TimeSecs   int         `json:"time_secs"`
	LibraryID  *uuid.UUID  `json:"library_id,omitempty"`
	Source     *Source     `json:"source,omitempty"`
}

// EffectiveTimeSecs falls back to DefaultTimeSecs for unset durations.
func (q Question) EffectiveTimeSecs() int {
	if q.TimeSecs <= 0 {
		return DefaultTimeSecs
	}
	return q.TimeSecs
}
