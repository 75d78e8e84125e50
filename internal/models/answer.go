package models

import (
	"slices"
	"strings"
)

// Sentinels shown in summaries and submission records when a question has no
// usable answer. They are part of the recorded data, not UI chrome, so they
// keep the wording the respondents see.
const (
	NoAnswerText = "Sin respuesta"
	NoDateText   = "Sin fecha seleccionada"
)

// Answer holds one respondent answer. Checkbox questions accumulate their
// toggled options in Selected; every other type stores a single string in
// Value. Keeping both fields (instead of an untyped value) makes rendering a
// single switch on the question type.
type Answer struct {
	Value    string   `json:"value,omitempty"`
	Selected []string `json:"selected,omitempty"`
}

// IsEmpty reports whether the answer carries no content, regardless of which
// shape the question uses. A required question with an empty answer counts as
// unanswered at submit time.
func (a Answer) IsEmpty() bool {
	return a.Value == "" && len(a.Selected) == 0
}

// AnswerSet maps question ids to answers. A key is present only for questions
// the respondent has reached or that were pre-seeded (date questions).
type AnswerSet map[string]Answer

// Clone returns a deep copy so a frozen answer set cannot be mutated through
// the original map.
func (s AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(s))
	for id, a := range s {
		a.Selected = slices.Clone(a.Selected)
		out[id] = a
	}
	return out
}

// Render produces the flat string recorded for this question:
//   - checkbox: selected options joined by ", "
//   - radio/select/card-select: the stored value when it matches a declared
//     option, otherwise the no-answer sentinel
//   - date: the raw date string, or the no-date sentinel when absent
//   - text/number: the raw value, or the no-answer sentinel when empty
func (q Question) Render(a Answer) string {
	switch q.Type {
	case QuestionCheckbox:
		return strings.Join(a.Selected, ", ")
	case QuestionRadio, QuestionSelect, QuestionCardSelect:
		if a.Value != "" && slices.Contains(q.Options, a.Value) {
			return a.Value
		}
		return NoAnswerText
	case QuestionDate:
		if a.Value != "" {
			return a.Value
		}
		return NoDateText
	default:
		if a.Value != "" {
			return a.Value
		}
		return NoAnswerText
	}
}
