package models

import "time"

// SubmissionAnswer is one rendered question/answer pair. The answer is always
// a single flat string, even for checkbox questions.
type SubmissionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SubmissionRecord is the immutable snapshot of one completed form pass.
// FormTitle and the question texts are copied at submission time, so editing
// or deleting the form afterwards does not affect recorded history.
type SubmissionRecord struct {
	FormTitle string             `json:"formTitle"`
	Timestamp time.Time          `json:"timestamp"`
	Answers   []SubmissionAnswer `json:"answers"`
}

// NewSubmissionRecord flattens an answer set against the form, in form order,
// applying the per-type rendering rules.
func NewSubmissionRecord(form *Form, answers AnswerSet, now time.Time) *SubmissionRecord {
	rendered := make([]SubmissionAnswer, 0, len(form.Questions))
	for _, q := range form.Questions {
		rendered = append(rendered, SubmissionAnswer{
			Question: q.Text,
			Answer:   q.Render(answers[q.ID]),
		})
	}
	return &SubmissionRecord{
		FormTitle: form.Title,
		Timestamp: now,
		Answers:   rendered,
	}
}
