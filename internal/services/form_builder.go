package services

import (
	"slices"

	"github.com/google/uuid"

	"github.com/formflow/forms-service/internal/models"
)

// QuestionUpdate carries a partial edit of a question. Nil fields are left
// untouched.
type QuestionUpdate struct {
	Type       *models.QuestionType `json:"type,omitempty" validate:"omitempty,question_type"`
	Text       *string              `json:"text,omitempty"`
	Options    *[]string            `json:"options,omitempty"`
	IsRequired *bool                `json:"isRequired,omitempty"`
}

// FormBuilder edits a form's question list in place, independent of storage.
// Mutations targeting a question id or option index that no longer exists
// report false instead of failing: edit events fired against removed elements
// are expected during interactive editing and must not surface as errors.
type FormBuilder struct {
	form *models.Form
}

func NewFormBuilder(form *models.Form) *FormBuilder {
	return &FormBuilder{form: form}
}

// Form returns the form being edited.
func (b *FormBuilder) Form() *models.Form {
	return b.form
}

// AddQuestion appends a new question of the given type with a fresh id, empty
// text and no required flag. Choice types start with an empty option list,
// the rest carry none.
func (b *FormBuilder) AddQuestion(t models.QuestionType) *models.Question {
	q := models.Question{
		ID:   uuid.NewString(),
		Type: t,
		Text: "",
	}
	if t.IsChoiceType() {
		q.Options = []string{}
	}
	b.form.Questions = append(b.form.Questions, q)
	return &b.form.Questions[len(b.form.Questions)-1]
}

// UpdateQuestion merges the non-nil fields of the update into the question
// with the given id. A type change re-establishes the options invariant:
// switching to a non-choice type drops the option list, switching to a choice
// type starts an empty one.
func (b *FormBuilder) UpdateQuestion(id string, upd QuestionUpdate) bool {
	q, ok := b.form.Question(id)
	if !ok {
		return false
	}
	if upd.Type != nil {
		q.Type = *upd.Type
		if q.Type.IsChoiceType() {
			if q.Options == nil {
				q.Options = []string{}
			}
		} else {
			q.Options = nil
		}
	}
	if upd.Text != nil {
		q.Text = *upd.Text
	}
	if upd.Options != nil && q.Type.IsChoiceType() {
		q.Options = slices.Clone(*upd.Options)
	}
	if upd.IsRequired != nil {
		q.IsRequired = *upd.IsRequired
	}
	return true
}

// RemoveQuestion deletes the question with the given id.
func (b *FormBuilder) RemoveQuestion(id string) bool {
	idx := b.form.QuestionIndex(id)
	if idx < 0 {
		return false
	}
	b.form.Questions = slices.Delete(b.form.Questions, idx, idx+1)
	return true
}

// AddOption appends an empty option to a choice question.
func (b *FormBuilder) AddOption(questionID string) bool {
	q, ok := b.form.Question(questionID)
	if !ok || !q.Type.IsChoiceType() {
		return false
	}
	q.Options = append(q.Options, "")
	return true
}

// UpdateOption replaces the option at index. Out-of-range indices report
// false.
func (b *FormBuilder) UpdateOption(questionID string, index int, value string) bool {
	q, ok := b.form.Question(questionID)
	if !ok || index < 0 || index >= len(q.Options) {
		return false
	}
	q.Options[index] = value
	return true
}

// RemoveOption deletes the option at index. Out-of-range indices report
// false.
func (b *FormBuilder) RemoveOption(questionID string, index int) bool {
	q, ok := b.form.Question(questionID)
	if !ok || index < 0 || index >= len(q.Options) {
		return false
	}
	q.Options = slices.Delete(q.Options, index, index+1)
	return true
}
