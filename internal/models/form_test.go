package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionTypeIsChoiceType(t *testing.T) {
	tests := []struct {
		questionType QuestionType
		isChoice     bool
	}{
		{QuestionText, false},
		{QuestionNumber, false},
		{QuestionDate, false},
		{QuestionRadio, true},
		{QuestionCheckbox, true},
		{QuestionSelect, true},
		{QuestionCardSelect, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.questionType), func(t *testing.T) {
			assert.Equal(t, tt.isChoice, tt.questionType.IsChoiceType())
		})
	}
}

func TestQuestionTypeIsValid(t *testing.T) {
	assert.True(t, QuestionCardSelect.IsValid())
	assert.True(t, QuestionText.IsValid())
	assert.False(t, QuestionType("essay").IsValid())
	assert.False(t, QuestionType("").IsValid())
}

func TestRenderAnswer(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		answer   Answer
		want     string
	}{
		{
			name:     "text with value",
			question: Question{Type: QuestionText},
			answer:   Answer{Value: "Ana"},
			want:     "Ana",
		},
		{
			name:     "text empty falls back to sentinel",
			question: Question{Type: QuestionText},
			answer:   Answer{},
			want:     NoAnswerText,
		},
		{
			name:     "number with value",
			question: Question{Type: QuestionNumber},
			answer:   Answer{Value: "42"},
			want:     "42",
		},
		{
			name:     "checkbox joins selected options",
			question: Question{Type: QuestionCheckbox, Options: []string{"A", "B", "C"}},
			answer:   Answer{Selected: []string{"A", "C"}},
			want:     "A, C",
		},
		{
			name:     "checkbox with nothing selected renders empty",
			question: Question{Type: QuestionCheckbox, Options: []string{"A"}},
			answer:   Answer{},
			want:     "",
		},
		{
			name:     "radio matching a declared option",
			question: Question{Type: QuestionRadio, Options: []string{"Yes", "No"}},
			answer:   Answer{Value: "No"},
			want:     "No",
		},
		{
			name:     "radio value not among declared options",
			question: Question{Type: QuestionRadio, Options: []string{"Yes", "No"}},
			answer:   Answer{Value: "Maybe"},
			want:     NoAnswerText,
		},
		{
			name:     "select unanswered",
			question: Question{Type: QuestionSelect, Options: []string{"One"}},
			answer:   Answer{},
			want:     NoAnswerText,
		},
		{
			name:     "date with value",
			question: Question{Type: QuestionDate},
			answer:   Answer{Value: "2026-09-01"},
			want:     "2026-09-01",
		},
		{
			name:     "date unanswered uses the date sentinel",
			question: Question{Type: QuestionDate},
			answer:   Answer{},
			want:     NoDateText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.question.Render(tt.answer))
		})
	}
}

func TestRenderIgnoresOptionsForNonChoiceTypes(t *testing.T) {
	// Rendering must not depend on options being present for free-form types.
	withOptions := Question{Type: QuestionText, Options: []string{"A"}}
	withoutOptions := Question{Type: QuestionText}

	answer := Answer{Value: "same"}
	assert.Equal(t, withoutOptions.Render(answer), withOptions.Render(answer))
	assert.Equal(t, withoutOptions.Render(Answer{}), withOptions.Render(Answer{}))
}

func TestFormQuestionLookup(t *testing.T) {
	form := &Form{
		ID: "1",
		Questions: []Question{
			{ID: "q1", Type: QuestionText},
			{ID: "q2", Type: QuestionRadio, Options: []string{"A"}},
		},
	}

	q, ok := form.Question("q2")
	assert.True(t, ok)
	assert.Equal(t, QuestionRadio, q.Type)

	_, ok = form.Question("missing")
	assert.False(t, ok)

	assert.Equal(t, 1, form.QuestionIndex("q2"))
	assert.Equal(t, -1, form.QuestionIndex("missing"))
}

func TestAnswerSetClone(t *testing.T) {
	original := AnswerSet{
		"q1": {Selected: []string{"A", "B"}},
	}
	clone := original.Clone()
	clone["q1"].Selected[0] = "mutated"

	assert.Equal(t, "A", original["q1"].Selected[0])
}

func TestAnswerIsEmpty(t *testing.T) {
	assert.True(t, Answer{}.IsEmpty())
	assert.False(t, Answer{Value: "x"}.IsEmpty())
	assert.False(t, Answer{Selected: []string{"A"}}.IsEmpty())
}
