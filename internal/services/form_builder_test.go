package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formflow/forms-service/internal/models"
)

func TestFormBuilderAddQuestion(t *testing.T) {
	form := &models.Form{ID: "1", Title: "Test"}
	b := NewFormBuilder(form)

	q := b.AddQuestion(models.QuestionText)
	require.NotEmpty(t, q.ID)
	assert.Equal(t, models.QuestionText, q.Type)
	assert.Empty(t, q.Text)
	assert.False(t, q.IsRequired)
	assert.Nil(t, q.Options)

	choice := b.AddQuestion(models.QuestionRadio)
	require.NotNil(t, choice.Options)
	assert.Empty(t, choice.Options)

	assert.Len(t, form.Questions, 2)
	assert.NotEqual(t, q.ID, choice.ID)
}

func TestFormBuilderUpdateQuestion(t *testing.T) {
	form := &models.Form{ID: "1"}
	b := NewFormBuilder(form)
	q := b.AddQuestion(models.QuestionText)

	text := "Favorite color?"
	required := true
	assert.True(t, b.UpdateQuestion(q.ID, QuestionUpdate{Text: &text, IsRequired: &required}))

	updated, _ := form.Question(q.ID)
	assert.Equal(t, "Favorite color?", updated.Text)
	assert.True(t, updated.IsRequired)
	// Untouched fields keep their values.
	assert.Equal(t, models.QuestionText, updated.Type)
}

func TestFormBuilderUpdateQuestionTypeChangeResetsOptions(t *testing.T) {
	form := &models.Form{ID: "1"}
	b := NewFormBuilder(form)
	q := b.AddQuestion(models.QuestionRadio)
	b.AddOption(q.ID)
	b.UpdateOption(q.ID, 0, "Red")

	// Choice to free-form drops the option list.
	toText := models.QuestionText
	require.True(t, b.UpdateQuestion(q.ID, QuestionUpdate{Type: &toText}))
	updated, _ := form.Question(q.ID)
	assert.Nil(t, updated.Options)

	// Free-form back to choice starts with an empty list, not the old one.
	toSelect := models.QuestionSelect
	require.True(t, b.UpdateQuestion(q.ID, QuestionUpdate{Type: &toSelect}))
	updated, _ = form.Question(q.ID)
	require.NotNil(t, updated.Options)
	assert.Empty(t, updated.Options)
}

func TestFormBuilderUpdateQuestionIgnoresOptionsForFreeFormTypes(t *testing.T) {
	form := &models.Form{ID: "1"}
	b := NewFormBuilder(form)
	q := b.AddQuestion(models.QuestionText)

	opts := []string{"A", "B"}
	require.True(t, b.UpdateQuestion(q.ID, QuestionUpdate{Options: &opts}))
	updated, _ := form.Question(q.ID)
	assert.Nil(t, updated.Options)
}

func TestFormBuilderRemoveQuestion(t *testing.T) {
	form := &models.Form{ID: "1"}
	b := NewFormBuilder(form)
	first := b.AddQuestion(models.QuestionText)
	firstID := first.ID
	secondID := b.AddQuestion(models.QuestionNumber).ID

	assert.True(t, b.RemoveQuestion(firstID))
	require.Len(t, form.Questions, 1)
	assert.Equal(t, secondID, form.Questions[0].ID)

	// Removing it again is a stale edit, reported as not applied.
	assert.False(t, b.RemoveQuestion(firstID))
}

func TestFormBuilderOptionOps(t *testing.T) {
	form := &models.Form{ID: "1"}
	b := NewFormBuilder(form)
	q := b.AddQuestion(models.QuestionCheckbox)

	require.True(t, b.AddOption(q.ID))
	require.True(t, b.AddOption(q.ID))
	updated, _ := form.Question(q.ID)
	assert.Equal(t, []string{"", ""}, updated.Options)

	require.True(t, b.UpdateOption(q.ID, 0, "A"))
	require.True(t, b.UpdateOption(q.ID, 1, "B"))
	updated, _ = form.Question(q.ID)
	assert.Equal(t, []string{"A", "B"}, updated.Options)

	require.True(t, b.RemoveOption(q.ID, 0))
	updated, _ = form.Question(q.ID)
	assert.Equal(t, []string{"B"}, updated.Options)
}

func TestFormBuilderOptionOpsRejectStaleTargets(t *testing.T) {
	form := &models.Form{ID: "1"}
	b := NewFormBuilder(form)
	free := b.AddQuestion(models.QuestionText)
	choice := b.AddQuestion(models.QuestionSelect)
	b.AddOption(choice.ID)

	assert.False(t, b.AddOption("missing"))
	assert.False(t, b.AddOption(free.ID))
	assert.False(t, b.UpdateOption(choice.ID, 5, "x"))
	assert.False(t, b.UpdateOption(choice.ID, -1, "x"))
	assert.False(t, b.RemoveOption(choice.ID, 1))
	assert.False(t, b.UpdateQuestion("missing", QuestionUpdate{}))

	// Nothing above changed the form.
	updated, _ := form.Question(choice.ID)
	assert.Equal(t, []string{""}, updated.Options)
}
