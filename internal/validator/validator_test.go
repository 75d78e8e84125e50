package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/formflow/forms-service/internal/errors"
	"github.com/formflow/forms-service/internal/models"
)

type questionPayload struct {
	Type models.QuestionType `validate:"required,question_type"`
	Text string              `validate:"omitempty,max=500"`
}

type exportPayload struct {
	Format string `validate:"required,export_format"`
}

func TestValidateStructAcceptsValidQuestionTypes(t *testing.T) {
	v := New()

	for _, qt := range []models.QuestionType{
		models.QuestionText,
		models.QuestionNumber,
		models.QuestionDate,
		models.QuestionRadio,
		models.QuestionCheckbox,
		models.QuestionSelect,
		models.QuestionCardSelect,
	} {
		assert.NoError(t, v.ValidateStruct(questionPayload{Type: qt}), string(qt))
	}
}

func TestValidateStructRejectsUnknownQuestionType(t *testing.T) {
	v := New()

	err := v.ValidateStruct(questionPayload{Type: "essay"})
	require.Error(t, err)

	var verrs apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "Type", verrs[0].Field)
	assert.Equal(t, "question_type", verrs[0].Rule)
	assert.Contains(t, verrs[0].Message, "valid question type")
}

func TestValidateStructRequiredField(t *testing.T) {
	v := New()

	err := v.ValidateStruct(questionPayload{})
	require.Error(t, err)

	var verrs apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "required", verrs[0].Rule)
	assert.Equal(t, "is required", verrs[0].Message)
}

func TestValidateStructExportFormat(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateStruct(exportPayload{Format: "csv"}))
	assert.NoError(t, v.ValidateStruct(exportPayload{Format: "xlsx"}))

	err := v.ValidateStruct(exportPayload{Format: "pdf"})
	require.Error(t, err)

	var verrs apperrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "must be csv or xlsx", verrs[0].Message)
}
