package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/formflow/forms-service/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func surveyForm() *models.Form {
	return &models.Form{
		ID:    "form-1",
		Title: "Encuesta",
		Questions: []models.Question{
			{ID: "q1", Type: models.QuestionText, Text: "Name", IsRequired: true},
			{ID: "q2", Type: models.QuestionNumber, Text: "Age"},
			{ID: "q3", Type: models.QuestionCheckbox, Text: "Hobbies", Options: []string{"A", "B", "C"}},
		},
	}
}

// stubRecorder records the answers it was handed and returns a fixed record.
type stubRecorder struct {
	calls   int
	form    *models.Form
	answers models.AnswerSet
	err     error
}

func (r *stubRecorder) Record(_ context.Context, form *models.Form, answers models.AnswerSet) (*models.SubmissionRecord, error) {
	r.calls++
	r.form = form
	r.answers = answers
	if r.err != nil {
		return nil, r.err
	}
	return models.NewSubmissionRecord(form, answers, time.Unix(0, 0).UTC()), nil
}

// blockingRecorder parks inside Record until released, so tests can observe a
// send while it is still in flight.
type blockingRecorder struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingRecorder() *blockingRecorder {
	return &blockingRecorder{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (r *blockingRecorder) Record(_ context.Context, form *models.Form, answers models.AnswerSet) (*models.SubmissionRecord, error) {
	close(r.started)
	<-r.release
	return models.NewSubmissionRecord(form, answers, time.Unix(0, 0).UTC()), nil
}
