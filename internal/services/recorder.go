package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/formflow/forms-service/internal/events"
	"github.com/formflow/forms-service/internal/models"
	"github.com/formflow/forms-service/internal/store"
)

// SubmissionService records completed form passes and reads them back for
// aggregation.
type SubmissionService interface {
	SubmissionRecorder
	List(ctx context.Context) ([]*models.SubmissionRecord, error)
}

type submissionService struct {
	store     store.Store
	publisher events.EventPublisher
	logger    *slog.Logger

	// sendDelay simulates the latency of the external send. The wait happens
	// after the record is durably stored, so a slow send can never lose data.
	sendDelay time.Duration
}

func NewSubmissionService(st store.Store, publisher events.EventPublisher, logger *slog.Logger, sendDelay time.Duration) SubmissionService {
	return &submissionService{
		store:     st,
		publisher: publisher,
		logger:    logger,
		sendDelay: sendDelay,
	}
}

// Record flattens the answer set into an immutable submission record, stores
// it under a fresh formData_ key, publishes a submission event, and waits out
// the simulated external send before reporting completion.
func (s *submissionService) Record(ctx context.Context, form *models.Form, answers models.AnswerSet) (*models.SubmissionRecord, error) {
	record := models.NewSubmissionRecord(form, answers, time.Now().UTC())

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	key := store.SubmissionKey(uuid.NewString())
	if err := s.store.Set(ctx, key, payload); err != nil {
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	event := events.NewSubmissionRecordedEvent(form.ID, form.Title, key, len(record.Answers))
	if err := s.publisher.PublishSubmissionRecorded(ctx, event); err != nil {
		// The record is already stored; a broken event pipeline must not
		// fail the submission.
		s.logger.Warn("Submission event not published", "key", key, "error", err)
	}

	if s.sendDelay > 0 {
		time.Sleep(s.sendDelay)
	}

	s.logger.Info("Submission recorded",
		"form_id", form.ID,
		"form_title", form.Title,
		"key", key,
		"answers", len(record.Answers))
	return record, nil
}

// List returns every stored submission record in storage-scan order.
// Records that fail to decode are skipped with a warning: aggregation over
// the surviving history beats failing the whole dashboard for one corrupt
// entry.
func (s *submissionService) List(ctx context.Context) ([]*models.SubmissionRecord, error) {
	keys, err := s.store.Keys(ctx, store.SubmissionKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	records := make([]*models.SubmissionRecord, 0, len(keys))
	for _, key := range keys {
		payload, err := s.store.Get(ctx, key)
		if err != nil {
			continue
		}
		var record models.SubmissionRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			s.logger.Warn("Skipping malformed submission record", "key", key, "error", err)
			continue
		}
		records = append(records, &record)
	}
	return records, nil
}
