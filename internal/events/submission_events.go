package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of event on the submission topic.
type EventType string

const (
	EventSubmissionRecorded EventType = "submission.recorded"
)

// SubmissionRecordedEvent is emitted after a submission record has been
// written to the store. Consumers get the storage key, not the record body;
// the store remains the source of truth.
type SubmissionRecordedEvent struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	FormID        string    `json:"form_id"`
	FormTitle     string    `json:"form_title"`
	StorageKey    string    `json:"storage_key"`
	QuestionCount int       `json:"question_count"`
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
	Version       string    `json:"version"`
}

// NewSubmissionRecordedEvent builds an event with a fresh id and the standard
// envelope fields filled in.
func NewSubmissionRecordedEvent(formID, formTitle, storageKey string, questionCount int) *SubmissionRecordedEvent {
	return &SubmissionRecordedEvent{
		ID:            uuid.NewString(),
		Type:          EventSubmissionRecorded,
		FormID:        formID,
		FormTitle:     formTitle,
		StorageKey:    storageKey,
		QuestionCount: questionCount,
		Timestamp:     time.Now().UTC(),
		Source:        "forms-service",
		Version:       "1.0",
	}
}
