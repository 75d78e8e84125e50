package store

import (
	"context"
	"errors"
)

// Key namespaces. Forms live under form_<id>, submission records under
// formData_<token>, and the manual backup snapshot under a single reserved
// key.
const (
	FormKeyPrefix       = "form_"
	SubmissionKeyPrefix = "formData_"
	BackupStateKey      = "app_backup_state"
)

// ErrKeyNotFound is returned by Get when the key is absent. Callers decide
// whether absence is an error or an informational condition.
var ErrKeyNotFound = errors.New("store: key not found")

// Store is the narrow key-value contract every backend satisfies. Values are
// opaque serialized blobs; the store never interprets them.
type Store interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// FormKey returns the storage key for a form id.
func FormKey(id string) string { return FormKeyPrefix + id }

// SubmissionKey returns the storage key for a submission token.
func SubmissionKey(token string) string { return SubmissionKeyPrefix + token }
