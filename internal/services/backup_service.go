package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/formflow/forms-service/internal/models"
	"github.com/formflow/forms-service/internal/store"
)

// BackupService writes and restores the whole-application snapshot kept under
// the reserved backup key. Save overwrites unconditionally; Restore returns
// whatever was last saved, with no merging against the live state.
type BackupService interface {
	Save(ctx context.Context, state *models.BackupState) error
	Restore(ctx context.Context) (*models.BackupState, error)
}

type backupService struct {
	store  store.Store
	logger *slog.Logger
}

func NewBackupService(st store.Store, logger *slog.Logger) BackupService {
	return &backupService{
		store:  st,
		logger: logger,
	}
}

func (s *backupService) Save(ctx context.Context, state *models.BackupState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode backup state: %w", err)
	}
	if err := s.store.Set(ctx, store.BackupStateKey, payload); err != nil {
		return fmt.Errorf("failed to save backup state: %w", err)
	}
	s.logger.Info("Backup state saved", "forms", len(state.Forms), "view", state.View)
	return nil
}

// Restore loads the last saved snapshot. A missing snapshot is an expected
// condition, reported as ErrNoBackupState rather than a storage fault.
func (s *backupService) Restore(ctx context.Context) (*models.BackupState, error) {
	payload, err := s.store.Get(ctx, store.BackupStateKey)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, ErrNoBackupState
		}
		return nil, fmt.Errorf("failed to load backup state: %w", err)
	}
	var state models.BackupState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("failed to decode backup state: %w", err)
	}
	s.logger.Info("Backup state restored", "forms", len(state.Forms), "view", state.View)
	return &state, nil
}
