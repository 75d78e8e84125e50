package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/formflow/forms-service/internal/models"
	"github.com/formflow/forms-service/internal/store"
)

// DefaultFormTitle is the title a freshly created form starts with.
const DefaultFormTitle = "Nuevo Formulario"

// FormService persists form definitions in the store under form_<id> keys.
type FormService interface {
	Create(ctx context.Context) (*models.Form, error)
	Save(ctx context.Context, form *models.Form) error
	GetByID(ctx context.Context, id string) (*models.Form, error)
	List(ctx context.Context) ([]*models.Form, error)
	Delete(ctx context.Context, id string) error
}

type formService struct {
	store  store.Store
	logger *slog.Logger
}

func NewFormService(st store.Store, logger *slog.Logger) FormService {
	return &formService{
		store:  st,
		logger: logger,
	}
}

// Create builds and persists an empty form. The id is a creation-time
// timestamp token, which keeps the list view in creation order.
func (s *formService) Create(ctx context.Context) (*models.Form, error) {
	form := &models.Form{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		Title:     DefaultFormTitle,
		Questions: []models.Question{},
	}
	if err := s.Save(ctx, form); err != nil {
		return nil, err
	}
	s.logger.Info("Form created", "form_id", form.ID)
	return form, nil
}

// Save upserts the form snapshot. Last write wins; there is no versioning.
func (s *formService) Save(ctx context.Context, form *models.Form) error {
	payload, err := json.Marshal(form)
	if err != nil {
		return fmt.Errorf("failed to encode form %s: %w", form.ID, err)
	}
	if err := s.store.Set(ctx, store.FormKey(form.ID), payload); err != nil {
		return fmt.Errorf("failed to save form %s: %w", form.ID, err)
	}
	s.logger.Info("Form saved", "form_id", form.ID, "questions", len(form.Questions))
	return nil
}

func (s *formService) GetByID(ctx context.Context, id string) (*models.Form, error) {
	payload, err := s.store.Get(ctx, store.FormKey(id))
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to load form %s: %w", id, err)
	}
	var form models.Form
	if err := json.Unmarshal(payload, &form); err != nil {
		return nil, fmt.Errorf("failed to decode form %s: %w", id, err)
	}
	return &form, nil
}

// List returns every stored form, sorted by id so forms appear in creation
// order. Entries that fail to decode are skipped with a warning; a single
// corrupt entry must not take down the list view.
func (s *formService) List(ctx context.Context) ([]*models.Form, error) {
	keys, err := s.store.Keys(ctx, store.FormKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}

	forms := make([]*models.Form, 0, len(keys))
	for _, key := range keys {
		payload, err := s.store.Get(ctx, key)
		if err != nil {
			// The store changed between listing and reading; reflect
			// current contents.
			continue
		}
		var form models.Form
		if err := json.Unmarshal(payload, &form); err != nil {
			s.logger.Warn("Skipping malformed form entry", "key", key, "error", err)
			continue
		}
		forms = append(forms, &form)
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].ID < forms[j].ID })
	return forms, nil
}

func (s *formService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, store.FormKey(id)); err != nil {
		return fmt.Errorf("failed to delete form %s: %w", id, err)
	}
	s.logger.Info("Form deleted", "form_id", id)
	return nil
}
