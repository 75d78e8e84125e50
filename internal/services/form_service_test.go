package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formflow/forms-service/internal/models"
	"github.com/formflow/forms-service/internal/store"
)

func TestFormServiceCreate(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewFormService(st, testLogger())

	form, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, form.ID)
	assert.Equal(t, DefaultFormTitle, form.Title)
	assert.Empty(t, form.Questions)

	loaded, err := svc.GetByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, form.ID, loaded.ID)
	assert.Equal(t, DefaultFormTitle, loaded.Title)
}

func TestFormServiceSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	svc := NewFormService(store.NewMemoryStore(), testLogger())

	form, err := svc.Create(ctx)
	require.NoError(t, err)

	form.Title = "Encuesta de clima"
	NewFormBuilder(form).AddQuestion(models.QuestionText)
	require.NoError(t, svc.Save(ctx, form))

	loaded, err := svc.GetByID(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, "Encuesta de clima", loaded.Title)
	assert.Len(t, loaded.Questions, 1)
}

func TestFormServiceGetByIDNotFound(t *testing.T) {
	svc := NewFormService(store.NewMemoryStore(), testLogger())

	_, err := svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestFormServiceList(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewFormService(st, testLogger())

	require.NoError(t, svc.Save(ctx, &models.Form{ID: "200", Title: "B"}))
	require.NoError(t, svc.Save(ctx, &models.Form{ID: "100", Title: "A"}))

	forms, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, "100", forms[0].ID)
	assert.Equal(t, "200", forms[1].ID)
}

func TestFormServiceListSkipsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewFormService(st, testLogger())

	require.NoError(t, svc.Save(ctx, &models.Form{ID: "100", Title: "A"}))
	require.NoError(t, st.Set(ctx, store.FormKey("bad"), []byte("{not json")))

	forms, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "100", forms[0].ID)
}

func TestFormServiceListIgnoresOtherNamespaces(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewFormService(st, testLogger())

	require.NoError(t, svc.Save(ctx, &models.Form{ID: "100", Title: "A"}))
	require.NoError(t, st.Set(ctx, store.BackupStateKey, []byte(`{"forms":[],"view":"list"}`)))

	forms, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, forms, 1)
}

func TestFormServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewFormService(store.NewMemoryStore(), testLogger())

	form, err := svc.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, form.ID))
	_, err = svc.GetByID(ctx, form.ID)
	assert.ErrorIs(t, err, ErrFormNotFound)
}
