package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManagerLifecycle(t *testing.T) {
	m := NewSessionManager()
	assert.Equal(t, 0, m.Len())

	id, collector := m.Create(surveyForm(), &stubRecorder{}, testLogger())
	require.NotEmpty(t, id)
	require.NotNil(t, collector)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(id)
	require.True(t, ok)
	assert.Same(t, collector, got)

	m.Delete(id)
	_, ok = m.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())

	// Deleting again is harmless.
	m.Delete(id)
}

func TestSessionManagerIsolatesSessions(t *testing.T) {
	m := NewSessionManager()

	id1, c1 := m.Create(surveyForm(), &stubRecorder{}, testLogger())
	id2, c2 := m.Create(surveyForm(), &stubRecorder{}, testLogger())
	require.NotEqual(t, id1, id2)

	c1.SetAnswer("q1", "Ana")
	assert.True(t, c2.Answers()["q1"].IsEmpty())
}
