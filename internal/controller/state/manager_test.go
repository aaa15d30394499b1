package state

import (
	"testing"
	"time"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_DraftLifecycle(t *testing.T) {
	sm := NewManager()
	draft := &Draft{Template: model.NewSimpleTemplate(1, 2, time.Now(), 60)}

	assert.Equal(t, StateNone, sm.GetState(10))

	sm.SetDraft(10, draft)
	assert.Equal(t, StateAwaitingConfirmation, sm.GetState(10))

	got, ok := sm.GetDraft(10)
	require.True(t, ok)
	assert.Same(t, draft, got)

	taken, ok := sm.TakeDraft(10)
	require.True(t, ok)
	assert.Same(t, draft, taken)

	_, ok = sm.TakeDraft(10)
	assert.False(t, ok)
	assert.Equal(t, StateNone, sm.GetState(10))
}

func TestManager_EvictExpired(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sm := NewManager()
	sm.now = func() time.Time { return now }

	sm.SetDraft(1, &Draft{})
	now = now.Add(10 * time.Minute)
	sm.SetDraft(2, &Draft{})
	now = now.Add(10 * time.Minute)

	assert.Equal(t, 1, sm.EvictExpired(15*time.Minute))
	assert.Equal(t, 1, sm.Len())

	_, ok := sm.GetDraft(2)
	assert.True(t, ok)
}
