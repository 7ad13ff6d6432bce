package review

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	loadErr error
	saveErr error
}

func (s failingStore) LoadReviewMode(ctx context.Context) (string, error) { return "", s.loadErr }

func (s failingStore) SaveReviewMode(ctx context.Context, mode string) error { return s.saveErr }

func TestModeManager_DefaultsAndPersistence(t *testing.T) {
	ctx := context.Background()
	store := &MemoryModeStore{}

	m := NewModeManager(ctx, store, testLogger())
	assert.Equal(t, MultipleChoice, m.Current())

	require.NoError(t, m.Set(ctx, Spelling))
	assert.Equal(t, Spelling, m.Current())

	reloaded := NewModeManager(ctx, store, testLogger())
	assert.Equal(t, Spelling, reloaded.Current())

	require.NoError(t, reloaded.Reset(ctx))
	assert.Equal(t, DefaultReviewMode, reloaded.Current())
	saved, _ := store.LoadReviewMode(ctx)
	assert.Equal(t, string(MultipleChoice), saved)
}

func TestModeManager_InvalidMode(t *testing.T) {
	ctx := context.Background()
	m := NewModeManager(ctx, &MemoryModeStore{}, testLogger())

	err := m.Set(ctx, "matching")
	assert.ErrorIs(t, err, ErrInvalidReviewMode)
	assert.Equal(t, MultipleChoice, m.Current())
}

func TestModeManager_BadStoredValue(t *testing.T) {
	ctx := context.Background()
	store := &MemoryModeStore{}
	require.NoError(t, store.SaveReviewMode(ctx, "unknown"))

	assert.Equal(t, DefaultReviewMode, NewModeManager(ctx, store, testLogger()).Current())
	assert.Equal(t, DefaultReviewMode, NewModeManager(ctx, failingStore{loadErr: errors.New("boom")}, testLogger()).Current())
	assert.Equal(t, DefaultReviewMode, NewModeManager(ctx, nil, nil).Current())
}

func TestModeManager_SaveFailureKeepsMode(t *testing.T) {
	ctx := context.Background()
	saveErr := errors.New("disk full")
	m := NewModeManager(ctx, failingStore{saveErr: saveErr}, testLogger())

	err := m.Set(ctx, SelfAssessment)
	assert.ErrorIs(t, err, saveErr)
	assert.Equal(t, MultipleChoice, m.Current())
}

func TestStudyModeFor(t *testing.T) {
	assert.Equal(t, ModeCard, StudyModeFor(MultipleChoice))
	assert.Equal(t, ModeSpelling, StudyModeFor(Spelling))
	assert.Equal(t, ModeCard, StudyModeFor(SelfAssessment))
}
