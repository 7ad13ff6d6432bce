package preferences

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabplan/internal/review"
)

func TestFileStore_MissingFile(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	mode, err := store.LoadReviewMode(context.Background())
	require.NoError(t, err)
	assert.Empty(t, mode)
}

func TestFileStore_RoundTripThroughModeManager(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "preferences.toml")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	m := review.NewModeManager(ctx, store, nil)
	assert.Equal(t, review.MultipleChoice, m.Current())
	require.NoError(t, m.Set(ctx, review.SelfAssessment))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `mode = "selfAssessment"`)

	reloaded := review.NewModeManager(ctx, store, nil)
	assert.Equal(t, review.SelfAssessment, reloaded.Current())
}

func TestFileStore_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.toml")
	require.NoError(t, os.WriteFile(path, []byte("review = ["), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = store.LoadReviewMode(context.Background())
	assert.Error(t, err)

	// unreadable preferences fall back to the default mode
	assert.Equal(t, review.DefaultReviewMode, review.NewModeManager(context.Background(), store, nil).Current())
}

func TestNewFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	assert.Equal(t, filepath.Join("/tmp/cfg", "vocabplan", "preferences.toml"), DefaultPath())
	assert.Equal(t, filepath.Join("/tmp/data", "vocabplan", "vocabplan.db"), DefaultDBPath())
}
