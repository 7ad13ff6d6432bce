package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// ReviewMode selects how a task is asked
type ReviewMode string

const (
	MultipleChoice ReviewMode = "multipleChoice"
	Spelling       ReviewMode = "spelling"
	SelfAssessment ReviewMode = "selfAssessment"
)

// DefaultReviewMode is used when nothing has been chosen yet
const DefaultReviewMode = MultipleChoice

// ReviewModes lists all review modes
var ReviewModes = []ReviewMode{MultipleChoice, Spelling, SelfAssessment}

// ParseReviewMode converts a string into a ReviewMode
func ParseReviewMode(s string) (ReviewMode, error) {
	for _, m := range ReviewModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidReviewMode, s)
}

// StudyModeFor returns the state machine mode a review mode is practiced in
func StudyModeFor(m ReviewMode) Mode {
	if m == Spelling {
		return ModeSpelling
	}
	return ModeCard
}

// ModeStore persists the selected review mode
type ModeStore interface {
	// LoadReviewMode returns "" when nothing was saved
	LoadReviewMode(ctx context.Context) (string, error)
	SaveReviewMode(ctx context.Context, mode string) error
}

// ModeManager holds the selected review mode and writes changes through
// to its store
type ModeManager struct {
	mu      sync.RWMutex
	current ReviewMode
	store   ModeStore
	logger  *slog.Logger
}

// NewModeManager loads the persisted mode. A missing, unreadable or
// unknown value falls back to the default.
func NewModeManager(ctx context.Context, store ModeStore, logger *slog.Logger) *ModeManager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &ModeManager{
		current: DefaultReviewMode,
		store:   store,
		logger:  logger.With("component", "review_mode_manager"),
	}
	if store == nil {
		return m
	}

	saved, err := store.LoadReviewMode(ctx)
	if err != nil {
		m.logger.Warn("failed to load review mode, using default", "error", err)
		return m
	}
	if saved == "" {
		return m
	}
	mode, err := ParseReviewMode(saved)
	if err != nil {
		m.logger.Warn("ignoring stored review mode", "value", saved)
		return m
	}
	m.current = mode
	return m
}

// Current returns the selected mode
func (m *ModeManager) Current() ReviewMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Set selects and persists mode
func (m *ModeManager) Set(ctx context.Context, mode ReviewMode) error {
	if _, err := ParseReviewMode(string(mode)); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store != nil {
		if err := m.store.SaveReviewMode(ctx, string(mode)); err != nil {
			return fmt.Errorf("failed to save review mode: %w", err)
		}
	}
	m.current = mode
	m.logger.Debug("review mode changed", "mode", mode)
	return nil
}

// Reset restores the default mode
func (m *ModeManager) Reset(ctx context.Context) error {
	return m.Set(ctx, DefaultReviewMode)
}

// MemoryModeStore keeps the review mode in memory
type MemoryModeStore struct {
	mu   sync.Mutex
	mode string
}

// LoadReviewMode returns the stored mode
func (s *MemoryModeStore) LoadReviewMode(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode, nil
}

// SaveReviewMode stores mode
func (s *MemoryModeStore) SaveReviewMode(ctx context.Context, mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	return nil
}
