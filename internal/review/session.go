// Package review holds the review session state machine, the persisted
// review mode selection and the quiz questions shown for each task.
package review

import (
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/example/vocabplan/pkg/models"
)

// Machine is the review session state machine. The active mode and the
// open panel are independent: a panel overlays the mode without replacing it.
//
// A Machine is not safe for concurrent use. A session never terminates,
// it is reset into a fresh one.
type Machine struct {
	clock   Clock
	logger  *slog.Logger
	events  emitter
	mode    Mode
	panel   Panel
	session Session
	nav     *NavigationContext
	detail  *models.Word
}

// NewMachine creates a machine in card mode with no panel and an empty session
func NewMachine(clock Clock, logger *slog.Logger) *Machine {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "review_machine")
	m := &Machine{
		clock:  clock,
		logger: logger,
		events: emitter{logger: logger},
		mode:   ModeCard,
		panel:  PanelNone,
	}
	m.session = m.newSession(nil)
	return m
}

// Subscribe registers a listener for all subsequent transitions
func (m *Machine) Subscribe(l Listener) {
	m.events.subscribe(l)
}

// Mode returns the active study mode
func (m *Machine) Mode() Mode { return m.mode }

// Panel returns the open panel
func (m *Machine) Panel() Panel { return m.panel }

// Navigation returns the most recent navigation context, nil if there is none
func (m *Machine) Navigation() *NavigationContext { return m.nav.clone() }

// Session returns a snapshot of the current session
func (m *Machine) Session() Session {
	s := m.session
	s.Tasks = append([]models.Word(nil), m.session.Tasks...)
	s.WrongWords = append([]models.Word(nil), m.session.WrongWords...)
	if m.session.Stats != nil {
		stats := *m.session.Stats
		s.Stats = &stats
	}
	return s
}

// WrongWords returns the words answered incorrectly in this session, in order
func (m *Machine) WrongWords() []models.Word {
	return append([]models.Word(nil), m.session.WrongWords...)
}

// DetailWord returns the word shown in the word detail panel
func (m *Machine) DetailWord() (models.Word, bool) {
	if m.panel != PanelWordDetail || m.detail == nil {
		return models.Word{}, false
	}
	return *m.detail, true
}

// Current returns the active task
func (m *Machine) Current() (models.Word, bool) {
	if m.session.Cursor >= len(m.session.Tasks) {
		return models.Word{}, false
	}
	return m.session.Tasks[m.session.Cursor], true
}

// StartSession replaces the session with a fresh one over tasks and
// activates mode
func (m *Machine) StartSession(mode Mode, tasks []models.Word) error {
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}
	m.mode = mode
	m.panel = PanelNone
	m.detail = nil
	m.nav = nil
	m.session = m.newSession(tasks)

	m.logger.Info("session started",
		"session_id", m.session.ID,
		"mode", mode,
		"tasks", len(tasks))
	m.emit(EventSessionStarted, 0, false)
	return nil
}

// SubmitAnswer grades the active task and advances the queue. A wrong
// answer is remembered and offers spelling reinforcement without leaving
// the current mode. Answering while the reinforcement offer is still open
// declines it.
func (m *Machine) SubmitAnswer(wordID int64, correct bool) error {
	word, ok := m.Current()
	if !ok {
		return ErrEmptyQueueAdvance
	}
	if word.ID != wordID {
		return fmt.Errorf("%w: got %d, active task is %d", ErrUnknownWord, wordID, word.ID)
	}
	if m.panel == PanelSessionComplete {
		return fmt.Errorf("%w: session already ended", ErrInvalidTransition)
	}

	m.session.Cursor++
	m.panel = PanelNone
	m.detail = nil

	if correct {
		m.session.Correct++
		m.emit(EventAnswerRecorded, word.ID, true)
		return nil
	}

	m.session.Wrong++
	m.session.WrongWords = append(m.session.WrongWords, word)
	m.panel = PanelSpellingReinforcement
	m.navigate(TriggerWrongAnswer, m.mode, []models.Word{word}, nil)
	m.emit(EventAnswerRecorded, word.ID, false)
	m.emit(EventReinforcementOffered, word.ID, false)
	return nil
}

// SwitchMode activates target and closes any open panel
func (m *Machine) SwitchMode(target Mode) error {
	if _, err := ParseMode(string(target)); err != nil {
		return err
	}
	source := m.mode
	m.mode = target
	m.panel = PanelNone
	m.detail = nil
	m.navigateFrom(TriggerUserSwitch, source, target, nil, nil)

	m.logger.Debug("mode switched", "from", source, "to", target)
	m.emit(EventModeSwitched, 0, false)
	return nil
}

// EndSession records the session statistics and opens the session
// complete panel. The mode and the wrong words are preserved.
func (m *Machine) EndSession() SessionStats {
	stats := m.Stats()
	m.session.Stats = &stats
	m.panel = PanelSessionComplete
	m.detail = nil
	m.navigate(TriggerSessionEnd, m.mode, m.session.WrongWords, &stats)

	m.logger.Info("session ended",
		"session_id", m.session.ID,
		"total", stats.TotalWords,
		"correct", stats.CorrectCount,
		"accuracy", stats.Accuracy)
	m.emit(EventSessionEnded, 0, false)
	return stats
}

// AcceptSpellingReinforcement closes the reinforcement panel and returns
// the word the caller should present as a spelling prompt
func (m *Machine) AcceptSpellingReinforcement() (models.Word, bool) {
	if m.panel != PanelSpellingReinforcement || len(m.session.WrongWords) == 0 {
		return models.Word{}, false
	}
	word := m.session.WrongWords[len(m.session.WrongWords)-1]
	m.panel = PanelNone
	m.emit(EventReinforcementAccepted, word.ID, false)
	return word, true
}

// RejectSpellingReinforcement closes the reinforcement panel.
// It does nothing when the panel is not open.
func (m *Machine) RejectSpellingReinforcement() {
	if m.panel != PanelSpellingReinforcement {
		return
	}
	m.panel = PanelNone
	m.emit(EventReinforcementRejected, 0, false)
}

// PracticeWrongWords starts a spelling session over the words missed in
// the session that just ended. The navigation context keeps the statistics
// of the ended session.
func (m *Machine) PracticeWrongWords() error {
	if m.panel != PanelSessionComplete {
		return fmt.Errorf("%w: practice requires the session complete panel, panel is %s", ErrInvalidTransition, m.panel)
	}
	if len(m.session.WrongWords) == 0 {
		return fmt.Errorf("%w: no wrong words to practice", ErrInvalidTransition)
	}

	queue := dedupWords(m.session.WrongWords)
	source := m.mode
	ended := m.Stats()
	if m.session.Stats != nil {
		ended = *m.session.Stats
	}

	m.mode = ModeSpelling
	m.panel = PanelNone
	m.session = m.newSession(queue)
	m.navigateFrom(TriggerSessionEnd, source, ModeSpelling, queue, &ended)

	m.logger.Info("practicing wrong words", "session_id", m.session.ID, "words", len(queue))
	m.emit(EventPracticeStarted, 0, false)
	return nil
}

// ReturnToHome closes any panel and discards the session. Choosing the
// next mode is left to the caller.
func (m *Machine) ReturnToHome() {
	m.panel = PanelNone
	m.detail = nil
	m.nav = nil
	m.session = m.newSession(nil)
	m.emit(EventReturnedHome, 0, false)
}

// StartNewRound closes any panel and restarts the same task queue in the
// current mode with cleared counters
func (m *Machine) StartNewRound() {
	tasks := m.session.Tasks
	m.panel = PanelNone
	m.detail = nil
	m.nav = nil
	m.session = m.newSession(tasks)
	m.emit(EventRoundStarted, 0, false)
}

// OpenWordDetail shows the detail panel for word over the current mode
func (m *Machine) OpenWordDetail(word models.Word) error {
	if m.panel != PanelNone {
		return fmt.Errorf("%w: panel %s is open", ErrInvalidTransition, m.panel)
	}
	m.panel = PanelWordDetail
	m.detail = &word
	m.emit(EventWordDetailOpened, word.ID, false)
	return nil
}

// ClosePanel closes whatever panel is open
func (m *Machine) ClosePanel() {
	if m.panel == PanelNone {
		return
	}
	m.panel = PanelNone
	m.detail = nil
	m.emit(EventPanelClosed, 0, false)
}

// Stats computes the statistics of the current session
func (m *Machine) Stats() SessionStats {
	s := m.session
	total := s.Correct + s.Wrong
	stats := SessionStats{
		TotalWords:   total,
		CorrectCount: s.Correct,
		WrongCount:   s.Wrong,
		Remaining:    len(s.Tasks) - s.Cursor,
		TimeSpent:    m.clock.Now().Sub(s.StartedAt),
	}
	if total > 0 {
		stats.Accuracy = float64(s.Correct) / float64(total)
	}
	if stats.TimeSpent < 0 {
		stats.TimeSpent = 0
	}
	return stats
}

func (m *Machine) newSession(tasks []models.Word) Session {
	now := m.clock.Now()
	return Session{
		ID:         ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Tasks:      append([]models.Word(nil), tasks...),
		WrongWords: []models.Word{},
		StartedAt:  now,
	}
}

func (m *Machine) navigate(trigger Trigger, mode Mode, words []models.Word, stats *SessionStats) {
	m.navigateFrom(trigger, mode, mode, words, stats)
}

func (m *Machine) navigateFrom(trigger Trigger, source, target Mode, words []models.Word, stats *SessionStats) {
	nav := &NavigationContext{
		Trigger:    trigger,
		Source:     source,
		Target:     target,
		WrongWords: append([]models.Word(nil), words...),
		At:         m.clock.Now(),
	}
	if stats != nil {
		s := *stats
		nav.Stats = &s
	}
	m.nav = nav
}

func (m *Machine) emit(kind EventKind, wordID int64, correct bool) {
	m.events.emit(Event{
		ID:         uuid.New(),
		Kind:       kind,
		SessionID:  m.session.ID,
		Mode:       m.mode,
		Panel:      m.panel,
		Navigation: m.nav.clone(),
		WordID:     wordID,
		Correct:    correct,
		At:         m.clock.Now(),
	})
}

// dedupWords keeps the first occurrence of every word
func dedupWords(words []models.Word) []models.Word {
	seen := make(map[int64]bool, len(words))
	out := make([]models.Word, 0, len(words))
	for _, w := range words {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		out = append(out, w)
	}
	return out
}
