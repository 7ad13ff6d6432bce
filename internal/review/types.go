package review

import (
	"fmt"
	"time"

	"github.com/example/vocabplan/pkg/models"
)

// Mode is the active study activity
type Mode string

const (
	ModeCard     Mode = "card"
	ModeList     Mode = "list"
	ModeSpelling Mode = "spelling"
)

// Modes lists all study modes
var Modes = []Mode{ModeCard, ModeList, ModeSpelling}

// ParseMode converts a string into a Mode
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Panel is an overlay shown on top of the active mode
type Panel string

const (
	PanelNone                  Panel = "none"
	PanelSpellingReinforcement Panel = "spellingReinforcement"
	PanelSessionComplete       Panel = "sessionComplete"
	PanelWordDetail            Panel = "wordDetail"
)

// Trigger explains why the machine navigated
type Trigger string

const (
	TriggerUserSwitch  Trigger = "userSwitch"
	TriggerWrongAnswer Trigger = "wrongAnswer"
	TriggerSessionEnd  Trigger = "sessionEnd"
)

// SessionStats summarizes answers given in a session. TotalWords and
// Accuracy count answered tasks only; tasks left unanswered are in Remaining.
type SessionStats struct {
	TotalWords   int           `json:"total_words"`
	CorrectCount int           `json:"correct_count"`
	WrongCount   int           `json:"wrong_count"`
	Remaining    int           `json:"remaining"`
	Accuracy     float64       `json:"accuracy"`
	TimeSpent    time.Duration `json:"time_spent"`
}

// NavigationContext describes the most recent navigation
type NavigationContext struct {
	Trigger    Trigger       `json:"trigger"`
	Source     Mode          `json:"source"`
	Target     Mode          `json:"target"`
	WrongWords []models.Word `json:"wrong_words,omitempty"`
	Stats      *SessionStats `json:"stats,omitempty"`
	At         time.Time     `json:"at"`
}

func (n *NavigationContext) clone() *NavigationContext {
	if n == nil {
		return nil
	}
	c := *n
	c.WrongWords = append([]models.Word(nil), n.WrongWords...)
	if n.Stats != nil {
		stats := *n.Stats
		c.Stats = &stats
	}
	return &c
}

// Session is the state of one study run
type Session struct {
	ID         string        `json:"id"`
	Tasks      []models.Word `json:"tasks"`
	Cursor     int           `json:"cursor"`
	Correct    int           `json:"correct"`
	Wrong      int           `json:"wrong"`
	WrongWords []models.Word `json:"wrong_words"`
	StartedAt  time.Time     `json:"started_at"`
	// Set when the session ends
	Stats *SessionStats `json:"stats,omitempty"`
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time {
	return time.Now()
}
