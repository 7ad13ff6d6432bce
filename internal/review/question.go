package review

import (
	"math/rand"
	"strings"

	"github.com/example/vocabplan/pkg/models"
)

// Self-assessment answers
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// distractorCount is the number of wrong options in a multiple choice question
const distractorCount = 3

// Question is one prompt shown for a task
type Question struct {
	Word         models.Word // The word being asked
	Mode         ReviewMode  // How the question is asked
	Options      []string    // Possible translations (multiple choice)
	CorrectIndex int         // Index of the correct option
	Masked       string      // Word with hidden letters (spelling)
}

// BuildQuestion prepares the prompt for word. Distractors for multiple
// choice come from pool, preferring words of the same unit.
func BuildQuestion(word models.Word, pool []models.Word, mode ReviewMode, rnd *rand.Rand) Question {
	q := Question{Word: word, Mode: mode}

	switch mode {
	case MultipleChoice:
		options := append(distractors(word, pool, distractorCount, rnd), word.Translation)
		correctIndex := len(options) - 1

		rnd.Shuffle(len(options), func(i, j int) {
			if i == correctIndex {
				correctIndex = j
			} else if j == correctIndex {
				correctIndex = i
			}
			options[i], options[j] = options[j], options[i]
		})

		q.Options = options
		q.CorrectIndex = correctIndex
	case Spelling:
		q.Masked = maskWord(word.Text)
	}

	return q
}

// Check grades a typed answer. Multiple choice accepts the option text or
// its 1-based number, spelling the word itself, self-assessment yes or no.
func (q Question) Check(answer string) bool {
	answer = normalize(answer)

	switch q.Mode {
	case MultipleChoice:
		if q.CorrectIndex < len(q.Options) {
			if answer == normalize(q.Options[q.CorrectIndex]) {
				return true
			}
			return answer == string(rune('1'+q.CorrectIndex))
		}
		return answer == normalize(q.Word.Translation)
	case Spelling:
		return answer == normalize(q.Word.Text)
	case SelfAssessment:
		return answer == AnswerYes || answer == "y"
	}
	return false
}

// distractors picks up to count translations other than the word's own,
// same unit first
func distractors(word models.Word, pool []models.Word, count int, rnd *rand.Rand) []string {
	options := make([]string, 0, count)
	used := map[string]bool{normalize(word.Translation): true}

	sameUnit := make([]models.Word, 0, len(pool))
	otherUnits := make([]models.Word, 0, len(pool))
	for _, w := range pool {
		if w.ID == word.ID {
			continue
		}
		if w.Unit == word.Unit && w.Textbook == word.Textbook {
			sameUnit = append(sameUnit, w)
		} else {
			otherUnits = append(otherUnits, w)
		}
	}

	for _, group := range [][]models.Word{sameUnit, otherUnits} {
		rnd.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
		for _, w := range group {
			if len(options) == count {
				return options
			}
			key := normalize(w.Translation)
			if key == "" || used[key] {
				continue
			}
			used[key] = true
			options = append(options, w.Translation)
		}
	}
	return options
}

// maskWord keeps the first and last letters and hides the rest
func maskWord(text string) string {
	runes := []rune(text)
	if len(runes) <= 2 {
		return strings.Repeat("_", len(runes))
	}
	masked := make([]rune, len(runes))
	for i, r := range runes {
		switch {
		case i == 0 || i == len(runes)-1 || r == ' ' || r == '-':
			masked[i] = r
		default:
			masked[i] = '_'
		}
	}
	return string(masked)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
