package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/vocabplan/internal/review"
	"github.com/example/vocabplan/internal/study"
	"github.com/example/vocabplan/pkg/models"
)

// quitCommand ends a session early
const quitCommand = ":q"

var errQuit = errors.New("session stopped")

func newStudyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "study",
		Short: "Study today's words",
		Long:  "Asks today's new words and due reviews one by one. Type " + quitCommand + " to stop early.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			loop := &studyLoop{
				run:  a.service.NewRun(a.learnerID),
				mode: a.modes.Current(),
				in:   bufio.NewScanner(cmd.InOrStdin()),
				out:  cmd.OutOrStdout(),
				rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
			}
			return loop.Run(cmd.Context())
		},
	}
}

// studyLoop drives a study run from line based input
type studyLoop struct {
	run  *study.Run
	mode review.ReviewMode
	in   *bufio.Scanner
	out  io.Writer
	rnd  *rand.Rand
	pool []models.Word
}

// Run studies today's tasks, then offers a spelling round over the words
// answered wrong
func (l *studyLoop) Run(ctx context.Context) error {
	set, err := l.run.StartToday(ctx)
	if err != nil {
		return learnerHint(err)
	}
	if set.Empty() {
		fmt.Fprint(l.out, renderTasks(set))
		return nil
	}
	l.pool = set.Words()
	fmt.Fprintf(l.out, "%s\n", headerStyle.Render(fmt.Sprintf("Day %d: %d new, %d to review", set.Day, len(set.NewWords), len(set.DueReviews))))

	for {
		quit, err := l.answerAll(ctx)
		if err != nil {
			return err
		}
		stats, err := l.run.EndSession(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(l.out, renderStats(stats))

		if quit || len(l.run.WrongWords()) == 0 || !l.confirm("Practice the words you missed in spelling mode?") {
			break
		}
		if err := l.run.PracticeWrongWords(); err != nil {
			return err
		}
	}

	l.run.ReturnToHome()
	return nil
}

// answerAll asks every remaining task. It reports whether the learner quit.
func (l *studyLoop) answerAll(ctx context.Context) (bool, error) {
	for {
		word, ok := l.run.Current()
		if !ok {
			return false, nil
		}

		q := review.BuildQuestion(word, l.pool, l.questionMode(), l.rnd)
		l.ask(q)
		answer, err := l.readLine()
		if errors.Is(err, errQuit) {
			return true, nil
		}
		if err != nil {
			return false, err
		}

		correct := q.Check(answer)
		if _, err := l.run.SubmitAnswer(ctx, word.ID, correct); err != nil {
			return false, err
		}
		if correct {
			fmt.Fprintln(l.out, correctStyle.Render("correct"))
			continue
		}

		fmt.Fprintf(l.out, "%s %s - %s\n", wrongStyle.Render("wrong:"), word.Text, word.Translation)
		if l.run.Panel() == review.PanelSpellingReinforcement {
			if err := l.reinforce(); err != nil {
				if errors.Is(err, errQuit) {
					return true, nil
				}
				return false, err
			}
		}
	}
}

// reinforce offers one spelling attempt for the word just missed
func (l *studyLoop) reinforce() error {
	if !l.confirm("Practice its spelling now?") {
		l.run.RejectSpellingReinforcement()
		return nil
	}
	word, ok := l.run.AcceptSpellingReinforcement()
	if !ok {
		return nil
	}

	q := review.BuildQuestion(word, nil, review.Spelling, l.rnd)
	l.ask(q)
	answer, err := l.readLine()
	if err != nil {
		return err
	}
	if q.Check(answer) {
		fmt.Fprintln(l.out, correctStyle.Render("correct"))
	} else {
		fmt.Fprintf(l.out, "%s %s\n", wrongStyle.Render("it is spelled"), word.Text)
	}
	return nil
}

// questionMode asks spelling questions in spelling sessions and the
// selected review mode otherwise
func (l *studyLoop) questionMode() review.ReviewMode {
	if l.run.Mode() == review.ModeSpelling {
		return review.Spelling
	}
	return l.mode
}

func (l *studyLoop) ask(q review.Question) {
	word := q.Word.Text
	if q.Word.Phonetic != "" {
		word += " [" + q.Word.Phonetic + "]"
	}

	switch q.Mode {
	case review.MultipleChoice:
		fmt.Fprintf(l.out, "\n%s\n", headerStyle.Render(word))
		for i, opt := range q.Options {
			fmt.Fprintf(l.out, "  %d) %s\n", i+1, opt)
		}
	case review.Spelling:
		fmt.Fprintf(l.out, "\n%s  %s\n", headerStyle.Render(q.Word.Translation), mutedStyle.Render(q.Masked))
	case review.SelfAssessment:
		fmt.Fprintf(l.out, "\n%s\n%s\n", headerStyle.Render(word), mutedStyle.Render(q.Word.Translation))
		fmt.Fprintf(l.out, "Did you know it? [%s/%s]\n", review.AnswerYes, review.AnswerNo)
	}
	fmt.Fprint(l.out, "> ")
}

func (l *studyLoop) confirm(prompt string) bool {
	fmt.Fprintf(l.out, "%s [y/N] ", prompt)
	answer, err := l.readLine()
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == review.AnswerYes
}

// readLine returns the next trimmed input line. End of input and the quit
// command both return errQuit.
func (l *studyLoop) readLine() (string, error) {
	if !l.in.Scan() {
		if err := l.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return "", errQuit
	}
	line := strings.TrimSpace(l.in.Text())
	if line == quitCommand {
		return "", errQuit
	}
	return line, nil
}
