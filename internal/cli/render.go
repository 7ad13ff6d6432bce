package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/vocabplan/internal/review"
	"github.com/example/vocabplan/pkg/models"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cellStyle    = lipgloss.NewStyle().Width(9)
)

// renderSchedule renders the plan as a table with one row per day
func renderSchedule(days []models.DaySchedule) string {
	var b strings.Builder

	header := []string{"Day", "Memorize"}
	for k := 1; k <= models.ReviewSlots; k++ {
		header = append(header, "Review "+strconv.Itoa(k))
	}
	b.WriteString(renderRow(header, headerStyle))
	b.WriteByte('\n')

	for _, d := range days {
		row := []string{strconv.Itoa(d.Day), listName(d.Memorize)}
		for k := 1; k <= models.ReviewSlots; k++ {
			if list, ok := d.Review(k); ok {
				row = append(row, listName(list))
			} else {
				row = append(row, mutedStyle.Render("-"))
			}
		}
		b.WriteString(renderRow(row, lipgloss.NewStyle()))
		b.WriteByte('\n')
	}
	return b.String()
}

func renderRow(cells []string, style lipgloss.Style) string {
	rendered := make([]string, len(cells))
	for i, c := range cells {
		rendered[i] = cellStyle.Render(style.Render(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func listName(id int) string {
	return "L" + strconv.Itoa(id)
}

// renderTasks renders a day's task set
func renderTasks(set models.DailyTaskSet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf("Day %d", set.Day)))
	if set.Empty() {
		b.WriteString(mutedStyle.Render("Nothing to study today"))
		b.WriteByte('\n')
		return b.String()
	}

	fmt.Fprintf(&b, "New words (%d):\n", len(set.NewWords))
	for _, w := range set.NewWords {
		b.WriteString(wordLine(w))
	}
	fmt.Fprintf(&b, "Reviews (%d):\n", len(set.DueReviews))
	for _, w := range set.DueReviews {
		b.WriteString(wordLine(w))
	}
	if set.Mode != "" {
		fmt.Fprintf(&b, "%s\n", mutedStyle.Render("Review mode: "+set.Mode))
	}
	return b.String()
}

func wordLine(w models.Word) string {
	line := "  " + w.Text
	if w.Phonetic != "" {
		line += " [" + w.Phonetic + "]"
	}
	return line + " - " + w.Translation + mutedStyle.Render(" "+listName(w.ListID)) + "\n"
}

// renderStats renders the summary of a finished session. Accuracy is over
// the answered words; words left unanswered are listed separately.
func renderStats(stats review.SessionStats) string {
	summary := fmt.Sprintf("%s\n  words: %d  correct: %s  wrong: %s  accuracy: %.0f%%  time: %s\n",
		headerStyle.Render("Session complete"),
		stats.TotalWords,
		correctStyle.Render(strconv.Itoa(stats.CorrectCount)),
		wrongStyle.Render(strconv.Itoa(stats.WrongCount)),
		stats.Accuracy*100,
		stats.TimeSpent.Round(time.Second),
	)
	if stats.Remaining > 0 {
		summary += mutedStyle.Render(fmt.Sprintf("  not answered: %d", stats.Remaining)) + "\n"
	}
	return summary
}
