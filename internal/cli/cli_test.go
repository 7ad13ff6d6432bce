package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv points storage and preferences at a temp dir
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VOCAB_DATABASE_DRIVER", "sqlite")
	t.Setenv("VOCAB_DATABASE_DSN", filepath.Join(dir, "vocabplan.db"))
	t.Setenv("VOCAB_STUDY_PREFERENCES_PATH", filepath.Join(dir, "preferences.toml"))
	t.Setenv("VOCAB_LOG_LEVEL", "error")
	t.Setenv("VOCAB_TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	return dir
}

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeWords(t *testing.T, dir string, n int) string {
	t.Helper()
	words := []string{"apple", "bread", "cheese", "dog", "egg", "fish", "garden", "house", "island", "juice", "kite", "lemon"}
	require.LessOrEqual(t, n, len(words))

	var b strings.Builder
	b.WriteString("word,translation\n")
	for _, w := range words[:n] {
		b.WriteString(w + ",перевод " + w + "\n")
	}
	path := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestScheduleCmd(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "schedule", "--days", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Memorize")
	assert.Contains(t, lines[0], "Review 5")
	assert.Contains(t, lines[2], "L2")
	assert.Contains(t, lines[2], "L1", "day 2 reviews list 1")

	_, err = execute(t, "", "schedule", "--days", "0")
	assert.Error(t, err)
}

func TestModeCmd(t *testing.T) {
	dir := setupEnv(t)

	out, err := execute(t, "", "mode")
	require.NoError(t, err)
	assert.Equal(t, "multipleChoice\n", out)

	_, err = execute(t, "", "mode", "set", "spelling")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "preferences.toml"))

	out, err = execute(t, "", "mode")
	require.NoError(t, err)
	assert.Equal(t, "spelling\n", out)

	_, err = execute(t, "", "mode", "set", "dictation")
	assert.Error(t, err)

	out, err = execute(t, "", "mode", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "multipleChoice")
}

func TestTodayCmd_UnknownLearner(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "today")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "learner set")
}

func TestRemindCmd_RequiresToken(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "", "remind", "--once")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram token")
}

func TestImportAndStudyFlow(t *testing.T) {
	dir := setupEnv(t)
	csvPath := writeWords(t, dir, 10)

	out, err := execute(t, "", "import", csvPath, "--grade", "5", "--textbook", "Spotlight")
	require.NoError(t, err)
	assert.Contains(t, out, "imported: 10")
	assert.Contains(t, out, "lists: L1-L1")

	out, err = execute(t, "", "learner", "set", "--words", "10", "--chat", "777")
	require.NoError(t, err)
	assert.Contains(t, out, "Learner 1")
	assert.Contains(t, out, "chat: 777")

	_, err = execute(t, "", "learner", "set", "--words", "7")
	assert.Error(t, err, "quota must be a preset")

	out, err = execute(t, "", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "Day 1")
	assert.Contains(t, out, "New words (10)")
	assert.Contains(t, out, "Reviews (0)")
	assert.Contains(t, out, "apple")

	_, err = execute(t, "", "mode", "set", "selfAssessment")
	require.NoError(t, err)

	// Nine known words, one miss, decline the spelling drill and the
	// practice round
	input := strings.Repeat("yes\n", 9) + "no\n" + "n\n" + "n\n"
	out, err = execute(t, input, "study")
	require.NoError(t, err)
	assert.Contains(t, out, "Day 1: 10 new, 0 to review")
	assert.Contains(t, out, "wrong: juice")
	assert.Contains(t, out, "Session complete")
	assert.Contains(t, out, "accuracy: 90%")
	assert.NotContains(t, out, "not answered")

	out, err = execute(t, "", "learner", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "today is day 1")
	assert.Contains(t, out, "sessions: 1  words: 10  accuracy: 90%")
	assert.Contains(t, out, "card")

	out, err = execute(t, "", "today", "--day", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Day 2")
}

func TestStudyCmd_QuitEarly(t *testing.T) {
	dir := setupEnv(t)
	csvPath := writeWords(t, dir, 5)

	_, err := execute(t, "", "import", csvPath, "--list-size", "5")
	require.NoError(t, err)
	_, err = execute(t, "", "learner", "set", "--words", "5")
	require.NoError(t, err)
	_, err = execute(t, "", "mode", "set", "spelling")
	require.NoError(t, err)

	out, err := execute(t, "apple\n"+quitCommand+"\n", "study")
	require.NoError(t, err)
	assert.Contains(t, out, "a___e")
	assert.Contains(t, out, "correct")
	assert.Contains(t, out, "words: 1")
	assert.Contains(t, out, "accuracy: 100%")
	assert.Contains(t, out, "not answered: 4")
}
