package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir runs the test from an empty directory so no stray .env is read
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, filepath.Join("/tmp/data", "vocabplan", "vocabplan.db"), cfg.Database.DSN)
	assert.Equal(t, 4, cfg.Scheduler.StartHour)
	assert.Equal(t, 18, cfg.Scheduler.EndHour)
	assert.Equal(t, 10, cfg.Study.WordsPerDay)
	assert.Equal(t, 0, cfg.Study.ReviewsPerDay)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Telegram.Token)
}

func TestLoad_FileAndEnvPrecedence(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "vocabplan.toml")
	content := `
[database]
driver = "postgres"
dsn = "postgres://localhost/vocab?sslmode=disable"

[study]
words_per_day = 20
learner_id = 42

[log]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("VOCAB_STUDY_WORDS_PER_DAY", "15")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("NOTIFICATION_START_HOUR", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 15, cfg.Study.WordsPerDay, "env wins over file")
	assert.Equal(t, int64(42), cfg.Study.LearnerID)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, 7, cfg.Scheduler.StartHour)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("VOCAB_LOG_LEVEL=warn\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("VOCAB_LOG_LEVEL") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"VOCAB_DATABASE_DRIVER": "oracle"}},
		{name: "quota not a preset", env: map[string]string{"VOCAB_STUDY_WORDS_PER_DAY": "7"}},
		{name: "window inverted", env: map[string]string{"VOCAB_SCHEDULER_START_HOUR": "20", "VOCAB_SCHEDULER_END_HOUR": "8"}},
		{name: "hour out of range", env: map[string]string{"VOCAB_STUDY_NOTIFICATION_HOUR": "24"}},
		{name: "bad timezone", env: map[string]string{"VOCAB_SCHEDULER_TIMEZONE": "Mars/Olympus"}},
		{name: "bad log level", env: map[string]string{"VOCAB_LOG_LEVEL": "verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	dir := chdir(t)
	_, err := Load(filepath.Join(dir, "nope.toml"))
	assert.Error(t, err)
}

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, Validate(DefaultConfig()))
	assert.Equal(t, 10, DefaultConfig().Study.Quota().NewWordsPerDay)
}
