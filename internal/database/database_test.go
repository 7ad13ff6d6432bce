package database

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabplan/pkg/models"
)

var t0 = time.Date(2024, time.September, 2, 7, 15, 30, 123456789, time.UTC)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Connect(Config{Driver: DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedWords(t *testing.T, db *sqlx.DB) []models.Word {
	t.Helper()
	words := []models.Word{
		{Text: "apple", Translation: "яблоко", Grade: "3", Textbook: "pep", Unit: 1, ListID: 1, Position: 1},
		{Text: "pear", Translation: "груша", Grade: "3", Textbook: "pep", Unit: 1, ListID: 1, Position: 0},
		{Text: "cat", Translation: "кошка", Phonetic: "kæt", Grade: "3", Textbook: "pep", Unit: 2, ListID: 2, Position: 0},
	}
	require.NoError(t, NewWordRepository(db).SaveAll(context.Background(), words))
	return words
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(Config{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestConnect_CreatesDataDir(t *testing.T) {
	dir := t.TempDir()
	db, err := Connect(Config{Driver: DriverSQLite, DSN: dir + "/nested/vocab.db"})
	require.NoError(t, err)
	defer db.Close()
	assert.DirExists(t, dir+"/nested")

	// schema creation is idempotent
	require.NoError(t, initializeSchema(db))
}

func TestWordRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewWordRepository(db)
	words := seedWords(t, db)

	for _, w := range words {
		assert.NotZero(t, w.ID)
	}

	list, err := repo.LoadList(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "pear", list[0].Text, "ordered by position")
	assert.Equal(t, "apple", list[1].Text)

	unit, err := repo.LoadWords(ctx, "3", "pep", 2)
	require.NoError(t, err)
	require.Len(t, unit, 1)
	assert.Equal(t, "kæt", unit[0].Phonetic)

	got, err := repo.GetByID(ctx, words[2].ID)
	require.NoError(t, err)
	assert.Equal(t, words[2], *got)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	loaded, err := repo.LoadWord(ctx, words[0].ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, words[0].Text, loaded.Text)

	loaded, err = repo.LoadWord(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	maxList, err := repo.MaxListID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, maxList)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestWordRepository_SaveUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewWordRepository(db)
	words := seedWords(t, db)

	updated := models.Word{Text: "apple", Translation: "яблоко (фрукт)", Grade: "3", Textbook: "pep", Unit: 1, ListID: 4, Position: 2}
	require.NoError(t, repo.Save(ctx, &updated))
	assert.Equal(t, words[0].ID, updated.ID)

	got, err := repo.GetByID(ctx, updated.ID)
	require.NoError(t, err)
	assert.Equal(t, "яблоко (фрукт)", got.Translation)
	assert.Equal(t, 4, got.ListID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestWordRepository_EmptyAndDelete(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewWordRepository(db)

	maxList, err := repo.MaxListID(ctx)
	require.NoError(t, err)
	assert.Zero(t, maxList)

	list, err := repo.LoadList(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	words := seedWords(t, db)
	require.NoError(t, repo.Delete(ctx, words[0].ID))
	assert.ErrorIs(t, repo.Delete(ctx, words[0].ID), ErrNotFound)
}

func TestLearningRecordRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	words := seedWords(t, db)
	repo := NewLearningRecordRepository(db)

	missing, err := repo.Get(ctx, 1, words[0].ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	due := t0.Add(24 * time.Hour)
	rec := models.LearningRecord{
		LearnerID:       1,
		WordID:          words[0].ID,
		Strength:        1.8,
		RepetitionCount: 1,
		Attempts:        1,
		LastReviewedAt:  t0,
		NextDueAt:       &due,
	}
	require.NoError(t, repo.Put(ctx, rec))

	got, err := repo.Get(ctx, 1, words[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Strength, got.Strength)
	assert.True(t, t0.Equal(got.LastReviewedAt))
	require.NotNil(t, got.NextDueAt)
	assert.True(t, due.Equal(*got.NextDueAt))

	rec.Strength = 1
	rec.RepetitionCount = 0
	rec.Lapses = 1
	rec.Attempts = 2
	require.NoError(t, repo.Put(ctx, rec))

	got, err = repo.Get(ctx, 1, words[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Strength)
	assert.Equal(t, 1, got.Lapses)
	assert.Equal(t, 2, got.Attempts)

	fresh := models.LearningRecord{LearnerID: 1, WordID: words[1].ID}
	require.NoError(t, repo.Put(ctx, fresh))
	got, err = repo.Get(ctx, 1, words[1].ID)
	require.NoError(t, err)
	assert.Nil(t, got.NextDueAt)
	assert.True(t, got.LastReviewedAt.IsZero())

	all, err := repo.ListByLearner(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	other, err := repo.ListByLearner(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, other)

	deleted, err := repo.DeleteByLearner(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestLearnerRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewLearnerRepository(db)

	missing, err := repo.GetSettings(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, missing)

	settings := models.LearnerSettings{
		LearnerID:        5,
		ChatID:           12345,
		PlanStart:        t0,
		Quota:            models.Quota{NewWordsPerDay: 15, ReviewsPerDay: 30},
		NotificationHour: 9,
		Active:           true,
	}
	require.NoError(t, repo.Save(ctx, settings))
	require.NoError(t, repo.Save(ctx, models.LearnerSettings{LearnerID: 6, PlanStart: t0, Quota: models.DefaultQuota()}))

	got, err := repo.GetSettings(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, settings.Quota, got.Quota)
	assert.Equal(t, int64(12345), got.ChatID)
	assert.True(t, got.Active)
	assert.True(t, t0.Equal(got.PlanStart))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(5), active[0].LearnerID)

	require.NoError(t, repo.SetActive(ctx, 5, false))
	active, err = repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.ErrorIs(t, repo.SetActive(ctx, 99, true), ErrNotFound)

	err = repo.Save(ctx, models.LearnerSettings{LearnerID: 7, Quota: models.Quota{NewWordsPerDay: 3}})
	assert.Error(t, err)
	err = repo.Save(ctx, models.LearnerSettings{LearnerID: 7, Quota: models.DefaultQuota(), NotificationHour: 24})
	assert.Error(t, err)
}

func TestStudyResultRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewStudyResultRepository(db)

	empty, err := repo.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, ResultSummary{}, empty)

	first := &models.StudyResult{LearnerID: 1, SessionID: "01HZ", Mode: "card", TotalWords: 10, CorrectWords: 8, WrongWords: 2, Duration: 95 * time.Second, FinishedAt: t0}
	second := &models.StudyResult{LearnerID: 1, SessionID: "01J0", Mode: "spelling", TotalWords: 2, CorrectWords: 2, FinishedAt: t0.Add(time.Hour)}
	require.NoError(t, repo.SaveResult(ctx, first))
	require.NoError(t, repo.SaveResult(ctx, second))
	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	results, err := repo.ListByLearner(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "spelling", results[0].Mode, "newest first")
	assert.Equal(t, 95*time.Second, results[1].Duration)
	assert.True(t, t0.Equal(results[1].FinishedAt))

	limited, err := repo.ListByLearner(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	summary, err := repo.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Sessions)
	assert.Equal(t, 12, summary.TotalWords)
	assert.Equal(t, 10, summary.CorrectWords)
	assert.InDelta(t, 10.0/12.0, summary.Accuracy, 1e-9)
}
