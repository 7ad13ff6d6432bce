package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabplan/pkg/models"
)

const wordColumns = "id, word, translation, phonetic, grade, textbook, unit, list_id, position"

// WordRepository handles database operations for words
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

// GetAll returns all words in plan order
func (r *WordRepository) GetAll(ctx context.Context) ([]models.Word, error) {
	var words []models.Word
	query := "SELECT " + wordColumns + " FROM words ORDER BY list_id, position, id"
	if err := r.db.SelectContext(ctx, &words, query); err != nil {
		return nil, fmt.Errorf("failed to get words: %w", err)
	}
	return words, nil
}

// GetByID returns a word by ID
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	var word models.Word
	query := r.db.Rebind("SELECT " + wordColumns + " FROM words WHERE id = ?")
	err := r.db.GetContext(ctx, &word, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("word %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %w", err)
	}
	return &word, nil
}

// LoadWord returns a word by ID, nil if there is none
func (r *WordRepository) LoadWord(ctx context.Context, id int64) (*models.Word, error) {
	word, err := r.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return word, err
}

// LoadWords returns the words of a textbook unit in plan order
func (r *WordRepository) LoadWords(ctx context.Context, grade, textbook string, unit int) ([]models.Word, error) {
	var words []models.Word
	query := r.db.Rebind("SELECT " + wordColumns + ` FROM words
		WHERE grade = ? AND textbook = ? AND unit = ?
		ORDER BY list_id, position, id`)
	if err := r.db.SelectContext(ctx, &words, query, grade, textbook, unit); err != nil {
		return nil, fmt.Errorf("failed to get words by unit: %w", err)
	}
	return words, nil
}

// LoadList returns the words of a study list in natural order
func (r *WordRepository) LoadList(ctx context.Context, listID int) ([]models.Word, error) {
	var words []models.Word
	query := r.db.Rebind("SELECT " + wordColumns + " FROM words WHERE list_id = ? ORDER BY position, id")
	if err := r.db.SelectContext(ctx, &words, query, listID); err != nil {
		return nil, fmt.Errorf("failed to get words by list: %w", err)
	}
	return words, nil
}

// MaxListID returns the highest list id in use, 0 when there are no words
func (r *WordRepository) MaxListID(ctx context.Context) (int, error) {
	var max sql.NullInt64
	if err := r.db.GetContext(ctx, &max, "SELECT MAX(list_id) FROM words"); err != nil {
		return 0, fmt.Errorf("failed to get max list id: %w", err)
	}
	return int(max.Int64), nil
}

// Count returns the number of words
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM words"); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return n, nil
}

const upsertWordQuery = `
	INSERT INTO words (word, translation, phonetic, grade, textbook, unit, list_id, position)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (word, textbook, unit) DO UPDATE SET
		translation = excluded.translation,
		phonetic = excluded.phonetic,
		grade = excluded.grade,
		list_id = excluded.list_id,
		position = excluded.position
	RETURNING id
`

// Save inserts a word or updates the existing entry with the same text in
// the same textbook unit. word.ID is set from the stored row.
func (r *WordRepository) Save(ctx context.Context, word *models.Word) error {
	return saveWord(ctx, r.db, word)
}

// SaveAll saves words in one transaction
func (r *WordRepository) SaveAll(ctx context.Context, words []models.Word) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range words {
		if err := saveWord(ctx, tx, &words[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit words: %w", err)
	}
	return nil
}

func saveWord(ctx context.Context, q sqlx.ExtContext, word *models.Word) error {
	err := q.QueryRowxContext(ctx, q.Rebind(upsertWordQuery),
		word.Text,
		word.Translation,
		word.Phonetic,
		word.Grade,
		word.Textbook,
		word.Unit,
		word.ListID,
		word.Position,
	).Scan(&word.ID)
	if err != nil {
		return fmt.Errorf("failed to save word %q: %w", word.Text, err)
	}
	return nil
}

// Delete removes a word and its learning records
func (r *WordRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM words WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("word %d: %w", id, ErrNotFound)
	}
	return nil
}
