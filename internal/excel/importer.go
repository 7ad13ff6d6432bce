package excel

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"

	sr "github.com/example/vocabplan/internal/spaced_repetition"
	"github.com/example/vocabplan/pkg/models"
)

// WordWriter stores imported words
type WordWriter interface {
	MaxListID(ctx context.Context) (int, error)
	SaveAll(ctx context.Context, words []models.Word) error
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	WordColumn        string // Column with the word
	TranslationColumn string // Column with the translation
	PhoneticColumn    string // Column with the phonetic transcription, optional
	UnitColumn        string // Column with the unit number, optional
	SheetName         string // Name of the sheet to import
	StartRow          int    // The row to start importing from (1-based index)
	Grade             string // Grade assigned to every imported word
	Textbook          string // Textbook assigned to every imported word
	ListSize          int    // Words per study list
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:        "A",
		TranslationColumn: "B",
		PhoneticColumn:    "C",
		UnitColumn:        "D",
		SheetName:         "Sheet1",
		StartRow:          2, // By default, start from the second row (skip header)
		ListSize:          models.DefaultQuota().NewWordsPerDay,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	FirstList      int
	LastList       int
	Errors         []string
}

// ImportWords reads words from an Excel or CSV file, splits them into
// study lists following the lists already stored and saves them
func ImportWords(ctx context.Context, config ImportConfig, store WordWriter) (*ImportResult, error) {
	words, result, err := ReadWords(config)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return result, nil
	}

	maxList, err := store.MaxListID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get last list: %w", err)
	}
	words, err = sr.BuildLists(words, config.ListSize, maxList+1)
	if err != nil {
		return nil, fmt.Errorf("failed to build lists: %w", err)
	}
	if err := store.SaveAll(ctx, words); err != nil {
		return nil, fmt.Errorf("failed to save words: %w", err)
	}

	result.Imported = len(words)
	result.FirstList = words[0].ListID
	result.LastList = words[len(words)-1].ListID
	return result, nil
}

// ReadWords parses the file without touching storage. Rows that cannot be
// used are counted as skipped and reported in the result errors.
func ReadWords(config ImportConfig) ([]models.Word, *ImportResult, error) {
	if config.ListSize < 1 {
		return nil, nil, fmt.Errorf("list size must be positive, got %d", config.ListSize)
	}

	// Check the file extension
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return readCSV(config)
	}
	return readExcel(config)
}

// readExcel reads words from an Excel file
func readExcel(config ImportConfig) ([]models.Word, *ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	words := make([]models.Word, 0, len(rows))
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		if isBlank(row) {
			continue
		}

		result.TotalProcessed++
		word, err := processRow(row, config, 0)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		words = append(words, word)
	}
	return words, result, nil
}

// readCSV reads words from a CSV file. A row with only the first cell
// filled starts a new unit, e.g. "Unit 3,,".
func readCSV(config ImportConfig) ([]models.Word, *ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true    // Allow lazy quotes for custom CSV format

	result := &ImportResult{Errors: make([]string, 0)}
	var words []models.Word
	rowNum := 0
	currentUnit := 0

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("error reading CSV: %w", err)
		}

		rowNum++
		if rowNum < config.StartRow || isBlank(row) {
			continue
		}

		// Check if this is a unit header row (e.g., "Unit 2,,")
		if unit, ok := unitHeader(row); ok {
			currentUnit = unit
			continue
		}

		result.TotalProcessed++
		word, err := processRow(row, config, currentUnit)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		words = append(words, word)
	}
	return words, result, nil
}

// processRow extracts a word from a row. fallbackUnit is used when the row
// has no unit cell.
func processRow(row []string, config ImportConfig, fallbackUnit int) (models.Word, error) {
	word := models.Word{
		Text:        cleanWord(cell(row, config.WordColumn)),
		Translation: strings.TrimSpace(cell(row, config.TranslationColumn)),
		Phonetic:    strings.Trim(strings.TrimSpace(cell(row, config.PhoneticColumn)), "[]/"),
		Grade:       config.Grade,
		Textbook:    config.Textbook,
		Unit:        fallbackUnit,
	}

	if word.Text == "" {
		return models.Word{}, fmt.Errorf("word cannot be empty")
	}
	if word.Translation == "" {
		return models.Word{}, fmt.Errorf("translation cannot be empty")
	}
	if raw := strings.TrimSpace(cell(row, config.UnitColumn)); raw != "" {
		word.Unit = parseIntOrDefault(raw, 0, 1000, fallbackUnit)
	}
	return word, nil
}

func cell(row []string, column string) string {
	if column == "" {
		return ""
	}
	if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
		return row[idx]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// unitHeader recognizes a row such as "Unit 3" followed by empty cells
func unitHeader(row []string) (int, bool) {
	if strings.TrimSpace(row[0]) == "" {
		return 0, false
	}
	for _, c := range row[1:] {
		if strings.TrimSpace(c) != "" {
			return 0, false
		}
	}
	title := strings.Trim(strings.TrimSpace(row[0]), "\"")
	digits := strings.TrimLeftFunc(title, func(r rune) bool { return !unicode.IsDigit(r) })
	n, err := strconv.Atoi(strings.TrimSpace(digits))
	if err != nil {
		return 0, false
	}
	return n, true
}

// cleanWord удаляет из слова дополнительную информацию в скобках
func cleanWord(word string) string {
	// Удаляем информацию в скобках "(went, gone)" из слова
	indexOpenParen := strings.Index(word, "(")
	if indexOpenParen > 0 {
		return strings.TrimSpace(word[:indexOpenParen])
	}
	return strings.TrimSpace(word)
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}

// Helper function to parse integer within a range
func parseIntInRange(s string, min, max int) (int, error) {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return min, err
	}
	if val < min {
		return min, nil
	}
	if val > max {
		return max, nil
	}
	return val, nil
}

// Helper function to parse integer with default value
func parseIntOrDefault(s string, min, max, defaultVal int) int {
	if val, err := parseIntInRange(s, min, max); err == nil {
		return val
	}
	return defaultVal
}
