package excel

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/wordich/internal/database"
	"github.com/example/wordich/pkg/models"
)

// Expected column order in the dictionary sheet.
const (
	colWord = iota
	colTranslation
	colTranscription
	colExample
	colExampleTranslation
	colLevel
	colTopic
	colFrequency
	columnCount
)

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportDictionary seeds the word catalog from an .xlsx file. The first sheet
// is read; row 1 is treated as a header. Rows already present are updated in
// place, so re-running the import is safe.
func ImportDictionary(ctx context.Context, path string) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("dictionary file has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %v", sheet, err)
	}

	wordRepo := database.NewWordRepository()
	result := &ImportResult{}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		result.TotalProcessed++

		word, err := parseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if err := wordRepo.Upsert(ctx, word); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	return result, nil
}

// parseRow converts one sheet row into a catalog word.
func parseRow(row []string) (*models.Word, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	word := &models.Word{
		Word:               cell(colWord),
		Translation:        cell(colTranslation),
		Transcription:      cell(colTranscription),
		Example:            cell(colExample),
		ExampleTranslation: cell(colExampleTranslation),
		Level:              strings.ToUpper(cell(colLevel)),
		Topic:              cell(colTopic),
	}

	if word.Word == "" || word.Translation == "" {
		return nil, fmt.Errorf("word and translation are required")
	}
	if models.LevelRank(word.Level) < 0 {
		return nil, fmt.Errorf("unknown level %q", word.Level)
	}
	if freq := cell(colFrequency); freq != "" {
		n, err := strconv.Atoi(freq)
		if err != nil {
			return nil, fmt.Errorf("bad frequency %q", freq)
		}
		word.Frequency = n
	}

	return word, nil
}
