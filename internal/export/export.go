// Package export writes the catalogue snapshot to a portable file for
// analysis outside the store.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/mshelton/booklog/internal/book"
)

// Row is the flattened shape of one exported record. Optional fields carry
// pointers so nulls survive the round trip.
type Row struct {
	ID              int64   `parquet:"id" json:"id"`
	Title           *string `parquet:"title,optional" json:"title"`
	Author          *string `parquet:"author,optional" json:"author"`
	Publisher       *string `parquet:"publisher,optional" json:"publisher"`
	Description     *string `parquet:"description,optional" json:"description"`
	Subject         *string `parquet:"subject,optional" json:"subject"`
	SubjectSpecific *string `parquet:"subject_specific,optional" json:"subject_specific"`
	Location        *string `parquet:"location,optional" json:"location"`
	ReadingStatus   string  `parquet:"reading_status" json:"reading_status"`
}

// Write saves the records to path. The format is inferred from the file
// extension: .parquet or .jsonl.
func Write(records []book.Record, path string) error {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			ID:              rec.ID,
			Title:           rec.Title,
			Author:          rec.Author,
			Publisher:       rec.Publisher,
			Description:     rec.Description,
			Subject:         rec.Subject,
			SubjectSpecific: rec.SubjectSpecific,
			Location:        rec.Location,
			ReadingStatus:   rec.ReadingStatus,
		})
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet":
		return writeParquet(rows, path)
	case ".jsonl":
		return writeJSONL(rows, path)
	default:
		return fmt.Errorf("unsupported export format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func writeParquet(rows []Row, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Row](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	slog.Info("Exported catalogue", "format", "parquet", "rows", len(rows), "path", path)
	return nil
}

func writeJSONL(rows []Row, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to write JSONL row: %w", err)
		}
	}

	slog.Info("Exported catalogue", "format", "jsonl", "rows", len(rows), "path", path)
	return nil
}
