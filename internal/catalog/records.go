package catalog

import (
	"github.com/mshelton/booklog/internal/book"
)

// Records converts the snapshot into typed book records, matching column
// names case-insensitively. Columns outside the canonical field set are
// ignored.
func (s *Store) Records() []book.Record {
	snap := s.snap
	records := make([]book.Record, 0, len(snap.Rows))

	idCol, _ := findColumn(snap.Columns, "id")
	for _, row := range snap.Rows {
		var rec book.Record
		if idCol != "" {
			if id, ok := asInt64(row[idCol]); ok {
				rec.ID = id
			}
		}
		rec.Title = rowString(row, snap.Columns, "Title")
		rec.Author = rowString(row, snap.Columns, "Author")
		rec.Publisher = rowString(row, snap.Columns, "Publisher")
		rec.Description = rowString(row, snap.Columns, "Description")
		rec.Subject = rowString(row, snap.Columns, "Subject")
		rec.SubjectSpecific = rowString(row, snap.Columns, "SubjectSpecific")
		rec.Location = rowString(row, snap.Columns, "Location")
		if status := rowString(row, snap.Columns, "ReadingStatus"); status != nil {
			rec.ReadingStatus = *status
		}
		records = append(records, rec)
	}
	return records
}

func rowString(row map[string]any, columns []string, name string) *string {
	col, ok := findColumn(columns, name)
	if !ok {
		return nil
	}
	v, ok := asString(row[col])
	if !ok {
		return nil
	}
	return &v
}
