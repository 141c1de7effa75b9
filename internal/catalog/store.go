// Package catalog persists book records in the master_table of a relational
// store and keeps a point-in-time snapshot of the table in memory. The
// snapshot backs all distinct-value lookups and primary-key assignment; it is
// reloaded after each successful mutation, so it can be stale between a
// mutation elsewhere and the next reload.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/mshelton/booklog/internal/book"
	"github.com/mshelton/booklog/internal/config"
)

// Snapshot is an in-memory copy of the full master_table.
type Snapshot struct {
	Columns []string
	Rows    []map[string]any
}

// Store wraps the relational backend holding master_table.
type Store struct {
	db      *sql.DB
	backend string
	snap    Snapshot
}

// Open connects to the configured backend and loads the initial snapshot.
// A load failure is treated as "no data", not as a fatal condition: callers
// must tolerate an empty catalogue.
func Open(cfg config.Database) (*Store, error) {
	driverName, err := cfg.DriverName()
	if err != nil {
		return nil, err
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{
		db:      db,
		backend: strings.ToLower(cfg.Driver),
	}

	if err := s.Reload(context.Background()); err != nil {
		slog.Warn("Failed to load master_table, starting with an empty catalogue",
			"driver", cfg.Driver, "database", cfg.Name, "err", err)
	} else {
		slog.Info("Loaded master_table",
			"rows", len(s.snap.Rows), "columns", len(s.snap.Columns))
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Snapshot returns the current in-memory copy of master_table.
func (s *Store) Snapshot() Snapshot {
	return s.snap
}

// Reload replaces the snapshot with a fresh full-table read. The current
// snapshot is kept on failure.
func (s *Store) Reload(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM master_table")
	if err != nil {
		return fmt.Errorf("failed to read master_table: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read column names: %w", err)
	}

	var loaded []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			// Drivers hand back []byte for text columns; normalize so the
			// snapshot always holds plain strings.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		loaded = append(loaded, row)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate master_table: %w", err)
	}

	s.snap = Snapshot{Columns: columns, Rows: loaded}
	return nil
}

// DistinctValues returns the distinct non-null values of a snapshot column,
// in first-seen order. Column matching is case-insensitive.
func (s *Store) DistinctValues(column string) []string {
	col, ok := findColumn(s.snap.Columns, column)
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var values []string
	for _, row := range s.snap.Rows {
		v, ok := asString(row[col])
		if !ok || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// NextID computes the primary key for the next insert from the snapshot:
// max(existing ids)+1, or 1 when the catalogue is empty. The key is assigned
// client-side, so two writers against the same store can race on the same
// value; single-writer operation is assumed.
func (s *Store) NextID() int64 {
	if len(s.snap.Rows) == 0 {
		return 1
	}

	idCol, ok := findColumn(s.snap.Columns, "id")
	if !ok {
		return int64(len(s.snap.Rows)) + 1
	}

	var max int64
	for _, row := range s.snap.Rows {
		if id, ok := asInt64(row[idCol]); ok && id > max {
			max = id
		}
	}
	return max + 1
}

// Insert writes a record into master_table under the next primary key and
// reloads the snapshot. Record fields are mapped to live columns
// case-insensitively; a field with no matching column is dropped from the
// insert with a warning. On failure neither the table nor the snapshot
// changes.
func (s *Store) Insert(ctx context.Context, rec *book.Record) error {
	id := s.NextID()

	columns, err := s.tableColumns(ctx)
	if err != nil {
		return fmt.Errorf("failed to introspect master_table: %w", err)
	}

	idCol := "id"
	if col, ok := findColumn(columns, "id"); ok {
		idCol = col
	}

	names := []string{idCol}
	values := []any{id}
	fields := rec.Fields()
	for _, field := range book.FieldNames {
		col, ok := findColumn(columns, field)
		if !ok {
			slog.Warn("Record field has no matching column, dropping", "field", field)
			continue
		}
		names = append(names, col)
		values = append(values, fields[field])
	}

	placeholders := make([]string, len(names))
	for i := range names {
		placeholders[i] = s.placeholder(i + 1)
	}

	query := fmt.Sprintf("INSERT INTO master_table (%s) VALUES (%s)",
		strings.Join(names, ", "), strings.Join(placeholders, ", "))

	if _, err := s.db.ExecContext(ctx, query, values...); err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	rec.ID = id

	if err := s.Reload(ctx); err != nil {
		slog.Warn("Inserted record but failed to reload snapshot", "id", id, "err", err)
	}

	slog.Info("Added book to master_table", "id", id, "title", book.Value(rec.Title))
	return nil
}

// RepairReadingStatus strips a single stray trailing carriage return from
// ReadingStatus values and writes the corrected rows back by primary key.
// It returns the number of rows repaired. Rows without the artifact are left
// untouched, so a second run is a no-op.
func (s *Store) RepairReadingStatus(ctx context.Context) (int, error) {
	statusCol, ok := findColumn(s.snap.Columns, "ReadingStatus")
	if !ok {
		return 0, errors.New("ReadingStatus column not found in master_table")
	}
	idCol, ok := findColumn(s.snap.Columns, "id")
	if !ok {
		return 0, errors.New("no primary key column found in master_table")
	}

	query := fmt.Sprintf("UPDATE master_table SET %s = %s WHERE %s = %s",
		statusCol, s.placeholder(1), idCol, s.placeholder(2))

	repaired := 0
	for _, row := range s.snap.Rows {
		status, ok := asString(row[statusCol])
		if !ok || !strings.HasSuffix(status, "\r") {
			continue
		}
		id, ok := asInt64(row[idCol])
		if !ok {
			continue
		}

		cleaned := strings.TrimSuffix(status, "\r")
		if _, err := s.db.ExecContext(ctx, query, cleaned, id); err != nil {
			return repaired, fmt.Errorf("failed to repair row %d: %w", id, err)
		}
		repaired++
	}

	if repaired > 0 {
		if err := s.Reload(ctx); err != nil {
			return repaired, fmt.Errorf("repaired %d rows but failed to reload snapshot: %w", repaired, err)
		}
	}

	slog.Info("Repaired ReadingStatus values", "rows", repaired)
	return repaired, nil
}

// tableColumns reads the live column names of master_table. The record's
// field names come from an oracle, not from the schema, so inserts match
// against whatever casing the table actually has.
func (s *Store) tableColumns(ctx context.Context) ([]string, error) {
	var query string
	var nameIndex int
	switch s.backend {
	case config.DriverMySQL:
		query = "DESCRIBE master_table"
		nameIndex = 0
	case config.DriverPostgreSQL:
		query = `SELECT column_name
			FROM information_schema.columns
			WHERE table_name = 'master_table'
			ORDER BY ordinal_position`
		nameIndex = 0
	case config.DriverSQLite:
		query = "PRAGMA table_info(master_table)"
		nameIndex = 1
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", s.backend)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resultCols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var columns []string
	for rows.Next() {
		values := make([]any, len(resultCols))
		ptrs := make([]any, len(resultCols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		if name, ok := asString(values[nameIndex]); ok {
			columns = append(columns, name)
		}
	}
	return columns, rows.Err()
}

// placeholder returns the parameter marker for the backend: $n for
// PostgreSQL, ? elsewhere.
func (s *Store) placeholder(n int) string {
	if s.backend == config.DriverPostgreSQL {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func findColumn(columns []string, name string) (string, bool) {
	for _, col := range columns {
		if strings.EqualFold(col, name) {
			return col, true
		}
	}
	return "", false
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	case []byte:
		return parseInt(string(n))
	case string:
		return parseInt(n)
	default:
		return 0, false
	}
}

func parseInt(s string) (int64, bool) {
	var n int64
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err == nil
}
