// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store archives extraction runs in a local SQLite database so
// notices can be summarized later without re-reading the source PDF.
// Records are stored long-form (one row per cell) because column layouts
// vary between source documents.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/warn-extract/pkg/types"
)

// Column names the Summary aggregates are computed over. These are the
// cleaned names from WARN notice listings.
const (
	employeesColumn = "no_of_employees"
	companyColumn   = "company"
	noticeColumn    = "notice_date"
)

// Store manages the run archive database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the archive at cfg.DBPath and ensures the
// schema exists.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = "warn-extract.db"
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			page_count INTEGER NOT NULL,
			row_count INTEGER NOT NULL,
			extracted_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS record_values (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			row_idx INTEGER NOT NULL,
			column_name TEXT NOT NULL,
			kind TEXT NOT NULL,
			text_value TEXT,
			date_value TEXT,
			num_value REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_record_values_run
			ON record_values(run_id, column_name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun persists a run and every record of its typed table in one
// transaction, returning the new run's ID.
func (s *Store) SaveRun(ctx context.Context, run types.Run, table types.TypedTable) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (source, page_count, row_count, extracted_at) VALUES (?, ?, ?, ?)`,
		run.Source, run.PageCount, run.RowCount, run.ExtractedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO record_values (run_id, row_idx, column_name, kind, text_value, date_value, num_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range table.Rows {
		for j, col := range table.Columns {
			v := row[j]
			var text, date sql.NullString
			var num sql.NullFloat64
			switch v.Kind {
			case types.ValueString:
				text = sql.NullString{String: v.Str, Valid: true}
			case types.ValueDate:
				date = sql.NullString{String: v.Date.Format("2006-01-02"), Valid: true}
			case types.ValueNumber:
				num = sql.NullFloat64{Float64: v.Num, Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, runID, i, col, string(v.Kind), text, date, num); err != nil {
				return 0, fmt.Errorf("inserting record %d/%s: %w", i, col, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs lists archived runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]types.RunInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, row_count, extracted_at FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var infos []types.RunInfo
	for rows.Next() {
		var info types.RunInfo
		var ts string
		if err := rows.Scan(&info.ID, &info.Source, &info.RowCount, &ts); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			info.ExtractedAt = parsed
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Summary aggregates one archived run: record count, total employees
// affected, distinct companies, and the notice-date span. Missing values
// are excluded from the aggregates, matching how they were stored.
func (s *Store) Summary(ctx context.Context, runID int64) (types.RunSummary, error) {
	summary := types.RunSummary{RunID: runID}

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return summary, fmt.Errorf("checking run %d: %w", runID, err)
	}
	if exists == 0 {
		return summary, fmt.Errorf("run %d not found", runID)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT row_idx) FROM record_values WHERE run_id = ?`, runID).
		Scan(&summary.Records)
	if err != nil {
		return summary, fmt.Errorf("counting records: %w", err)
	}

	var total sql.NullFloat64
	err = s.db.QueryRowContext(ctx,
		`SELECT SUM(num_value) FROM record_values WHERE run_id = ? AND column_name = ? AND kind = ?`,
		runID, employeesColumn, string(types.ValueNumber)).Scan(&total)
	if err != nil {
		return summary, fmt.Errorf("summing employees: %w", err)
	}
	summary.TotalEmployees = total.Float64

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT text_value) FROM record_values WHERE run_id = ? AND column_name = ? AND kind = ?`,
		runID, companyColumn, string(types.ValueString)).Scan(&summary.Companies)
	if err != nil {
		return summary, fmt.Errorf("counting companies: %w", err)
	}

	var earliest, latest sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT MIN(date_value), MAX(date_value) FROM record_values WHERE run_id = ? AND column_name = ? AND kind = ?`,
		runID, noticeColumn, string(types.ValueDate)).Scan(&earliest, &latest)
	if err != nil {
		return summary, fmt.Errorf("reading notice dates: %w", err)
	}
	if t, ok := parseISODate(earliest); ok {
		summary.EarliestNotice = &t
	}
	if t, ok := parseISODate(latest); ok {
		summary.LatestNotice = &t
	}

	return summary, nil
}

func parseISODate(v sql.NullString) (time.Time, bool) {
	if !v.Valid {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", v.String)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
