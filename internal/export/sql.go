package export

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"ETFPulse/internal/model"
)

// SQLExporter writes the one-month snapshot into SQLite or PostgreSQL.
type SQLExporter struct {
	db     *sql.DB
	driver string
	mu     sync.Mutex
}

// NewSQLExporter opens (or creates) the database and runs migrations.
// driver is "sqlite" or "pgx".
func NewSQLExporter(driver, dsn string) (*SQLExporter, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// WAL lets dashboards read while a snapshot is replaced.
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	e, err := newSQLExporter(db, driver)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Printf("[INFO] %s exporter opened", driver)
	return e, nil
}

func newSQLExporter(db *sql.DB, driver string) (*SQLExporter, error) {
	e := &SQLExporter{db: db, driver: driver}
	if err := e.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return e, nil
}

func (e *SQLExporter) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS etf_month_close (
			trade_date TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			value      REAL NOT NULL,
			PRIMARY KEY (trade_date, symbol)
		)`,
		`CREATE TABLE IF NOT EXISTS etf_month_volume (
			trade_date TEXT NOT NULL,
			symbol     TEXT NOT NULL,
			value      REAL NOT NULL,
			PRIMARY KEY (trade_date, symbol)
		)`,
		`CREATE TABLE IF NOT EXISTS etf_month_summary (
			symbol       TEXT PRIMARY KEY,
			start_value  REAL,
			end_value    REAL,
			change_pct   REAL,
			advice       TEXT,
			generated_at TEXT
		)`,
	}
	for _, s := range stmts {
		if _, err := e.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// placeholders returns n bind markers in the driver's syntax.
func (e *SQLExporter) placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		if e.driver == "pgx" {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
	}
	return strings.Join(marks, ",")
}

// ExportMonth replaces the snapshot in a single transaction.
func (e *SQLExporter) ExportMonth(ctx context.Context, rep *model.Report) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, tbl := range []struct {
		name string
		data *model.Table
	}{
		{"etf_month_close", rep.MonthCloses},
		{"etf_month_volume", rep.MonthVolumes},
	} {
		if err := e.replaceTable(ctx, tx, tbl.name, tbl.data); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM etf_month_summary"); err != nil {
		return fmt.Errorf("clear etf_month_summary: %w", err)
	}
	advice := make(map[string]model.Advice, len(rep.Advice))
	for _, a := range rep.Advice {
		advice[a.Symbol] = a.Advice
	}
	insert := "INSERT INTO etf_month_summary (symbol, start_value, end_value, change_pct, advice, generated_at) VALUES (" + e.placeholders(6) + ")"
	generated := rep.GeneratedAt.Format("2006-01-02 15:04:05")
	for _, r := range rep.MonthSummary {
		if _, err := tx.ExecContext(ctx, insert,
			r.Symbol, r.Start, r.End, r.ChangePct, string(advice[r.Symbol]), generated,
		); err != nil {
			return fmt.Errorf("insert summary %s: %w", r.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (e *SQLExporter) replaceTable(ctx context.Context, tx *sql.Tx, name string, t *model.Table) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+name); err != nil {
		return fmt.Errorf("clear %s: %w", name, err)
	}
	if t == nil {
		return nil
	}
	insert := "INSERT INTO " + name + " (trade_date, symbol, value) VALUES (" + e.placeholders(3) + ")"
	for i, d := range t.Dates {
		day := d.Format("2006-01-02")
		for _, sym := range t.Symbols {
			col := t.Values[sym]
			if i >= len(col) || model.Missing(col[i]) {
				continue
			}
			if _, err := tx.ExecContext(ctx, insert, day, sym, col[i]); err != nil {
				return fmt.Errorf("insert %s %s %s: %w", name, day, sym, err)
			}
		}
	}
	return nil
}

func (e *SQLExporter) Close() error {
	log.Printf("[INFO] closing %s exporter", e.driver)
	return e.db.Close()
}
