package report

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteSink appends every run to a SQLite database, keyed by run ID, so
// that successive runs build a history. Values are stored unrounded.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports single writer

	s := &SQLiteSink{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteSink) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		generated_at INTEGER NOT NULL,
		source TEXT,
		pue REAL NOT NULL,
		carbon_intensity REAL NOT NULL,
		unknown_profiles TEXT NOT NULL,
		total_count INTEGER NOT NULL,
		total_energy_kwh REAL NOT NULL,
		total_carbon_g REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL REFERENCES runs(run_id),
		seq INTEGER NOT NULL,
		date TEXT,
		profile_type TEXT NOT NULL,
		category TEXT NOT NULL,
		count INTEGER NOT NULL,
		simulated_tokens REAL NOT NULL,
		simulated_chars REAL NOT NULL,
		energy_kwh REAL NOT NULL,
		carbon_g REAL NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_results_date ON results(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Write stores the run and its results in one transaction.
func (s *SQLiteSink) Write(ctx context.Context, rep *Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, generated_at, source, pue, carbon_intensity, unknown_profiles,
			total_count, total_energy_kwh, total_carbon_g)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.RunID.String(), rep.GeneratedAt.Unix(), rep.Source,
		rep.Constants.PUE, rep.Constants.CarbonIntensity, rep.Unknown.String(),
		rep.Totals.Count, rep.Totals.EnergyKWh, rep.Totals.CarbonG,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, seq, date, profile_type, category, count,
			simulated_tokens, simulated_chars, energy_kwh, carbon_g)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i, r := range rep.Results {
		if _, err := stmt.ExecContext(ctx,
			rep.RunID.String(), i, r.Date, r.ProfileType, r.Category.String(), r.Count,
			r.SimulatedTokens, r.SimulatedChars, r.EnergyKWh, r.CarbonG,
		); err != nil {
			return fmt.Errorf("insert result %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Close releases the database.
func (s *SQLiteSink) Close() error { return s.db.Close() }
