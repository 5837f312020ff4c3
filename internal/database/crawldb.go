package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/hubcrawl/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "hubcrawl.db"

// CrawlDB provides SQLite-based storage for crawl runs.
type CrawlDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CrawlDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// Otherwise a missing database is reported as ErrDatabaseNotFound.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc creates it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Path returns the database file path.
func (cdb *CrawlDB) Path() string {
	return cdb.dbPath
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS crawl_runs (
		id TEXT PRIMARY KEY,
		keywords TEXT NOT NULL,
		type TEXT NOT NULL,
		proxy TEXT NOT NULL,
		search_url TEXT NOT NULL,
		started_at TEXT NOT NULL,
		duration_ns INTEGER NOT NULL,
		record_count INTEGER NOT NULL,
		records TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_crawl_runs_started_at ON crawl_runs(started_at);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores run and returns its ID.
// A run without an ID is assigned a new random UUID, which is also set on run.
func (cdb *CrawlDB) SaveRun(ctx context.Context, run *model.CrawlRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	keywordsJSON, err := json.Marshal(run.Keywords)
	if err != nil {
		return "", fmt.Errorf("failed to serialize keywords: %w", err)
	}
	records := run.Records
	if records == nil {
		records = []model.ResultRecord{}
	}
	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to serialize records: %w", err)
	}

	proxyText, err := run.Proxy.MarshalText()
	if err != nil {
		return "", fmt.Errorf("failed to serialize proxy: %w", err)
	}

	query := `
	INSERT INTO crawl_runs (id, keywords, type, proxy, search_url, started_at, duration_ns, record_count, records)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = cdb.db.ExecContext(ctx, query,
		run.ID,
		string(keywordsJSON),
		run.Type.String(),
		string(proxyText),
		run.SearchURL,
		run.StartedAt.UTC().Format(storedTimeFormat),
		int64(run.Duration),
		len(records),
		string(recordsJSON),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save crawl run: %w", err)
	}

	return run.ID, nil
}

// GetRun returns the run whose ID equals id or, failing that, starts with id.
// A prefix matching several runs is reported as ErrAmbiguousRunID.
func (cdb *CrawlDB) GetRun(ctx context.Context, id string) (*model.CrawlRun, error) {
	if id == "" {
		return nil, ErrRunNotFound
	}

	query := `
	SELECT id, keywords, type, proxy, search_url, started_at, duration_ns, records
	FROM crawl_runs
	WHERE id = ? OR id LIKE ? ESCAPE '\'
	ORDER BY id = ? DESC
	LIMIT 2
	`

	rows, err := cdb.db.QueryContext(ctx, query, id, escapeLike(id)+"%", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query crawl run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}

	switch {
	case len(runs) == 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case runs[0].ID == id:
		return runs[0], nil
	case len(runs) > 1:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRunID, id)
	default:
		return runs[0], nil
	}
}

// ListRuns returns stored runs, newest first. A limit <= 0 returns all runs.
func (cdb *CrawlDB) ListRuns(ctx context.Context, limit int) ([]*model.CrawlRun, error) {
	query := `
	SELECT id, keywords, type, proxy, search_url, started_at, duration_ns, records
	FROM crawl_runs
	ORDER BY started_at DESC, id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := cdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query crawl runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// DeleteRun removes the run with exactly this ID.
func (cdb *CrawlDB) DeleteRun(ctx context.Context, id string) error {
	res, err := cdb.db.ExecContext(ctx, "DELETE FROM crawl_runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete crawl run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete crawl run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// scanRuns reads every row of a crawl_runs query.
func scanRuns(rows *sql.Rows) ([]*model.CrawlRun, error) {
	runs := make([]*model.CrawlRun, 0)
	for rows.Next() {
		var (
			run          model.CrawlRun
			keywordsJSON string
			typ          string
			proxy        string
			startedAt    string
			durationNS   int64
			recordsJSON  string
		)
		if err := rows.Scan(&run.ID, &keywordsJSON, &typ, &proxy, &run.SearchURL, &startedAt, &durationNS, &recordsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan crawl run: %w", err)
		}

		if err := json.Unmarshal([]byte(keywordsJSON), &run.Keywords); err != nil {
			return nil, fmt.Errorf("failed to parse keywords of run %s: %w", run.ID, err)
		}
		if err := json.Unmarshal([]byte(recordsJSON), &run.Records); err != nil {
			return nil, fmt.Errorf("failed to parse records of run %s: %w", run.ID, err)
		}
		rt, err := model.ParseResultType(typ)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", run.ID, err)
		}
		// The inverse of MarshalText, so bracketed IPv6 endpoints load too.
		if err := run.Proxy.UnmarshalText([]byte(proxy)); err != nil {
			return nil, fmt.Errorf("run %s: %w", run.ID, err)
		}

		run.Type = rt
		run.StartedAt = parseTimestamp(startedAt)
		run.Duration = time.Duration(durationNS)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// escapeLike escapes LIKE wildcards in s.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// storedTimeFormat has fixed-width fractions so that stored times sort as text.
const storedTimeFormat = "2006-01-02T15:04:05.000000000Z"

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05", // SQLite default datetime format
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
