package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/d4zhu/portfolio/internal/errors"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// recordRow is a LineRecord plus its position within the source.
type recordRow struct {
	Source string `db:"source"`
	Row    int    `db:"row"`
	models.LineRecord
}

// NewSQLiteStore opens or creates the database at path.
func NewSQLiteStore(path string, logger *logrus.Logger) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.FileSystemErrorf(err, "create database directory %s", dir)
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, errors.StorageErrorf(err, "connect to sqlite %s", path)
	}

	db.Exec("PRAGMA journal_mode = WAL")

	store := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, errors.StorageError(err, "init schema")
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS line_records (
		source TEXT NOT NULL,
		row INTEGER NOT NULL,
		commit_id TEXT NOT NULL,
		author TEXT,
		date DATETIME,
		time TEXT,
		timezone TEXT,
		datetime DATETIME NOT NULL,
		file TEXT,
		line INTEGER,
		depth INTEGER,
		length INTEGER,
		type TEXT,
		PRIMARY KEY (source, row)
	);

	CREATE INDEX IF NOT EXISTS idx_line_records_commit ON line_records(source, commit_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRecords(ctx context.Context, source string, records []models.LineRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.StorageError(err, "begin import")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM line_records WHERE source = ?`, source); err != nil {
		return errors.StorageErrorf(err, "clear %s", source)
	}

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO line_records
		(source, row, commit_id, author, date, time, timezone, datetime,
		 file, line, depth, length, type)
		VALUES (:source, :row, :commit_id, :author, :date, :time, :timezone, :datetime,
		 :file, :line, :depth, :length, :type)
	`)
	if err != nil {
		return errors.StorageError(err, "prepare insert")
	}
	defer stmt.Close()

	for i, rec := range records {
		row := recordRow{Source: source, Row: i, LineRecord: rec}
		if _, err := stmt.ExecContext(ctx, row); err != nil {
			return errors.StorageErrorf(err, "insert row %d of %s", i, source)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.StorageError(err, "commit import")
	}

	s.logger.WithFields(logrus.Fields{
		"source": source,
		"lines":  len(records),
	}).Info("line records imported")

	return nil
}

func (s *SQLiteStore) LoadRecords(ctx context.Context, source string) ([]models.LineRecord, error) {
	records := []models.LineRecord{}
	query := `
		SELECT commit_id, author, date, time, timezone, datetime,
		       file, line, depth, length, type
		FROM line_records WHERE source = ? ORDER BY row
	`

	if err := s.db.SelectContext(ctx, &records, query, source); err != nil {
		return nil, errors.StorageErrorf(err, "load %s", source)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records, nil
}

func (s *SQLiteStore) Sources(ctx context.Context) ([]SourceInfo, error) {
	sources := []SourceInfo{}
	query := `SELECT source, COUNT(*) AS lines FROM line_records GROUP BY source ORDER BY source`

	if err := s.db.SelectContext(ctx, &sources, query); err != nil {
		return nil, errors.StorageError(err, "list sources")
	}
	return sources, nil
}
