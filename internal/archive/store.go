package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"mymark/internal/config"
	"mymark/internal/review"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users clear the archive to adopt the new schema.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrLocked indicates another process holds the archive lock.
var ErrLocked = errors.New("archive is locked by another mymark process")

// Resolution is one archived history entry.
type Resolution struct {
	ID          int64
	Subject     string
	SessionID   string
	Item        review.MatchItem
	Disposition review.Disposition
	ResolvedAt  time.Time
}

// Store manages archive persistence backed by SQLite. One writing process
// at a time is enforced with a lock file next to the database.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the archive database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "archive.db")
	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "archive.lock"))
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire archive lock: %w", err)
	}
	if !held {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Path returns the location of the archive database.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection and releases the archive lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// Append records a resolved match. Called after the in-memory resolution
// has committed; the ledger order follows insertion order.
func (s *Store) Append(ctx context.Context, subject, sessionID string, entry review.HistoryEntry) (*Resolution, error) {
	subject = strings.ToLower(strings.TrimSpace(subject))
	if subject == "" {
		return nil, errors.New("subject is required")
	}
	if !entry.Disposition.Kind.Valid() {
		return nil, fmt.Errorf("disposition %q cannot be archived", entry.Disposition.Kind)
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO resolutions (
            subject, session_id, item_id, image_ref, site_url,
            disposition, reason, resolved_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		subject,
		sessionID,
		entry.Item.ID,
		nullableString(entry.Item.ImageRef),
		entry.Item.SiteURL,
		string(entry.Disposition.Kind),
		nullableString(entry.Disposition.Reason),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert resolution: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return &Resolution{
		ID:          id,
		Subject:     subject,
		SessionID:   sessionID,
		Item:        entry.Item,
		Disposition: entry.Disposition,
		ResolvedAt:  now,
	}, nil
}

// List returns the archived resolutions for a subject in chronological
// order. An empty subject returns every row.
func (s *Store) List(ctx context.Context, subject string) ([]Resolution, error) {
	subject = strings.ToLower(strings.TrimSpace(subject))

	query := `SELECT id, subject, session_id, item_id, image_ref, site_url,
        disposition, reason, resolved_at FROM resolutions`
	args := []any{}
	if subject != "" {
		query += ` WHERE subject = ?`
		args = append(args, subject)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list resolutions: %w", err)
	}
	defer rows.Close()

	var resolutions []Resolution
	for rows.Next() {
		var (
			r          Resolution
			imageRef   sql.NullString
			reason     sql.NullString
			kind       string
			resolvedAt string
		)
		if err := rows.Scan(&r.ID, &r.Subject, &r.SessionID, &r.Item.ID, &imageRef,
			&r.Item.SiteURL, &kind, &reason, &resolvedAt); err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		r.Item.ImageRef = imageRef.String
		r.Disposition = review.Disposition{Kind: review.DispositionKind(kind), Reason: reason.String}
		if ts, parseErr := time.Parse(time.RFC3339Nano, resolvedAt); parseErr == nil {
			r.ResolvedAt = ts
		}
		resolutions = append(resolutions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resolutions: %w", err)
	}
	return resolutions, nil
}

// Clear deletes archived resolutions, all of them or one subject's.
func (s *Store) Clear(ctx context.Context, subject string) (int64, error) {
	subject = strings.ToLower(strings.TrimSpace(subject))

	var (
		res sql.Result
		err error
	)
	if subject == "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM resolutions`)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM resolutions WHERE subject = ?`, subject)
	}
	if err != nil {
		return 0, fmt.Errorf("clear resolutions: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to recreate)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
