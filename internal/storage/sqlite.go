package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"hwbot/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	path := cfg.Path
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a small number of concurrent writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	st := &sqliteStore{db: db, log: log}

	if cfg.BusyTimeout > 0 {
		ms := cfg.BusyTimeout.Milliseconds()
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", ms))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug("send history store opened", logx.String("path", path))
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) AppendSend(ctx context.Context, rec SendRecord) error {
	if rec.At.IsZero() {
		rec.At = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sends(at, text, delivered, err) VALUES(?,?,?,?)`,
		rec.At.Format(time.RFC3339Nano), rec.Text, rec.Delivered, nullStr(rec.Error),
	)
	return err
}

func (s *sqliteStore) LastSend(ctx context.Context) (SendRecord, bool, error) {
	var (
		at        string
		rec       SendRecord
		errText   sql.NullString
		delivered bool
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT at, text, delivered, err FROM sends ORDER BY id DESC LIMIT 1`,
	).Scan(&at, &rec.Text, &delivered, &errText)
	if errors.Is(err, sql.ErrNoRows) {
		return SendRecord{}, false, nil
	}
	if err != nil {
		return SendRecord{}, false, err
	}
	rec.Delivered = delivered
	if errText.Valid {
		rec.Error = errText.String
	}
	if t, perr := time.Parse(time.RFC3339Nano, at); perr == nil {
		rec.At = t
	}
	return rec, true, nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
