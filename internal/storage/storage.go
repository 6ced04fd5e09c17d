// Package storage keeps an optional history of outgoing notifications.
//
// The poll cursor is deliberately NOT persisted; history exists so operators
// can see what the bot actually sent across restarts.
package storage

import (
	"context"
	"strings"
	"time"

	"hwbot/pkg/logx"
)

type Config struct {
	// Path of the sqlite database file. Empty disables persistence.
	Path        string
	BusyTimeout time.Duration
}

type SendRecord struct {
	At        time.Time
	Text      string
	Delivered bool
	Error     string
}

type Store interface {
	AppendSend(ctx context.Context, rec SendRecord) error
	LastSend(ctx context.Context) (SendRecord, bool, error)
	Close() error
}

// Open returns a sqlite-backed store, or a no-op store when no path is set.
func Open(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		log.Debug("send history disabled (no storage path)")
		return nopStore{}, nil
	}
	return openSQLite(cfg, log)
}

type nopStore struct{}

func (nopStore) AppendSend(context.Context, SendRecord) error { return nil }
func (nopStore) LastSend(context.Context) (SendRecord, bool, error) {
	return SendRecord{}, false, nil
}
func (nopStore) Close() error { return nil }
