package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"hwbot/pkg/logx"
)

func TestOpenWithoutPathIsNop(t *testing.T) {
	t.Parallel()
	st, err := Open(Config{}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	if err := st.AppendSend(context.Background(), SendRecord{Text: "x"}); err != nil {
		t.Fatalf("AppendSend: %v", err)
	}
	if _, ok, err := st.LastSend(context.Background()); err != nil || ok {
		t.Fatalf("LastSend = ok=%v err=%v, want empty", ok, err)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "history.db")
	st, err := Open(Config{Path: path, BusyTimeout: time.Second}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	first := SendRecord{At: time.Now().Add(-time.Minute), Text: "first", Delivered: true}
	second := SendRecord{At: time.Now(), Text: "second", Delivered: false, Error: "bad gateway"}
	if err := st.AppendSend(ctx, first); err != nil {
		t.Fatalf("AppendSend: %v", err)
	}
	if err := st.AppendSend(ctx, second); err != nil {
		t.Fatalf("AppendSend: %v", err)
	}

	got, ok, err := st.LastSend(ctx)
	if err != nil {
		t.Fatalf("LastSend: %v", err)
	}
	if !ok {
		t.Fatal("expected a record")
	}
	if got.Text != "second" || got.Delivered || got.Error != "bad gateway" {
		t.Fatalf("LastSend = %+v", got)
	}
	if got.At.IsZero() {
		t.Fatal("timestamp not restored")
	}
}
