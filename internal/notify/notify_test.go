package notify

import (
	"context"
	"errors"
	"testing"

	"hwbot/internal/storage"
	"hwbot/pkg/logx"
)

type fakeSender struct {
	texts []string
	err   error
}

func (f *fakeSender) SendText(ctx context.Context, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

type fakeStore struct {
	storage.Store
	recs []storage.SendRecord
}

func (f *fakeStore) AppendSend(ctx context.Context, rec storage.SendRecord) error {
	f.recs = append(f.recs, rec)
	return nil
}

func TestSendDelivers(t *testing.T) {
	t.Parallel()
	sender := &fakeSender{}
	store := &fakeStore{}
	svc := New(Config{RatePerSec: 10}, sender, store, logx.Nop())

	res := svc.Send(context.Background(), "hello")
	if !res.Delivered || res.Err != nil {
		t.Fatalf("Result = %+v", res)
	}
	if len(sender.texts) != 1 || sender.texts[0] != "hello" {
		t.Fatalf("sender got %q", sender.texts)
	}
	if len(store.recs) != 1 || !store.recs[0].Delivered || store.recs[0].Text != "hello" {
		t.Fatalf("history = %+v", store.recs)
	}
}

func TestSendFailureIsReturnedNotRaised(t *testing.T) {
	t.Parallel()
	sender := &fakeSender{err: errors.New("bad gateway")}
	store := &fakeStore{}
	svc := New(Config{RatePerSec: 10}, sender, store, logx.Nop())

	res := svc.Send(context.Background(), "hello")
	if res.Delivered {
		t.Fatal("expected failed delivery")
	}
	if res.Err == nil {
		t.Fatal("expected error in result")
	}
	if len(store.recs) != 1 || store.recs[0].Delivered || store.recs[0].Error == "" {
		t.Fatalf("history = %+v", store.recs)
	}
}

func TestSendCancelledContext(t *testing.T) {
	t.Parallel()
	sender := &fakeSender{}
	svc := New(Config{RatePerSec: 1}, sender, &fakeStore{}, logx.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := svc.Send(ctx, "hello")
	if res.Delivered {
		t.Fatal("expected no delivery on cancelled context")
	}
	if len(sender.texts) != 0 {
		t.Fatalf("sender should not be reached, got %q", sender.texts)
	}
}
