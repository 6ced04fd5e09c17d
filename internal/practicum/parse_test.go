package practicum

import (
	"encoding/json"
	"testing"
)

func TestHomeworks(t *testing.T) {
	t.Parallel()
	rec := map[string]any{"homework_name": "proj1", "status": "approved"}

	tests := []struct {
		name    string
		doc     any
		kind    Kind
		wantLen int
	}{
		{name: "ok", doc: map[string]any{"homeworks": []any{rec}}, wantLen: 1},
		{name: "ok empty", doc: map[string]any{"homeworks": []any{}}, wantLen: 0},
		{name: "not a mapping", doc: []any{"homeworks"}, kind: KindNotAMapping},
		{name: "nil document", doc: nil, kind: KindNotAMapping},
		{name: "missing key", doc: map[string]any{"current_date": json.Number("1")}, kind: KindMissingKey},
		{name: "wrong type", doc: map[string]any{"homeworks": "soon"}, kind: KindWrongType},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := Homeworks(tt.doc)
			if tt.kind != KindUnknown {
				if err == nil {
					t.Fatal("expected error")
				}
				if k := KindOf(err); k != tt.kind {
					t.Fatalf("KindOf = %v, want %v", k, tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Homeworks error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestHomeworksReturnsRecordsUnmodified(t *testing.T) {
	t.Parallel()
	rec := map[string]any{"homework_name": "proj1", "status": "approved", "lesson_name": "extra"}
	got, err := Homeworks(map[string]any{"homeworks": []any{rec}})
	if err != nil {
		t.Fatalf("Homeworks error: %v", err)
	}
	m, ok := got[0].(map[string]any)
	if !ok {
		t.Fatalf("record type changed: %T", got[0])
	}
	if m["lesson_name"] != "extra" {
		t.Fatal("record was modified")
	}
}

func TestCurrentDate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		doc  any
		kind Kind
		want int64
	}{
		{name: "json number", doc: map[string]any{"current_date": json.Number("1700000000")}, want: 1700000000},
		{name: "float64", doc: map[string]any{"current_date": float64(1681635226)}, want: 1681635226},
		{name: "not a mapping", doc: 42, kind: KindNotAMapping},
		{name: "missing", doc: map[string]any{"homeworks": []any{}}, kind: KindMissingKey},
		{name: "wrong type", doc: map[string]any{"current_date": "today"}, kind: KindWrongType},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := CurrentDate(tt.doc)
			if tt.kind != KindUnknown {
				if err == nil {
					t.Fatal("expected error")
				}
				if k := KindOf(err); k != tt.kind {
					t.Fatalf("KindOf = %v, want %v", k, tt.kind)
				}
				return
			}
			if err != nil {
				t.Fatalf("CurrentDate error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("CurrentDate = %d, want %d", got, tt.want)
			}
		})
	}
}
