package history_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"aiintegration/internal/config"
	"aiintegration/internal/history"
	"aiintegration/internal/services"
	"aiintegration/internal/testsupport"
)

func TestRecordAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	run, err := store.Record(ctx, history.Entry{
		Kind:         history.KindDetect,
		Model:        "llama3.2:1b",
		Source:       services.SourceFallback,
		PointCount:   4,
		OutlierCount: 1,
		Result:       map[string]any{"summary": "Basic statistical analysis performed"},
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if len(run.ID) != 36 {
		t.Fatalf("expected uuid id, got %q", run.ID)
	}
	if run.SchemaVersion != services.SchemaVersion {
		t.Fatalf("schema version = %d", run.SchemaVersion)
	}

	fetched, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched == nil || fetched.Kind != history.KindDetect || fetched.OutlierCount != 1 || fetched.PointCount != 4 {
		t.Fatalf("unexpected run %#v", fetched)
	}
	var payload map[string]string
	if err := json.Unmarshal(fetched.Result, &payload); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if payload["summary"] != "Basic statistical analysis performed" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if !fetched.CreatedAt.Equal(run.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", fetched.CreatedAt, run.CreatedAt)
	}

	byPrefix, err := store.Get(ctx, run.ID[:8])
	if err != nil || byPrefix == nil || byPrefix.ID != run.ID {
		t.Fatalf("prefix lookup = %#v, %v", byPrefix, err)
	}
}

func TestGetTreatsWildcardsLiterally(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	run, err := store.Record(ctx, history.Entry{Kind: history.KindRoute, Model: "m", Source: services.SourceModel, Result: map[string]any{}})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	for _, id := range []string{"%", "_", run.ID[:4] + "%", run.ID[:4] + "_", `\`} {
		got, err := store.Get(ctx, id)
		if err != nil || got != nil {
			t.Fatalf("Get(%q) = %#v, %v; want no match", id, got, err)
		}
	}
	got, err := store.Get(ctx, run.ID[:9])
	if err != nil || got == nil || got.ID != run.ID {
		t.Fatalf("prefix through the dash = %#v, %v", got, err)
	}
}

func TestGetMissingRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	run, err := store.Get(context.Background(), "00000000-0000-0000-0000-000000000000")
	if err != nil || run != nil {
		t.Fatalf("expected nil run, got %#v, %v", run, err)
	}
	if _, err := store.Get(context.Background(), " "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for blank id, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	var ids []string
	for _, kind := range []string{history.KindRoute, history.KindDetect, history.KindRoute} {
		run, err := store.Record(ctx, history.Entry{Kind: kind, Model: "m", Source: services.SourceModel, Result: []int{}})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
		ids = append(ids, run.ID)
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 3 || runs[0].ID != ids[2] || runs[2].ID != ids[0] {
		t.Fatalf("unexpected order %#v", runs)
	}
	if runs[0].Result != nil {
		t.Fatal("list should not load result payloads")
	}

	limited, err := store.List(ctx, 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("List(2) = %d runs, %v", len(limited), err)
	}
}

func TestRecordRejectsUnknownKind(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	if _, err := store.Record(context.Background(), history.Entry{Kind: "other"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := testsupport.MustOpenHistory(t, cfg)
	if _, err := first.Record(context.Background(), history.Entry{Kind: history.KindRoute, Result: nil}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	second := testsupport.MustOpenHistory(t, cfg)
	runs, err := second.List(context.Background(), 0)
	if err != nil || len(runs) != 1 {
		t.Fatalf("expected persisted run after reopen, got %d, %v", len(runs), err)
	}
	if second.Path() != cfg.History.Path {
		t.Fatalf("path = %q", second.Path())
	}
}

func TestOpenRequiresPath(t *testing.T) {
	cfg := config.Default()
	cfg.History.Path = ""
	if _, err := history.Open(&cfg); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
