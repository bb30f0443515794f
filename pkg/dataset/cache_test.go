package dataset

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/easyops/datachat-go/pkg/otel"
)

func cacheTestPreset() Preset {
	return Preset{
		Name: "test",
		Schema: &Schema{
			Columns: []Column{
				{Name: "country", Kind: ColumnText, Required: true},
				{Name: "solar", Kind: ColumnNumber},
			},
			EntityColumn: "country",
		},
	}
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	cache, err := NewCache(filepath.Join(t.TempDir(), "snapshots.db"), cacheTestPreset())
	if err != nil {
		t.Fatalf("create cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCacheMiss(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Load(context.Background())
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestCacheSaveAndLoad(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	table := &Table{
		Schema: cacheTestPreset().Schema,
		Rows: []Row{
			{Index: 0, Values: map[string]Value{"country": Text("France"), "solar": Number(10.5)}},
			{Index: 1, Values: map[string]Value{"country": Text("Japan"), "solar": Missing()}},
		},
	}

	if err := cache.Save(ctx, table); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", got.Len())
	}
	if got.Rows[0].Text("country") != "France" {
		t.Errorf("expected France, got %s", got.Rows[0].Text("country"))
	}
	if got.Rows[0].Number("solar") != 10.5 {
		t.Errorf("expected solar 10.5, got %f", got.Rows[0].Number("solar"))
	}
	if !got.Rows[1].Value("solar").IsMissing() {
		t.Error("missing value should survive the snapshot round trip")
	}

	if _, err := cache.FetchedAt(ctx); err != nil {
		t.Errorf("fetched_at after save: %v", err)
	}
}

func TestStoreFallsBackToCache(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	snapshot := &Table{
		Schema: cacheTestPreset().Schema,
		Rows: []Row{
			{Index: 0, Values: map[string]Value{"country": Text("France"), "solar": Number(1)}},
		},
	}
	if err := cache.Save(ctx, snapshot); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	metrics := otel.NewInMemoryMetrics()
	loader := &fakeLoader{err: errors.New("source unavailable")}
	store := NewStore(loader, WithCache(cache), WithMetrics(metrics))

	table, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("expected cache fallback, got %v", err)
	}
	if table.Len() != 1 || table.Rows[0].Text("country") != "France" {
		t.Error("expected snapshot contents from cache")
	}
	if got := metrics.GetCounterValue(otel.MetricDatasetCacheHits); got != 1 {
		t.Errorf("expected 1 cache hit recorded, got %d", got)
	}
}
