package store

import (
	"context"
	"testing"

	"github.com/nishs1729/simulation-manager/internal/model"
)

func TestMemoryStoreSeriesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := model.Series{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		Name:            "v",
		Values:          []float64{0.1, 0.2, 0.3},
	}
	if err := store.SaveSeries(ctx, input); err != nil {
		t.Fatalf("save series: %v", err)
	}

	output, ok, err := store.GetSeries(ctx, "v")
	if err != nil {
		t.Fatalf("get series: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted series")
	}
	if len(output.Values) != 3 || output.Values[2] != 0.3 {
		t.Fatalf("unexpected series: %+v", output)
	}
}

func TestMemoryStoreMissingSeries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	_, ok, err := store.GetSeries(ctx, "absent")
	if err != nil {
		t.Fatalf("get series: %v", err)
	}
	if ok {
		t.Fatal("expected missing series")
	}
}

func TestMemoryStoreRunMetaRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	input := model.RunMeta{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           "run1-trial_7",
		Model:           "fhn",
		Trial:           7,
		Seed:            7,
	}
	if err := store.SaveRunMeta(ctx, input); err != nil {
		t.Fatalf("save run meta: %v", err)
	}

	output, ok, err := store.GetRunMeta(ctx, "run1-trial_7")
	if err != nil {
		t.Fatalf("get run meta: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted run meta")
	}
	if output.Trial != 7 || output.Model != "fhn" {
		t.Fatalf("unexpected run meta: %+v", output)
	}
}
