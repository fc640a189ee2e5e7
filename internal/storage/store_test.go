package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/wavecurve/internal/curves"
	"github.com/san-kum/wavecurve/internal/metrics"
	"github.com/san-kum/wavecurve/internal/sampler"
	"github.com/san-kum/wavecurve/internal/trajectory"
)

func sampleRun(t *testing.T, curve string) *sampler.Result {
	t.Helper()
	tr, err := curves.NewRegistry().Get(curve)
	if err != nil {
		t.Fatal(err)
	}
	s := sampler.New(tr, nil)
	for _, m := range metrics.DefaultMetrics() {
		s.AddMetric(m)
	}
	cfg := sampler.DefaultConfig()
	cfg.Samples = 64
	result, err := s.Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	result := sampleRun(t, "circle")
	meta := NewMetadata("circle", trajectory.DefaultParams(), result)

	runID, err := store.Save(meta, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run ID")
	}

	loaded, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	meta.ID = runID
	meta.Timestamp = loaded.Timestamp
	if d := cmp.Diff(meta, *loaded); d != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", d)
	}
	if loaded.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	samples, err := store.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if d := cmp.Diff(result.Samples, samples); d != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", d)
	}
}

func TestStore_SaveKeepsExplicitID(t *testing.T) {
	store := New(t.TempDir())
	result := sampleRun(t, "line")

	meta := NewMetadata("line", trajectory.DefaultParams(), result)
	meta.ID = "named-run"

	runID, err := store.Save(meta, result)
	if err != nil {
		t.Fatal(err)
	}
	if runID != "named-run" {
		t.Errorf("expected named-run, got %s", runID)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), "named-run", "samples.csv")); err != nil {
		t.Errorf("samples file missing: %v", err)
	}
}

func TestStore_List(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	result := sampleRun(t, "line")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"b", "a", "c"} {
		meta := NewMetadata("line", trajectory.DefaultParams(), result)
		meta.ID = id
		meta.Timestamp = base.Add(time.Duration(i) * time.Minute)
		if _, err := store.Save(meta, result); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(store.Dir(), "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := make([]string, len(runs))
	for i, r := range runs {
		got[i] = r.ID
	}
	if d := cmp.Diff([]string{"b", "a", "c"}, got); d != "" {
		t.Errorf("list order mismatch (-want +got):\n%s", d)
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStore_NotFound(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Load: expected ErrRunNotFound, got %v", err)
	}
	if _, err := store.LoadSamples("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("LoadSamples: expected ErrRunNotFound, got %v", err)
	}
	if err := store.Delete("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Delete: expected ErrRunNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := New(t.TempDir())
	result := sampleRun(t, "line")

	runID, err := store.Save(NewMetadata("line", trajectory.DefaultParams(), result), result)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(runID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Load(runID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected run to be gone, got %v", err)
	}
}

func TestReadSamples_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"short row", "t,theta,base_x,base_y,normal_x,normal_y,arc_length,amplitude,normal_offset,x,y\n1,2,3\n"},
		{"bad float", "t,theta,base_x,base_y,normal_x,normal_y,arc_length,amplitude,normal_offset,x,y\n1,2,3,4,5,6,7,8,9,10,eleven\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadSamples(bytes.NewBufferString(tt.in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadSamples_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSamples(&buf, nil); err != nil {
		t.Fatal(err)
	}
	samples, err := ReadSamples(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 0 {
		t.Errorf("expected no samples, got %d", len(samples))
	}
}
