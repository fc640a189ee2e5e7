package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		verbose bool
		debug   bool
	}{
		{verbose: false, debug: false},
		{verbose: true, debug: true},
	}

	for _, tt := range tests {
		log, err := New(tt.verbose)
		if err != nil {
			t.Fatalf("New(%v): %v", tt.verbose, err)
		}
		if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.debug {
			t.Errorf("New(%v): debug enabled = %v, want %v", tt.verbose, got, tt.debug)
		}
		if !log.Core().Enabled(zapcore.WarnLevel) {
			t.Errorf("New(%v): warn should always be enabled", tt.verbose)
		}
	}
}

func TestStep(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	done := Step(log, "sample", zap.String("curve", "rose"))
	if logs.Len() != 0 {
		t.Fatal("step logged before completion")
	}
	done()

	entries := logs.FilterMessage("sample").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["curve"] != "rose" {
		t.Errorf("expected curve field, got %v", fields)
	}
	if _, ok := fields["took"]; !ok {
		t.Errorf("expected took field, got %v", fields)
	}
}
