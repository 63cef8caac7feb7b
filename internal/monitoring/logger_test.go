package monitoring

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	// Save original logger
	original := Logf
	defer func() { Logf = original }()

	// Test setting a custom logger
	called := false
	customLogger := func(format string, v ...interface{}) {
		called = true
	}

	SetLogger(customLogger)
	Logf("test message")

	if !called {
		t.Error("Custom logger was not called")
	}

	// Now set to nil and verify it doesn't call our logger
	called = false
	SetLogger(nil)
	Logf("test")
	if called {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestLogf_Default(t *testing.T) {
	// Test that Logf is not nil by default
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}

	// Test that we can call it without panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logf panicked: %v", r)
		}
	}()

	Logf("test message: %s", "value")
}

func TestUseZap(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	core, logs := observer.New(zap.InfoLevel)
	UseZap(zap.New(core))
	Logf("clustered %d modules", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if entries[0].Message != "clustered 3 modules" {
		t.Errorf("message = %q", entries[0].Message)
	}

	UseZap(nil)
	Logf("muted")
	if logs.Len() != 1 {
		t.Errorf("UseZap(nil) should mute, got %d entries", logs.Len())
	}
}

func TestNewZapLogger(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		l, err := NewZapLogger(verbose)
		if err != nil {
			t.Fatalf("NewZapLogger(%v): %v", verbose, err)
		}
		if got := l.Core().Enabled(zap.DebugLevel); got != verbose {
			t.Errorf("verbose=%v: debug enabled = %v", verbose, got)
		}
	}
}
