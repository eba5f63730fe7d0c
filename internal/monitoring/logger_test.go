package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { SetLogger(original) }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("loaded %d points", 4)

	if len(got) != 1 || got[0] != "loaded 4 points" {
		t.Errorf("expected one captured message, got %q", got)
	}

	// nil mutes the logger
	SetLogger(nil)
	Logf("dropped")
	if len(got) != 1 {
		t.Errorf("expected muted logger to drop message, got %q", got)
	}
}

func TestDebugf_DisabledByDefault(t *testing.T) {
	original := Logf
	defer func() {
		SetDebug(false)
		SetLogger(original)
	}()

	calls := 0
	SetLogger(func(string, ...interface{}) { calls++ })

	Debugf("round %d", 1)
	if calls != 0 {
		t.Fatalf("expected debug output to be off, got %d calls", calls)
	}

	SetDebug(true)
	Debugf("round %d", 2)
	if calls != 1 {
		t.Fatalf("expected debug output routed to Logf, got %d calls", calls)
	}

	// replacing the logger keeps debug routing
	calls2 := 0
	SetLogger(func(string, ...interface{}) { calls2++ })
	Debugf("round %d", 3)
	if calls2 != 1 {
		t.Errorf("expected debug output on the new logger, got %d calls", calls2)
	}

	SetDebug(false)
	Debugf("round %d", 4)
	if calls2 != 1 {
		t.Errorf("expected debug output off again, got %d calls", calls2)
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf should not be nil by default")
	}
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logf panicked: %v", r)
		}
	}()
	Logf("test message: %s", "value")
}
