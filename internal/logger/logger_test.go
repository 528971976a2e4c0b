package logger

import "testing"

func TestNew_Levels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		log, err := New(lvl)
		if err != nil {
			t.Fatalf("New(%q): %v", lvl, err)
		}
		if log == nil {
			t.Fatalf("New(%q) returned nil logger", lvl)
		}
		_ = log.Sync()
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
