package core

import (
	"testing"
)

func TestNewID_Unique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Fatal("NewID returned empty ID")
		}
		if seen[id] {
			t.Fatalf("NewID returned duplicate: %s", id)
		}
		seen[id] = true
	}
}

func TestParseAgentID(t *testing.T) {
	id, err := ParseAgentID("agent-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "agent-1" {
		t.Errorf("expected agent-1, got %s", id)
	}

	if _, err := ParseAgentID("   "); err == nil {
		t.Error("expected error for blank agent ID")
	}
}

func TestParseSourceID_Empty(t *testing.T) {
	if _, err := ParseSourceID(""); err == nil {
		t.Error("expected error for empty source ID")
	}
}
