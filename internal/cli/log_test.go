package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/example/milestone/internal/ports/primary"
)

func TestPrintLogEntries_OldestFirst(t *testing.T) {
	var buf bytes.Buffer
	printLogEntries(&buf, []*primary.LogEntry{
		{Timestamp: "not-a-time", EntityType: "achievement", EntityID: "streak_7", Action: "update", FieldName: "viewed", OldValue: "false", NewValue: "true"},
		{Timestamp: "earlier", EntityType: "achievement", EntityID: "streak_7", Action: "create"},
	})

	out := buf.String()
	if !strings.HasPrefix(out, "Found 2 log entries:") {
		t.Errorf("unexpected header: %q", out)
	}
	created := strings.Index(out, "earlier | + create | achievement/streak_7")
	viewed := strings.Index(out, "not-a-time | ~ update | achievement/streak_7 | viewed: false -> true")
	if created < 0 || viewed < 0 {
		t.Fatalf("missing entries in output:\n%s", out)
	}
	if created > viewed {
		t.Errorf("expected oldest entry first:\n%s", out)
	}
}

func TestPrintLogEntries_Empty(t *testing.T) {
	var buf bytes.Buffer
	printLogEntries(&buf, nil)

	if buf.String() != "No log entries found.\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestGetActionIcon(t *testing.T) {
	tests := map[string]string{"create": "+", "update": "~", "delete": "-", "other": "?"}
	for action, want := range tests {
		if got := getActionIcon(action); got != want {
			t.Errorf("getActionIcon(%q) = %q, want %q", action, got, want)
		}
	}
}
