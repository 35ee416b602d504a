package version

import (
	"strings"
	"testing"
)

func TestInfoDefaults(t *testing.T) {
	bi := Info()
	if bi.Service != "sarcasm-api" || bi.Version != "dev" || bi.Date != "unknown" {
		t.Fatalf("unexpected defaults: %+v", bi)
	}
	if bi.Commit == "" {
		t.Fatalf("commit should never be empty")
	}
	if !strings.HasPrefix(bi.String(), "sarcasm-api dev (") {
		t.Fatalf("String() = %q", bi.String())
	}
}
