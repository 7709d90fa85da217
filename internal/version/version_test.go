package version

import (
	"strings"
	"testing"
)

func TestVersionStringNonEmpty(t *testing.T) {
	if s := String(); s == "" {
		t.Fatalf("version string is empty")
	}
}

func TestVersionStringUsesLinkerValues(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldV, oldC, oldD })
	Version, Commit, Date = "v1.0.0", "abc1234", "2025-01-02"
	if got := String(); got != "geareye v1.0.0 (abc1234) built 2025-01-02" {
		t.Fatalf("unexpected version string %q", got)
	}
	if !strings.HasPrefix(String(), "geareye ") {
		t.Fatalf("missing program name")
	}
}
