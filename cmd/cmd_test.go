package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestCheckNominal(t *testing.T) {
	out, err := execute(t, "check", "--mask", "BAR5")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "BAR5") || !strings.Contains(out, "occulted") {
		t.Errorf("Unexpected output: %s", out)
	}
	if strings.Contains(out, "WARNING") {
		t.Errorf("Nominal pointing should not warn: %s", out)
	}
}

func TestCheckExposedTargetWarns(t *testing.T) {
	out, err := execute(t, "check", "--mask", "BAR5", "--postarg1", "50")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "WARNING") {
		t.Errorf("Expected an advisory warning, got: %s", out)
	}
}

func TestCheckUnknownMask(t *testing.T) {
	_, err := execute(t, "check", "--mask", "BAR99")
	if err == nil {
		t.Fatal("Expected error for unknown mask")
	}
	if !strings.Contains(err.Error(), "WEDGEA1.0") {
		t.Errorf("Error should name the valid set, got: %v", err)
	}
}

func TestCheckWritesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.png")
	out, err := execute(t, "check", "--mask", "WEDGEB2.0", "--orient", "30", "--output", path)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("Expected output path in message: %s", out)
	}
}

func TestMasksListsAll(t *testing.T) {
	out, err := execute(t, "masks")
	if err != nil {
		t.Fatalf("masks failed: %v", err)
	}
	for _, name := range []string{"BAR5", "BAR10", "WEDGEA0.6", "WEDGEB2.8"} {
		if !strings.Contains(out, name) {
			t.Errorf("Expected %s in listing:\n%s", name, out)
		}
	}
}

func TestSweepSummary(t *testing.T) {
	out, err := execute(t, "sweep", "--mask", "BAR10", "--orient-end", "90", "--orient-step", "30")
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if !strings.Contains(out, "4 of 4") {
		t.Errorf("Expected all 4 angles occulted, got: %s", out)
	}
}
