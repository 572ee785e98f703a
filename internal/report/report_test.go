package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/seawander/stiscoron/internal/occulter"
	"github.com/seawander/stiscoron/internal/pointing"
	"github.com/seawander/stiscoron/internal/sweep"
)

func TestSavePointing(t *testing.T) {
	cat, err := occulter.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := pointing.Config{Mask: occulter.Bar5, PosTarg1: 50}
	res, err := pointing.Evaluate(cat, cfg)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "pointing.yaml")
	if err := SavePointing(path, cfg, res); err != nil {
		t.Fatalf("SavePointing failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	var rep PointingReport
	if err := yaml.Unmarshal(data, &rep); err != nil {
		t.Fatalf("Report is not valid YAML: %v", err)
	}
	if rep.Config.Mask != occulter.Bar5 {
		t.Errorf("Expected mask %s, got %s", occulter.Bar5, rep.Config.Mask)
	}
	if rep.Occulted {
		t.Error("Far-offset pointing should not be occulted")
	}
	if len(rep.Warnings) == 0 {
		t.Error("Expected the warning to be preserved in the report")
	}
	if !strings.Contains(string(data), "postarg1: 50") {
		t.Errorf("Expected postarg1 in report, got:\n%s", data)
	}
}

func TestSaveSweep(t *testing.T) {
	g := sweep.Grid{Mask: occulter.WedgeA20, OrientEnd: 90, OrientStep: 10}
	summary := sweep.Summary{Total: 10, Occulted: 10, Fraction: 1}

	path := filepath.Join(t.TempDir(), "sweep.yaml")
	if err := SaveSweep(path, g, summary); err != nil {
		t.Fatalf("SaveSweep failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	var rep SweepReport
	if err := yaml.Unmarshal(data, &rep); err != nil {
		t.Fatalf("Report is not valid YAML: %v", err)
	}
	if rep.Summary.Total != 10 || rep.Summary.Fraction != 1 {
		t.Errorf("Summary round-trip failed: %+v", rep.Summary)
	}
}
