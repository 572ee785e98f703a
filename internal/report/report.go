// Package report writes pointing results as YAML artifacts for inclusion
// in observing documentation.
package report

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/seawander/stiscoron/internal/pointing"
	"github.com/seawander/stiscoron/internal/sweep"
)

// PointingReport is the YAML layout for a single evaluated pointing.
type PointingReport struct {
	Config    pointing.Config `yaml:"config"`
	Occulted  bool            `yaml:"occulted"`
	Warnings  []string        `yaml:"warnings,omitempty"`
	TargetX   float64         `yaml:"target_x"`
	TargetY   float64         `yaml:"target_y"`
	Timestamp string          `yaml:"timestamp"`
}

// SweepReport is the YAML layout for a sweep summary.
type SweepReport struct {
	Mask      string        `yaml:"mask"`
	PosTarg1  float64       `yaml:"postarg1"`
	PosTarg2  float64       `yaml:"postarg2"`
	Summary   sweep.Summary `yaml:"summary"`
	Timestamp string        `yaml:"timestamp"`
}

// SavePointing writes the result of one evaluation to a YAML file.
func SavePointing(path string, cfg pointing.Config, res *pointing.Result) error {
	rep := PointingReport{
		Config:    cfg,
		Occulted:  res.Occulted,
		Warnings:  res.Warnings,
		TargetX:   res.Target.X,
		TargetY:   res.Target.Y,
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
	}
	return save(path, rep)
}

// SaveSweep writes a sweep summary to a YAML file.
func SaveSweep(path string, g sweep.Grid, summary sweep.Summary) error {
	rep := SweepReport{
		Mask:      g.Mask,
		PosTarg1:  g.PosTarg1,
		PosTarg2:  g.PosTarg2,
		Summary:   summary,
		Timestamp: time.Now().Format("2006-01-02_15-04-05"),
	}
	return save(path, rep)
}

func save(path string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
