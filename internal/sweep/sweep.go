// Package sweep evaluates a grid of ORIENT roll angles for one pointing
// and writes the per-angle results to Parquet or JSONL, so observers can
// see which schedulable orientations keep the target occulted.
package sweep

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/seawander/stiscoron/internal/occulter"
	"github.com/seawander/stiscoron/internal/pointing"
)

// Grid describes the sweep: a fixed mask and POSTARG offset evaluated over
// a range of ORIENT angles.
type Grid struct {
	Mask        string
	PosTarg1    float64
	PosTarg2    float64
	OrientStart float64
	OrientEnd   float64
	OrientStep  float64
}

// Record is one evaluated grid point.
type Record struct {
	Mask        string  `parquet:"mask" json:"mask"`
	Orient      float64 `parquet:"orient" json:"orient"`
	PosTarg1    float64 `parquet:"postarg1" json:"postarg1"`
	PosTarg2    float64 `parquet:"postarg2" json:"postarg2"`
	Occulted    bool    `parquet:"occulted" json:"occulted"`
	OffDetector bool    `parquet:"off_detector" json:"off_detector"`
	TargetX     float64 `parquet:"target_x" json:"target_x"`
	TargetY     float64 `parquet:"target_y" json:"target_y"`
}

// Summary aggregates a finished sweep.
type Summary struct {
	Total    int     `json:"total" yaml:"total"`
	Occulted int     `json:"occulted" yaml:"occulted"`
	Fraction float64 `json:"fraction" yaml:"fraction"`
}

// Run evaluates every grid point. The grid must advance: OrientStep must be
// positive and OrientEnd must not precede OrientStart.
func Run(cat *occulter.Catalog, g Grid) ([]Record, error) {
	if g.OrientStep <= 0 {
		return nil, fmt.Errorf("orient step must be positive, got %v", g.OrientStep)
	}
	if g.OrientEnd < g.OrientStart {
		return nil, fmt.Errorf("orient range is empty: %v to %v", g.OrientStart, g.OrientEnd)
	}

	var records []Record
	for orient := g.OrientStart; orient <= g.OrientEnd; orient += g.OrientStep {
		res, err := pointing.Evaluate(cat, pointing.Config{
			Mask:     g.Mask,
			PosTarg1: g.PosTarg1,
			PosTarg2: g.PosTarg2,
			Orient:   orient,
		})
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			Mask:        res.Mask,
			Orient:      orient,
			PosTarg1:    g.PosTarg1,
			PosTarg2:    g.PosTarg2,
			Occulted:    res.Occulted,
			OffDetector: res.OffDetector,
			TargetX:     res.Target.X,
			TargetY:     res.Target.Y,
		})
	}

	slog.Debug("Sweep complete", "mask", g.Mask, "points", len(records))
	return records, nil
}

// Summarize counts how much of the sweep keeps the target occulted.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	for _, r := range records {
		if r.Occulted {
			s.Occulted++
		}
	}
	if s.Total > 0 {
		s.Fraction = float64(s.Occulted) / float64(s.Total)
	}
	return s
}

// WriteRecords writes the sweep to path; the format follows the file
// extension (.parquet or .jsonl).
func WriteRecords(path string, records []Record) error {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".parquet":
		return writeParquet(path, records)
	case ".jsonl", ".json":
		return writeJSONL(path, records)
	default:
		return fmt.Errorf("unsupported output format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func writeParquet(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Record](file)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	slog.Debug("Wrote sweep records", "path", path, "format", "parquet", "rows", len(records))
	return nil
}

func writeJSONL(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	slog.Debug("Wrote sweep records", "path", path, "format", "jsonl", "rows", len(records))
	return nil
}

// ReadRecords loads a previously written sweep, with the same extension
// dispatch as WriteRecords.
func ReadRecords(path string) ([]Record, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".parquet":
		return readParquet(path)
	case ".jsonl", ".json":
		return readJSONL(path)
	default:
		return nil, fmt.Errorf("unsupported input format: %s (supported: .parquet, .jsonl)", ext)
	}
}

func readParquet(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sweep file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat sweep file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Record](pf)
	defer reader.Close()

	var records []Record
	rows := make([]Record, 128)
	for {
		n, err := reader.Read(rows)
		if n > 0 {
			records = append(records, rows[:n]...)
		}
		if err != nil {
			break
		}
	}
	return records, nil
}

func readJSONL(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sweep file: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var r Record
		if err := json.Unmarshal(line, &r); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading sweep file: %w", err)
	}
	return records, nil
}
