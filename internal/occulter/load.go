package occulter

import (
	"bytes"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/astrogo/fitsio"
	"gopkg.in/yaml.v3"

	"github.com/seawander/stiscoron/internal/geometry"
)

//go:embed calib/catalog.yaml calib/stis_mask.fits
var calibFS embed.FS

// CalibrationDirEnv names the environment variable that points the loader
// at an external calibration directory instead of the embedded artifacts.
const CalibrationDirEnv = "STISCORON_CALIBRATION_DIR"

// catalogFile mirrors the layout of calib/catalog.yaml.
type catalogFile struct {
	PlateScale float64     `yaml:"plate_scale"`
	Masks      []maskEntry `yaml:"masks"`
}

type maskEntry struct {
	Name            string           `yaml:"name"`
	Center          geometry.Point   `yaml:"center"`
	SpikeHalfWidth  float64          `yaml:"spike_halfwidth"`
	SpikeHalfLength float64          `yaml:"spike_halflength"`
	Aperture        []geometry.Point `yaml:"aperture"`
}

// Load builds the catalog from the bundled calibration artifacts, or from
// the directory named by STISCORON_CALIBRATION_DIR when set. A missing or
// corrupt artifact is an error: nothing can be computed without the
// calibration.
func Load() (*Catalog, error) {
	dir := os.Getenv(CalibrationDirEnv)

	catalogBytes, plateBytes, err := readArtifacts(dir)
	if err != nil {
		return nil, err
	}

	cat, err := parseCatalog(catalogBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse occulter catalog: %w", err)
	}

	plate, err := parsePlate(plateBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse aperture plate: %w", err)
	}
	cat.plate = plate

	slog.Debug("Calibration loaded",
		"masks", len(cat.entries),
		"plate_scale", cat.PlateScale,
		"plate", fmt.Sprintf("%dx%d", plate.Width, plate.Height),
		"external_dir", dir)

	return cat, nil
}

func readArtifacts(dir string) (catalogBytes, plateBytes []byte, err error) {
	if dir == "" {
		catalogBytes, err = calibFS.ReadFile("calib/catalog.yaml")
		if err != nil {
			return nil, nil, fmt.Errorf("embedded catalog missing: %w", err)
		}
		plateBytes, err = calibFS.ReadFile("calib/stis_mask.fits")
		if err != nil {
			return nil, nil, fmt.Errorf("embedded aperture plate missing: %w", err)
		}
		return catalogBytes, plateBytes, nil
	}

	slog.Debug("Loading external calibration", "dir", dir)
	catalogBytes, err = os.ReadFile(filepath.Join(dir, "catalog.yaml"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read external catalog: %w", err)
	}
	plateBytes, err = os.ReadFile(filepath.Join(dir, "stis_mask.fits"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read external aperture plate: %w", err)
	}
	return catalogBytes, plateBytes, nil
}

func parseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	if file.PlateScale <= 0 {
		return nil, fmt.Errorf("plate_scale must be positive, got %v", file.PlateScale)
	}

	known := make(map[string]bool, len(Names()))
	for _, name := range Names() {
		known[name] = true
	}

	cat := &Catalog{
		PlateScale: file.PlateScale,
		entries:    make(map[string]Entry, len(file.Masks)),
	}

	for _, m := range file.Masks {
		name := strings.ToUpper(m.Name)
		if !known[name] {
			return nil, fmt.Errorf("catalog contains unknown occulter %q", m.Name)
		}
		if _, dup := cat.entries[name]; dup {
			return nil, fmt.Errorf("catalog contains duplicate occulter %q", name)
		}
		if len(m.Aperture) < 3 {
			return nil, fmt.Errorf("occulter %q has %d aperture vertices, need at least 3", name, len(m.Aperture))
		}
		if m.SpikeHalfWidth < 0 || m.SpikeHalfLength < 0 {
			return nil, fmt.Errorf("occulter %q has negative spike geometry", name)
		}
		cat.entries[name] = Entry{
			Name:            name,
			Center:          m.Center,
			Aperture:        geometry.Polygon(m.Aperture),
			SpikeHalfWidth:  m.SpikeHalfWidth,
			SpikeHalfLength: m.SpikeHalfLength,
		}
		cat.order = append(cat.order, name)
	}

	for _, name := range Names() {
		if _, ok := cat.entries[name]; !ok {
			return nil, fmt.Errorf("catalog is missing occulter %q", name)
		}
	}

	return cat, nil
}

func parsePlate(data []byte) (*Plate, error) {
	f, err := fitsio.Open(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, ok := f.HDU(0).(fitsio.Image)
	if !ok {
		return nil, fmt.Errorf("primary HDU is not an image")
	}

	hdr := img.Header()
	axes := hdr.Axes()
	if len(axes) != 2 {
		return nil, fmt.Errorf("aperture plate must be 2D, got %d axes", len(axes))
	}
	if hdr.Bitpix() != 8 {
		return nil, fmt.Errorf("aperture plate must be 8-bit, got BITPIX=%d", hdr.Bitpix())
	}

	width, height := axes[0], axes[1]
	raw := img.Raw()
	if len(raw) < width*height {
		return nil, fmt.Errorf("aperture plate data truncated: %d bytes for %dx%d", len(raw), width, height)
	}

	return &Plate{Width: width, Height: height, data: raw[:width*height]}, nil
}
