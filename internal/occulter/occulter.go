// Package occulter loads and exposes the STIS coronagraphic calibration:
// the supported occulting-mask identifiers, their measured detector
// geometry, and the binary aperture plate image.
package occulter

import (
	"fmt"
	"strings"

	"github.com/seawander/stiscoron/internal/geometry"
)

// DetectorSize is the width and height of the STIS CCD in pixels.
const DetectorSize = 1024

// Supported occulter identifiers.
const (
	Bar5     = "BAR5"
	Bar10    = "BAR10"
	WedgeA06 = "WEDGEA0.6"
	WedgeA10 = "WEDGEA1.0"
	WedgeA18 = "WEDGEA1.8"
	WedgeA20 = "WEDGEA2.0"
	WedgeA25 = "WEDGEA2.5"
	WedgeA28 = "WEDGEA2.8"
	WedgeB10 = "WEDGEB1.0"
	WedgeB18 = "WEDGEB1.8"
	WedgeB20 = "WEDGEB2.0"
	WedgeB25 = "WEDGEB2.5"
	WedgeB28 = "WEDGEB2.8"
)

// Names returns the supported occulter identifiers in canonical order.
func Names() []string {
	return []string{
		Bar5, Bar10,
		WedgeA06, WedgeA10, WedgeA18, WedgeA20, WedgeA25, WedgeA28,
		WedgeB10, WedgeB18, WedgeB20, WedgeB25, WedgeB28,
	}
}

// Entry is the measured calibration record for one occulter.
type Entry struct {
	Name string
	// Center is the median spike-fit position of the occulter on the
	// detector, in pixels.
	Center geometry.Point
	// Aperture is the occulted region around Center, in pixels.
	Aperture geometry.Polygon
	// SpikeHalfWidth and SpikeHalfLength size the diffraction-spike
	// shadow of a star placed behind this occulter, in pixels.
	SpikeHalfWidth  float64
	SpikeHalfLength float64
}

// Spikes returns the reference (unrotated, unshifted) spike band for the
// entry.
func (e Entry) Spikes() geometry.SpikeBand {
	return geometry.SpikeBand{
		Center:     e.Center,
		HalfWidth:  e.SpikeHalfWidth,
		HalfLength: e.SpikeHalfLength,
	}
}

// Catalog is the immutable set of calibration entries plus the aperture
// plate. It is safe for concurrent readers once loaded.
type Catalog struct {
	// PlateScale converts arcseconds to pixels (arcsec per pixel).
	PlateScale float64

	entries map[string]Entry
	order   []string
	plate   *Plate
}

// Entry looks up an occulter by identifier (case-insensitive). An unknown
// identifier is an error naming the valid set.
func (c *Catalog) Entry(name string) (Entry, error) {
	e, ok := c.entries[strings.ToUpper(name)]
	if !ok {
		return Entry{}, fmt.Errorf("%q is not a supported STIS occulter (supported: %s)",
			name, strings.Join(c.order, ", "))
	}
	return e, nil
}

// Names returns the identifiers in the catalog's canonical order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Plate returns the binary aperture plate.
func (c *Catalog) Plate() *Plate {
	return c.plate
}

// ArcsecToPix converts an arcsecond offset into detector pixels.
func (c *Catalog) ArcsecToPix(arcsec float64) float64 {
	return arcsec / c.PlateScale
}

// Plate is the measured binary aperture mask: 1 where the detector sees
// open sky, 0 where an occulter blocks it.
type Plate struct {
	Width  int
	Height int
	data   []byte
}

// Open reports whether the detector pixel (x, y) is unobstructed.
// Out-of-bounds pixels count as open.
func (p *Plate) Open(x, y int) bool {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return true
	}
	return p.data[y*p.Width+x] != 0
}
