// Package pointing evaluates a single coronagraphic pointing: it places an
// occulter footprint on the detector for a given POSTARG offset and ORIENT
// roll, and decides whether the target star ends up behind the occulter.
package pointing

import (
	"fmt"
	"math"

	"github.com/seawander/stiscoron/internal/geometry"
	"github.com/seawander/stiscoron/internal/occulter"
)

// Config is one pointing request, mirroring the Phase 2 planning
// parameters.
type Config struct {
	// Mask is the occulter identifier, one of occulter.Names().
	Mask string `json:"mask" yaml:"mask"`
	// PosTarg1 and PosTarg2 are the commanded target offsets along the
	// detector X and Y axes, in arcseconds.
	PosTarg1 float64 `json:"postarg1" yaml:"postarg1"`
	PosTarg2 float64 `json:"postarg2" yaml:"postarg2"`
	// Orient is the telescope roll angle in degrees; any real value is
	// accepted and wrapped into [0, 360).
	Orient float64 `json:"orient" yaml:"orient"`
}

// Result is the computed footprint set and visibility verdict for one
// pointing.
type Result struct {
	Mask   string  `json:"mask"`
	Orient float64 `json:"orient"`

	// Target is the star's nominal position: the occulter's reference
	// center, which the transform leaves fixed.
	Target geometry.Point `json:"target"`
	// OffsetPix is the POSTARG offset converted to pixels.
	OffsetPix geometry.Point `json:"offset_pix"`
	// Aperture is the occulter footprint after rotation and offset.
	Aperture geometry.Polygon `json:"aperture"`
	// Spikes is the diffraction-spike shadow, transformed rigidly with
	// the aperture.
	Spikes geometry.SpikeBand `json:"spikes"`

	// Occulted reports whether the target falls inside the union of the
	// aperture footprint and the spike shadow.
	Occulted bool `json:"occulted"`
	// OffDetector reports whether the offset pushes the occulted
	// position beyond the detector field of view.
	OffDetector bool `json:"off_detector"`

	// Warnings are advisory messages for the observer. A non-occulted
	// target is never an error, but it is never silent either.
	Warnings []string `json:"warnings,omitempty"`
}

// Evaluate computes the footprint and visibility verdict for cfg against
// the calibration catalog. The only error is an unknown mask identifier;
// the transform itself is closed-form and always defined.
//
// The footprint transform is a single rigid rotation by Orient about the
// occulter's reference center followed by a translation by the
// pixel-converted POSTARG offset, applied identically to the aperture
// polygon and the spike band. The target point stays at the reference
// center, so relative geometry is preserved at every roll angle.
func Evaluate(cat *occulter.Catalog, cfg Config) (*Result, error) {
	entry, err := cat.Entry(cfg.Mask)
	if err != nil {
		return nil, err
	}

	orient := geometry.NormalizeAngle(cfg.Orient)
	offset := geometry.Point{
		X: cat.ArcsecToPix(cfg.PosTarg1),
		Y: cat.ArcsecToPix(cfg.PosTarg2),
	}

	res := &Result{
		Mask:      entry.Name,
		Orient:    orient,
		Target:    entry.Center,
		OffsetPix: offset,
		Aperture:  entry.Aperture.RotateAround(entry.Center, orient).Translate(offset),
		Spikes:    entry.Spikes().RotateAround(entry.Center, orient).Translate(offset),
	}

	res.Occulted = res.Aperture.Contains(res.Target) || res.Spikes.Contains(res.Target)

	// The occulted position after the offset; beyond the CCD it cannot
	// be imaged at all, let alone occulted.
	shifted := res.Spikes.Center
	res.OffDetector = shifted.X < 0 || shifted.X > occulter.DetectorSize ||
		shifted.Y < 0 || shifted.Y > occulter.DetectorSize

	if res.OffDetector {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%s with POSTARG1 = %s and POSTARG2 = %s puts your target beyond the STIS field of view; keep an eye on your exposure time in your Phase 2",
			entry.Name, formatArcsec(cfg.PosTarg1), formatArcsec(cfg.PosTarg2)))
	} else if !res.Occulted {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%s with POSTARG1 = %s and POSTARG2 = %s cannot put your target behind any STIS occulter; keep an eye on your exposure time in your Phase 2",
			entry.Name, formatArcsec(cfg.PosTarg1), formatArcsec(cfg.PosTarg2)))
	}

	return res, nil
}

func formatArcsec(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f\"", v)
	}
	return fmt.Sprintf("%.3f\"", v)
}
