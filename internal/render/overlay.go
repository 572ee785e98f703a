// Package render draws the pointing overlay: the aperture plate as a
// background, the transformed occulter footprint, the diffraction-spike
// shadow and the target marker, with a caption stating the verdict.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/seawander/stiscoron/internal/occulter"
	"github.com/seawander/stiscoron/internal/pointing"
)

var (
	skyColor      = color.RGBA{R: 16, G: 16, B: 32, A: 255}
	plateColor    = color.RGBA{R: 90, G: 90, B: 110, A: 255}
	footprintFill = [4]float64{0.95, 0.55, 0.10, 0.35}
	footprintEdge = [4]float64{0.95, 0.55, 0.10, 1.0}
	spikeStroke   = [4]float64{0.35, 0.65, 0.95, 0.45}
	targetColor   = [4]float64{0.20, 0.95, 0.35, 1.0}
	warnColor     = [4]float64{0.95, 0.25, 0.25, 1.0}
)

// Overlay renders the evaluated pointing onto a detector-sized canvas and
// returns the image.
func Overlay(cat *occulter.Catalog, res *pointing.Result) image.Image {
	dc := gg.NewContext(occulter.DetectorSize, occulter.DetectorSize)

	dc.DrawImage(plateImage(cat.Plate()), 0, 0)
	drawSpikes(dc, res)
	drawFootprint(dc, res)
	drawTarget(dc, res)
	drawCaption(dc, res)

	return dc.Image()
}

// Encode renders the overlay and writes it as PNG.
func Encode(w io.Writer, cat *occulter.Catalog, res *pointing.Result) error {
	return png.Encode(w, Overlay(cat, res))
}

// Save renders the overlay and writes it to a PNG file.
func Save(path string, cat *occulter.Catalog, res *pointing.Result) error {
	dc := gg.NewContextForImage(Overlay(cat, res))
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save overlay: %w", err)
	}
	return nil
}

// plateImage draws the measured aperture plate: blocked pixels light,
// open sky dark.
func plateImage(plate *occulter.Plate) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, plate.Width, plate.Height))
	for y := 0; y < plate.Height; y++ {
		for x := 0; x < plate.Width; x++ {
			if plate.Open(x, y) {
				img.SetRGBA(x, y, skyColor)
			} else {
				img.SetRGBA(x, y, plateColor)
			}
		}
	}
	return img
}

func drawFootprint(dc *gg.Context, res *pointing.Result) {
	if len(res.Aperture) == 0 {
		return
	}
	dc.MoveTo(res.Aperture[0].X, res.Aperture[0].Y)
	for _, p := range res.Aperture[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()

	dc.SetRGBA(footprintFill[0], footprintFill[1], footprintFill[2], footprintFill[3])
	dc.FillPreserve()
	dc.SetRGBA(footprintEdge[0], footprintEdge[1], footprintEdge[2], footprintEdge[3])
	dc.SetLineWidth(1.5)
	dc.Stroke()
}

// drawSpikes strokes the two diagonal bands of the spike shadow. The band
// test is |(|dx|-|dy|)| <= hw in the rotated frame, which on the canvas is
// two lines at 45 and 135 degrees (plus the band's own rotation) with a
// stroke width of hw*sqrt(2) on each side.
func drawSpikes(dc *gg.Context, res *pointing.Result) {
	s := res.Spikes
	if s.HalfWidth <= 0 || s.HalfLength <= 0 {
		return
	}

	dc.Push()
	dc.RotateAbout(gg.Radians(s.Angle), s.Center.X, s.Center.Y)
	dc.SetRGBA(spikeStroke[0], spikeStroke[1], spikeStroke[2], spikeStroke[3])
	dc.SetLineWidth(s.HalfWidth * math.Sqrt2)
	for _, diag := range []float64{1, -1} {
		dc.DrawLine(
			s.Center.X-s.HalfLength, s.Center.Y-diag*s.HalfLength,
			s.Center.X+s.HalfLength, s.Center.Y+diag*s.HalfLength,
		)
		dc.Stroke()
	}
	dc.Pop()
}

func drawTarget(dc *gg.Context, res *pointing.Result) {
	const arm = 18.0
	t := res.Target

	dc.SetRGBA(targetColor[0], targetColor[1], targetColor[2], targetColor[3])
	dc.SetLineWidth(1.5)
	dc.DrawLine(t.X-arm, t.Y, t.X+arm, t.Y)
	dc.Stroke()
	dc.DrawLine(t.X, t.Y-arm, t.X, t.Y+arm)
	dc.Stroke()
	dc.DrawCircle(t.X, t.Y, arm/2)
	dc.Stroke()
}

func drawCaption(dc *gg.Context, res *pointing.Result) {
	verdict := "target occulted"
	if !res.Occulted {
		verdict = "target NOT occulted"
	}
	caption := fmt.Sprintf("%s  ORIENT=%.1f  offset=(%.2f, %.2f) px  %s",
		res.Mask, res.Orient, res.OffsetPix.X, res.OffsetPix.Y, verdict)

	if res.Occulted {
		dc.SetRGBA(1, 1, 1, 1)
	} else {
		dc.SetRGBA(warnColor[0], warnColor[1], warnColor[2], warnColor[3])
	}
	dc.DrawString(caption, 12, 20)

	for i, w := range res.Warnings {
		dc.DrawString(w, 12, 40+float64(i)*16)
	}
}
