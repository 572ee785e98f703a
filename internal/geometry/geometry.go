// Package geometry holds the 2D detector-plane primitives used by the
// occulter footprint computation: points, polygons and the diagonal
// diffraction-spike band, each with the rigid rotate-about-a-center and
// translate operations the pointing transform needs.
package geometry

import "math"

// Point is a position on the detector in pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// DistanceTo returns the straight-line distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// RotateAround returns p rotated by deg degrees counterclockwise about c.
func (p Point) RotateAround(c Point, deg float64) Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := p.X - c.X
	dy := p.Y - c.Y
	return Point{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

// NormalizeAngle wraps an angle in degrees into [0, 360).
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Polygon is a closed simple polygon; the edge from the last vertex back to
// the first is implicit.
type Polygon []Point

// RotateAround returns a new polygon with every vertex rotated by deg
// degrees about c.
func (pg Polygon) RotateAround(c Point, deg float64) Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[i] = p.RotateAround(c, deg)
	}
	return out
}

// Translate returns a new polygon shifted by d.
func (pg Polygon) Translate(d Point) Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[i] = p.Add(d)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the polygon.
func (pg Polygon) Bounds() (min, max Point) {
	if len(pg) == 0 {
		return Point{}, Point{}
	}
	min, max = pg[0], pg[0]
	for _, p := range pg[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// onSegmentEps is the tolerance for treating a point as lying exactly on a
// polygon edge.
const onSegmentEps = 1e-9

// Contains reports whether p lies inside the polygon using the even-odd
// rule. Points on an edge count as inside, so the test is deterministic for
// boundary points.
func (pg Polygon) Contains(p Point) bool {
	n := len(pg)
	if n < 3 {
		return false
	}
	inside := false
	for i := 0; i < n; i++ {
		a := pg[i]
		b := pg[(i+1)%n]
		if onSegment(a, b, p) {
			return true
		}
		// Even-odd crossing test against the horizontal ray toward +X.
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xi := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < xi {
				inside = !inside
			}
		}
	}
	return inside
}

// onSegment reports whether p lies on the segment from a to b.
func onSegment(a, b, p Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > onSegmentEps*math.Max(1, a.DistanceTo(b)) {
		return false
	}
	dot := (p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)
	if dot < -onSegmentEps {
		return false
	}
	return dot <= (b.X-a.X)*(b.X-a.X)+(b.Y-a.Y)*(b.Y-a.Y)+onSegmentEps
}

// SpikeBand is the X-shaped diffraction-spike shadow of an occulted star:
// two diagonal bands of half-width HalfWidth crossing at Center, truncated
// at HalfLength (Chebyshev distance) from the center. Angle is an extra
// rigid rotation of the whole band in degrees, so the band follows the
// footprint under the pointing transform.
type SpikeBand struct {
	Center     Point   `json:"center"`
	HalfWidth  float64 `json:"halfwidth"`
	HalfLength float64 `json:"halflength"`
	Angle      float64 `json:"angle"`
}

// RotateAround returns the band rotated rigidly by deg degrees about c.
func (s SpikeBand) RotateAround(c Point, deg float64) SpikeBand {
	s.Center = s.Center.RotateAround(c, deg)
	s.Angle = NormalizeAngle(s.Angle + deg)
	return s
}

// Translate returns the band shifted by d.
func (s SpikeBand) Translate(d Point) SpikeBand {
	s.Center = s.Center.Add(d)
	return s
}

// Contains reports whether p falls inside the spike shadow. A zero
// half-width band contains nothing.
func (s SpikeBand) Contains(p Point) bool {
	if s.HalfWidth <= 0 {
		return false
	}
	// Undo the band rotation so the diagonals sit at 45 degrees again.
	q := p.RotateAround(s.Center, -s.Angle)
	dx := math.Abs(q.X - s.Center.X)
	dy := math.Abs(q.Y - s.Center.Y)
	if s.HalfLength > 0 && math.Max(dx, dy) > s.HalfLength {
		return false
	}
	return math.Abs(dx-dy) <= s.HalfWidth
}
