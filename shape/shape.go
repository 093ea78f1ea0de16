// Package shape turns a named 2D figure into a sampled outline. An outline
// maps a parameter u in [0, 1) to a position and an outward unit normal in
// a Y-down local space, which the drawing themes perturb with amplitude
// data.
package shape

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Kind enumerates the supported figures.
type Kind int

const (
	// KindLine is a horizontal midline, the only open outline.
	KindLine Kind = iota
	KindRect
	KindRoundedFrame
	KindCircle
	KindHexagon
	KindTriangle
	KindDiamond
	KindStar
)

var kindNames = map[string]Kind{
	"line":         KindLine,
	"rect":         KindRect,
	"roundedframe": KindRoundedFrame,
	"circle":       KindCircle,
	"hexagon":      KindHexagon,
	"triangle":     KindTriangle,
	"diamond":      KindDiamond,
	"star":         KindStar,
}

// ParseKind resolves a shape name. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindNames[strings.ToLower(s)]; ok {
		return k, nil
	}
	return KindLine, errors.Errorf("unknown shape %q", s)
}

// String returns the canonical shape name.
func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "line"
}

// Kinds lists all shape names in a stable order.
func Kinds() []string {
	return []string{
		"line", "rect", "roundedframe", "circle",
		"hexagon", "triangle", "diamond", "star",
	}
}

// MinSegments and MaxSegments bound the outline resolution.
const (
	MinSegments = 24
	MaxSegments = 2048
)

// Segments converts a density percentage into a segment count.
func Segments(densityPct float64) int {
	n := int(densityPct * 4)
	if n < MinSegments {
		n = MinSegments
	}
	if n > MaxSegments {
		n = MaxSegments
	}
	return n
}

// Point is a position or direction in canvas space.
type Point struct {
	X, Y float64
}

// Options tune figure construction.
type Options struct {
	// RadiusFactor blends a rounded frame between a rectangle (0) and an
	// ellipse (1).
	RadiusFactor float64

	// InnerRatio is the star inner radius as a fraction of the outer.
	// Zero picks the default.
	InnerRatio float64
}

// Outline is a parameterized figure fitted to a w by h box with the
// origin at the top-left corner.
type Outline struct {
	kind         Kind
	w, h         float64
	cx, cy       float64
	radiusFactor float64
	verts        []Point
}

// New fits a figure of the given kind into a w by h box. Non-positive or
// non-finite dimensions are coerced so sampling always yields finite
// points.
func New(kind Kind, w, h float64, opt Options) *Outline {
	if !(w > 0) || math.IsInf(w, 0) {
		w = 2
	}
	if !(h > 0) || math.IsInf(h, 0) {
		h = 2
	}

	o := &Outline{
		kind:         kind,
		w:            w,
		h:            h,
		cx:           w / 2,
		cy:           h / 2,
		radiusFactor: clamp01(opt.RadiusFactor),
	}

	switch kind {
	case KindHexagon:
		o.verts = polygonVerts(o.cx, o.cy, o.radius(), 6, 0)
	case KindTriangle:
		o.verts = polygonVerts(o.cx, o.cy, o.radius(), 3, -math.Pi/2)
	case KindDiamond:
		o.verts = polygonVerts(o.cx, o.cy, o.radius(), 4, -math.Pi/2)
	case KindStar:
		inner := opt.InnerRatio
		if inner <= 0 || inner >= 1 {
			inner = 0.5
		}
		o.verts = starVerts(o.cx, o.cy, o.radius(), o.radius()*inner)
	}

	if o.verts != nil && len(o.verts) < 3 {
		// A collapsed polygon falls back to a visible triangle rather
		// than vanishing.
		o.verts = []Point{{0, 0}, {w, 0}, {w, h}}
	}

	return o
}

// Kind reports the figure this outline was built from.
func (o *Outline) Kind() Kind { return o.kind }

// Closed reports whether u wraps around. Only the line is open.
func (o *Outline) Closed() bool { return o.kind != KindLine }

func (o *Outline) radius() float64 {
	r := o.cx
	if o.cy < r {
		r = o.cy
	}
	return r
}

// Sample returns the outline position and outward unit normal at u.
// u outside [0, 1) is wrapped.
func (o *Outline) Sample(u float64) (pos, normal Point) {
	u -= math.Floor(u)
	if math.IsNaN(u) {
		u = 0
	}

	switch o.kind {
	case KindLine:
		return Point{u * o.w, o.cy}, Point{0, -1}
	case KindRect:
		return o.sampleRect(u)
	case KindRoundedFrame:
		return o.sampleRounded(u)
	case KindCircle:
		return o.sampleEllipse(u, o.radius(), o.radius())
	default:
		return o.samplePolygon(u)
	}
}

// sampleRect walks the perimeter clockwise from the top-left corner, one
// quarter of the parameter range per edge.
func (o *Outline) sampleRect(u float64) (Point, Point) {
	seg := u * 4
	side := int(seg)
	if side > 3 {
		side = 3
	}
	t := seg - float64(side)

	switch side {
	case 0:
		return Point{t * o.w, 0}, Point{0, -1}
	case 1:
		return Point{o.w, t * o.h}, Point{1, 0}
	case 2:
		return Point{o.w - t*o.w, o.h}, Point{0, 1}
	default:
		return Point{0, o.h - t*o.h}, Point{-1, 0}
	}
}

func (o *Outline) sampleEllipse(u, rx, ry float64) (Point, Point) {
	// Phase aligned so u = 0 points toward the top-left corner, keeping
	// the ellipse in step with the rectangle walk for blending.
	theta := 2*math.Pi*u - 0.75*math.Pi
	sin, cos := math.Sincos(theta)

	pos := Point{o.cx + cos*rx, o.cy + sin*ry}

	n := Point{cos, sin}
	if rx != ry && rx > 0 && ry > 0 {
		n = normalize(Point{cos / rx, sin / ry})
	}
	return pos, n
}

// sampleRounded blends the rectangle walk with an inscribed ellipse
// according to the radius factor.
func (o *Outline) sampleRounded(u float64) (Point, Point) {
	rp, rn := o.sampleRect(u)
	if o.radiusFactor == 0 {
		return rp, rn
	}

	ep, en := o.sampleEllipse(u, o.cx, o.cy)
	t := o.radiusFactor

	pos := Point{rp.X + (ep.X-rp.X)*t, rp.Y + (ep.Y-rp.Y)*t}
	normal := normalize(Point{rn.X + (en.X-rn.X)*t, rn.Y + (en.Y-rn.Y)*t})
	return pos, normal
}

// samplePolygon walks the vertex ring edge by edge, each edge covering an
// equal share of the parameter range. Normals point radially away from
// the center.
func (o *Outline) samplePolygon(u float64) (Point, Point) {
	n := len(o.verts)
	seg := u * float64(n)
	i := int(seg)
	if i >= n {
		i = n - 1
	}
	t := seg - float64(i)

	a := o.verts[i]
	b := o.verts[(i+1)%n]
	pos := Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}

	normal := normalize(Point{pos.X - o.cx, pos.Y - o.cy})
	return pos, normal
}

func polygonVerts(cx, cy, r float64, n int, phase float64) []Point {
	verts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		theta := phase + 2*math.Pi*float64(i)/float64(n)
		sin, cos := math.Sincos(theta)
		p := Point{cx + cos*r, cy + sin*r}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		verts = append(verts, p)
	}
	return verts
}

// starVerts alternates outer and inner radius points, the first apex
// straight up.
func starVerts(cx, cy, outer, inner float64) []Point {
	verts := make([]Point, 0, 10)
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		theta := -math.Pi/2 + math.Pi*float64(i)/5
		sin, cos := math.Sincos(theta)
		p := Point{cx + cos*r, cy + sin*r}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		verts = append(verts, p)
	}
	return verts
}

func normalize(p Point) Point {
	l := math.Hypot(p.X, p.Y)
	if l < 1e-9 || math.IsNaN(l) {
		return Point{0, -1}
	}
	return Point{p.X / l, p.Y / l}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
