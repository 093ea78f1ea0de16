package shape

import (
	"math"
	"testing"
)

func TestRectCorners(t *testing.T) {
	o := New(KindRect, 800, 200, Options{})

	cases := []struct {
		u    float64
		x, y float64
	}{
		{0, 0, 0},
		{0.25, 800, 0},
		{0.5, 800, 200},
		{0.75, 0, 200},
	}

	for _, c := range cases {
		p, _ := o.Sample(c.u)
		if math.Abs(p.X-c.x) > 1e-9 || math.Abs(p.Y-c.y) > 1e-9 {
			t.Errorf("u=%v: got (%v, %v), want (%v, %v)", c.u, p.X, p.Y, c.x, c.y)
		}
	}
}

func TestRectNormals(t *testing.T) {
	o := New(KindRect, 100, 100, Options{})

	p, n := o.Sample(0.125)
	if n != (Point{0, -1}) {
		t.Errorf("top edge normal = %+v", n)
	}
	if p.Y != 0 {
		t.Errorf("top edge point = %+v", p)
	}

	_, n = o.Sample(0.625)
	if n != (Point{0, 1}) {
		t.Errorf("bottom edge normal = %+v", n)
	}
}

func TestWraparound(t *testing.T) {
	for _, kind := range []Kind{KindRect, KindCircle, KindHexagon, KindStar, KindRoundedFrame} {
		o := New(kind, 640, 480, Options{RadiusFactor: 0.5})

		p0, n0 := o.Sample(0)
		p1, n1 := o.Sample(1)
		p2, n2 := o.Sample(2.25)
		q, _ := o.Sample(0.25)

		if math.Abs(p0.X-p1.X) > 1e-9 || math.Abs(p0.Y-p1.Y) > 1e-9 {
			t.Errorf("%v: Sample(1) != Sample(0): %+v vs %+v", kind, p1, p0)
		}
		if math.Abs(n0.X-n1.X) > 1e-9 || math.Abs(n0.Y-n1.Y) > 1e-9 {
			t.Errorf("%v: normals differ across wrap", kind)
		}
		if math.Abs(p2.X-q.X) > 1e-9 || math.Abs(p2.Y-q.Y) > 1e-9 {
			t.Errorf("%v: Sample(2.25) != Sample(0.25)", kind)
		}
		_, _ = n2, q
	}
}

func TestUnitNormals(t *testing.T) {
	for _, kind := range []Kind{KindLine, KindRect, KindRoundedFrame, KindCircle, KindHexagon, KindTriangle, KindDiamond, KindStar} {
		o := New(kind, 800, 450, Options{RadiusFactor: 0.7})
		for i := 0; i < 64; i++ {
			u := float64(i) / 64
			p, n := o.Sample(u)
			if math.IsNaN(p.X) || math.IsNaN(p.Y) {
				t.Fatalf("%v: NaN position at u=%v", kind, u)
			}
			l := math.Hypot(n.X, n.Y)
			if math.Abs(l-1) > 1e-6 {
				t.Fatalf("%v: normal length %v at u=%v", kind, l, u)
			}
		}
	}
}

func TestStarApexUp(t *testing.T) {
	o := New(KindStar, 200, 200, Options{})

	p, n := o.Sample(0)
	if math.Abs(p.X-100) > 1e-9 || math.Abs(p.Y-0) > 1e-9 {
		t.Errorf("first apex at %+v, want (100, 0)", p)
	}
	if math.Abs(n.X) > 1e-9 || n.Y >= 0 {
		t.Errorf("apex normal %+v should point up", n)
	}
}

func TestRoundedFrameBlend(t *testing.T) {
	rect := New(KindRoundedFrame, 400, 400, Options{RadiusFactor: 0})
	ell := New(KindRoundedFrame, 400, 400, Options{RadiusFactor: 1})
	circ := New(KindCircle, 400, 400, Options{})

	p, _ := rect.Sample(0)
	if p != (Point{0, 0}) {
		t.Errorf("radius 0 should match rectangle, got %+v", p)
	}

	for i := 0; i < 16; i++ {
		u := float64(i) / 16
		pe, _ := ell.Sample(u)
		pc, _ := circ.Sample(u)
		if math.Abs(pe.X-pc.X) > 1e-9 || math.Abs(pe.Y-pc.Y) > 1e-9 {
			t.Fatalf("radius 1 should match circle at u=%v: %+v vs %+v", u, pe, pc)
		}
	}
}

func TestDegenerateDimensions(t *testing.T) {
	for _, kind := range []Kind{KindRect, KindCircle, KindHexagon, KindStar} {
		o := New(kind, 0, math.NaN(), Options{})
		for i := 0; i < 8; i++ {
			p, n := o.Sample(float64(i) / 8)
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(n.X) || math.IsNaN(n.Y) {
				t.Fatalf("%v: NaN output for degenerate box", kind)
			}
		}
	}
}

func TestSegmentsClamp(t *testing.T) {
	if got := Segments(1); got != MinSegments {
		t.Errorf("Segments(1) = %d, want %d", got, MinSegments)
	}
	if got := Segments(100); got != 400 {
		t.Errorf("Segments(100) = %d, want 400", got)
	}
	if got := Segments(1e6); got != MaxSegments {
		t.Errorf("Segments(1e6) = %d, want %d", got, MaxSegments)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Star")
	if err != nil || k != KindStar {
		t.Errorf("ParseKind(Star) = %v, %v", k, err)
	}
	if _, err := ParseKind("dodecahedron"); err == nil {
		t.Error("expected error for unknown shape")
	}
}
