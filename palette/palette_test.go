package palette

import "testing"

func TestParse(t *testing.T) {
	c, err := Parse("#20f08a")
	if err != nil {
		t.Fatal(err)
	}
	if c != (RGB{0x20, 0xf0, 0x8a}) {
		t.Errorf("got %+v", c)
	}

	if _, err := Parse("zzz"); err == nil {
		t.Error("expected error for malformed color")
	}
}

func TestLerpEndpoints(t *testing.T) {
	a := RGB{0, 0, 0}
	b := RGB{200, 100, 50}

	if Lerp(a, b, 0) != a {
		t.Error("t=0 should return first color")
	}
	if Lerp(a, b, 1) != b {
		t.Error("t=1 should return second color")
	}
	if Lerp(a, b, -5) != a || Lerp(a, b, 5) != b {
		t.Error("t outside [0,1] should clamp")
	}
}

func TestGradientEndpoints(t *testing.T) {
	a := RGB{10, 20, 30}
	b := RGB{250, 240, 230}
	g := NewGradient(a, b)

	if g.At(0) != a {
		t.Errorf("At(0) = %+v, want %+v", g.At(0), a)
	}
	if g.At(1) != b {
		t.Errorf("At(1) = %+v, want %+v", g.At(1), b)
	}
}

func TestGradientDegenerate(t *testing.T) {
	solid := NewGradient(RGB{9, 9, 9})
	if solid.At(0.5) != (RGB{9, 9, 9}) {
		t.Error("single-stop gradient should be solid")
	}

	empty := NewGradient()
	if empty.At(0.5) != (RGB{}) {
		t.Error("empty gradient should be zero color")
	}
}

func TestBinColorBounds(t *testing.T) {
	g := NewGradient(RGB{0, 0, 0}, RGB{255, 255, 255})

	if g.BinColor(0, Bins) != g.At(0) {
		t.Error("first bin should match gradient start")
	}
	if g.BinColor(Bins-1, Bins) != g.At(1) {
		t.Error("last bin should match gradient end")
	}
}
