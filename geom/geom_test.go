package geom

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

const testEps = 1e-9

func approxEqual(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("%s = %v, want %v (eps %v)", name, got, want, eps)
	}
}

func TestCornerAngleFromLengthsEquilateralIsSixtyDegrees(t *testing.T) {
	angle := CornerAngleFromLengths(1, 1, 1)
	approxEqual(t, "equilateral corner angle", angle, math.Pi/3, testEps)
}

func TestCornerAngleFromLengthsRightTriangle(t *testing.T) {
	// 3-4-5 right triangle: angle opposite the hypotenuse (5) is pi/2.
	angle := CornerAngleFromLengths(5, 3, 4)
	approxEqual(t, "right triangle hypotenuse angle", angle, math.Pi/2, testEps)
}

func TestFaceAreaFromLengthsEquilateral(t *testing.T) {
	area := FaceAreaFromLengths(1, 1, 1)
	approxEqual(t, "equilateral area", area, math.Sqrt(3)/4, testEps)
}

func TestCircumradiusFromLengthsEquilateral(t *testing.T) {
	r := CircumradiusFromLengths(1, 1, 1)
	approxEqual(t, "equilateral circumradius", r, 1/math.Sqrt(3), testEps)
}

func TestCircumradiusFromLengthsRightTriangleIsHalfHypotenuse(t *testing.T) {
	r := CircumradiusFromLengths(3, 4, 5)
	approxEqual(t, "right triangle circumradius", r, 2.5, testEps)
}

func TestSatisfiesTriangleInequality(t *testing.T) {
	if !SatisfiesTriangleInequality(3, 4, 5, 0) {
		t.Errorf("3-4-5 should satisfy the triangle inequality")
	}
	if SatisfiesTriangleInequality(1, 1, 3, 0) {
		t.Errorf("1-1-3 should not satisfy the triangle inequality")
	}
}

func TestLayoutTriangleFromLengthsMatchesInputLengths(t *testing.T) {
	lAB, lBC, lCA := 3.0, 4.0, 5.0
	a, b, c := LayoutTriangleFromLengths(lAB, lBC, lCA)
	if a != (orb.Point{0, 0}) {
		t.Errorf("A should be at the origin, got %v", a)
	}
	if b[1] != 0 || b[0] <= 0 {
		t.Errorf("B should be on the positive x-axis, got %v", b)
	}
	approxEqual(t, "|A-B|", Norm(Sub(b, a)), lAB, testEps)
	approxEqual(t, "|B-C|", Norm(Sub(c, b)), lBC, testEps)
	approxEqual(t, "|C-A|", Norm(Sub(c, a)), lCA, testEps)
	if c[1] <= 0 {
		t.Errorf("C should be laid out above the x-axis (CCW winding), got %v", c)
	}
}

func TestPointFromBarycentricRoundTrip(t *testing.T) {
	a, b, c := LayoutTriangleFromLengths(3, 4, 5)
	for _, w := range [][3]float64{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		{0.5, 0.25, 0.25}, {1.0 / 3, 1.0 / 3, 1.0 / 3},
	} {
		p := PointFromBarycentric(w[0], w[1], w[2], a, b, c)
		w0, w1, w2 := BarycentricFromPoint(p, a, b, c)
		approxEqual(t, "bary0 round trip", w0, w[0], testEps)
		approxEqual(t, "bary1 round trip", w1, w[1], testEps)
		approxEqual(t, "bary2 round trip", w2, w[2], testEps)
	}
}

func TestRotateIsLengthPreservingAndAdditive(t *testing.T) {
	p := orb.Point{1, 0}
	r := Rotate(p, math.Pi/2)
	approxEqual(t, "rotated x", r[0], 0, testEps)
	approxEqual(t, "rotated y", r[1], 1, testEps)

	full := Rotate(Rotate(p, math.Pi/3), 2*math.Pi/3)
	once := Rotate(p, math.Pi)
	approxEqual(t, "composed rotation x", full[0], once[0], testEps)
	approxEqual(t, "composed rotation y", full[1], once[1], testEps)
}

func TestAngleAndFromPolarRoundTrip(t *testing.T) {
	for _, theta := range []float64{0, math.Pi / 6, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		p := FromPolar(theta, 2.5)
		approxEqual(t, "recovered length", Norm(p), 2.5, testEps)
		approxEqual(t, "recovered angle", Angle(p), theta, testEps)
	}
}

func TestNormalizeBarycentricSumsToOne(t *testing.T) {
	w0, w1, w2 := NormalizeBarycentric(2, 3, 5)
	approxEqual(t, "sum", w0+w1+w2, 1, testEps)
	approxEqual(t, "w0", w0, 0.2, testEps)
	approxEqual(t, "w1", w1, 0.3, testEps)
	approxEqual(t, "w2", w2, 0.5, testEps)
}

func TestCircumcenterBarycentricEquilateralIsBarycenter(t *testing.T) {
	w0, w1, w2 := CircumcenterBarycentric(1, 1, 1)
	b0, b1, b2 := NormalizeBarycentric(w0, w1, w2)
	approxEqual(t, "equilateral circumcenter b0", b0, 1.0/3, testEps)
	approxEqual(t, "equilateral circumcenter b1", b1, 1.0/3, testEps)
	approxEqual(t, "equilateral circumcenter b2", b2, 1.0/3, testEps)
}

func TestCircumcenterBarycentricMatchesLayout(t *testing.T) {
	// A right triangle's circumcenter is the midpoint of its hypotenuse.
	lAB, lBC, lCA := 3.0, 5.0, 4.0 // right angle at A: BC is the hypotenuse
	a, b, c := LayoutTriangleFromLengths(lAB, lBC, lCA)
	w0, w1, w2 := CircumcenterBarycentric(lBC, lCA, lAB) // a=|BC|, b=|CA|, c=|AB|
	b0, b1, b2 := NormalizeBarycentric(w0, w1, w2)
	cc := PointFromBarycentric(b0, b1, b2, a, b, c)

	r := CircumradiusFromLengths(lAB, lBC, lCA)
	for _, corner := range []orb.Point{a, b, c} {
		approxEqual(t, "distance from circumcenter to corner", Norm(Sub(cc, corner)), r, 1e-6)
	}
}

func TestUnfoldApexReproducesSharedEdgeLengths(t *testing.T) {
	// Unfold a (b,c,apex)-style triangle across edge p-q and check the
	// resulting apex is the right distance from both p and q, and lies
	// on the opposite side of p-q from ref.
	p := orb.Point{0, 0}
	q := orb.Point{4, 0}
	ref := orb.Point{2, 3} // above the line p-q

	apex := UnfoldApex(p, q, 3, 5, ref)
	approxEqual(t, "|p-apex|", Norm(Sub(apex, p)), 3, testEps)
	approxEqual(t, "|q-apex|", Norm(Sub(apex, q)), 5, testEps)
	if apex[1] > 0 {
		t.Errorf("UnfoldApex should place apex opposite ref's side, got %v", apex)
	}
}
