// Package geom implements the Euclidean primitives that the intrinsic
// triangulation core treats as an external collaborator: corner
// angles from edge lengths, 2D triangle layout, circumradius and area,
// and barycentric-coordinate normalization.
package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// triangleEPS guards against acos/sqrt domain errors from
// floating-point drift at degenerate triangles.
const triangleEPS = 1e-12

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// CornerAngleFromLengths returns the interior angle, in radians,
// opposite the side of length "opposite" in a triangle whose other
// two sides have lengths a and b (law of cosines).
func CornerAngleFromLengths(opposite, a, b float64) float64 {
	if a < triangleEPS || b < triangleEPS {
		return 0
	}
	cosTheta := (a*a + b*b - opposite*opposite) / (2 * a * b)
	return math.Acos(clamp(cosTheta, -1, 1))
}

// FaceAreaFromLengths returns the area of a triangle with the given
// three side lengths, via Heron's formula.
func FaceAreaFromLengths(a, b, c float64) float64 {
	s := (a + b + c) / 2
	v := s * (s - a) * (s - b) * (s - c)
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

// CircumradiusFromLengths returns the radius of the circle through the
// three vertices of a triangle with the given side lengths.
func CircumradiusFromLengths(a, b, c float64) float64 {
	area := FaceAreaFromLengths(a, b, c)
	if area < triangleEPS {
		return math.Inf(1)
	}
	return (a * b * c) / (4 * area)
}

// SatisfiesTriangleInequality reports whether three lengths can form a
// (possibly degenerate, if slack==0) triangle with the given slack
// margin.
func SatisfiesTriangleInequality(a, b, c, slack float64) bool {
	return a+b > c+slack && b+c > a+slack && c+a > b+slack
}

// LayoutTriangleFromLengths places a triangle in the 2D plane given
// its three side lengths lAB (A-B), lBC (B-C), lCA (C-A): A at the
// origin, B on the positive x-axis, and C positioned above the x-axis
// (CCW winding) by circle-circle intersection.
func LayoutTriangleFromLengths(lAB, lBC, lCA float64) (a, b, c orb.Point) {
	a = orb.Point{0, 0}
	b = orb.Point{lAB, 0}

	// |C-A| = lCA, |C-B| = lBC, solve for C = (x,y), y>0.
	x := (lCA*lCA + lAB*lAB - lBC*lBC) / (2 * lAB)
	y2 := lCA*lCA - x*x
	if y2 < 0 {
		y2 = 0
	}
	y := math.Sqrt(y2)
	c = orb.Point{x, y}
	return a, b, c
}

// NormalizeBarycentric rescales three barycentric coordinates so they
// sum to 1. Negative components are kept (a point outside the
// triangle has one); a sum near zero yields equal thirds.
func NormalizeBarycentric(b0, b1, b2 float64) (float64, float64, float64) {
	sum := b0 + b1 + b2
	if math.Abs(sum) < triangleEPS {
		return 1.0 / 3, 1.0 / 3, 1.0 / 3
	}
	return b0 / sum, b1 / sum, b2 / sum
}

// PointFromBarycentric evaluates a 2D point from barycentric
// coordinates against a laid-out triangle.
func PointFromBarycentric(b0, b1, b2 float64, a, b, c orb.Point) orb.Point {
	return orb.Point{
		b0*a[0] + b1*b[0] + b2*c[0],
		b0*a[1] + b1*b[1] + b2*c[1],
	}
}

// Sub, Add, Scale and Norm are the small set of 2D vector operations
// the triangulation layers need on top of orb.Point.
func Sub(p, q orb.Point) orb.Point   { return orb.Point{p[0] - q[0], p[1] - q[1]} }
func Add(p, q orb.Point) orb.Point   { return orb.Point{p[0] + q[0], p[1] + q[1]} }
func Scale(p orb.Point, s float64) orb.Point { return orb.Point{p[0] * s, p[1] * s} }
func Norm(p orb.Point) float64       { return math.Hypot(p[0], p[1]) }
func Dot(p, q orb.Point) float64     { return p[0]*q[0] + p[1]*q[1] }

// Angle returns the polar angle of p, in [0, 2*pi).
func Angle(p orb.Point) float64 {
	t := math.Atan2(p[1], p[0])
	if t < 0 {
		t += 2 * math.Pi
	}
	return t
}

// FromPolar builds a 2D vector of the given length at the given polar
// angle (radians).
func FromPolar(angle, length float64) orb.Point {
	return orb.Point{length * math.Cos(angle), length * math.Sin(angle)}
}

// Rotate returns p rotated CCW by theta radians about the origin.
func Rotate(p orb.Point, theta float64) orb.Point {
	s, c := math.Sin(theta), math.Cos(theta)
	return orb.Point{p[0]*c - p[1]*s, p[0]*s + p[1]*c}
}

// BarycentricFromPoint inverts PointFromBarycentric: given a point p
// known to lie in the plane of triangle (a,b,c), returns its
// barycentric weights.
func BarycentricFromPoint(p, a, b, c orb.Point) (float64, float64, float64) {
	v0 := Sub(b, a)
	v1 := Sub(c, a)
	v2 := Sub(p, a)
	d00 := Dot(v0, v0)
	d01 := Dot(v0, v1)
	d11 := Dot(v1, v1)
	d20 := Dot(v2, v0)
	d21 := Dot(v2, v1)
	denom := d00*d11 - d01*d01
	if math.Abs(denom) < triangleEPS {
		return 1.0 / 3, 1.0 / 3, 1.0 / 3
	}
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	return u, v, w
}

// UnfoldApex computes the position of a triangle's third vertex given
// its other two vertices p and q already placed in world coordinates,
// and the edge lengths from p and from q to the unknown apex. Of the
// two candidate positions, it returns the one on the opposite side of
// line p-q from ref — the standard "unfolding" step used to flatten a
// neighboring face across a shared edge during geodesic tracing.
func UnfoldApex(p, q orb.Point, lenP, lenQ float64, ref orb.Point) orb.Point {
	pq := Sub(q, p)
	l := Norm(pq)
	if l < triangleEPS {
		return p
	}
	ux := Scale(pq, 1/l)
	uy := orb.Point{-ux[1], ux[0]}

	x := (lenP*lenP + l*l - lenQ*lenQ) / (2 * l)
	y2 := lenP*lenP - x*x
	if y2 < 0 {
		y2 = 0
	}
	y := math.Sqrt(y2)

	base := Add(p, Scale(ux, x))
	cand1 := Add(base, Scale(uy, y))
	cand2 := Add(base, Scale(uy, -y))

	side := func(pt orb.Point) float64 { return Dot(Sub(pt, p), uy) }
	if side(ref) >= 0 {
		if side(cand2) <= 0 {
			return cand2
		}
		return cand1
	}
	if side(cand1) >= 0 {
		return cand1
	}
	return cand2
}
