package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Triangle is a three dimensional triangle used as a mesh primitive.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector
}

// NewTriangle returns a triangle through the three points.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{p0: p0, p1: p1, p2: p2}
}

// Points returns the corners of the triangle.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Area returns the area of the triangle.
func (t *Triangle) Area() float64 {
	return 0.5 * t.p1.Sub(t.p0).Cross(t.p2.Sub(t.p0)).Norm()
}

// ClosestPointToPoint returns the point on the triangle closest to pt.
func (t *Triangle) ClosestPointToPoint(pt r3.Vector) r3.Vector {
	if closest, inside := t.closestInsidePoint(pt); inside {
		return closest
	}

	// the closest point lies on an edge
	closest := closestPointSegmentPoint(t.p0, t.p1, pt)
	best := pt.Sub(closest).Norm2()
	for _, edge := range [][2]r3.Vector{{t.p1, t.p2}, {t.p2, t.p0}} {
		candidate := closestPointSegmentPoint(edge[0], edge[1], pt)
		if d := pt.Sub(candidate).Norm2(); d < best {
			closest, best = candidate, d
		}
	}
	return closest
}

// DistanceToPoint returns the euclidean distance from pt to the closest point of the triangle.
func (t *Triangle) DistanceToPoint(pt r3.Vector) float64 {
	return pt.Sub(t.ClosestPointToPoint(pt)).Norm()
}

// closestInsidePoint projects pt onto the plane of the triangle and reports whether the projection
// falls inside it.
func (t *Triangle) closestInsidePoint(pt r3.Vector) (r3.Vector, bool) {
	const eps = 1e-6

	// Q = p0 + u*e0 + v*e1 with 0 <= u, v and u+v <= 1
	e0 := t.p1.Sub(t.p0)
	e1 := t.p2.Sub(t.p0)
	a := e0.Norm2()
	b := e0.Dot(e1)
	c := e1.Norm2()
	d := pt.Sub(t.p0)
	det := a*c - b*b
	if det == 0 {
		return pt, false
	}
	u := (c*e0.Dot(d) - b*e1.Dot(d)) / det
	v := (-b*e0.Dot(d) + a*e1.Dot(d)) / det
	inside := (0 <= u+eps) && (u <= 1+eps) && (0 <= v+eps) && (v <= 1+eps) && (u+v <= 1+eps)
	return t.p0.Add(e0.Mul(u)).Add(e1.Mul(v)), inside
}

func closestPointSegmentPoint(segStart, segEnd, pt r3.Vector) r3.Vector {
	dir := segEnd.Sub(segStart)
	length := dir.Norm2()
	if length == 0 {
		return segStart
	}
	s := pt.Sub(segStart).Dot(dir) / length
	switch {
	case s <= 0:
		return segStart
	case s >= 1:
		return segEnd
	default:
		return segStart.Add(dir.Mul(s))
	}
}
