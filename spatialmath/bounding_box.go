// Package spatialmath defines the axis aligned boxes and triangle meshes trees are built over.
package spatialmath

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimensionMismatch is returned when data of the wrong dimensionality is given to a bounding box.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrNoPoints is returned when a bounding box is set from a point matrix without any columns.
	ErrNoPoints = errors.New("no points given")
	// ErrEmptySelection is returned when a bounding box is set from an empty selection of boxes.
	ErrEmptySelection = errors.New("empty box selection")
	// ErrIndexOutOfRange is returned when a box selection refers to a box that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// BoundingBox is an axis aligned box over a fixed number of dimensions. The centroid is cached and
// is recomputed whenever the extents change.
type BoundingBox struct {
	min      []float64
	max      []float64
	centroid []float64

	populated bool
}

// NewBoundingBox returns an empty bounding box of the given dimension. Its extents are undefined
// until it is set from points or boxes.
func NewBoundingBox(dim int) *BoundingBox {
	if dim < 0 {
		dim = 0
	}
	return &BoundingBox{
		min:      make([]float64, dim),
		max:      make([]float64, dim),
		centroid: make([]float64, dim),
	}
}

// NewBoundingBoxFromPoints returns the bounding box of a matrix holding one point per column.
func NewBoundingBoxFromPoints(points mat.Matrix) (*BoundingBox, error) {
	rows, _ := points.Dims()
	bb := NewBoundingBox(rows)
	if err := bb.SetFromPoints(points); err != nil {
		return nil, err
	}
	return bb, nil
}

// NewBoundingBoxFromVectors returns the three dimensional bounding box of the given vectors.
func NewBoundingBoxFromVectors(pts ...r3.Vector) (*BoundingBox, error) {
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}
	data := mat.NewDense(3, len(pts), nil)
	for i, pt := range pts {
		data.SetCol(i, []float64{pt.X, pt.Y, pt.Z})
	}
	return NewBoundingBoxFromPoints(data)
}

// Clone returns a deep copy of the box.
func (bb *BoundingBox) Clone() *BoundingBox {
	return &BoundingBox{
		min:       bb.Min(),
		max:       bb.Max(),
		centroid:  bb.Centroid(),
		populated: bb.populated,
	}
}

// Dim returns the number of dimensions of the box.
func (bb *BoundingBox) Dim() int {
	return len(bb.centroid)
}

// Populated reports whether the box has been set from points or boxes.
func (bb *BoundingBox) Populated() bool {
	return bb.populated
}

// SetFromPoints sets the box to the per axis minimum and maximum of points, which holds one axis
// per row and one sample per column. The box is left untouched on error.
func (bb *BoundingBox) SetFromPoints(points mat.Matrix) error {
	rows, cols := points.Dims()
	if rows != bb.Dim() {
		return errors.Wrapf(ErrDimensionMismatch, "cannot set %d dimensional box from %d dimensional points", bb.Dim(), rows)
	}
	if cols == 0 {
		return ErrNoPoints
	}
	for i := 0; i < rows; i++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for j := 0; j < cols; j++ {
			v := points.At(i, j)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		bb.min[i] = lo
		bb.max[i] = hi
	}
	bb.setCentroid()
	return nil
}

// SetFromBoxes sets the box to the union of the boxes selected by ids. All checks happen before the
// box is written so a failed call has no effect.
func (bb *BoundingBox) SetFromBoxes(dim int, boxes []*BoundingBox, ids []int) error {
	if dim != bb.Dim() {
		return errors.Wrapf(ErrDimensionMismatch, "cannot set %d dimensional box as %d dimensional union", bb.Dim(), dim)
	}
	if len(ids) == 0 {
		return ErrEmptySelection
	}
	for _, id := range ids {
		if id < 0 || id >= len(boxes) {
			return errors.Wrapf(ErrIndexOutOfRange, "box id %d not in [0, %d)", id, len(boxes))
		}
		if boxes[id].Dim() != dim {
			return errors.Wrapf(ErrDimensionMismatch, "box %d has dimension %d, expected %d", id, boxes[id].Dim(), dim)
		}
	}

	for d := 0; d < dim; d++ {
		bb.min[d] = math.Inf(1)
		bb.max[d] = math.Inf(-1)
	}
	for _, id := range ids {
		other := boxes[id]
		for d := 0; d < dim; d++ {
			bb.min[d] = math.Min(bb.min[d], other.min[d])
			bb.max[d] = math.Max(bb.max[d], other.max[d])
		}
	}
	bb.setCentroid()
	return nil
}

func (bb *BoundingBox) setCentroid() {
	for i := range bb.centroid {
		bb.centroid[i] = (bb.min[i] + bb.max[i]) / 2
	}
	bb.populated = true
}

// SquaredRadius returns the squared distance from the centroid to the max corner of the box.
// The box is symmetric about its centroid, so this is the squared half diagonal: the radius of the
// sphere through every corner. It bounds the box but is not the minimal sphere around whatever
// geometry the box encloses.
func (bb *BoundingBox) SquaredRadius() float64 {
	sum := 0.
	for i := range bb.centroid {
		d := bb.max[i] - bb.centroid[i]
		sum += d * d
	}
	return sum
}

// Span returns the extent of the box along axis.
func (bb *BoundingBox) Span(axis int) float64 {
	return bb.max[axis] - bb.min[axis]
}

// Spans returns the extent of the box along every axis.
func (bb *BoundingBox) Spans() []float64 {
	spans := make([]float64, bb.Dim())
	for i := range spans {
		spans[i] = bb.Span(i)
	}
	return spans
}

// LongestAxis returns the axis with the largest span. Ties go to the lowest axis.
func (bb *BoundingBox) LongestAxis() int {
	best := 0
	for i := 1; i < bb.Dim(); i++ {
		if bb.Span(i) > bb.Span(best) {
			best = i
		}
	}
	return best
}

// CoordMin returns the lower bound of the box along axis.
func (bb *BoundingBox) CoordMin(axis int) float64 {
	return bb.min[axis]
}

// CoordMax returns the upper bound of the box along axis.
func (bb *BoundingBox) CoordMax(axis int) float64 {
	return bb.max[axis]
}

// Min returns a copy of the lower corner.
func (bb *BoundingBox) Min() []float64 {
	return append([]float64(nil), bb.min...)
}

// Max returns a copy of the upper corner.
func (bb *BoundingBox) Max() []float64 {
	return append([]float64(nil), bb.max...)
}

// Centroid returns a copy of the cached centroid.
func (bb *BoundingBox) Centroid() []float64 {
	return append([]float64(nil), bb.centroid...)
}

// CentroidAt returns the centroid coordinate along axis without copying.
func (bb *BoundingBox) CentroidAt(axis int) float64 {
	return bb.centroid[axis]
}

// SquaredDistanceToCentroid returns the squared euclidean distance between pt and the centroid.
func (bb *BoundingBox) SquaredDistanceToCentroid(pt []float64) float64 {
	sum := 0.
	for i, c := range bb.centroid {
		d := pt[i] - c
		sum += d * d
	}
	return sum
}

// Contains returns whether pt lies inside the box, boundary included.
func (bb *BoundingBox) Contains(pt []float64) bool {
	if len(pt) != bb.Dim() {
		return false
	}
	for i, v := range pt {
		if v < bb.min[i] || v > bb.max[i] {
			return false
		}
	}
	return true
}

// ContainsBox returns whether other lies entirely inside the box.
func (bb *BoundingBox) ContainsBox(other *BoundingBox) bool {
	if other.Dim() != bb.Dim() {
		return false
	}
	return bb.Contains(other.min) && bb.Contains(other.max)
}

// String returns a human readable representation of the box.
func (bb *BoundingBox) String() string {
	var sb strings.Builder
	sb.WriteString("BoundingBox{")
	for i := range bb.centroid {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "[%g, %g]", bb.min[i], bb.max[i])
	}
	sb.WriteString("}")
	return sb.String()
}
