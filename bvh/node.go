package bvh

import (
	"math"

	"go.viam.com/bvhtree/spatialmath"
)

// nodeContent is either a leafContent or an internalContent.
type nodeContent interface {
	isNodeContent()
}

type leafContent struct {
	primitiveIDs []int
}

type internalContent struct {
	children []int
}

func (leafContent) isNodeContent()     {}
func (internalContent) isNodeContent() {}

// Node is one bounding volume of the tree. A leaf lists the primitives it holds, an internal node
// lists the arena indices of its children. Nodes are read only: every accessor returns a copy.
type Node struct {
	box      *spatialmath.BoundingBox
	radiusSq float64
	depth    int

	content nodeContent
}

// Box returns a copy of the box covering every primitive beneath the node.
func (n *Node) Box() *spatialmath.BoundingBox {
	return n.box.Clone()
}

// RadiusSq returns the squared radius of the sphere around the box centroid that encloses the box.
func (n *Node) RadiusSq() float64 {
	return n.radiusSq
}

// Depth is zero at the root and grows by one per level.
func (n *Node) Depth() int {
	return n.depth
}

// IsLeaf returns whether the node holds primitives rather than children.
func (n *Node) IsLeaf() bool {
	_, ok := n.content.(leafContent)
	return ok
}

// PrimitiveIDs returns a copy of the primitives of a leaf. ok is false for internal nodes.
func (n *Node) PrimitiveIDs() (ids []int, ok bool) {
	leaf, ok := n.content.(leafContent)
	if !ok {
		return nil, false
	}
	return append([]int(nil), leaf.primitiveIDs...), true
}

// Children returns a copy of the arena indices of an internal node's children, in split order. ok
// is false for leaves.
func (n *Node) Children() (children []int, ok bool) {
	internal, ok := n.content.(internalContent)
	if !ok {
		return nil, false
	}
	return append([]int(nil), internal.children...), true
}

// SquaredDistance returns the squared distance between point and the centroid of the node.
func (n *Node) SquaredDistance(point []float64) float64 {
	return n.box.SquaredDistanceToCentroid(point)
}

// DistanceLowerBound returns a value no larger than the distance from point to anything inside the
// node. It is negative when point is inside the bounding sphere.
func (n *Node) DistanceLowerBound(point []float64) float64 {
	return math.Sqrt(n.SquaredDistance(point)) - math.Sqrt(n.radiusSq)
}

// DistanceUpperBound returns a value no smaller than the distance from point to anything inside the node.
func (n *Node) DistanceUpperBound(point []float64) float64 {
	return math.Sqrt(n.SquaredDistance(point)) + math.Sqrt(n.radiusSq)
}

// IsFarEnough reports whether point is at least beta bounding radii away from the node centroid, in
// which case the node may be treated as a single aggregate instead of being descended into.
func (n *Node) IsFarEnough(point []float64, beta float64) bool {
	return n.SquaredDistance(point) >= beta*beta*n.radiusSq
}
