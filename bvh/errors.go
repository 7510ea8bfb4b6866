package bvh

import "github.com/pkg/errors"

var (
	// ErrNoPrimitives is returned when a tree is requested over zero primitives.
	ErrNoPrimitives = errors.New("no primitives to build a tree over")
	// ErrEmptyPartition is returned when a split hands a child no primitives.
	ErrEmptyPartition = errors.New("empty partition")
	// ErrEmptyPrimitive is returned when a primitive lists no vertices.
	ErrEmptyPrimitive = errors.New("primitive has no vertices")
	// ErrVertexOutOfRange is returned when a primitive refers to a vertex that does not exist.
	ErrVertexOutOfRange = errors.New("vertex index out of range")
	// ErrNodeOutOfRange is returned when a node index is not in the tree.
	ErrNodeOutOfRange = errors.New("node index out of range")
)

func newEmptyPartitionError(depth, child, primitives, children int) error {
	return errors.Wrapf(ErrEmptyPartition,
		"child %d of node at depth %d is empty after splitting %d primitives %d ways", child, depth, primitives, children)
}
