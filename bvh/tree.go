// Package bvh builds k-ary bounding volume hierarchies of axis aligned boxes over mesh primitives and
// exposes the per node distance bounds used to prune spatial queries.
package bvh

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/bvhtree/logging"
	"go.viam.com/bvhtree/spatialmath"
	"go.viam.com/bvhtree/utils"
)

// Tree is an immutable bounding volume hierarchy stored as an arena of nodes. The root is node 0 and
// nodes refer to each other by arena index. A Tree is safe for concurrent reads.
type Tree struct {
	nodes         []Node
	cfg           Config
	dim           int
	numPrimitives int
}

// Create builds a tree over the primitives in faces. vertices holds one point per column; every
// entry of faces lists the vertex indices (columns of vertices) making up one primitive. The config
// is clamped to its minimums before use. On error no tree is returned.
//
// A node becomes a leaf when it holds fewer than SplitLimit primitives, sits at MaxDepth, or holds
// fewer primitives than NumberChildren. The last rule means a branching factor larger than the
// primitive count yields a leaf rather than ErrEmptyPartition.
func Create(vertices mat.Matrix, faces [][]int, cfg Config, logger logging.Logger) (*Tree, error) {
	if logger == nil {
		logger = logging.Global()
	}
	clamped := cfg.Clamped()
	if clamped != cfg {
		logger.Debugw("adjusted bvh config", "requested", cfg, "effective", clamped)
	}
	if len(faces) == 0 {
		return nil, ErrNoPrimitives
	}

	boxes, err := primitiveBoundingBoxes(vertices, faces)
	if err != nil {
		return nil, err
	}

	dim, _ := vertices.Dims()
	b := &builder{
		cfg:   clamped,
		dim:   dim,
		boxes: boxes,
		nodes: make([]Node, 0, estimateNodeCount(len(faces), clamped)),
	}
	if _, err := b.build(lo.Range(len(faces)), 0); err != nil {
		return nil, err
	}

	tree := &Tree{
		nodes:         b.nodes,
		cfg:           clamped,
		dim:           dim,
		numPrimitives: len(faces),
	}
	logger.Debugw("built bvh", "primitives", len(faces), "nodes", len(tree.nodes), "leaves", len(tree.Leaves()))
	return tree, nil
}

// primitiveBoundingBoxes computes the box of every face in parallel. Each worker reads the shared
// vertices and writes only its own slot of the result.
func primitiveBoundingBoxes(vertices mat.Matrix, faces [][]int) ([]*spatialmath.BoundingBox, error) {
	dim, numVertices := vertices.Dims()
	boxes := make([]*spatialmath.BoundingBox, len(faces))
	err := utils.ParallelForEach(len(faces), func(i int) error {
		face := faces[i]
		if len(face) == 0 {
			return errors.Wrapf(ErrEmptyPrimitive, "primitive %d", i)
		}
		points := mat.NewDense(dim, len(face), nil)
		for j, v := range face {
			if v < 0 || v >= numVertices {
				return errors.Wrapf(ErrVertexOutOfRange, "primitive %d refers to vertex %d of %d", i, v, numVertices)
			}
			points.SetCol(j, mat.Col(nil, v, vertices))
		}
		box := spatialmath.NewBoundingBox(dim)
		if err := box.SetFromPoints(points); err != nil {
			return errors.Wrapf(err, "primitive %d", i)
		}
		boxes[i] = box
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot compute primitive bounding boxes")
	}
	return boxes, nil
}

// estimateNodeCount sizes the arena for a tree whose leaves hold about SplitLimit primitives.
func estimateNodeCount(numPrimitives int, cfg Config) int {
	const maxReserve = 100000
	leaves := numPrimitives/cfg.SplitLimit + 1
	estimate := 2 * leaves
	if estimate > maxReserve {
		return maxReserve
	}
	return estimate
}

type builder struct {
	cfg   Config
	dim   int
	boxes []*spatialmath.BoundingBox
	nodes []Node
}

// build appends the node covering ids and, unless it is a leaf, recursively builds its children.
// It returns the arena index of the node.
func (b *builder) build(ids []int, depth int) (int, error) {
	box := spatialmath.NewBoundingBox(b.dim)
	if err := box.SetFromBoxes(b.dim, b.boxes, ids); err != nil {
		return 0, errors.Wrapf(err, "cannot bound node at depth %d", depth)
	}
	nodeID := len(b.nodes)
	b.nodes = append(b.nodes, Node{
		box:      box,
		radiusSq: box.SquaredRadius(),
		depth:    depth,
	})

	if b.isLeaf(len(ids), depth) {
		b.nodes[nodeID].content = leafContent{primitiveIDs: append([]int(nil), ids...)}
		return nodeID, nil
	}

	parts, err := b.split(ids, box, depth)
	if err != nil {
		return 0, err
	}
	children := make([]int, len(parts))
	b.nodes[nodeID].content = internalContent{children: children}
	for i, part := range parts {
		childID, err := b.build(part, depth+1)
		if err != nil {
			return 0, err
		}
		children[i] = childID
	}
	return nodeID, nil
}

// isLeaf holds when the node is under the split limit, at the depth limit, or has fewer primitives
// than children to hand them to. The comparison against SplitLimit is strict: a node of exactly
// SplitLimit primitives is split.
func (b *builder) isLeaf(size, depth int) bool {
	return size < b.cfg.SplitLimit || depth >= b.cfg.MaxDepth || size < b.cfg.NumberChildren
}

// split sorts ids by primitive centroid along the longest axis of box and cuts them into
// NumberChildren contiguous parts. The first parts hold floor(n/k) ids each, the last takes the rest.
func (b *builder) split(ids []int, box *spatialmath.BoundingBox, depth int) ([][]int, error) {
	axis := box.LongestAxis()
	sort.SliceStable(ids, func(i, j int) bool {
		return b.boxes[ids[i]].CentroidAt(axis) < b.boxes[ids[j]].CentroidAt(axis)
	})

	k := b.cfg.NumberChildren
	n := len(ids)
	per := n / k
	parts := make([][]int, k)
	for i := 0; i < k-1; i++ {
		parts[i] = ids[i*per : (i+1)*per : (i+1)*per]
	}
	parts[k-1] = ids[(k-1)*per:]

	for i, part := range parts {
		if len(part) == 0 {
			return nil, newEmptyPartitionError(depth, i, n, k)
		}
	}
	return parts, nil
}

// Root returns the root node. Nodes are read only; the tree cannot be changed through them.
func (t *Tree) Root() *Node {
	return &t.nodes[0]
}

// Node returns the node at arena index i.
func (t *Tree) Node(i int) (*Node, error) {
	if i < 0 || i >= len(t.nodes) {
		return nil, errors.Wrapf(ErrNodeOutOfRange, "node %d not in [0, %d)", i, len(t.nodes))
	}
	return &t.nodes[i], nil
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Config returns the clamped config the tree was built with.
func (t *Tree) Config() Config {
	return t.cfg
}

// Dim returns the dimension of the bounding boxes.
func (t *Tree) Dim() int {
	return t.dim
}

// NumPrimitives returns the number of primitives the tree was built over.
func (t *Tree) NumPrimitives() int {
	return t.numPrimitives
}

// Walk visits nodes depth first, parents before children and children in split order. Returning
// false from fn skips the subtree below that node.
func (t *Tree) Walk(fn func(index int, n *Node) bool) {
	t.walk(0, fn)
}

func (t *Tree) walk(index int, fn func(int, *Node) bool) {
	n := &t.nodes[index]
	if !fn(index, n) {
		return
	}
	if internal, ok := n.content.(internalContent); ok {
		for _, child := range internal.children {
			t.walk(child, fn)
		}
	}
}

// Leaves returns the arena indices of all leaves in walk order.
func (t *Tree) Leaves() []int {
	var leaves []int
	t.Walk(func(index int, n *Node) bool {
		if n.IsLeaf() {
			leaves = append(leaves, index)
		}
		return true
	})
	return leaves
}
