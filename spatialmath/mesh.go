package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Mesh is a set of triangles.
type Mesh struct {
	triangles []*Triangle
}

// NewMesh returns a mesh made of the given triangles. Degenerate triangles with zero area are
// dropped, so they never become primitives.
func NewMesh(triangles []*Triangle) *Mesh {
	kept := make([]*Triangle, 0, len(triangles))
	for _, tri := range triangles {
		if tri.Area() > 0 {
			kept = append(kept, tri)
		}
	}
	return &Mesh{triangles: kept}
}

// Triangles returns the triangles of the mesh.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// Matrices returns the mesh as a 3xN vertex matrix with one vertex per column and one face per
// triangle listing its three vertex indices. Identical corners share a vertex.
func (m *Mesh) Matrices() (*mat.Dense, [][]int) {
	if len(m.triangles) == 0 {
		return nil, nil
	}
	index := map[r3.Vector]int{}
	var verts []r3.Vector
	faces := make([][]int, 0, len(m.triangles))
	for _, tri := range m.triangles {
		face := make([]int, 0, 3)
		for _, pt := range tri.Points() {
			idx, ok := index[pt]
			if !ok {
				idx = len(verts)
				index[pt] = idx
				verts = append(verts, pt)
			}
			face = append(face, idx)
		}
		faces = append(faces, face)
	}

	vertices := mat.NewDense(3, len(verts), nil)
	for i, v := range verts {
		vertices.SetCol(i, []float64{v.X, v.Y, v.Z})
	}
	return vertices, faces
}
