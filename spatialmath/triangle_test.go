package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBasicTriangleFunctions(t *testing.T) {
	expectedPts := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 3, Z: 0}, {X: 3, Y: 0, Z: 0}}
	tri := NewTriangle(expectedPts[0], expectedPts[1], expectedPts[2])

	t.Run("constructor", func(t *testing.T) {
		test.That(t, tri.Points(), test.ShouldResemble, expectedPts)
	})

	t.Run("area", func(t *testing.T) {
		test.That(t, tri.Area(), test.ShouldEqual, 4.5)
	})

	t.Run("closest point", func(t *testing.T) {
		// above the interior
		test.That(t, tri.ClosestPointToPoint(r3.Vector{X: 1, Y: 1, Z: 1}), test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 0})
		test.That(t, tri.DistanceToPoint(r3.Vector{X: 1, Y: 1, Z: 1}), test.ShouldAlmostEqual, 1)

		// beyond a corner
		test.That(t, tri.ClosestPointToPoint(r3.Vector{X: -1, Y: -1, Z: 0}), test.ShouldResemble, r3.Vector{X: 0, Y: 0, Z: 0})

		// beyond the hypotenuse
		test.That(t, tri.ClosestPointToPoint(r3.Vector{X: 3, Y: 3, Z: 0}), test.ShouldResemble, r3.Vector{X: 1.5, Y: 1.5, Z: 0})
	})
}

func TestDegenerateTriangle(t *testing.T) {
	tri := NewTriangle(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0}, r3.Vector{X: 2, Y: 0, Z: 0})
	test.That(t, tri.Area(), test.ShouldEqual, 0.0)
	test.That(t, tri.ClosestPointToPoint(r3.Vector{X: 1, Y: 2, Z: 0}), test.ShouldResemble, r3.Vector{X: 1, Y: 0, Z: 0})
}

func TestMeshMatrices(t *testing.T) {
	mesh := NewMesh([]*Triangle{
		NewTriangle(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 1, Z: 0}),
		NewTriangle(r3.Vector{X: 1, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 1, Z: 0}, r3.Vector{X: 0, Y: 1, Z: 0}),
	})
	test.That(t, len(mesh.Triangles()), test.ShouldEqual, 2)

	vertices, faces := mesh.Matrices()
	rows, cols := vertices.Dims()
	test.That(t, rows, test.ShouldEqual, 3)
	test.That(t, cols, test.ShouldEqual, 4)
	test.That(t, faces, test.ShouldResemble, [][]int{{0, 1, 2}, {1, 3, 2}})
	test.That(t, vertices.At(0, 3), test.ShouldEqual, 1.0)
	test.That(t, vertices.At(1, 3), test.ShouldEqual, 1.0)

	// zero area triangles are dropped
	mesh = NewMesh([]*Triangle{
		NewTriangle(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 1, Y: 0, Z: 0}, r3.Vector{X: 2, Y: 0, Z: 0}),
		NewTriangle(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 0, Z: 1}, r3.Vector{X: 0, Y: 1, Z: 0}),
		NewTriangle(r3.Vector{X: 5, Y: 5, Z: 5}, r3.Vector{X: 5, Y: 5, Z: 5}, r3.Vector{X: 5, Y: 5, Z: 5}),
	})
	test.That(t, len(mesh.Triangles()), test.ShouldEqual, 1)
	vertices, faces = mesh.Matrices()
	_, cols = vertices.Dims()
	test.That(t, cols, test.ShouldEqual, 3)
	test.That(t, faces, test.ShouldResemble, [][]int{{0, 1, 2}})

	vertices, faces = NewMesh(nil).Matrices()
	test.That(t, vertices, test.ShouldBeNil)
	test.That(t, faces, test.ShouldBeNil)
}
