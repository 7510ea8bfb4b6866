package utils

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Grid2D generates a regular rx by ry grid of points spanning [left, right] x [top, bottom]. The vertex
// matrix holds one point per column. Each face lists the four corners of one grid cell, in the order
// (i, j), (i+1, j), (i, j+1), (i+1, j+1).
func Grid2D(left, top, right, bottom float64, rx, ry int) (*mat.Dense, [][]int, error) {
	if rx < 2 || ry < 2 {
		return nil, nil, errors.Errorf("grid resolution must be at least 2 in each dimension, got %dx%d", rx, ry)
	}
	if left > right || top > bottom {
		return nil, nil, errors.New("invalid grid boundaries")
	}

	dx := (right - left) / float64(rx-1)
	dy := (bottom - top) / float64(ry-1)
	vertices := mat.NewDense(2, rx*ry, nil)
	for i := 0; i < ry; i++ {
		for j := 0; j < rx; j++ {
			vertices.SetCol(i*rx+j, []float64{left + float64(j)*dx, top + float64(i)*dy})
		}
	}

	faces := make([][]int, 0, (rx-1)*(ry-1))
	for i := 0; i < ry-1; i++ {
		for j := 0; j < rx-1; j++ {
			faces = append(faces, []int{
				i*rx + j,
				(i+1)*rx + j,
				i*rx + j + 1,
				(i+1)*rx + j + 1,
			})
		}
	}
	return vertices, faces, nil
}

// Grid3D generates a regular rx by ry by rz grid of points spanning [left, right] x [top, bottom] x
// [far, near]. Each face is one hexahedral cell listing its bottom four corners followed by its top four.
func Grid3D(left, top, far, right, bottom, near float64, rx, ry, rz int) (*mat.Dense, [][]int, error) {
	if rx < 2 || ry < 2 || rz < 2 {
		return nil, nil, errors.Errorf("grid resolution must be at least 2 in each dimension, got %dx%dx%d", rx, ry, rz)
	}
	if left > right || top > bottom || far > near {
		return nil, nil, errors.New("invalid grid boundaries")
	}

	dx := (right - left) / float64(rx-1)
	dy := (bottom - top) / float64(ry-1)
	dz := (near - far) / float64(rz-1)
	layer := rx * ry
	vertices := mat.NewDense(3, layer*rz, nil)
	for k := 0; k < rz; k++ {
		for i := 0; i < ry; i++ {
			for j := 0; j < rx; j++ {
				vertices.SetCol(k*layer+i*rx+j, []float64{
					left + float64(j)*dx,
					top + float64(i)*dy,
					far + float64(k)*dz,
				})
			}
		}
	}

	faces := make([][]int, 0, (rx-1)*(ry-1)*(rz-1))
	for k := 0; k < rz-1; k++ {
		for i := 0; i < ry-1; i++ {
			for j := 0; j < rx-1; j++ {
				base := k*layer + i*rx + j
				faces = append(faces, []int{
					base,
					base + 1,
					base + rx + 1,
					base + rx,
					base + layer,
					base + layer + 1,
					base + layer + rx + 1,
					base + layer + rx,
				})
			}
		}
	}
	return vertices, faces, nil
}
