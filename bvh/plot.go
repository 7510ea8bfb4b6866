package bvh

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"go.viam.com/bvhtree/spatialmath"
)

// Plot draws the outline of every leaf box of a two dimensional tree, colored by leaf depth.
func (t *Tree) Plot(title string) (*plot.Plot, error) {
	if t.dim != 2 {
		return nil, errors.Wrapf(spatialmath.ErrDimensionMismatch, "can only plot 2 dimensional trees, got %d", t.dim)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	for _, idx := range t.Leaves() {
		n := &t.nodes[idx]
		lo, hi := n.box.Min(), n.box.Max()
		outline, err := plotter.NewLine(plotter.XYs{
			{X: lo[0], Y: lo[1]},
			{X: hi[0], Y: lo[1]},
			{X: hi[0], Y: hi[1]},
			{X: lo[0], Y: hi[1]},
			{X: lo[0], Y: lo[1]},
		})
		if err != nil {
			return nil, errors.Wrapf(err, "cannot outline leaf %d", idx)
		}
		outline.Color = plotutil.Color(n.depth)
		p.Add(outline)
	}
	return p, nil
}
