// Package cli contains the bvh command line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg"

	"go.viam.com/bvhtree/bvh"
	"go.viam.com/bvhtree/logging"
	"go.viam.com/bvhtree/utils"
)

const (
	// Flags.
	generalFlagConfig  = "config"
	generalFlagDebug   = "debug"
	generalFlagLogFile = "log-file"
	treeFlagSplitLimit = "split-limit"
	treeFlagChildren   = "children"
	treeFlagMaxDepth   = "max-depth"
	gridFlagResolution = "resolution"
	gridFlagMin        = "min"
	gridFlagMax        = "max"
	queryFlagPoint     = "point"
	queryFlagBeta      = "beta"
	plotFlagOut        = "out"
	plotFlagSize       = "size"
)

// treeFlags returns the flags describing the tree and the grid it is built over. Every command
// gets its own flag values.
func treeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  treeFlagSplitLimit,
			Usage: "smallest primitive count that is split further",
		},
		&cli.IntFlag{
			Name:  treeFlagChildren,
			Usage: "branching factor of internal nodes",
		},
		&cli.IntFlag{
			Name:  treeFlagMaxDepth,
			Usage: "maximum depth of the tree",
		},
		&cli.IntSliceFlag{
			Name:  gridFlagResolution,
			Usage: "number of grid points per axis, e.g. 16,16 or 8,8,8",
			Value: cli.NewIntSlice(16, 16),
		},
		&cli.Float64SliceFlag{
			Name:  gridFlagMin,
			Usage: "lower corner of the grid, defaults to the origin",
		},
		&cli.Float64SliceFlag{
			Name:  gridFlagMax,
			Usage: "upper corner of the grid, defaults to all ones",
		},
	}
}

// NewApp returns the bvh command line application writing its output to out. Logs go to stdout
// unless a logger or a log file is given.
func NewApp(out io.Writer, logger logging.Logger) *cli.App {
	var appLogger logging.Logger

	return &cli.App{
		Name:      "bvh",
		Usage:     "build bounding volume hierarchies over generated grid meshes",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    generalFlagConfig,
				Aliases: []string{"c"},
				Usage:   "load tree configuration from JSON `FILE`",
			},
			&cli.BoolFlag{
				Name:  generalFlagDebug,
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogFile,
				Usage: "write logs to a size rotated `FILE` instead of stdout",
			},
		},
		Before: func(c *cli.Context) error {
			level := logging.INFO
			if c.Bool(generalFlagDebug) {
				level = logging.DEBUG
			}
			switch {
			case c.String(generalFlagLogFile) != "":
				appLogger = logging.NewFileLogger("bvh", c.String(generalFlagLogFile), level)
			case logger != nil:
				appLogger = logger.Sublogger("bvh")
				if c.Bool(generalFlagDebug) {
					appLogger.SetLevel(logging.DEBUG)
				}
			default:
				appLogger = logging.NewLogger("bvh")
				appLogger.SetLevel(level)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if appLogger == nil {
				return nil
			}
			//nolint:errcheck
			appLogger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "stats",
				Usage: "build a tree over a grid and print its statistics",
				Flags: treeFlags(),
				Action: func(c *cli.Context) error {
					tree, err := buildFromFlags(c, appLogger)
					if err != nil {
						return err
					}
					cfg := tree.Config()
					fmt.Fprintf(c.App.Writer, "split limit %d, children %d, max depth %d\n",
						cfg.SplitLimit, cfg.NumberChildren, cfg.MaxDepth)
					fmt.Fprintln(c.App.Writer, tree.Stats().String())
					return nil
				},
			},
			{
				Name:  "query",
				Usage: "print the distance bounds of the root and count the nodes far enough from a point",
				Flags: append([]cli.Flag{
					&cli.Float64SliceFlag{
						Name:     queryFlagPoint,
						Usage:    "query point, e.g. 0.5,0.5",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  queryFlagBeta,
						Usage: "separation ratio for the admissibility test",
						Value: 2,
					},
				}, treeFlags()...),
				Action: func(c *cli.Context) error {
					tree, err := buildFromFlags(c, appLogger)
					if err != nil {
						return err
					}
					point := c.Float64Slice(queryFlagPoint)
					if len(point) != tree.Dim() {
						return errors.Errorf("query point has %d coordinates, grid has %d", len(point), tree.Dim())
					}
					root := tree.Root()
					fmt.Fprintf(c.App.Writer, "root bounds: [%.4f, %.4f]\n",
						root.DistanceLowerBound(point), root.DistanceUpperBound(point))
					fmt.Fprintf(c.App.Writer, "admissible nodes: %d\n", countAdmissible(tree, point, c.Float64(queryFlagBeta)))
					return nil
				},
			},
			{
				Name:  "plot",
				Usage: "draw the leaf boxes of a tree over a 2 dimensional grid",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     plotFlagOut,
						Usage:    "output `FILE`, the extension picks the format (png, svg, pdf)",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  plotFlagSize,
						Usage: "width and height of the image in inches",
						Value: 6,
					},
				}, treeFlags()...),
				Action: func(c *cli.Context) error {
					tree, err := buildFromFlags(c, appLogger)
					if err != nil {
						return err
					}
					p, err := tree.Plot(fmt.Sprintf("%d primitives", tree.NumPrimitives()))
					if err != nil {
						return err
					}
					size := vg.Length(c.Float64(plotFlagSize)) * vg.Inch
					if err := p.Save(size, size, c.String(plotFlagOut)); err != nil {
						return errors.Wrapf(err, "cannot save plot to %q", c.String(plotFlagOut))
					}
					fmt.Fprintf(c.App.Writer, "wrote %d leaves to %s\n", len(tree.Leaves()), c.String(plotFlagOut))
					return nil
				},
			},
			{
				Name:  "schema",
				Usage: "print the JSON schema of the --config file",
				Action: func(c *cli.Context) error {
					data, err := json.MarshalIndent(bvh.ConfigSchema(), "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, string(data))
					return nil
				},
			},
		},
	}
}

// countAdmissible counts the nodes a Barnes-Hut style traversal would summarize rather than open:
// far enough nodes are counted and not descended into.
func countAdmissible(tree *bvh.Tree, point []float64, beta float64) int {
	count := 0
	tree.Walk(func(_ int, n *bvh.Node) bool {
		if n.IsFarEnough(point, beta) {
			count++
			return false
		}
		return true
	})
	return count
}

func buildFromFlags(c *cli.Context, logger logging.Logger) (*bvh.Tree, error) {
	cfg := bvh.DefaultConfig()
	if path := c.String(generalFlagConfig); path != "" {
		var err error
		if cfg, err = bvh.ReadConfigFile(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet(treeFlagSplitLimit) {
		cfg.SplitLimit = c.Int(treeFlagSplitLimit)
	}
	if c.IsSet(treeFlagChildren) {
		cfg.NumberChildren = c.Int(treeFlagChildren)
	}
	if c.IsSet(treeFlagMaxDepth) {
		cfg.MaxDepth = c.Int(treeFlagMaxDepth)
	}

	vertices, faces, err := gridFromFlags(c)
	if err != nil {
		return nil, err
	}
	return bvh.Create(vertices, faces, cfg, logger)
}

func gridFromFlags(c *cli.Context) (*mat.Dense, [][]int, error) {
	resolution := c.IntSlice(gridFlagResolution)
	dim := len(resolution)
	if dim != 2 && dim != 3 {
		return nil, nil, errors.Errorf("grids are 2 or 3 dimensional, got resolution %v", resolution)
	}
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for i := range hi {
		hi[i] = 1
	}
	if c.IsSet(gridFlagMin) {
		lo = c.Float64Slice(gridFlagMin)
	}
	if c.IsSet(gridFlagMax) {
		hi = c.Float64Slice(gridFlagMax)
	}
	if len(lo) != dim || len(hi) != dim {
		return nil, nil, errors.Errorf("grid corners must have %d coordinates", dim)
	}

	if dim == 2 {
		return utils.Grid2D(lo[0], lo[1], hi[0], hi[1], resolution[0], resolution[1])
	}
	return utils.Grid3D(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2], resolution[0], resolution[1], resolution[2])
}
