package bvh

import (
	"fmt"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
)

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes          int
	Leaves         int
	MaxDepth       int
	Primitives     int
	MeanLeafSize   float64
	MedianLeafSize float64
	MaxLeafSize    float64
	// LeavesPerDepth counts leaves at each depth, indexed by depth.
	LeavesPerDepth []int

	leafSizes []float64
}

const leafSizeBins = 4

// Stats computes summary statistics over the tree.
func (t *Tree) Stats() Stats {
	s := Stats{Nodes: len(t.nodes), Primitives: t.numPrimitives}
	var sizes stats.Float64Data
	t.Walk(func(_ int, n *Node) bool {
		if n.depth > s.MaxDepth {
			s.MaxDepth = n.depth
		}
		leaf, ok := n.content.(leafContent)
		if !ok {
			return true
		}
		s.Leaves++
		sizes = append(sizes, float64(len(leaf.primitiveIDs)))
		for len(s.LeavesPerDepth) <= n.depth {
			s.LeavesPerDepth = append(s.LeavesPerDepth, 0)
		}
		s.LeavesPerDepth[n.depth]++
		return true
	})

	// sizes is never empty: every tree has at least one leaf
	s.MeanLeafSize, _ = sizes.Mean()
	s.MedianLeafSize, _ = sizes.Median()
	s.MaxLeafSize, _ = sizes.Max()
	s.leafSizes = sizes
	return s
}

// String renders the statistics as a table.
func (s Stats) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"nodes", s.Nodes},
		{"leaves", s.Leaves},
		{"primitives", s.Primitives},
		{"max depth", s.MaxDepth},
		{"mean leaf size", fmt.Sprintf("%.2f", s.MeanLeafSize)},
		{"median leaf size", fmt.Sprintf("%.1f", s.MedianLeafSize)},
		{"max leaf size", fmt.Sprintf("%.0f", s.MaxLeafSize)},
	})
	for depth, count := range s.LeavesPerDepth {
		if count > 0 {
			t.AppendRow(table.Row{fmt.Sprintf("leaves at depth %d", depth), count})
		}
	}
	for _, bucket := range s.leafSizeBuckets() {
		if bucket.Count > 0 {
			t.AppendRow(table.Row{fmt.Sprintf("leaf sizes %.1f-%.1f", bucket.Min, bucket.Max), bucket.Count})
		}
	}
	return t.Render()
}

// leafSizeBuckets bins the leaf sizes into a histogram. All equal sizes form a single bucket.
func (s Stats) leafSizeBuckets() []histogram.Bucket {
	if len(s.leafSizes) == 0 {
		return nil
	}
	if s.MeanLeafSize == s.MaxLeafSize {
		return []histogram.Bucket{{Min: s.MaxLeafSize, Max: s.MaxLeafSize, Count: len(s.leafSizes)}}
	}
	return histogram.Hist(leafSizeBins, s.leafSizes).Buckets
}
