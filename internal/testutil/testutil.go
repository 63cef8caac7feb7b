// Package testutil builds cell and module fixtures for tests.
package testutil

import (
	"math/rand/v2"

	"github.com/banshee-data/sparseccl/internal/cells"
)

// Cells builds cells from (channel0, channel1) pairs in the given order.
func Cells(positions ...[2]cells.ChannelID) []cells.Cell {
	out := make([]cells.Cell, len(positions))
	for i, p := range positions {
		out[i] = cells.Cell{Channel0: p[0], Channel1: p[1], Activation: 1}
	}
	return out
}

// SortedCells is Cells followed by a column-major sort.
func SortedCells(positions ...[2]cells.ChannelID) []cells.Cell {
	out := Cells(positions...)
	cells.SortColumnMajor(out)
	return out
}

// RandomCells returns n distinct cells scattered over a span x span grid,
// sorted column-major. The same seed always yields the same cells.
func RandomCells(seed uint64, n int, span cells.ChannelID) []cells.Cell {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	n = min(n, int(span*span))
	seen := make(map[[2]cells.ChannelID]bool, n)
	out := make([]cells.Cell, 0, n)
	for len(out) < n {
		p := [2]cells.ChannelID{rng.Int64N(span), rng.Int64N(span)}
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, cells.Cell{
			Channel0:   p[0],
			Channel1:   p[1],
			Activation: rng.Float64(),
			Time:       float64(len(out)),
		})
	}
	cells.SortColumnMajor(out)
	return out
}

// Staircase returns n cells on a diagonal with unit steps, all connected.
func Staircase(n int) []cells.Cell {
	out := make([]cells.Cell, n)
	for i := range n {
		out[i] = cells.Cell{Channel0: cells.ChannelID(i), Channel1: cells.ChannelID(i), Activation: 1}
	}
	return out
}

// Module returns a cell container with one module per cell list, all in
// event 1, with geometry ids 100, 101, ...
func Module(cellLists ...[]cells.Cell) *cells.Container {
	c := cells.NewContainer(len(cellLists))
	for i, cs := range cellLists {
		m := cells.NewModule(1, cells.GeometryID(100+i))
		for _, cell := range cs {
			m.Extend(cell)
		}
		c.Push(m, cs)
	}
	return c
}
