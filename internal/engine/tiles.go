package engine

import "image"

// SpiralWalker yields integer grid coordinates in an outward square spiral
// starting at (0,0): right, down, left, up, growing by one each lap.
// The zero value is not ready for use; call NewSpiralWalker.
type SpiralWalker struct {
	layer int
	leg   int
	X, Y  int
}

// NewSpiralWalker returns a walker positioned at the origin.
func NewSpiralWalker() *SpiralWalker {
	return &SpiralWalker{layer: 1}
}

// Next advances the walker by one step.
func (s *SpiralWalker) Next() {
	switch s.leg {
	case 0:
		s.X++
		if s.X == s.layer {
			s.leg = 1
		}
	case 1:
		s.Y++
		if s.Y == s.layer {
			s.leg = 2
		}
	case 2:
		s.X--
		if -s.X == s.layer {
			s.leg = 3
		}
	case 3:
		s.Y--
		if -s.Y == s.layer {
			s.leg = 0
			s.layer++
		}
	}
}

// Point returns the current coordinate.
func (s *SpiralWalker) Point() image.Point {
	return image.Pt(s.X, s.Y)
}

// Tile is one rectangle of the image assigned to a single job.
type Tile struct {
	Col, Row int
	Bounds   image.Rectangle
}

// TileGrid splits a width x height image into tiles x tiles rectangles.
// Edges are computed with integer division so neighbouring tiles share
// boundaries exactly and the union covers every pixel once.
type TileGrid struct {
	Width, Height int
	Tiles         int
}

// NewTileGrid returns a grid over the image.
func NewTileGrid(width, height, tiles int) TileGrid {
	return TileGrid{Width: width, Height: height, Tiles: tiles}
}

// Bounds returns the pixel rectangle of tile (col, row).
func (g TileGrid) Bounds(col, row int) image.Rectangle {
	return image.Rect(
		col*g.Width/g.Tiles,
		row*g.Height/g.Tiles,
		(col+1)*g.Width/g.Tiles,
		(row+1)*g.Height/g.Tiles,
	)
}

// Count is the number of tiles in the grid.
func (g TileGrid) Count() int {
	return g.Tiles * g.Tiles
}

// SpiralOrder lists every tile once, nearest the image centre first.
func (g TileGrid) SpiralOrder() []Tile {
	n := g.Count()
	out := make([]Tile, 0, n)
	if n == 0 {
		return out
	}

	offset := g.Tiles / 2
	if g.Tiles%2 == 0 {
		offset--
	}

	w := NewSpiralWalker()
	for len(out) < n {
		col := w.X + offset
		row := w.Y + offset
		if col >= 0 && col < g.Tiles && row >= 0 && row < g.Tiles {
			out = append(out, Tile{Col: col, Row: row, Bounds: g.Bounds(col, row)})
		}
		w.Next()
	}
	return out
}
