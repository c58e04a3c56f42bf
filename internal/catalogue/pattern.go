package catalogue

import "github.com/lukev/cartobot/internal/bitboard"

// grid is a small ASCII polyomino description: 'x' marks a filled cell,
// anything else is empty. Rows need not be the same length; shorter rows
// are padded with empty cells.
type grid [][]bool

func parseGrid(rows ...string) grid {
	g := make(grid, len(rows))
	for y, row := range rows {
		cells := make([]bool, len(row))
		for x, c := range row {
			cells[x] = c == 'x'
		}
		g[y] = cells
	}
	return g
}

func (g grid) width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

func (g grid) at(x, y int) bool {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return false
	}
	return g[y][x]
}

// rotate90 returns g rotated 90 degrees clockwise.
func (g grid) rotate90() grid {
	h := len(g)
	w := g.width()
	out := make(grid, w)
	for i := 0; i < w; i++ {
		row := make([]bool, h)
		for j := 0; j < h; j++ {
			row[j] = g.at(i, h-1-j)
		}
		out[i] = row
	}
	return out
}

// mirror returns g mirrored left-right.
func (g grid) mirror() grid {
	w := g.width()
	out := make(grid, len(g))
	for y := range g {
		mirrored := make([]bool, w)
		for x := 0; x < w; x++ {
			mirrored[x] = g.at(w-1-x, y)
		}
		out[y] = mirrored
	}
	return out
}

// toMask renders the grid into a Mask anchored at the origin: the natural
// effect of placing cells directly from (x, y) coordinates starting at 0.
func (g grid) toMask() bitboard.Mask {
	m := bitboard.Empty()
	for y, row := range g {
		for x, filled := range row {
			if filled {
				m = m.Union(bitboard.Cell(x, y))
			}
		}
	}
	return m
}

// symmetries expands a source polyomino into its 8 dihedral images (four
// rotations plus their mirror), each re-anchored to row 0/column 0 by
// construction, sorted and deduplicated to the unique masks.
func symmetries(g grid) []bitboard.Mask {
	p1 := g
	p2 := p1.rotate90()
	p3 := p2.rotate90()
	p4 := p3.rotate90()
	p5 := p1.mirror()
	p6 := p5.rotate90()
	p7 := p6.rotate90()
	p8 := p7.rotate90()

	masks := []bitboard.Mask{
		p1.toMask(), p2.toMask(), p3.toMask(), p4.toMask(),
		p5.toMask(), p6.toMask(), p7.toMask(), p8.toMask(),
	}

	return dedupSorted(masks)
}

func dedupSorted(masks []bitboard.Mask) []bitboard.Mask {
	sorted := make([]bitboard.Mask, len(masks))
	copy(sorted, masks)
	// insertion sort: the list is always exactly 8 elements, so an O(n^2)
	// pass is simpler than pulling in sort.Slice for a fixed tiny input.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Less(sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	out := sorted[:0:0]
	for i, m := range sorted {
		if i == 0 || !m.Equals(sorted[i-1]) {
			out = append(out, m)
		}
	}
	return out
}
