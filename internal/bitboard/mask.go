// Package bitboard implements the 11x11 cell-set algebra ("Mask") that
// every other package in cartobot builds on: geometric shifts, cluster
// extraction, and polyomino sub-mask enumeration.
package bitboard

import (
	"fmt"
	"math/bits"
	"strings"

	"lukechampine.com/uint128"
)

// Size is the board's side length; CellCount is the number of cells.
const (
	Size      = 11
	CellCount = Size * Size
)

// Mask is a set of cells on the Size x Size grid, stored as a 121-bit
// word. Go has no native 128-bit integer, so the backing word is
// lukechampine.com/uint128.Uint128 split into Lo/Hi 64-bit halves;
// every operation below works directly on those halves.
type Mask struct {
	bits uint128.Uint128
}

func fromWords(lo, hi uint64) Mask {
	return Mask{bits: uint128.Uint128{Lo: lo, Hi: hi}}
}

// full128 is the bit pattern with exactly the low CellCount bits set.
var full128 = func() uint128.Uint128 {
	lo, hi := lsh128(1, 0, CellCount)
	lo, hi = subtractOne(lo, hi)
	return uint128.Uint128{Lo: lo, Hi: hi}
}()

func subtractOne(lo, hi uint64) (uint64, uint64) {
	if lo == 0 {
		return ^uint64(0), hi - 1
	}
	return lo - 1, hi
}

func lsh128(lo, hi uint64, n uint) (uint64, uint64) {
	switch {
	case n == 0:
		return lo, hi
	case n >= 128:
		return 0, 0
	case n >= 64:
		return 0, lo << (n - 64)
	default:
		return lo << n, (hi << n) | (lo >> (64 - n))
	}
}

func rsh128(lo, hi uint64, n uint) (uint64, uint64) {
	switch {
	case n == 0:
		return lo, hi
	case n >= 128:
		return 0, 0
	case n >= 64:
		return hi >> (n - 64), 0
	default:
		return (lo >> n) | (hi << (64 - n)), hi >> n
	}
}

func rowBits(i int) (uint64, uint64) {
	lo, hi := lsh128(1, 0, Size)
	lo, hi = subtractOne(lo, hi)
	return lsh128(lo, hi, uint(i*Size))
}

func columnBits(i int) (uint64, uint64) {
	var lo, hi uint64
	for step := 0; step < Size; step++ {
		lo, hi = lsh128(lo, hi, Size)
		lo |= 1
	}
	return lsh128(lo, hi, uint(i))
}

// Empty returns the mask with no cells set.
func Empty() Mask { return Mask{} }

// Full returns the mask with every board cell set.
func Full() Mask { return Mask{bits: full128} }

// CellIdx returns the mask containing only the cell at linear index idx.
func CellIdx(idx int) Mask {
	lo, hi := lsh128(1, 0, uint(idx))
	return fromWords(lo, hi)
}

// Cell returns the mask containing only the cell at (x, y).
func Cell(x, y int) Mask {
	return CellIdx(y*Size + x)
}

// Row returns the mask of every cell in row i.
func Row(i int) Mask {
	lo, hi := rowBits(i)
	return fromWords(lo, hi)
}

// Column returns the mask of every cell in column i.
func Column(i int) Mask {
	lo, hi := columnBits(i)
	return fromWords(lo, hi)
}

// Border returns the mask of every cell on the outer ring of the board.
func Border() Mask {
	m := Row(0).Union(Row(Size - 1)).Union(Column(0)).Union(Column(Size - 1))
	return m
}

// FromCells builds a mask from a list of linear cell indices.
func FromCells(idxs []int) Mask {
	m := Empty()
	for _, idx := range idxs {
		m = m.Union(CellIdx(idx))
	}
	return m
}

// Union returns the set union self | other.
func (m Mask) Union(other Mask) Mask {
	return fromWords(m.bits.Lo|other.bits.Lo, m.bits.Hi|other.bits.Hi)
}

// Intersect returns the set intersection self & other.
func (m Mask) Intersect(other Mask) Mask {
	return fromWords(m.bits.Lo&other.bits.Lo, m.bits.Hi&other.bits.Hi)
}

// Diff returns the set difference self \ other.
func (m Mask) Diff(other Mask) Mask {
	return m.Intersect(other.Complement())
}

// Complement returns the set complement relative to the full 121-cell universe.
func (m Mask) Complement() Mask {
	return fromWords(^m.bits.Lo&full128.Lo, ^m.bits.Hi&full128.Hi)
}

// Equals reports whether two masks contain exactly the same cells.
func (m Mask) Equals(other Mask) bool {
	return m.bits.Lo == other.bits.Lo && m.bits.Hi == other.bits.Hi
}

// Less defines the total order used for deduplication (raw bit pattern,
// high word first).
func (m Mask) Less(other Mask) bool {
	if m.bits.Hi != other.bits.Hi {
		return m.bits.Hi < other.bits.Hi
	}
	return m.bits.Lo < other.bits.Lo
}

// ShiftUp moves every cell up one row, dropping cells that fall off the top.
func (m Mask) ShiftUp() Mask {
	lo, hi := rsh128(m.bits.Lo, m.bits.Hi, Size)
	return fromWords(lo, hi)
}

// ShiftDown moves every cell down one row, dropping cells that fall off the bottom.
func (m Mask) ShiftDown() Mask {
	lo, hi := lsh128(m.bits.Lo, m.bits.Hi, Size)
	return fromWords(lo&full128.Lo, hi&full128.Hi)
}

// ShiftLeft moves every cell one column to the left (toward x=0), dropping
// cells that would cross off the left edge.
func (m Mask) ShiftLeft() Mask {
	clipped := m.Diff(Column(0))
	lo, hi := rsh128(clipped.bits.Lo, clipped.bits.Hi, 1)
	return fromWords(lo, hi)
}

// ShiftRight moves every cell one column to the right (toward x=Size-1),
// dropping cells that would cross off the right edge.
func (m Mask) ShiftRight() Mask {
	clipped := m.Diff(Column(Size - 1))
	lo, hi := lsh128(clipped.bits.Lo, clipped.bits.Hi, 1)
	return fromWords(lo, hi)
}

// Neighbors returns the 4-neighborhood of self: every cell adjacent to a
// cell of self. Does not include the cells of self itself (unless also
// adjacent to another cell of self).
func (m Mask) Neighbors() Mask {
	return m.ShiftLeft().Union(m.ShiftRight()).Union(m.ShiftUp()).Union(m.ShiftDown())
}

// Touches returns the cells of self adjacent to some cell of other.
func (m Mask) Touches(other Mask) Mask {
	return m.Intersect(other.Neighbors())
}

// TouchesNot returns the cells of self not adjacent to any cell of other.
func (m Mask) TouchesNot(other Mask) Mask {
	return m.Diff(other.Neighbors())
}

// Contains reports whether self is a superset of other.
func (m Mask) Contains(other Mask) bool {
	return m.Intersect(other).Equals(other)
}

// IsEmpty reports whether the mask has no cells set.
func (m Mask) IsEmpty() bool {
	return m.bits.Lo == 0 && m.bits.Hi == 0
}

// HasCells reports whether the mask has at least one cell set.
func (m Mask) HasCells() bool {
	return !m.IsEmpty()
}

// CountCells returns the population count of the mask.
func (m Mask) CountCells() int {
	return bits.OnesCount64(m.bits.Lo) + bits.OnesCount64(m.bits.Hi)
}

// lowestCellIdx returns the linear index of the lowest set bit. The mask
// must not be empty.
func (m Mask) lowestCellIdx() int {
	if m.bits.Lo != 0 {
		return bits.TrailingZeros64(m.bits.Lo)
	}
	return 64 + bits.TrailingZeros64(m.bits.Hi)
}

// Clusters returns an iterator over the 4-connected components of m, each
// yielded as a Mask; the components are pairwise disjoint and their union
// equals m.
func (m Mask) Clusters() *ClusterIter {
	return &ClusterIter{remaining: m}
}

// ClusterIter is a single-pass, stateful iterator over 4-connected
// components, cheap to construct since inner search/scoring loops build
// many of them.
type ClusterIter struct {
	remaining Mask
}

// Next returns the next cluster and true, or the zero Mask and false when
// exhausted.
func (it *ClusterIter) Next() (Mask, bool) {
	if it.remaining.IsEmpty() {
		return Mask{}, false
	}

	seed := it.remaining.lowestCellIdx()
	cluster := CellIdx(seed)
	for {
		grown := cluster.Union(cluster.Neighbors().Intersect(it.remaining))
		if grown.Equals(cluster) {
			break
		}
		cluster = grown
	}

	it.remaining = it.remaining.Diff(cluster)
	return cluster, true
}

// Cells returns an iterator over the linear indices of the set bits, in
// ascending order.
func (m Mask) Cells() *CellIter {
	return &CellIter{remaining: m}
}

// CellIter is a single-pass iterator over a Mask's set cell indices.
type CellIter struct {
	remaining Mask
}

// Next returns the next cell index and true, or 0 and false when exhausted.
func (it *CellIter) Next() (int, bool) {
	if it.remaining.IsEmpty() {
		return 0, false
	}
	idx := it.remaining.lowestCellIdx()
	it.remaining = it.remaining.Diff(CellIdx(idx))
	return idx, true
}

// SubMasks returns an iterator over every translation of pattern that is
// fully contained in m. pattern is assumed anchored to row 0 and column 0
// (the catalogue builder only ever produces such anchored masks).
// Enumeration order is deterministic: the pattern slides right until it
// would cross the last column, then drops a row and restarts at column 0.
func (m Mask) SubMasks(pattern Mask) *SubMaskIter {
	it := &SubMaskIter{mask: m, nextPattern: pattern}
	it.nextLine = it.computeNextLine(pattern)
	return it
}

// SubMaskIter is a single-pass iterator over polyomino placements.
type SubMaskIter struct {
	mask        Mask
	nextPattern Mask
	nextLine    Mask
}

func (it *SubMaskIter) computeNextLine(pattern Mask) Mask {
	if pattern.Intersect(Row(Size - 1)).IsEmpty() {
		return pattern.ShiftDown()
	}
	return Empty()
}

func (it *SubMaskIter) shiftPattern() {
	if it.nextPattern.Intersect(Column(Size - 1)).IsEmpty() {
		it.nextPattern = it.nextPattern.ShiftRight()
		return
	}
	it.nextPattern = it.nextLine
	it.nextLine = it.computeNextLine(it.nextLine)
}

// Next returns the next valid translation and true, or the zero Mask and
// false when exhausted.
func (it *SubMaskIter) Next() (Mask, bool) {
	for {
		if it.nextPattern.IsEmpty() {
			return Mask{}, false
		}
		if it.mask.Contains(it.nextPattern) {
			result := it.nextPattern
			it.shiftPattern()
			return result, true
		}
		it.shiftPattern()
	}
}

// String renders the mask as an 11x11 grid of 'o'/'.' for debugging.
func (m Mask) String() string {
	var b strings.Builder
	b.WriteByte('\n')
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if m.Contains(Cell(x, y)) {
				b.WriteByte('o')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// GoString supports %#v debug formatting consistently with String.
func (m Mask) GoString() string {
	return fmt.Sprintf("bitboard.Mask(%s)", m.String())
}
