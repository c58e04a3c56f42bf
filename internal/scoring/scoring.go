// Package scoring implements the sixteen edicts plus gold and monster
// penalties as pure functions over a Board: no package here mutates
// anything, each function just counts cells.
package scoring

import "github.com/lukev/cartobot/internal/bitboard"

// Board is the read-only view every scoring function operates over. It is
// satisfied by board.Combined; scoring doesn't import board directly so
// that search can score hypothetical boards built during lookahead without
// a dependency cycle.
type Board interface {
	Filled() bitboard.Mask
	Empty() bitboard.Mask
	Forest() bitboard.Mask
	Village() bitboard.Mask
	Farm() bitboard.Mask
	Water() bitboard.Mask
	Monster() bitboard.Mask
	Mountain() bitboard.Mask
	Wasteland() bitboard.Mask
	Ruin() bitboard.Mask
}

// Func is a single scoring rule: an edict, gold income, or the monster
// penalty.
type Func func(b Board) int

// MountainGold counts mountains with no empty neighbor (entirely surrounded
// by non-empty cells or the board edge).
func MountainGold(b Board) int {
	return b.Mountain().TouchesNot(b.Empty()).CountCells()
}

// Monsters counts empty cells adjacent to a monster, each worth -1.
func Monsters(b Board) int {
	return -b.Empty().Touches(b.Monster()).CountCells()
}

// SentinelWood counts forest cells on the board's outer border.
func SentinelWood(b Board) int {
	return b.Forest().Intersect(bitboard.Border()).CountCells()
}

// Treetower counts forest cells with no empty neighbor.
func Treetower(b Board) int {
	return b.Forest().TouchesNot(b.Empty()).CountCells()
}

// Greenbough awards a point per row and per column containing at least one
// forest cell.
func Greenbough(b Board) int {
	score := 0
	for i := 0; i < bitboard.Size; i++ {
		if b.Forest().Intersect(bitboard.Column(i)).HasCells() {
			score++
		}
		if b.Forest().Intersect(bitboard.Row(i)).HasCells() {
			score++
		}
	}
	return score
}

// StonesideForest awards 3 per mountain adjacent to a forest cluster that
// touches at least two mountains (each such mountain counts once).
func StonesideForest(b Board) int {
	found := bitboard.Empty()

	it := b.Forest().Clusters()
	for {
		forest, ok := it.Next()
		if !ok {
			break
		}
		neighborMountains := b.Mountain().Touches(forest)
		if neighborMountains.CountCells() > 1 {
			found = found.Union(neighborMountains)
		}
	}

	return found.CountCells() * 3
}

// CanalLake counts each water-farm adjacency from both sides.
func CanalLake(b Board) int {
	return b.Water().Touches(b.Farm()).CountCells() + b.Farm().Touches(b.Water()).CountCells()
}

// TheGoldenGranary awards a point per water cell touching a ruin, plus 3
// per farm cell placed directly on a ruin.
func TheGoldenGranary(b Board) int {
	return b.Water().Touches(b.Ruin()).CountCells() + b.Farm().Intersect(b.Ruin()).CountCells()*3
}

// MageValley awards 2 per water cell touching a mountain and 1 per farm
// cell touching a mountain.
func MageValley(b Board) int {
	return b.Water().Touches(b.Mountain()).CountCells()*2 + b.Farm().Touches(b.Mountain()).CountCells()
}

// ShoresideExpanse awards 3 per farm cluster with no water or border
// neighbor, and 3 per water cluster with no farm or border neighbor.
func ShoresideExpanse(b Board) int {
	score := 0

	waterOrBorder := b.Water().Neighbors().Union(bitboard.Border())
	it := b.Farm().Clusters()
	for {
		farm, ok := it.Next()
		if !ok {
			break
		}
		if farm.Intersect(waterOrBorder).IsEmpty() {
			score += 3
		}
	}

	farmOrBorder := b.Farm().Neighbors().Union(bitboard.Border())
	it2 := b.Water().Clusters()
	for {
		water, ok := it2.Next()
		if !ok {
			break
		}
		if water.Intersect(farmOrBorder).IsEmpty() {
			score += 3
		}
	}

	return score
}

// Wildholds awards 8 per village cluster of at least 6 cells.
func Wildholds(b Board) int {
	score := 0
	it := b.Village().Clusters()
	for {
		region, ok := it.Next()
		if !ok {
			break
		}
		if region.CountCells() >= 6 {
			score += 8
		}
	}
	return score
}

// GreengoldPlains awards 3 per village cluster bordering at least 3 of the
// 5 other terrain kinds (forest, farm, water, monster, mountain).
func GreengoldPlains(b Board) int {
	neighborKinds := []bitboard.Mask{
		b.Forest().Neighbors(),
		b.Farm().Neighbors(),
		b.Water().Neighbors(),
		b.Monster().Neighbors(),
		b.Mountain().Neighbors(),
	}

	score := 0
	it := b.Village().Clusters()
	for {
		village, ok := it.Next()
		if !ok {
			break
		}
		count := 0
		for _, n := range neighborKinds {
			if village.Intersect(n).HasCells() {
				count++
			}
		}
		if count >= 3 {
			score += 3
		}
	}
	return score
}

// GreatCity scores the size of the largest village cluster that doesn't
// touch a mountain.
func GreatCity(b Board) int {
	mountainNeighbors := b.Mountain().Neighbors()

	best := 0
	it := b.Village().Clusters()
	for {
		cluster, ok := it.Next()
		if !ok {
			break
		}
		if cluster.Intersect(mountainNeighbors).IsEmpty() {
			if size := cluster.CountCells(); size > best {
				best = size
			}
		}
	}
	return best
}

// Shieldgate scores the size of the second-largest village cluster.
func Shieldgate(b Board) int {
	max1, max2 := 0, 0
	it := b.Village().Clusters()
	for {
		village, ok := it.Next()
		if !ok {
			break
		}
		size := village.CountCells()
		if size > max1 {
			max1, max2 = size, max1
		} else if size > max2 {
			max2 = size
		}
	}
	return max2
}

// Borderlands awards 6 per fully-filled row and 6 per fully-filled column.
func Borderlands(b Board) int {
	filled := b.Filled()
	score := 0
	for i := 0; i < bitboard.Size; i++ {
		if filled.Contains(bitboard.Column(i)) {
			score += 6
		}
		if filled.Contains(bitboard.Row(i)) {
			score += 6
		}
	}
	return score
}

// TheBrokenRoad awards 3 per fully-filled diagonal line running down-right
// from the left edge to the bottom edge: the lines of length 1 (the
// bottom-left corner) through Size, each checked on its own.
func TheBrokenRoad(b Board) int {
	filled := b.Filled()
	diagonal := bitboard.Empty()
	cell := bitboard.Cell(0, bitboard.Size-1)
	score := 0

	for i := 0; i < bitboard.Size; i++ {
		diagonal = diagonal.Union(cell)
		if filled.Contains(diagonal) {
			score += 3
		}
		diagonal = diagonal.ShiftUp()
		cell = cell.ShiftRight()
	}
	return score
}

// LostBarony scores 3 times the side length of the largest fully-filled
// square region anywhere on the board (minimum 2x2; if the board has any
// filled cell at all but no 2x2 square, it still scores 3).
func LostBarony(b Board) int {
	filled := b.Filled()
	square := bitboard.Full()

	for size := bitboard.Size; size >= 2; size-- {
		if _, ok := filled.SubMasks(square).Next(); ok {
			return size * 3
		}
		square = square.ShiftLeft().ShiftUp()
	}

	if filled.IsEmpty() {
		return 0
	}
	return 3
}

// TheCauldrons counts empty cells with no empty neighbor (isolated gaps).
func TheCauldrons(b Board) int {
	return b.Empty().TouchesNot(b.Empty()).CountCells()
}
