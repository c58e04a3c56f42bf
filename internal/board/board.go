// Package board holds the fixed game-board layouts (mountains, wastelands,
// ruins) and a player's mutable terrain placements.
package board

import "github.com/lukev/cartobot/internal/bitboard"

// Terrain names one of the five terrains a player can place on their
// board. It mirrors catalogue.Terrain but lives in its own package since
// the board, not the catalogue, owns where cards end up.
type Terrain int

const (
	Forest Terrain = iota
	Village
	Farm
	Water
	Monster
	terrainCount
)

// PlayerBoard tracks which cells of the 11x11 grid a player has covered
// with each terrain. The five masks are always pairwise disjoint.
type PlayerBoard struct {
	cells [terrainCount]bitboard.Mask
}

// NewPlayerBoard returns an empty player board.
func NewPlayerBoard() PlayerBoard {
	return PlayerBoard{}
}

// PlaceCells marks cells as covered by terrain, returning the updated board.
func (b PlayerBoard) PlaceCells(terrain Terrain, cells bitboard.Mask) PlayerBoard {
	b.cells[terrain] = b.cells[terrain].Union(cells)
	return b
}

// Cells returns the mask of cells covered by terrain.
func (b PlayerBoard) Cells(terrain Terrain) bitboard.Mask {
	return b.cells[terrain]
}

// Filled returns the union of every terrain the player has placed.
func (b PlayerBoard) Filled() bitboard.Mask {
	m := bitboard.Empty()
	for _, c := range b.cells {
		m = m.Union(c)
	}
	return m
}

// GameBoard is the fixed terrain layout shared by every player in a game:
// mountains (always impassable scoring terrain), wasteland (side 2 only),
// and ruins (empty cells worth bonus placements when covered).
type GameBoard struct {
	Mountain  bitboard.Mask
	Wasteland bitboard.Mask
	Ruin      bitboard.Mask
}

// Side1 is the first of the two standard fixed board layouts.
func Side1() GameBoard {
	return GameBoard{
		Mountain: bitboard.FromCells([]int{
			idx(3, 1), idx(8, 2), idx(5, 5), idx(2, 8), idx(7, 9),
		}),
		Wasteland: bitboard.Empty(),
		Ruin: bitboard.FromCells([]int{
			idx(1, 2), idx(5, 1), idx(9, 2), idx(1, 8), idx(5, 9), idx(9, 8),
		}),
	}
}

// Side2 is the second of the two standard fixed board layouts, the only
// one that uses wasteland cells.
func Side2() GameBoard {
	return GameBoard{
		Mountain: bitboard.FromCells([]int{
			idx(3, 2), idx(8, 1), idx(5, 7), idx(2, 9), idx(9, 8),
		}),
		Wasteland: bitboard.FromCells([]int{
			idx(5, 3), idx(4, 4), idx(5, 4), idx(4, 5), idx(5, 5), idx(6, 5), idx(5, 6),
		}),
		Ruin: bitboard.FromCells([]int{
			idx(2, 2), idx(6, 1), idx(6, 4), idx(1, 6), idx(8, 7), idx(3, 9),
		}),
	}
}

func idx(x, y int) int { return y*bitboard.Size + x }

// Equals reports whether two GameBoard layouts cover exactly the same cells.
func (g GameBoard) Equals(other GameBoard) bool {
	return g.Mountain.Equals(other.Mountain) &&
		g.Wasteland.Equals(other.Wasteland) &&
		g.Ruin.Equals(other.Ruin)
}

// Combined is a read-only view combining a player's placements with the
// game's fixed terrain, the unit every scoring function operates over.
type Combined struct {
	player PlayerBoard
	game   GameBoard
	filled bitboard.Mask
}

// NewCombined builds a Combined view. filled is every cell considered
// "covered" for scoring purposes: every player terrain plus mountains and
// wasteland — ruins are deliberately excluded so they still count as
// placeable empty space.
func NewCombined(player PlayerBoard, game GameBoard) Combined {
	filled := player.Filled().Union(game.Mountain).Union(game.Wasteland)
	return Combined{player: player, game: game, filled: filled}
}

// Filled returns every covered cell (player terrains + mountain + wasteland).
func (c Combined) Filled() bitboard.Mask { return c.filled }

// Empty returns every uncovered cell.
func (c Combined) Empty() bitboard.Mask { return c.filled.Complement() }

// Forest returns the player's forest cells.
func (c Combined) Forest() bitboard.Mask { return c.player.Cells(Forest) }

// Village returns the player's village cells.
func (c Combined) Village() bitboard.Mask { return c.player.Cells(Village) }

// Farm returns the player's farm cells.
func (c Combined) Farm() bitboard.Mask { return c.player.Cells(Farm) }

// Water returns the player's water cells.
func (c Combined) Water() bitboard.Mask { return c.player.Cells(Water) }

// Monster returns the player's monster cells.
func (c Combined) Monster() bitboard.Mask { return c.player.Cells(Monster) }

// Mountain returns the game's mountain cells.
func (c Combined) Mountain() bitboard.Mask { return c.game.Mountain }

// Wasteland returns the game's wasteland cells.
func (c Combined) Wasteland() bitboard.Mask { return c.game.Wasteland }

// Ruin returns the game's ruin cells.
func (c Combined) Ruin() bitboard.Mask { return c.game.Ruin }

// DetectLayout matches a wire-reported fixed-terrain layout against the two
// known board layouts, returning the matching GameBoard and true. If
// neither layout matches exactly, it returns Side1 and false so callers can
// fall back while still surfacing the mismatch.
func DetectLayout(observed GameBoard) (GameBoard, bool) {
	if s1 := Side1(); s1.Equals(observed) {
		return s1, true
	}
	if s2 := Side2(); s2.Equals(observed) {
		return s2, true
	}
	return Side1(), false
}
