package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lukev/cartobot/internal/bitboard"
	"github.com/lukev/cartobot/internal/board"
)

func combinedOf(t *testing.T, game board.GameBoard, placements ...struct {
	terrain board.Terrain
	cell    bitboard.Mask
}) board.Combined {
	t.Helper()
	pb := board.NewPlayerBoard()
	for _, p := range placements {
		pb = pb.PlaceCells(p.terrain, p.cell)
	}
	return board.NewCombined(pb, game)
}

func TestEmptyBoardEveryEdictIsZeroExceptFillOnly(t *testing.T) {
	c := board.NewCombined(board.NewPlayerBoard(), board.Side1())

	zeroEdicts := []Func{
		SentinelWood, Treetower, Greenbough, StonesideForest, CanalLake,
		TheGoldenGranary, MageValley, ShoresideExpanse, Wildholds,
		GreengoldPlains, GreatCity, Shieldgate, Monsters, TheCauldrons,
	}
	for _, fn := range zeroEdicts {
		assert.Equal(t, 0, fn(c))
	}

	// borderlands/the_broken_road/lost_barony score the filled mask, which
	// includes the fixed mountains even with no player placements, so
	// they needn't be 0.
	assert.GreaterOrEqual(t, Borderlands(c), 0)
	assert.GreaterOrEqual(t, TheBrokenRoad(c), 0)
	assert.GreaterOrEqual(t, LostBarony(c), 0)
}

func TestSide1ForestColumnScoring(t *testing.T) {
	pb := board.NewPlayerBoard().PlaceCells(board.Forest,
		bitboard.Cell(0, 0).Union(bitboard.Cell(0, 1)).Union(bitboard.Cell(0, 2)))
	c := board.NewCombined(pb, board.Side1())

	assert.Equal(t, 3, SentinelWood(c))
	assert.Equal(t, 4, Greenbough(c)) // 1 column + 3 rows
	assert.Equal(t, 0, Treetower(c))  // every forest cell's right neighbor (1,y) is empty
}

func TestLoneMonsterOnSide2Wasteland(t *testing.T) {
	pb := board.NewPlayerBoard().PlaceCells(board.Monster, bitboard.Cell(5, 5))
	c := board.NewCombined(pb, board.Side2())

	emptyNeighbors := c.Empty().Touches(bitboard.Cell(5, 5)).CountCells()
	assert.Equal(t, -emptyNeighbors, Monsters(c))
}

func TestWildholdsSixCellClusterScoresEightRegardlessOfSecondCluster(t *testing.T) {
	six := bitboard.FromCells([]int{0, 1, 2, 3, 4, 5})
	pb := board.NewPlayerBoard().PlaceCells(board.Village, six)
	c := board.NewCombined(pb, board.Side1())
	assert.Equal(t, 8, Wildholds(c))

	five := bitboard.FromCells([]int{22, 23, 24, 25, 26})
	pb2 := pb.PlaceCells(board.Village, five)
	c2 := board.NewCombined(pb2, board.Side1())
	assert.Equal(t, 8, Wildholds(c2))
}

func TestSide1FilledExceptRuins(t *testing.T) {
	// "filled entirely except ruins" describes that ruin cells carry no
	// terrain of their own, not that they're left uncovered: the player
	// has placed terrain on every cell, ruins included.
	pb := board.NewPlayerBoard().PlaceCells(board.Forest, bitboard.Full())
	c := board.NewCombined(pb, board.Side1())

	assert.Equal(t, 11*6*2, Borderlands(c))
	assert.Equal(t, 3*11, LostBarony(c))
}
