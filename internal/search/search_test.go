package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukev/cartobot/internal/bitboard"
	"github.com/lukev/cartobot/internal/board"
	"github.com/lukev/cartobot/internal/catalogue"
	"github.com/lukev/cartobot/internal/scoring"
	"github.com/lukev/cartobot/internal/state"
)

func testDegrees() [4]scoring.Func {
	return [4]scoring.Func{
		scoring.SentinelWood, scoring.CanalLake, scoring.Wildholds, scoring.Borderlands,
	}
}

func freshState() state.GameState {
	initial := state.NewInitialState(testDegrees(), board.Side1())
	return state.New(initial).NewSeason(state.Spring)
}

func TestFindBestMoveIsDeterministic(t *testing.T) {
	card, ok := catalogue.ByName("ackerland")
	require.True(t, ok)

	st := freshState()
	turn1, stats1, err := FindBestMove(st, card, false, 50*time.Millisecond)
	require.NoError(t, err)

	turn2, stats2, err := FindBestMove(st, card, false, 50*time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, turn1, turn2)
	assert.Equal(t, stats1.DepthReached, stats2.DepthReached)
}

func TestFindBestMoveAlwaysReturnsALegalPlacement(t *testing.T) {
	card, ok := catalogue.ByName("weiler")
	require.True(t, ok)

	st := freshState()
	turn, _, err := FindBestMove(st, card, false, 20*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, turn.Cells.HasCells())
	assert.True(t, st.Empty().Contains(turn.Cells))
}

func TestSearchExploreMoveFallsBackToRiftLandWhenNoPlacementFits(t *testing.T) {
	// fill the board entirely except a single cell, so only a 1x1 shape
	// (rift-land) can possibly be placed.
	initial := state.NewInitialState(testDegrees(), board.Side1())
	st := state.New(initial).NewSeason(state.Spring)

	everything := st.Empty()
	firstCellIdx, ok := everything.Cells().Next()
	require.True(t, ok)
	oneCell := bitboard.CellIdx(firstCellIdx)
	toFill := everything.Diff(oneCell)
	st = st.PlaceCells(board.Forest, toFill)

	card, ok := catalogue.ByName("fischerdorf") // a 1x4 card with no legal placement left
	require.True(t, ok)

	var stats Statistics
	var timedOut atomic.Bool
	turn, _, err := searchExploreMove(st, card, false, 0, &stats, &timedOut, false)
	require.NoError(t, err)
	assert.True(t, turn.Cells.Equals(oneCell))
}

func TestAmbushCardIsPlacedAsMonster(t *testing.T) {
	card, ok := catalogue.ByName("rattenmenschenrache") // horizontal 1x3 monster
	require.True(t, ok)
	require.True(t, card.IsAmbush)

	st := freshState()
	turn, _, err := FindBestMove(st, card, false, 20*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, board.Monster, turn.Terrain)
}
