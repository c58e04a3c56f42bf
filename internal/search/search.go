// Package search implements the expectimax move search: for an ambush
// (monster) card the player must place it adversarially against
// themselves; for anything else, future card draws are averaged by
// probability. Both search kinds run under a single wall-clock budget via
// iterative deepening.
package search

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/lukev/cartobot/internal/bitboard"
	"github.com/lukev/cartobot/internal/board"
	"github.com/lukev/cartobot/internal/catalogue"
	"github.com/lukev/cartobot/internal/state"
)

// Turn is a single chosen placement: a terrain and the cells it covers.
type Turn struct {
	Terrain board.Terrain
	Cells   bitboard.Mask
}

// Statistics reports how much work the last FindBestMove call did.
type Statistics struct {
	PositionsEvaluated uint32
	DepthReached       uint32
	EndReached         bool
}

func terrainOf(t catalogue.Terrain) board.Terrain {
	switch t {
	case catalogue.Forest:
		return board.Forest
	case catalogue.Village:
		return board.Village
	case catalogue.Farm:
		return board.Farm
	case catalogue.Water:
		return board.Water
	default:
		return board.Monster
	}
}

// FindBestMove runs iterative deepening until budget elapses, returning the
// best turn found at the deepest depth that finished in time.
func FindBestMove(st state.GameState, card catalogue.Card, onRuin bool, budget time.Duration) (Turn, Statistics, error) {
	var stats Statistics
	var timeoutReached atomic.Bool

	timer := time.AfterFunc(budget, func() {
		timeoutReached.Store(true)
	})
	defer timer.Stop()

	var bestTurn *Turn
	for depth := uint32(0); ; depth++ {
		turn, _, err := searchExploreMove(st, card, onRuin, depth, &stats, &timeoutReached, false)
		if timeoutReached.Load() {
			klog.V(2).Infof("search: timeout reached at depth %d, keeping depth %d result", depth, stats.DepthReached)
			break
		}
		if err != nil {
			return Turn{}, stats, err
		}
		bestTurn = &turn
		stats.DepthReached = depth
	}

	if bestTurn == nil {
		return Turn{}, stats, errors.Errorf("search: no turn found for card %q within budget", card.Name)
	}

	klog.V(3).Infof("search: chose %+v after evaluating %d positions to depth %d", *bestTurn, stats.PositionsEvaluated, stats.DepthReached)
	return *bestTurn, stats, nil
}

// searchExploreMove finds the best (or, for an ambush card, the worst-for-
// the-player) placement of card among every legal pattern/position/terrain
// combination. If no placement is legal it retries once with the
// rift-land fallback shape, which always fits at least one empty cell.
func searchExploreMove(
	st state.GameState,
	card catalogue.Card,
	onRuin bool,
	depth uint32,
	stats *Statistics,
	timeoutReached *atomic.Bool,
	triedRiftLand bool,
) (Turn, float64, error) {
	isAmbush := card.IsAmbush
	bestScore := negInf
	if isAmbush {
		bestScore = posInf
	}
	var bestTurn *Turn

	empty := st.Empty()
	ruin := st.Ruin()

	for _, pattern := range card.Patterns {
		withGold := st.AddGold(pattern.Gold)
		for _, shape := range pattern.Variants {
			it := empty.SubMasks(shape)
			for {
				cells, ok := it.Next()
				if !ok {
					break
				}
				for _, t := range card.Terrains {
					if onRuin && !isAmbush && cells.Intersect(ruin).IsEmpty() {
						continue
					}

					placed := withGold.PlaceCells(terrainOf(t), cells)
					score := searchGameMove(placed, depth, stats, timeoutReached)

					better := score > bestScore
					if isAmbush {
						better = score < bestScore
					}
					if better {
						bestScore = score
						turn := Turn{Terrain: terrainOf(t), Cells: cells}
						bestTurn = &turn
					}
				}
			}
		}
	}

	if bestTurn == nil && !triedRiftLand {
		riftLandName := catalogue.RiftLandExplore
		if isAmbush {
			riftLandName = catalogue.RiftLandMonster
		}
		riftLand, ok := catalogue.ByName(riftLandName)
		if !ok {
			return Turn{}, 0, errors.Errorf("search: rift-land card %q missing from catalogue", riftLandName)
		}
		return searchExploreMove(st, riftLand, false, depth, stats, timeoutReached, true)
	}

	if bestTurn == nil {
		return Turn{}, 0, &state.IllegalTurnError{Card: card.Name}
	}

	return *bestTurn, bestScore, nil
}

// searchGameMove scores a state reached after placing a card: either the
// season/game ends and it returns the real total score, the depth limit is
// hit and it returns a heuristic estimate, or it recurses into every
// possible next card draw weighted by probability.
func searchGameMove(st state.GameState, depth uint32, stats *Statistics, timeoutReached *atomic.Bool) float64 {
	if timeoutReached.Load() {
		return 0
	}

	stats.PositionsEvaluated++

	next, ongoing := st.HandleSeasonEnd()
	if !ongoing {
		stats.EndReached = true
		return next.FinalScore()
	}
	st = next

	if depth == 0 {
		return st.HeuristicScore()
	}

	weightedSum := 0.0
	for _, drawn := range st.DrawCards() {
		_, score, err := searchExploreMove(drawn.State, drawn.Card, false, depth-1, stats, timeoutReached, false)
		if err != nil {
			continue
		}
		weightedSum += score * drawn.Probability
	}
	return weightedSum
}

const (
	posInf = float64(1) << 60
	negInf = -posInf
)
