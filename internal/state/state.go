// Package state models a single game in progress: the fixed scoring rules
// and board layout chosen at game start (InitialState), and the small,
// cheaply-copied snapshot that changes turn to turn (GameState).
package state

import (
	"github.com/lukev/cartobot/internal/bitboard"
	"github.com/lukev/cartobot/internal/board"
	"github.com/lukev/cartobot/internal/catalogue"
	"github.com/lukev/cartobot/internal/deck"
	"github.com/lukev/cartobot/internal/scoring"
)

// scoreSlot is one of the six scoring contributions evaluated every
// season: a function of the current state plus the weight it carries in
// the mid-search heuristic. The weight plays no part in season-end scoring
// (the game only ever adds the raw, unweighted score there) — it exists
// purely so search can estimate a season cut short by the depth limit.
type scoreSlot struct {
	fn     func(GameState) int
	weight float64
}

func wrapEdict(f scoring.Func) func(GameState) int {
	return func(g GameState) int { return f(g) }
}

func zeroScore(GameState) int { return 0 }
func goldScore(g GameState) int { return g.Gold() }
func monsterScore(g GameState) int { return scoring.Monsters(g) }

// seasonTable builds the six (function, weight) slots scored at the end
// of each season for a given set of four player-chosen degrees: the
// weights count how many season-end scorings each slot still has ahead
// (gold/monsters fall from 4 in Spring to 1 in Winter), and Fall/Winter
// silently drop one/two of the
// degree categories (replaced by a function that always returns 0).
func seasonTable(degrees [4]scoring.Func) map[Season][6]scoreSlot {
	d0, d1, d2, d3 := wrapEdict(degrees[0]), wrapEdict(degrees[1]), wrapEdict(degrees[2]), wrapEdict(degrees[3])

	return map[Season][6]scoreSlot{
		Spring: {
			{d0, 2}, {d1, 2}, {d2, 2}, {d3, 2}, {goldScore, 4}, {monsterScore, 4},
		},
		Summer: {
			{d0, 1}, {d1, 1}, {d2, 2}, {d3, 2}, {goldScore, 3}, {monsterScore, 3},
		},
		Fall: {
			{d0, 1}, {zeroScore, 0}, {d2, 1}, {d3, 2}, {goldScore, 2}, {monsterScore, 2},
		},
		Winter: {
			{d0, 1}, {zeroScore, 0}, {zeroScore, 0}, {d3, 1}, {goldScore, 1}, {monsterScore, 1},
		},
	}
}

// InitialState holds everything fixed for the duration of a game: the
// per-season weight table built from the player's chosen scoring degrees,
// and the board's fixed terrain layout.
type InitialState struct {
	scoringBy map[Season][6]scoreSlot
	gameBoard board.GameBoard
}

// NewInitialState builds the fixed per-game state from the four scoring
// degrees the player chose and the detected board layout.
func NewInitialState(degrees [4]scoring.Func, gameBoard board.GameBoard) *InitialState {
	return &InitialState{scoringBy: seasonTable(degrees), gameBoard: gameBoard}
}


// GameState is the small, cheaply-copied state that changes turn to turn:
// the current season and its elapsed time, the remaining deck, the
// player's board, accumulated gold, and total score so far.
type GameState struct {
	initial     *InitialState
	season      Season
	seasonTimer int
	deck        deck.Deck
	playerBoard board.PlayerBoard
	gold        int
	totalScore  int
}

// New returns the starting GameState for a freshly-created InitialState:
// spring, empty deck, empty board, no gold or score yet.
func New(initial *InitialState) GameState {
	return GameState{
		initial:     initial,
		season:      Spring,
		seasonTimer: 0,
		deck:        deck.Empty(),
		playerBoard: board.NewPlayerBoard(),
	}
}

// NewSeason resets the season timer and reshuffles the deck for the start
// of season.
func (g GameState) NewSeason(season Season) GameState {
	g.season = season
	g.seasonTimer = 0
	g.deck = g.deck.NewSeason()
	return g
}

// NewBoard replaces the player's board with the server-authoritative copy.
func (g GameState) NewBoard(b board.PlayerBoard) GameState {
	g.playerBoard = b
	return g
}

// Season returns the current season.
func (g GameState) Season() Season { return g.season }

// WithInitialState swaps which InitialState g is based on, keeping every
// other field as-is. Used once the board layout is confirmed from the
// server's first newTurn.
func (g GameState) WithInitialState(initial *InitialState) GameState {
	g.initial = initial
	return g
}

// RevealCard removes a named card from the local deck tracking (mirroring
// the server having drawn it) and returns its catalogue entry. A card in
// neither deck list (the ambush rift-land fallback) is looked up but not
// removed from anything; splitterland is an exploration card and is removed.
func (g GameState) RevealCard(name string) (GameState, catalogue.Card, error) {
	card, ok := catalogue.ByName(name)
	if !ok {
		return g, catalogue.Card{}, &CatalogueMissError{Name: name}
	}

	for idx, exploreName := range catalogue.ExploreCardNames {
		if exploreName == name {
			g.deck = g.deck.RemoveExploreCard(idx)
			return g, card, nil
		}
	}
	for idx, monsterName := range catalogue.MonsterCardNames {
		if monsterName == name {
			g.deck = g.deck.RemoveMonsterCard(idx)
			return g, card, nil
		}
	}

	return g, card, nil
}

// AddGold returns a copy of g with gold increased by amount.
func (g GameState) AddGold(amount int) GameState {
	g.gold += amount
	return g
}

// PlaceCells returns a copy of g with cells added to the player's terrain.
func (g GameState) PlaceCells(terrain board.Terrain, cells bitboard.Mask) GameState {
	g.playerBoard = g.playerBoard.PlaceCells(terrain, cells)
	return g
}

// Combined returns the read-only scoring view over the current board.
func (g GameState) Combined() board.Combined {
	return board.NewCombined(g.playerBoard, g.initial.gameBoard)
}

// The scoring.Board interface, forwarded from Combined() so a GameState
// can be passed directly to any scoring.Func.

func (g GameState) Filled() bitboard.Mask    { return g.Combined().Filled() }
func (g GameState) Empty() bitboard.Mask     { return g.Combined().Empty() }
func (g GameState) Forest() bitboard.Mask    { return g.Combined().Forest() }
func (g GameState) Village() bitboard.Mask   { return g.Combined().Village() }
func (g GameState) Farm() bitboard.Mask      { return g.Combined().Farm() }
func (g GameState) Water() bitboard.Mask     { return g.Combined().Water() }
func (g GameState) Monster() bitboard.Mask   { return g.Combined().Monster() }
func (g GameState) Mountain() bitboard.Mask  { return g.Combined().Mountain() }
func (g GameState) Wasteland() bitboard.Mask { return g.Combined().Wasteland() }
func (g GameState) Ruin() bitboard.Mask      { return g.Combined().Ruin() }

// Gold returns the effective gold score: accumulated gold income plus the
// mountain-gold edict.
func (g GameState) Gold() int {
	return g.gold + scoring.MountainGold(g)
}

// HandleSeasonEnd advances the season if its time budget has been reached,
// applying that season's scoring first. Returns false only when the game
// has ended (Winter just finished).
//
// The continue condition is seasonTimer < season.Time(): scoring is
// applied once the cumulative card time reaches (not merely exceeds) the
// budget, matching the Rust original this is grounded on (its
// handle_season_end uses strict `<` as the *continue* condition, i.e.
// scoring triggers on `>=`).
func (g GameState) HandleSeasonEnd() (GameState, bool) {
	if g.seasonTimer < g.season.Time() {
		return g, true
	}

	for _, slot := range g.initial.scoringBy[g.season] {
		g.totalScore += slot.fn(g)
	}

	next, ok := g.season.Next()
	if !ok {
		return g, false
	}
	return g.NewSeason(next), true
}

// FinalScore returns the game's total accumulated score.
func (g GameState) FinalScore() float64 {
	return float64(g.totalScore)
}

// HeuristicScore estimates the eventual score when search is cut off
// mid-season: the accumulated total plus the current season's edicts,
// pre-weighted by how much they'll matter at season end.
func (g GameState) HeuristicScore() float64 {
	score := float64(g.totalScore)
	for _, slot := range g.initial.scoringBy[g.season] {
		score += float64(slot.fn(g)) * slot.weight
	}
	return score
}

// Drawn is one possible next card draw: the card itself, its probability,
// and the state that results from drawing it (deck updated, season timer
// advanced by the card's time cost).
type Drawn struct {
	Card        catalogue.Card
	Probability float64
	State       GameState
}

// DrawCards enumerates every possible next card draw from the deck.
func (g GameState) DrawCards() []Drawn {
	draws := g.deck.DrawCards()
	out := make([]Drawn, 0, len(draws))
	for _, d := range draws {
		card, ok := catalogue.ByName(d.CardName)
		if !ok {
			continue
		}
		next := g
		next.deck = d.Remaining
		next.seasonTimer += card.Time
		out = append(out, Drawn{Card: card, Probability: d.Probability, State: next})
	}
	return out
}
