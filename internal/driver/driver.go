// Package driver runs the bot's main event loop over an already-dialed
// game-server connection: enter the game, wait for the scoring degrees to build the fixed InitialState,
// then react to every newSeason/newTurn/finalScoring event until the game
// ends.
package driver

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/lukev/cartobot/internal/board"
	"github.com/lukev/cartobot/internal/catalogue"
	"github.com/lukev/cartobot/internal/monitor"
	"github.com/lukev/cartobot/internal/protocol"
	"github.com/lukev/cartobot/internal/scoring"
	"github.com/lukev/cartobot/internal/search"
	"github.com/lukev/cartobot/internal/state"
	"github.com/lukev/cartobot/internal/telemetry"
	"github.com/lukev/cartobot/internal/ui"
)

// ruinCardNames are the two card names the server uses to signal a ruin
// reveal rather than an actual explore/monster card; they carry no
// catalogue entry of their own.
var ruinCardNames = map[string]bool{
	"tempelruinen":            true,
	"verfallenerAussenposten": true,
}

// Bot drives one game from connection to final scoring.
type Bot struct {
	conn         *protocol.Conn
	monitor      *monitor.Server
	log          *telemetry.Log
	printer      *ui.Printer
	searchBudget time.Duration
	connectionID string

	cardCounter int
}

// New builds a Bot around an already-dialed connection. mon and log may be
// nil to skip spectator broadcasting and telemetry recording respectively.
func New(conn *protocol.Conn, mon *monitor.Server, log *telemetry.Log, printer *ui.Printer, searchBudget time.Duration) *Bot {
	return &Bot{
		conn:         conn,
		monitor:      mon,
		log:          log,
		printer:      printer,
		searchBudget: searchBudget,
		connectionID: uuid.NewString(),
	}
}

// Run enters the game, waits for the scoring degrees, then reacts to
// server events until finalScoring arrives or an unrecoverable error
// occurs.
func (b *Bot) Run() error {
	klog.V(2).Infof("driver[%s]: entering game", b.connectionID)

	if err := b.conn.WriteEvent("enterGame", "Bot"); err != nil {
		return errors.Wrap(err, "driver: enterGame")
	}
	if err := b.conn.WriteEvent("startGame", ""); err != nil {
		return errors.Wrap(err, "driver: startGame")
	}

	degrees, err := b.awaitDegrees()
	if err != nil {
		return err
	}

	// The board layout isn't known until the first newTurn reveals which
	// cells are fixed terrain; assume side 1 (the common case) until then.
	gameState := state.New(state.NewInitialState(degrees, board.Side1()))
	layoutConfirmed := false

	for {
		msg, err := b.nextMessage()
		if err != nil {
			return err
		}
		if msg == nil {
			continue
		}

		switch msg.Kind {
		case protocol.NewSeason:
			gameState = gameState.NewSeason(msg.Season)
			b.cardCounter = 0
			klog.V(2).Infof("driver[%s]: season changed to %s", b.connectionID, msg.Season)

		case protocol.NewTurn:
			if !layoutConfirmed {
				if detected, ok := board.DetectLayout(msg.ObservedBoard); ok {
					gameState = gameState.WithInitialState(state.NewInitialState(degrees, detected))
				} else {
					klog.Warningf("driver[%s]: observed board layout matched neither known side, falling back to side 1", b.connectionID)
				}
				layoutConfirmed = true
			}
			gameState, err = b.handleNewTurn(gameState, msg)
			if err != nil {
				return err
			}

		case protocol.FinalScoring:
			klog.Infof("driver[%s]: final scoring: %s", b.connectionID, string(msg.FinalScoringRaw))
			if b.log != nil {
				if summary, err := b.log.Summarize(); err == nil {
					klog.Infof("driver[%s]: played %d turns, %d positions evaluated, max depth %d, average depth %.2f",
						b.connectionID, summary.TurnsPlayed, summary.TotalPositions, summary.MaxDepthReached, summary.AverageDepthReached)
				}
			}
			if b.printer != nil {
				b.printer.FinalScore(gameState.FinalScore())
			}
			return nil
		}
	}
}

// awaitDegrees reads events until newDegrees arrives, skipping ignored
// events and any other parsed message; a read or parse error is returned.
func (b *Bot) awaitDegrees() ([4]scoring.Func, error) {
	for {
		msg, err := b.nextMessage()
		if err != nil {
			return [4]scoring.Func{}, err
		}
		if msg == nil {
			continue
		}
		if msg.Kind == protocol.NewDegrees {
			return msg.Degrees, nil
		}
	}
}

// nextMessage reads the next server event and parses it. A nil Message
// with a nil error means an event the bot deliberately ignores
// (playerJoinsOrLeaves, scoring, or a successful receivedTurn ack); every
// other parse failure — an unknown degree, a rejected turn, an unknown
// event — is fatal and propagates up to abort the bot, per the transport
// and catalogue errors this reacts to.
func (b *Bot) nextMessage() (*protocol.Message, error) {
	event, data, err := b.conn.ReadEvent()
	if err != nil {
		return nil, errors.Wrap(err, "driver: reading event")
	}
	if data == nil {
		return nil, nil
	}
	msg, err := protocol.ParseMessage(event, data)
	if err != nil {
		return nil, errors.Wrapf(err, "driver[%s]", b.connectionID)
	}
	return msg, nil
}

// handleNewTurn processes every newly-revealed card since the last turn
// that completed a full (non-ambush) draw, runs the search, and reports
// the chosen placement back to the server.
func (b *Bot) handleNewTurn(gameState state.GameState, msg *protocol.Message) (state.GameState, error) {
	onRuin := false
	isAmbush := false

	for _, name := range msg.DrawnCards[b.cardCounter:] {
		klog.V(3).Infof("driver[%s]: got card %s", b.connectionID, name)
		if ruinCardNames[name] {
			onRuin = true
			continue
		}
		next, card, err := gameState.RevealCard(name)
		if err != nil {
			return gameState, errors.Wrapf(err, "driver: revealing card %q", name)
		}
		gameState = next
		isAmbush = isAmbush || card.IsAmbush
	}

	if !isAmbush {
		b.cardCounter = len(msg.DrawnCards)
	}

	gameState = gameState.NewBoard(msg.Board)

	lastCard := msg.DrawnCards[len(msg.DrawnCards)-1]
	card, ok := catalogue.ByName(lastCard)
	if !ok {
		return gameState, errors.Errorf("driver: drawn card %q not found in catalogue", lastCard)
	}

	turn, stats, err := search.FindBestMove(gameState, card, onRuin, b.searchBudget)
	if err != nil {
		return gameState, errors.Wrap(err, "driver: search")
	}
	klog.V(2).Infof("driver[%s]: positions evaluated: %d, depth reached: %d", b.connectionID, stats.PositionsEvaluated, stats.DepthReached)
	klog.V(2).Infof("driver[%s]: chose terrain %v over %d cells", b.connectionID, turn.Terrain, turn.Cells.CountCells())

	gameState = gameState.PlaceCells(turn.Terrain, turn.Cells)

	if err := b.reportTurn(msg.PlayerID, turn); err != nil {
		return gameState, err
	}

	if b.printer != nil {
		b.printer.Turn(gameState.Season().String(), lastCard, turn, stats)
	}

	decidedAt := time.Now()
	if b.log != nil {
		if err := b.log.RecordTurn(telemetry.Turn{
			ConnectionID:       b.connectionID,
			Season:             gameState.Season().String(),
			Card:               lastCard,
			Terrain:            terrainName(turn.Terrain),
			PositionsEvaluated: stats.PositionsEvaluated,
			DepthReached:       stats.DepthReached,
			DecidedAt:          decidedAt,
		}); err != nil {
			klog.Warningf("driver[%s]: failed to record telemetry: %v", b.connectionID, err)
		}
	}

	if b.monitor != nil {
		b.monitor.Publish(monitor.Snapshot{
			ConnectionID:       b.connectionID,
			Season:             gameState.Season().String(),
			Card:               lastCard,
			Terrain:            terrainName(turn.Terrain),
			Cells:              cellIndices(turn),
			PositionsEvaluated: stats.PositionsEvaluated,
			DepthReached:       stats.DepthReached,
			DecidedAt:          decidedAt,
		})
	}

	return gameState, nil
}

// reportTurn sends the chosen placement back to the server as finishTurn.
func (b *Bot) reportTurn(playerID string, turn search.Turn) error {
	fields := make(map[string]string)
	name := terrainName(turn.Terrain)
	it := turn.Cells.Cells()
	for {
		idx, ok := it.Next()
		if !ok {
			break
		}
		fields[cellKey(idx)] = name
	}

	return b.conn.WriteEvent("finishTurn", map[string]interface{}{
		"playerId": playerID,
		"fields":   fields,
	})
}

func terrainName(t board.Terrain) string {
	switch t {
	case board.Forest:
		return "FOREST"
	case board.Village:
		return "VILLAGE"
	case board.Farm:
		return "FARM"
	case board.Water:
		return "WATER"
	default:
		return "MONSTER"
	}
}

// cellKey is the wire format the server expects as a fields map key: the
// plain decimal cell index.
func cellKey(idx int) string {
	return strconv.Itoa(idx)
}

func cellIndices(turn search.Turn) []int {
	it := turn.Cells.Cells()
	var idxs []int
	for {
		idx, ok := it.Next()
		if !ok {
			break
		}
		idxs = append(idxs, idx)
	}
	return idxs
}
