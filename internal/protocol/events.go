package protocol

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/lukev/cartobot/internal/bitboard"
	"github.com/lukev/cartobot/internal/board"
	"github.com/lukev/cartobot/internal/scoring"
	"github.com/lukev/cartobot/internal/state"
)

// MessageKind tags which event a parsed Message carries.
type MessageKind int

const (
	NewDegrees MessageKind = iota
	NewSeason
	NewTurn
	FinalScoring
)

// Message is a parsed server event. Only the field matching Kind is valid.
type Message struct {
	Kind MessageKind

	Degrees [4]scoring.Func
	Season  state.Season

	PlayerID      string
	Board         board.PlayerBoard
	ObservedBoard board.GameBoard
	DrawnCards    []string

	FinalScoringRaw json.RawMessage
}

// cellLandscape mirrors the wire shape of a single board cell.
type cellLandscape struct {
	Landscape string `json:"landscape"`
}

type newTurnPayload struct {
	PlayerID    string          `json:"playerId"`
	Fields      []cellLandscape `json:"fields"`
	UsedCards   []namedCard     `json:"usedCards"`
	ExploreCard namedCard       `json:"exploreCard"`
}

type namedCard struct {
	Name string `json:"name"`
}

type degreePayload struct {
	Card string `json:"card"`
}

type seasonPayload struct {
	Name string `json:"name"`
}

// ParseMessage decodes a Socket.IO event into a Message. Events the bot
// doesn't act on ("playerJoinsOrLeaves", "scoring") and the
// "receivedTurn" acknowledgement return (nil, nil).
func ParseMessage(event string, data json.RawMessage) (*Message, error) {
	switch event {
	case "newDegrees":
		var raw []degreePayload
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "protocol: parsing newDegrees")
		}
		if len(raw) != 4 {
			return nil, errors.Errorf("protocol: expected 4 degrees, got %d", len(raw))
		}
		var degrees [4]scoring.Func
		for i, d := range raw {
			fn, err := parseDegree(d.Card)
			if err != nil {
				return nil, err
			}
			degrees[i] = fn
		}
		return &Message{Kind: NewDegrees, Degrees: degrees}, nil

	case "newSeason":
		var raw seasonPayload
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "protocol: parsing newSeason")
		}
		season, err := parseSeason(raw.Name)
		if err != nil {
			return nil, err
		}
		return &Message{Kind: NewSeason, Season: season}, nil

	case "newTurn":
		var raw newTurnPayload
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, "protocol: parsing newTurn")
		}

		playerBoard, observed, err := parseBoard(raw.Fields)
		if err != nil {
			return nil, err
		}

		drawnCards := make([]string, 0, len(raw.UsedCards)+1)
		for _, c := range raw.UsedCards {
			drawnCards = append(drawnCards, c.Name)
		}
		drawnCards = append(drawnCards, raw.ExploreCard.Name)

		return &Message{
			Kind:          NewTurn,
			PlayerID:      raw.PlayerID,
			Board:         playerBoard,
			ObservedBoard: observed,
			DrawnCards:    drawnCards,
		}, nil

	case "receivedTurn":
		var valid bool
		if err := json.Unmarshal(data, &valid); err != nil {
			return nil, errors.Wrap(err, "protocol: parsing receivedTurn")
		}
		if !valid {
			return nil, errors.New("protocol: server rejected our turn")
		}
		return nil, nil

	case "finalScoring":
		return &Message{Kind: FinalScoring, FinalScoringRaw: data}, nil

	case "playerJoinsOrLeaves", "scoring":
		return nil, nil

	default:
		return nil, errors.Errorf("protocol: unexpected game event %q", event)
	}
}

func parseDegree(card string) (scoring.Func, error) {
	switch card {
	case "wald1":
		return scoring.StonesideForest, nil
	case "wald2":
		return scoring.SentinelWood, nil
	case "wald3":
		return scoring.Treetower, nil
	case "wald4":
		return scoring.Greenbough, nil
	case "wasser1":
		return scoring.MageValley, nil
	case "wasser2":
		return scoring.CanalLake, nil
	case "wasser3":
		return scoring.ShoresideExpanse, nil
	case "wasser4":
		return scoring.TheGoldenGranary, nil
	case "dorf1":
		return scoring.GreengoldPlains, nil
	case "dorf2":
		return scoring.Shieldgate, nil
	case "dorf3":
		return scoring.Wildholds, nil
	case "dorf4":
		return scoring.GreatCity, nil
	case "distanz1":
		return scoring.Borderlands, nil
	case "distanz2":
		return scoring.TheCauldrons, nil
	case "distanz3":
		return scoring.TheBrokenRoad, nil
	case "distanz4":
		return scoring.LostBarony, nil
	default:
		return nil, errors.Errorf("protocol: unknown degree %q", card)
	}
}

func parseSeason(name string) (state.Season, error) {
	switch name {
	case "spring":
		return state.Spring, nil
	case "sommer":
		return state.Summer, nil
	case "autmn":
		return state.Fall, nil
	case "winter":
		return state.Winter, nil
	default:
		return 0, errors.Errorf("protocol: unknown season %q", name)
	}
}

// parseBoard reads a flat cell array into a PlayerBoard. Since the wire
// format labels fixed terrain (MOUNTAIN/WASTELAND/Ruin) inline with every
// other cell, this also reconstructs the observed fixed-terrain layout;
// the caller matches it against the two known layouts to detect which
// side the game is using (see board.DetectLayout).
func parseBoard(cells []cellLandscape) (board.PlayerBoard, board.GameBoard, error) {
	pb := board.NewPlayerBoard()
	var mountainIdx, wastelandIdx, ruinIdx []int

	for idx, cell := range cells {
		terrain, fixed, err := parseLandscape(cell.Landscape)
		if err != nil {
			return board.PlayerBoard{}, board.GameBoard{}, err
		}

		switch {
		case fixed == fixedMountain:
			mountainIdx = append(mountainIdx, idx)
		case fixed == fixedWasteland:
			wastelandIdx = append(wastelandIdx, idx)
		case fixed == fixedRuin:
			ruinIdx = append(ruinIdx, idx)
		case fixed == fixedNone && terrain != nil:
			pb = pb.PlaceCells(*terrain, bitboard.CellIdx(idx))
		}
	}

	observed := board.GameBoard{
		Mountain:  bitboard.FromCells(mountainIdx),
		Wasteland: bitboard.FromCells(wastelandIdx),
		Ruin:      bitboard.FromCells(ruinIdx),
	}

	return pb, observed, nil
}

type fixedTerrain int

const (
	fixedNone fixedTerrain = iota
	fixedMountain
	fixedWasteland
	fixedRuin
)

func parseLandscape(name string) (*board.Terrain, fixedTerrain, error) {
	switch name {
	case "FOREST":
		t := board.Forest
		return &t, fixedNone, nil
	case "VILLAGE":
		t := board.Village
		return &t, fixedNone, nil
	case "FARM":
		t := board.Farm
		return &t, fixedNone, nil
	case "WATER":
		t := board.Water
		return &t, fixedNone, nil
	case "MONSTER":
		t := board.Monster
		return &t, fixedNone, nil
	case "MOUNTAIN":
		return nil, fixedMountain, nil
	case "WASTELAND":
		return nil, fixedWasteland, nil
	case "Ruin":
		return nil, fixedRuin, nil
	case "EMPTY":
		return nil, fixedNone, nil
	default:
		return nil, fixedNone, errors.Errorf("protocol: unknown terrain %q", name)
	}
}
