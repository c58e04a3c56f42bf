// Package catalogue holds the fixed set of exploration and monster cards
// (shape, time cost, eligible terrains) and expands each card's base shape
// into its full set of placement patterns via dihedral symmetry.
package catalogue

import "github.com/lukev/cartobot/internal/bitboard"

// Terrain names one of the five player-board terrains a card can place.
type Terrain int

const (
	Forest Terrain = iota
	Village
	Farm
	Water
	Monster
)

// Pattern is one placeable shape of a card: a set of dihedral-symmetry
// mask variants sharing a fixed gold bonus, awarded when the shape is placed.
type Pattern struct {
	Variants []bitboard.Mask
	Gold     int
}

func newPattern(gold int, rows ...string) Pattern {
	return Pattern{
		Variants: symmetries(parseGrid(rows...)),
		Gold:     gold,
	}
}

// Card is a single exploration or monster card.
type Card struct {
	Name     string
	Time     int
	Terrains []Terrain
	Patterns []Pattern
	IsAmbush bool
}

// All is the full 20-card catalogue, indexed by Name: 11 exploration cards
// (one of which, splitterland, doubles as the non-ambush rift-land
// fallback), 8 monster cards, and the ambush rift-land fallback.
var All = buildCatalogue()

// ByName looks up a card by its catalogue name.
func ByName(name string) (Card, bool) {
	c, ok := All[name]
	return c, ok
}

func buildCatalogue() map[string]Card {
	cards := []Card{
		{
			Name:     "ackerland",
			Time:     1,
			Terrains: []Terrain{Farm},
			Patterns: []Pattern{
				newPattern(1, "xx"),
				newPattern(0, " x ", "xxx", " x "),
			},
		},
		{
			Name:     "baumwipfeldorf",
			Time:     2,
			Terrains: []Terrain{Forest, Village},
			Patterns: []Pattern{
				newPattern(0, "  xx", "xxx "),
			},
		},
		{
			Name:     "fischerdorf",
			Time:     2,
			Terrains: []Terrain{Village, Water},
			Patterns: []Pattern{
				newPattern(0, "xxxx"),
			},
		},
		{
			Name:     "gehoeft",
			Time:     2,
			Terrains: []Terrain{Village, Farm},
			Patterns: []Pattern{
				newPattern(0, "x ", "xx", "x "),
			},
		},
		{
			Name:     "grosserStrom",
			Time:     1,
			Terrains: []Terrain{Water},
			Patterns: []Pattern{
				newPattern(1, "xxx"),
				newPattern(0, "  x", " xx", "xx "),
			},
		},
		{
			Name:     "hinterlandbach",
			Time:     2,
			Terrains: []Terrain{Farm, Water},
			Patterns: []Pattern{
				newPattern(0, "xxx", "x  ", "x  "),
			},
		},
		{
			Name:     "obsthain",
			Time:     2,
			Terrains: []Terrain{Forest, Farm},
			Patterns: []Pattern{
				newPattern(0, "xxx", "  x"),
			},
		},
		{
			Name:     "splitterland",
			Time:     0,
			Terrains: []Terrain{Forest, Village, Farm, Water, Monster},
			Patterns: []Pattern{
				newPattern(0, "x"),
			},
		},
		{
			Name:     "sumpf",
			Time:     2,
			Terrains: []Terrain{Forest, Water},
			Patterns: []Pattern{
				newPattern(0, "x  ", "xxx", "x  "),
			},
		},
		{
			Name:     "vergessenerWald",
			Time:     1,
			Terrains: []Terrain{Forest},
			Patterns: []Pattern{
				newPattern(1, "x ", " x"),
				newPattern(0, "x ", "xx", " x"),
			},
		},
		{
			Name:     "weiler",
			Time:     1,
			Terrains: []Terrain{Village},
			Patterns: []Pattern{
				newPattern(1, "x ", "xx"),
				newPattern(0, "xxx", "xx "),
			},
		},

		{
			Name:     "gnollangriff",
			Time:     0,
			Terrains: []Terrain{Monster},
			IsAmbush: true,
			Patterns: []Pattern{
				newPattern(0, "xx", "x ", "xx"),
			},
		},
		{
			Name:     "goblinattacke",
			Time:     0,
			Terrains: []Terrain{Monster},
			IsAmbush: true,
			Patterns: []Pattern{
				newPattern(0, "x  ", " x ", "  x"),
			},
		},
		{
			Name:     "grottenschratueberfall",
			Time:     0,
			Terrains: []Terrain{Monster},
			IsAmbush: true,
			Patterns: []Pattern{
				newPattern(0, "x x", "x x"),
			},
		},
		{
			Name:     "insektoideninvasion",
			Time:     0,
			Terrains: []Terrain{Monster},
			IsAmbush: true,
			Patterns: []Pattern{
				newPattern(0, " x", "xx", "x "),
			},
		},
		{
			Name:     "koboldansturm",
			Time:     0,
			Terrains: []Terrain{Monster},
			IsAmbush: true,
			Patterns: []Pattern{
				newPattern(0, "x ", "xx", "x "),
			},
		},
		{
			Name:     "ogeroffensive",
			Time:     0,
			Terrains: []Terrain{Monster},
			IsAmbush: true,
			Patterns: []Pattern{
				newPattern(0, "xx", "xx"),
			},
		},
		{
			Name:     "rattenmenschenrache",
			Time:     0,
			Terrains: []Terrain{Monster},
			IsAmbush: true,
			Patterns: []Pattern{
				newPattern(0, "xxx"),
			},
		},
		{
			Name:     "schindersturm",
			Time:     0,
			Terrains: []Terrain{Monster},
			IsAmbush: true,
			Patterns: []Pattern{
				newPattern(0, "x ", "xx"),
			},
		},

		{
			Name:     "splitterland_monster",
			Time:     0,
			Terrains: []Terrain{Monster},
			IsAmbush: true,
			Patterns: []Pattern{
				newPattern(0, "x"),
			},
		},
	}

	byName := make(map[string]Card, len(cards))
	for _, c := range cards {
		byName[c.Name] = c
	}
	return byName
}

// ExploreCardNames lists the 11 drawable exploration card names, in the
// deck's fixed enumeration order.
var ExploreCardNames = []string{
	"ackerland", "baumwipfeldorf", "fischerdorf", "gehoeft", "grosserStrom",
	"hinterlandbach", "obsthain", "splitterland", "sumpf", "vergessenerWald",
	"weiler",
}

// MonsterCardNames lists the 8 drawable monster card names, in the deck's
// fixed enumeration order.
var MonsterCardNames = []string{
	"gnollangriff", "goblinattacke", "grottenschratueberfall",
	"insektoideninvasion", "koboldansturm", "ogeroffensive",
	"rattenmenschenrache", "schindersturm",
}

// RiftLandExplore is the fallback card the search places when a non-ambush
// card has no legal placement.
const RiftLandExplore = "splitterland"

// RiftLandMonster is the fallback card the search places when an ambush
// card has no legal placement.
const RiftLandMonster = "splitterland_monster"
