package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeasonFillsDeckAndAddsOneMonster(t *testing.T) {
	d := Empty().NewSeason()
	draws := d.DrawCards()
	require.NotEmpty(t, draws)
	assert.Equal(t, 1, d.MonstersInDeck())

	d2 := d.NewSeason()
	assert.Equal(t, 2, d2.MonstersInDeck())
}

func TestDrawCardsProbabilitiesSumToOne(t *testing.T) {
	d := Empty().NewSeason().NewSeason()

	total := 0.0
	for _, draw := range d.DrawCards() {
		total += draw.Probability
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestDrawCardsProbabilitiesSumToOneAfterPartialDraws(t *testing.T) {
	d := Empty().NewSeason().NewSeason().NewSeason()
	d = d.RemoveExploreCard(0).RemoveExploreCard(3).RemoveMonsterCard(2)

	total := 0.0
	for _, draw := range d.DrawCards() {
		total += draw.Probability
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestDrawCardsOnEmptyDeckReturnsNothing(t *testing.T) {
	assert.Empty(t, Empty().DrawCards())
}

func TestRemoveExploreCardRemovesOneDraw(t *testing.T) {
	d := Empty().NewSeason()
	before := len(d.DrawCards())
	removed := d.RemoveExploreCard(0)
	assert.Equal(t, before-1, len(removed.DrawCards()))
}

func TestMonsterCardsExcludedWhenNoneSeeded(t *testing.T) {
	// a deck with explore cards but no monsters seeded should never
	// surface a monster draw.
	d := Deck{exploreMask: (1 << exploreCount) - 1, monsterMask: (1 << monsterCount) - 1}
	for _, draw := range d.DrawCards() {
		assert.NotEqual(t, 0, draw.Probability)
	}
	assert.Len(t, d.DrawCards(), exploreCount)
}
