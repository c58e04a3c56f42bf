package catalogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymmetriesProduceAtMostEightVariants(t *testing.T) {
	g := parseGrid("x  ", " x ", "  x")
	variants := symmetries(g)
	assert.LessOrEqual(t, len(variants), 8)
	assert.GreaterOrEqual(t, len(variants), 1)
}

func TestSymmetriesDedupSymmetricShapes(t *testing.T) {
	// a 2x2 square is invariant under every rotation and mirror.
	g := parseGrid("xx", "xx")
	variants := symmetries(g)
	assert.Len(t, variants, 1)
}

func TestSymmetriesDedupTwoFoldShapes(t *testing.T) {
	// a straight tromino has only two distinct orientations (horizontal,
	// vertical); mirroring doesn't change it.
	g := parseGrid("xxx")
	variants := symmetries(g)
	assert.Len(t, variants, 2)
}

func TestEveryCardResolves(t *testing.T) {
	names := append(append([]string{}, ExploreCardNames...), MonsterCardNames...)
	names = append(names, RiftLandExplore, RiftLandMonster)

	for _, name := range names {
		c, ok := ByName(name)
		require.Truef(t, ok, "card %s missing from catalogue", name)
		assert.Equal(t, name, c.Name)
		assert.NotEmpty(t, c.Patterns)
		for _, p := range c.Patterns {
			assert.NotEmpty(t, p.Variants)
			for _, v := range p.Variants {
				assert.True(t, v.HasCells())
			}
		}
	}
}

func TestMonsterCardsAreAmbushOnly(t *testing.T) {
	for _, name := range MonsterCardNames {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.True(t, c.IsAmbush, "%s should be an ambush card", name)
		assert.Equal(t, 0, c.Time)
		assert.Equal(t, []Terrain{Monster}, c.Terrains)
	}
}

func TestExploreCardsAreNotAmbush(t *testing.T) {
	for _, name := range ExploreCardNames {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.False(t, c.IsAmbush, "%s should not be an ambush card", name)
	}
}
