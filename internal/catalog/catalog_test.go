package catalog

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BeanieMen/Wikichu/internal/domain"
)

func TestDrawForRarity_OnlyRequestedTier(t *testing.T) {
	c := New([]domain.Sticker{
		{ID: 1, Name: "PEBBLIT", Rarity: 1},
		{ID: 2, Name: "FLAREPUP", Rarity: 2},
		{ID: 3, Name: "AQUAFIN", Rarity: 2},
	}, rand.NewSource(1))

	for i := 0; i < 50; i++ {
		s, err := c.DrawForRarity(2)
		assert.NoError(t, err)
		assert.Equal(t, 2, s.Rarity)
	}
}

func TestDrawForRarity_EmptyPool(t *testing.T) {
	c := New([]domain.Sticker{{ID: 1, Rarity: 1}}, rand.NewSource(1))

	_, err := c.DrawForRarity(5)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestDrawForRarity_Uniform(t *testing.T) {
	stickers := []domain.Sticker{
		{ID: 1, Name: "A", Rarity: 1},
		{ID: 2, Name: "B", Rarity: 1},
		{ID: 3, Name: "C", Rarity: 1},
		{ID: 4, Name: "D", Rarity: 1},
	}
	c := New(stickers, rand.NewSource(42))

	const draws = 8000
	counts := make(map[int]int)
	for i := 0; i < draws; i++ {
		s, err := c.DrawForRarity(1)
		assert.NoError(t, err)
		counts[s.ID]++
	}

	expected := draws / len(stickers)
	for _, s := range stickers {
		// Statistical bound, generous enough to never flake on a fixed seed.
		assert.InDelta(t, expected, counts[s.ID], float64(expected)*0.2,
			"sticker %s drawn disproportionately", s.Name)
	}
}

func TestDefault_CoversEveryChestTier(t *testing.T) {
	c := Default(rand.NewSource(1))

	for _, chest := range domain.Chests {
		_, err := c.DrawForRarity(chest.Rarity)
		assert.NoError(t, err, "chest %q has no stickers to award", chest.Name)
	}
}

func TestStickers_ReturnsWholePool(t *testing.T) {
	c := Default(rand.NewSource(1))

	all := c.Stickers()
	assert.NotEmpty(t, all)

	seen := make(map[int]bool)
	for _, s := range all {
		assert.False(t, seen[s.ID], "duplicate sticker id %d", s.ID)
		seen[s.ID] = true
		assert.True(t, domain.IsValidRarity(s.Rarity))
	}
}
