package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/BeanieMen/Wikichu/internal/domain"
)

var ErrEmptyPool = errors.New("no stickers configured for rarity")

// Catalog is the immutable sticker pool, partitioned by rarity tier. Awarded
// stickers reference catalog entries; the pool itself never changes at runtime.
type Catalog struct {
	mu       sync.Mutex
	rng      *rand.Rand
	byRarity map[int][]domain.Sticker
}

func New(stickers []domain.Sticker, src rand.Source) *Catalog {
	byRarity := make(map[int][]domain.Sticker)
	for _, s := range stickers {
		byRarity[s.Rarity] = append(byRarity[s.Rarity], s)
	}
	return &Catalog{
		rng:      rand.New(src),
		byRarity: byRarity,
	}
}

// DrawForRarity picks one sticker uniformly at random from the requested tier.
// An empty tier is a configuration error, never a fallback to another tier.
func (c *Catalog) DrawForRarity(rarity int) (domain.Sticker, error) {
	pool := c.byRarity[rarity]
	if len(pool) == 0 {
		return domain.Sticker{}, fmt.Errorf("%w %d", ErrEmptyPool, rarity)
	}

	c.mu.Lock()
	idx := c.rng.Intn(len(pool))
	c.mu.Unlock()

	return pool[idx], nil
}

// Stickers returns every entry in the pool, for seeding the stickers table.
func (c *Catalog) Stickers() []domain.Sticker {
	var all []domain.Sticker
	for r := domain.RarityMin; r <= domain.RarityMax; r++ {
		all = append(all, c.byRarity[r]...)
	}
	return all
}
