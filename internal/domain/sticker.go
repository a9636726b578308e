package domain

const (
	RarityMin = 1
	RarityMax = 5
)

type Sticker struct {
	ID          int
	Name        string
	SourceURL   string
	Rarity      int
	Description string
}

func IsValidRarity(rarity int) bool {
	return rarity >= RarityMin && rarity <= RarityMax
}
