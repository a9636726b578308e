package domain

type Chest struct {
	Name   string
	Price  int
	Rarity int
}

// Chests is the tier table shown in the marketplace. The purchase endpoint
// accepts any positive price with a valid rarity; this list exists so the
// presentation layer renders prices from one place instead of hardcoding them.
var Chests = []Chest{
	{Name: "common", Price: 50, Rarity: 1},
	{Name: "uncommon", Price: 150, Rarity: 2},
	{Name: "epic", Price: 500, Rarity: 3},
	{Name: "legendary", Price: 1500, Rarity: 4},
}
