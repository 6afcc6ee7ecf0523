package mission

import "github.com/osse101/QuestForge_Go/internal/domain"

type tokenDrop struct {
	chance float64
	count  int
}

// Research token drops by mission rarity; rarer missions drop more, more often
var tokenDrops = map[domain.Rarity]tokenDrop{
	domain.RarityCommon:    {chance: 0.20, count: 1},
	domain.RarityUncommon:  {chance: 0.35, count: 1},
	domain.RarityRare:      {chance: 0.50, count: 2},
	domain.RarityEpic:      {chance: 0.75, count: 3},
	domain.RarityLegendary: {chance: 1.00, count: 5},
}

// TokenDrop returns the drop chance and count for a mission rarity
func TokenDrop(r domain.Rarity) (chance float64, count int) {
	d := tokenDrops[r]
	return d.chance, d.count
}
