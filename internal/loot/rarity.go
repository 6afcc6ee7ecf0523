package loot

import (
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/utils"
)

// RarityWeights are relative drop weights per rarity
type RarityWeights map[domain.Rarity]float64

// DefaultRarityWeights returns the built-in rarity table
func DefaultRarityWeights() RarityWeights {
	return RarityWeights{
		domain.RarityCommon:    60,
		domain.RarityUncommon:  25,
		domain.RarityRare:      10,
		domain.RarityEpic:      4,
		domain.RarityLegendary: 1,
	}
}

// Shifted returns weights where each rarity rank r is scaled by (1 + shift*r).
// A positive shift moves probability toward higher rarities.
func (w RarityWeights) Shifted(shift float64) RarityWeights {
	out := make(RarityWeights, len(w))
	for r, weight := range w {
		rank := r.Rank()
		if rank < 0 {
			continue
		}
		out[r] = weight * (1 + shift*float64(rank))
	}
	return out
}

// Pick draws one rarity using the shifted weights
func (w RarityWeights) Pick(rng utils.RNG, shift float64) domain.Rarity {
	shifted := w.Shifted(shift)
	total := 0.0
	for _, r := range domain.AllRarities {
		total += shifted[r]
	}
	if total <= 0 {
		return domain.RarityCommon
	}

	roll := rng.Float64() * total
	acc := 0.0
	for _, r := range domain.AllRarities {
		acc += shifted[r]
		if roll < acc {
			return r
		}
	}
	return domain.RarityCommon
}

// LuckShift converts Luck into a rarity shift with diminishing returns, at most MaxLuckShift
func LuckShift(luck int) float64 {
	return MaxLuckShift * utils.DiminishingReturns(float64(luck), LuckShiftScale)
}

// DungeonShift combines tier, party luck and average room difficulty into one rarity shift
func DungeonShift(tier int, avgLuck, avgDifficulty float64) float64 {
	shift := TierShift*float64(tier-1) + MaxLuckShift*utils.DiminishingReturns(avgLuck, LuckShiftScale)
	shift += DifficultyShift * utils.DiminishingReturns(avgDifficulty, DifficultyShiftScale)
	return shift
}
