package research

import "math"

// ModifierType defines how a research node modifies a value
type ModifierType string

const (
	// ModifierTypeMultiplicative: value * (1 + level * perLevelValue)
	ModifierTypeMultiplicative ModifierType = "multiplicative"

	// ModifierTypeLinear: value + (level * perLevelValue)
	ModifierTypeLinear ModifierType = "linear"

	// ModifierTypePercentage: baseValue + (level * perLevelValue), expressed as a fraction
	// Example: 0 base + (3 * 0.02) = 0.06 at level 3
	ModifierTypePercentage ModifierType = "percentage"
)

// ValueModifier is a node modifier resolved at a given level
type ValueModifier struct {
	NodeKey       string
	ModifierType  ModifierType
	BaseValue     float64
	PerLevelValue float64
	CurrentLevel  int
	MaxValue      *float64
	MinValue      *float64
}

// ApplyModifier calculates the final value based on modifier type and level
func ApplyModifier(modifier *ValueModifier, baseValue float64) float64 {
	level := float64(modifier.CurrentLevel)

	var result float64
	switch modifier.ModifierType {
	case ModifierTypeMultiplicative:
		result = baseValue * (1 + level*modifier.PerLevelValue)
	case ModifierTypeLinear:
		result = baseValue + level*modifier.PerLevelValue
	case ModifierTypePercentage:
		result = modifier.BaseValue + level*modifier.PerLevelValue
	default:
		return baseValue
	}

	if modifier.MaxValue != nil {
		result = math.Min(result, *modifier.MaxValue)
	}
	if modifier.MinValue != nil {
		result = math.Max(result, *modifier.MinValue)
	}
	return result
}
