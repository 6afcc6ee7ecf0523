package domain

// ResearchBonuses aggregates the permanent percentage modifiers a character
// unlocked on the research track. Percentages are fractions (0.05 = 5%).
type ResearchBonuses struct {
	Nodes                    map[string]int           `json:"nodes,omitempty"`
	CategoryPercent          map[TaskCategory]float64 `json:"category_percent,omitempty"`
	GlobalExpPercent         float64                  `json:"global_exp_percent"`
	GlobalGoldPercent        float64                  `json:"global_gold_percent"`
	MissionDurationReduction float64                  `json:"mission_duration_reduction"`
	MissionSuccessBonus      float64                  `json:"mission_success_bonus"`
	DungeonSuccessBonus      float64                  `json:"dungeon_success_bonus"`
}

// NewResearchBonuses returns an empty aggregate with initialized maps
func NewResearchBonuses() ResearchBonuses {
	return ResearchBonuses{
		Nodes:           make(map[string]int),
		CategoryPercent: make(map[TaskCategory]float64),
	}
}

// Clone returns a deep copy
func (r ResearchBonuses) Clone() ResearchBonuses {
	cp := r
	if r.Nodes != nil {
		cp.Nodes = make(map[string]int, len(r.Nodes))
		for k, v := range r.Nodes {
			cp.Nodes[k] = v
		}
	}
	if r.CategoryPercent != nil {
		cp.CategoryPercent = make(map[TaskCategory]float64, len(r.CategoryPercent))
		for k, v := range r.CategoryPercent {
			cp.CategoryPercent[k] = v
		}
	}
	return cp
}
