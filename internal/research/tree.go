package research

import (
	"fmt"
	"sort"

	"github.com/osse101/QuestForge_Go/internal/domain"
)

// Target is the bonus a research node feeds
type Target string

const (
	TargetCategoryEXP     Target = "category_exp"
	TargetGlobalEXP       Target = "global_exp"
	TargetGlobalGold      Target = "global_gold"
	TargetMissionDuration Target = "mission_duration"
	TargetMissionSuccess  Target = "mission_success"
	TargetDungeonSuccess  Target = "dungeon_success"
)

// Node is one permanent research upgrade
type Node struct {
	Key           string              `json:"key" validate:"required"`
	Name          string              `json:"name" validate:"required"`
	Target        Target              `json:"target" validate:"required,oneof=category_exp global_exp global_gold mission_duration mission_success dungeon_success"`
	Category      domain.TaskCategory `json:"category,omitempty"`
	ModifierType  ModifierType        `json:"modifier_type" validate:"required,oneof=multiplicative linear percentage"`
	BaseValue     float64             `json:"base_value"`
	PerLevelValue float64             `json:"per_level_value" validate:"gt=0"`
	MaxValue      *float64            `json:"max_value,omitempty"`
	MaxLevel      int                 `json:"max_level" validate:"gte=1"`
	BaseCost      int                 `json:"base_cost" validate:"gte=1"`
}

// CostForLevel returns the token cost of buying the given level
func (n *Node) CostForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return n.BaseCost * level
}

func (n *Node) modifier(level int) *ValueModifier {
	return &ValueModifier{
		NodeKey:       n.Key,
		ModifierType:  n.ModifierType,
		BaseValue:     n.BaseValue,
		PerLevelValue: n.PerLevelValue,
		CurrentLevel:  level,
		MaxValue:      n.MaxValue,
	}
}

// Tree is an immutable catalog of research nodes
type Tree struct {
	nodes map[string]*Node
}

// NewTree builds a tree from node definitions; duplicate keys are rejected
func NewTree(nodes []Node) (*Tree, error) {
	t := &Tree{nodes: make(map[string]*Node, len(nodes))}
	for i := range nodes {
		n := nodes[i]
		if _, dup := t.nodes[n.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate research node %q", domain.ErrInvalidInput, n.Key)
		}
		if n.Target == TargetCategoryEXP && !n.Category.IsValid() {
			return nil, fmt.Errorf("%w: research node %q needs a category", domain.ErrInvalidInput, n.Key)
		}
		t.nodes[n.Key] = &n
	}
	return t, nil
}

// Node looks up a node by key
func (t *Tree) Node(key string) (*Node, bool) {
	n, ok := t.nodes[key]
	return n, ok
}

// Nodes returns all nodes sorted by key
func (t *Tree) Nodes() []Node {
	out := make([]Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Aggregate rebuilds the bonus aggregate from purchased node levels
func (t *Tree) Aggregate(levels map[string]int) domain.ResearchBonuses {
	out := domain.NewResearchBonuses()
	for key, level := range levels {
		out.Nodes[key] = level
		n, ok := t.nodes[key]
		if !ok || level <= 0 {
			continue
		}
		v := ApplyModifier(n.modifier(level), 0)
		switch n.Target {
		case TargetCategoryEXP:
			out.CategoryPercent[n.Category] += v
		case TargetGlobalEXP:
			out.GlobalExpPercent += v
		case TargetGlobalGold:
			out.GlobalGoldPercent += v
		case TargetMissionDuration:
			out.MissionDurationReduction += v
		case TargetMissionSuccess:
			out.MissionSuccessBonus += v
		case TargetDungeonSuccess:
			out.DungeonSuccessBonus += v
		}
	}
	if out.MissionDurationReduction > MaxDurationReduction {
		out.MissionDurationReduction = MaxDurationReduction
	}
	return out
}

// Purchase buys the next level of a node with research tokens.
// Nothing changes when the node is maxed or tokens are short.
func (t *Tree) Purchase(c *domain.PlayerCharacter, key string) (int, error) {
	n, ok := t.nodes[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrResearchNotFound, key)
	}
	current := c.Research.Nodes[key]
	if current >= n.MaxLevel {
		return current, domain.ErrResearchMaxed
	}
	cost := n.CostForLevel(current + 1)
	if c.Inventory.ResearchTokens < cost {
		return current, domain.ErrInsufficientTokens
	}

	c.Inventory.ResearchTokens -= cost
	levels := make(map[string]int, len(c.Research.Nodes)+1)
	for k, v := range c.Research.Nodes {
		levels[k] = v
	}
	levels[key] = current + 1
	c.Research = t.Aggregate(levels)
	return current + 1, nil
}
