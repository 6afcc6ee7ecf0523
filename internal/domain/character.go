package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StatType names one of the six character stat dimensions
type StatType string

const (
	StatUnknown   StatType = ""
	StatStrength  StatType = "strength"
	StatWisdom    StatType = "wisdom"
	StatCharisma  StatType = "charisma"
	StatDexterity StatType = "dexterity"
	StatLuck      StatType = "luck"
	StatDefense   StatType = "defense"
)

// AllStats lists every known stat in display order
var AllStats = []StatType{StatStrength, StatWisdom, StatCharisma, StatDexterity, StatLuck, StatDefense}

// ParseStatType validates a raw stat name
func ParseStatType(s string) (StatType, error) {
	for _, st := range AllStats {
		if string(st) == s {
			return st, nil
		}
	}
	return StatUnknown, fmt.Errorf("%w: unknown stat %q", ErrInvalidInput, s)
}

// Stats is the six-dimension stat block
type Stats struct {
	Strength  int `json:"strength"`
	Wisdom    int `json:"wisdom"`
	Charisma  int `json:"charisma"`
	Dexterity int `json:"dexterity"`
	Luck      int `json:"luck"`
	Defense   int `json:"defense"`
}

// Get returns the value of a single stat
func (s Stats) Get(t StatType) int {
	switch t {
	case StatStrength:
		return s.Strength
	case StatWisdom:
		return s.Wisdom
	case StatCharisma:
		return s.Charisma
	case StatDexterity:
		return s.Dexterity
	case StatLuck:
		return s.Luck
	case StatDefense:
		return s.Defense
	default:
		return 0
	}
}

// Add changes a single stat, never going below zero
func (s *Stats) Add(t StatType, delta int) {
	ptr := s.field(t)
	if ptr == nil {
		return
	}
	*ptr += delta
	if *ptr < 0 {
		*ptr = 0
	}
}

func (s *Stats) field(t StatType) *int {
	switch t {
	case StatStrength:
		return &s.Strength
	case StatWisdom:
		return &s.Wisdom
	case StatCharisma:
		return &s.Charisma
	case StatDexterity:
		return &s.Dexterity
	case StatLuck:
		return &s.Luck
	case StatDefense:
		return &s.Defense
	default:
		return nil
	}
}

// Plus returns the element-wise sum of two stat blocks
func (s Stats) Plus(o Stats) Stats {
	return Stats{
		Strength:  s.Strength + o.Strength,
		Wisdom:    s.Wisdom + o.Wisdom,
		Charisma:  s.Charisma + o.Charisma,
		Dexterity: s.Dexterity + o.Dexterity,
		Luck:      s.Luck + o.Luck,
		Defense:   s.Defense + o.Defense,
	}
}

// DailyCounters are per-day tallies reset at the local-midnight boundary
type DailyCounters struct {
	Day            string `json:"day"` // YYYY-MM-DD in the character's location
	TasksCompleted int    `json:"tasks_completed"`
	ExpEarned      int    `json:"exp_earned"`
	GoldEarned     int    `json:"gold_earned"`
}

// Inventory holds everything a character owns besides currency
type Inventory struct {
	Equipment      []Equipment `json:"equipment"`
	Materials      int         `json:"materials"`
	Consumables    int         `json:"consumables"`
	ResearchTokens int         `json:"research_tokens"`
	Cards          []string    `json:"cards"`
}

// PlayerCharacter is the aggregate root mutated by every engine
type PlayerCharacter struct {
	ID                  uuid.UUID              `json:"id"`
	Name                string                 `json:"name"`
	Class               CharacterClass         `json:"class"`
	Level               int                    `json:"level"`
	CurrentEXP          int                    `json:"current_exp"`
	Gold                int                    `json:"gold"`
	Gems                int                    `json:"gems"`
	UnspentStatPoints   int                    `json:"unspent_stat_points"`
	Stats               Stats                  `json:"stats"`
	CurrentStreak       int                    `json:"current_streak"`
	LongestStreak       int                    `json:"longest_streak"`
	LastActiveDay       string                 `json:"last_active_day,omitempty"`
	Daily               DailyCounters          `json:"daily"`
	TotalTasksCompleted int                    `json:"total_tasks_completed"`
	MissionsCompleted   int                    `json:"missions_completed"`
	DungeonsCleared     int                    `json:"dungeons_cleared"`
	LifetimeGold        int                    `json:"lifetime_gold"`
	Counters            map[AchievementKey]int `json:"counters,omitempty"`
	Achievements        []Achievement          `json:"achievements"`
	Research            ResearchBonuses        `json:"research"`
	Inventory           Inventory              `json:"inventory"`
	WisdomBuffExpiresAt *time.Time             `json:"wisdom_buff_expires_at,omitempty"`
	RegenBuffExpiresAt  *time.Time             `json:"regen_buff_expires_at,omitempty"`
	ActiveMission       *ActiveMission         `json:"active_mission,omitempty"`
	LastMission         *ActiveMission         `json:"last_mission,omitempty"`
	ActiveDungeonRunID  *uuid.UUID             `json:"active_dungeon_run_id,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// NewCharacter creates a level 1 character with the class starting stats
func NewCharacter(name string, class CharacterClass) *PlayerCharacter {
	now := time.Now()
	return &PlayerCharacter{
		ID:           uuid.New(),
		Name:         name,
		Class:        class,
		Level:        1,
		Stats:        class.StartingStats(),
		Counters:     make(map[AchievementKey]int),
		Achievements: make([]Achievement, 0),
		Research:     NewResearchBonuses(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasWisdomBuff reports whether the meditation buff is unexpired at now
func (c *PlayerCharacter) HasWisdomBuff(now time.Time) bool {
	return c.WisdomBuffExpiresAt != nil && now.Before(*c.WisdomBuffExpiresAt)
}

// HasRegenBuff reports whether the regen buff is unexpired at now
func (c *PlayerCharacter) HasRegenBuff(now time.Time) bool {
	return c.RegenBuffExpiresAt != nil && now.Before(*c.RegenBuffExpiresAt)
}

// EquipmentStats sums the bonuses of every equipped item
func (c *PlayerCharacter) EquipmentStats() Stats {
	var total Stats
	for _, eq := range c.Inventory.Equipment {
		if eq.Equipped {
			total = total.Plus(eq.EffectiveBonus())
		}
	}
	return total
}

// EffectiveStats is base + equipment + active buffs
func (c *PlayerCharacter) EffectiveStats(now time.Time) Stats {
	eff := c.Stats.Plus(c.EquipmentStats())
	if c.HasWisdomBuff(now) {
		eff.Wisdom += WisdomBuffStatBonus
	}
	return eff
}

// ActivateBuff spends one consumable on a timed buff. An unexpired buff is
// extended rather than reset.
func (c *PlayerCharacter) ActivateBuff(kind BuffKind, now time.Time) error {
	var slot **time.Time
	var d time.Duration
	switch kind {
	case BuffMeditation:
		slot, d = &c.WisdomBuffExpiresAt, WisdomBuffDuration
	case BuffRegen:
		slot, d = &c.RegenBuffExpiresAt, RegenBuffDuration
	default:
		return fmt.Errorf("%w: unknown buff %q", ErrInvalidInput, kind)
	}
	if c.Inventory.Consumables < 1 {
		return ErrNoConsumables
	}
	c.Inventory.Consumables--
	start := now
	if *slot != nil && (*slot).After(now) {
		start = **slot
	}
	expires := start.Add(d)
	*slot = &expires
	return nil
}

// AddGold credits gold and tracks the lifetime total
func (c *PlayerCharacter) AddGold(amount int) {
	if amount <= 0 {
		return
	}
	c.Gold += amount
	c.LifetimeGold += amount
}

// SpendGold debits gold; it leaves the character untouched when funds are short
func (c *PlayerCharacter) SpendGold(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidInput)
	}
	if c.Gold < amount {
		return ErrInsufficientFunds
	}
	c.Gold -= amount
	return nil
}

// SpendMaterials debits materials; it leaves the character untouched when short
func (c *PlayerCharacter) SpendMaterials(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidInput)
	}
	if c.Inventory.Materials < amount {
		return ErrInsufficientMaterials
	}
	c.Inventory.Materials -= amount
	return nil
}

// IncrementCounter bumps an explicit achievement counter
func (c *PlayerCharacter) IncrementCounter(key AchievementKey, n int) {
	if c.Counters == nil {
		c.Counters = make(map[AchievementKey]int)
	}
	c.Counters[key] += n
}

// FindEquipment returns a pointer into the inventory for the given item
func (c *PlayerCharacter) FindEquipment(id uuid.UUID) (*Equipment, int) {
	for i := range c.Inventory.Equipment {
		if c.Inventory.Equipment[i].ID == id {
			return &c.Inventory.Equipment[i], i
		}
	}
	return nil, -1
}

// IsBusy reports whether a mission or dungeon run already occupies the character
func (c *PlayerCharacter) IsBusy() bool {
	return c.ActiveMission != nil || c.ActiveDungeonRunID != nil
}

// Clone returns a deep copy of the character
func (c *PlayerCharacter) Clone() *PlayerCharacter {
	if c == nil {
		return nil
	}
	cp := *c
	if c.Counters != nil {
		cp.Counters = make(map[AchievementKey]int, len(c.Counters))
		for k, v := range c.Counters {
			cp.Counters[k] = v
		}
	}
	cp.Achievements = cloneSlice(c.Achievements)
	cp.Research = c.Research.Clone()
	cp.Inventory.Equipment = cloneSlice(c.Inventory.Equipment)
	cp.Inventory.Cards = cloneSlice(c.Inventory.Cards)
	if c.WisdomBuffExpiresAt != nil {
		t := *c.WisdomBuffExpiresAt
		cp.WisdomBuffExpiresAt = &t
	}
	if c.RegenBuffExpiresAt != nil {
		t := *c.RegenBuffExpiresAt
		cp.RegenBuffExpiresAt = &t
	}
	cp.ActiveMission = c.ActiveMission.clone()
	cp.LastMission = c.LastMission.clone()
	if c.ActiveDungeonRunID != nil {
		id := *c.ActiveDungeonRunID
		cp.ActiveDungeonRunID = &id
	}
	return &cp
}

// cloneSlice copies s and keeps a nil slice nil
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
