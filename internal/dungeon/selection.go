package dungeon

import (
	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/utils"
)

// SelectRooms builds the room sequence for a run. Bosses are always in, each
// bonus room rolls its own inclusion, and the remaining slots are filled from
// the shuffled regular rooms the party qualifies for. Bosses come last.
func SelectRooms(rng utils.RNG, d *domain.Dungeon, party []*domain.PlayerCharacter) []domain.Room {
	var bosses, bonus, pool []domain.Room
	for _, r := range d.Rooms {
		switch r.Kind {
		case domain.RoomBoss:
			bosses = append(bosses, r)
		case domain.RoomBonus:
			bonus = append(bonus, r)
		default:
			if Qualifies(r, party) {
				pool = append(pool, r)
			}
		}
	}

	body := make([]domain.Room, 0, d.RoomSlots)
	for _, r := range bonus {
		if rng.Float64() < BonusRoomChance {
			body = append(body, r)
		}
	}

	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	slots := d.RoomSlots - len(bosses) - len(body)
	if slots > len(pool) {
		slots = len(pool)
	}
	if slots > 0 {
		body = append(body, pool[:slots]...)
	}

	rng.Shuffle(len(body), func(i, j int) { body[i], body[j] = body[j], body[i] })
	return append(body, bosses...)
}

// Qualifies reports whether someone in the party can enter a class-gated room.
// Advanced classes count as the class they ranked up from.
func Qualifies(r domain.Room, party []*domain.PlayerCharacter) bool {
	if r.RequiredClass == domain.ClassUnknown {
		return true
	}
	for _, m := range party {
		if m.Class == r.RequiredClass {
			return true
		}
		if info, ok := m.Class.Info(); ok && info.RankUpFrom == r.RequiredClass {
			return true
		}
	}
	return false
}
