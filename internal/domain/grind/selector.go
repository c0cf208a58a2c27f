package grind

import "strings"

const lootMatchWeight = 100

// LootLookup resolves the loot table of a mob that has no inline loot.
type LootLookup func(mobName string) []string

// RandSource is satisfied by *math/rand.Rand.
type RandSource interface {
	Intn(n int) int
}

type Selection struct {
	Mob         Mob      `json:"mob"`
	Score       int      `json:"score"`
	MatchedLoot []string `json:"matched_loot"`
	Fallback    bool     `json:"fallback"`
	Eligible    int      `json:"eligible"`
}

// ChooseTarget picks the eligible mob with the highest score, where each
// preferred loot item the mob drops is worth 100 and level is added on top.
// Ties keep the earlier mob. When no eligible mob drops any preferred item the
// scores are ignored and the pick is uniform over the eligible mobs.
func ChooseTarget(mobs []Mob, c Criteria, lookup LootLookup, rng RandSource) (Selection, bool) {
	preferred := normalizeSet(c.PreferredLoot)

	eligible := make([]Mob, 0, len(mobs))
	var best Selection
	anyMatch := false
	for _, m := range mobs {
		if !c.Eligible(m) {
			continue
		}
		eligible = append(eligible, m)

		loot := m.Loot
		if loot == nil && lookup != nil {
			loot = lookup(m.Name)
		}
		matched := matchLoot(loot, preferred)
		score := lootMatchWeight*len(matched) + m.Level
		if len(matched) > 0 {
			anyMatch = true
		}
		if len(eligible) == 1 || score > best.Score {
			best = Selection{Mob: m, Score: score, MatchedLoot: matched}
		}
	}
	if len(eligible) == 0 {
		return Selection{}, false
	}
	if !anyMatch {
		pick := eligible[0]
		if rng != nil && len(eligible) > 1 {
			pick = eligible[rng.Intn(len(eligible))]
		}
		return Selection{Mob: pick, Score: pick.Level, MatchedLoot: []string{}, Fallback: true, Eligible: len(eligible)}, true
	}
	best.Eligible = len(eligible)
	return best, true
}

func matchLoot(loot []string, preferred map[string]string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, item := range loot {
		key := normalize(item)
		if _, ok := preferred[key]; !ok || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, preferred[key])
	}
	return out
}

func normalizeSet(items []string) map[string]string {
	out := make(map[string]string, len(items))
	for _, item := range items {
		key := normalize(item)
		if key == "" {
			continue
		}
		if _, ok := out[key]; !ok {
			out[key] = item
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
