package target

import "galaxyassist/internal/domain/grind"

type Request struct {
	Mobs          []grind.Mob
	PreferredLoot []string
	MinLevel      int
	MaxLevel      int
}

type Response struct {
	Found       bool       `json:"found"`
	Target      *grind.Mob `json:"target"`
	Score       int        `json:"score"`
	MatchedLoot []string   `json:"matched_loot"`
	Fallback    bool       `json:"fallback"`
	Eligible    int        `json:"eligible"`
}
