package grind

import (
	"errors"
	"strings"
)

var ErrInvalidMob = errors.New("invalid mob")

// Mob is a grind candidate. A nil Loot means the mob carries no inline loot
// and its table must be looked up; an empty non-nil slice is a known empty
// table.
type Mob struct {
	Name  string   `json:"name"`
	Level int      `json:"level"`
	Loot  []string `json:"loot,omitempty"`
}

func (m Mob) Validate() error {
	if strings.TrimSpace(m.Name) == "" || m.Level < 0 {
		return ErrInvalidMob
	}
	return nil
}

type Criteria struct {
	PreferredLoot []string
	MinLevel      int
	MaxLevel      int
}

func (c Criteria) Eligible(m Mob) bool {
	return m.Level >= c.MinLevel && m.Level <= c.MaxLevel
}
