package staticloot

import (
	"context"
	"fmt"
	"os"
	"strings"

	"galaxyassist/internal/app/ports"

	"gopkg.in/yaml.v3"
)

var defaultTable = map[string][]string{
	"bantha":               {"bantha milk", "bantha hide", "bantha meat"},
	"womp rat":             {"womp rat hide", "womp rat meat"},
	"kreetle":              {"kreetle meat", "chitin"},
	"dewback":              {"dewback hide", "reptilian meat", "dewback bone"},
	"canyon krayt dragon":  {"krayt pearl", "krayt dragon bones", "krayt tissue"},
	"greater krayt dragon": {"krayt pearl", "krayt dragon scales", "krayt tissue"},
	"eopie":                {"eopie hide", "eopie meat"},
	"rancor":               {"rancor hide", "rancor bone", "carnivore meat"},
	"nuna":                 {"avian meat", "nuna eggs"},
	"kaadu":                {"avian meat", "kaadu hide"},
}

// Provider answers loot lookups from an in-process table. Mob names are
// matched case-insensitively.
type Provider struct {
	table map[string][]string
}

func Default() Provider {
	return New(defaultTable)
}

func New(table map[string][]string) Provider {
	out := make(map[string][]string, len(table))
	for name, loot := range table {
		out[key(name)] = append([]string(nil), loot...)
	}
	return Provider{table: out}
}

// LoadFile reads a YAML mapping of mob name to loot list. Entries from the
// file replace built-in entries with the same name.
func LoadFile(path string) (Provider, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Provider{}, fmt.Errorf("read loot table %s: %w", path, err)
	}
	var fromFile map[string][]string
	if err := yaml.Unmarshal(b, &fromFile); err != nil {
		return Provider{}, fmt.Errorf("decode loot table %s: %w", path, err)
	}
	merged := make(map[string][]string, len(defaultTable)+len(fromFile))
	for name, loot := range defaultTable {
		merged[key(name)] = loot
	}
	for name, loot := range fromFile {
		if strings.TrimSpace(name) == "" {
			return Provider{}, fmt.Errorf("decode loot table %s: empty mob name", path)
		}
		merged[key(name)] = loot
	}
	return New(merged), nil
}

func (p Provider) LootForMob(_ context.Context, mobName string) ([]string, error) {
	loot, ok := p.table[key(mobName)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return append([]string(nil), loot...), nil
}

func (p Provider) Len() int {
	return len(p.table)
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
