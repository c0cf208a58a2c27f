package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type GraphSource string

const (
	GraphSourceMemory   GraphSource = "memory"
	GraphSourceFile     GraphSource = "file"
	GraphSourcePostgres GraphSource = "postgres"
	GraphSourceNeo4j    GraphSource = "neo4j"
)

type Config struct {
	HTTP    HTTPConfig
	DB      DBConfig
	Graph   GraphConfig
	Neo4j   Neo4jConfig
	Game    GameConfig
	Grind   GrindConfig
	Logging LoggingConfig
}

type HTTPConfig struct {
	Addr string
}

type DBConfig struct {
	DSN           string
	MigrationsDir string
}

// GraphConfig selects where the shuttle network comes from. File, when set
// together with a postgres or neo4j source, is imported into that store at
// startup.
type GraphConfig struct {
	Source   GraphSource
	File     string
	CacheTTL time.Duration
}

type Neo4jConfig struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// GameConfig configures the websocket game bridge. An empty URL means moves
// are only logged.
type GameConfig struct {
	WebsocketURL   string
	CommandTimeout time.Duration
}

type GrindConfig struct {
	LootFile string
	Seed     int64
	SeedSet  bool
}

type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultHTTPAddr         = ":8080"
	defaultMigrationsDir    = "db/migrations"
	defaultGraphCacheTTL    = time.Minute
	defaultCommandTimeout   = 30 * time.Second
	defaultNeo4jMaxSessions = 10
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Addr: valueOrDefault("HTTP_ADDR", defaultHTTPAddr),
		},
		DB: DBConfig{
			DSN:           strings.TrimSpace(os.Getenv("GALAXYASSIST_DB_DSN")),
			MigrationsDir: valueOrDefault("MIGRATIONS_DIR", defaultMigrationsDir),
		},
		Graph: GraphConfig{
			File:     strings.TrimSpace(os.Getenv("GRAPH_FILE")),
			CacheTTL: defaultGraphCacheTTL,
		},
		Neo4j: Neo4jConfig{
			URI:            os.Getenv("NEO4J_URI"),
			Database:       valueOrDefault("NEO4J_DATABASE", ""),
			Username:       os.Getenv("NEO4J_USERNAME"),
			Password:       os.Getenv("NEO4J_PASSWORD"),
			MaxConnections: parseIntWithDefault("NEO4J_MAX_CONNECTIONS", defaultNeo4jMaxSessions),
		},
		Game: GameConfig{
			WebsocketURL:   strings.TrimSpace(os.Getenv("GAME_WS_URL")),
			CommandTimeout: defaultCommandTimeout,
		},
		Grind: GrindConfig{
			LootFile: strings.TrimSpace(os.Getenv("LOOT_FILE")),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	source, err := parseGraphSource(os.Getenv("GRAPH_SOURCE"), cfg)
	if err != nil {
		return Config{}, err
	}
	cfg.Graph.Source = source

	if v := os.Getenv("GRAPH_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GRAPH_CACHE_TTL: %w", err)
		}
		cfg.Graph.CacheTTL = d
	}

	if v := os.Getenv("GAME_COMMAND_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GAME_COMMAND_TIMEOUT: %w", err)
		}
		cfg.Game.CommandTimeout = d
	}

	if v := strings.TrimSpace(os.Getenv("GRIND_SEED")); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid GRIND_SEED: %w", err)
		}
		cfg.Grind.Seed = seed
		cfg.Grind.SeedSet = true
	}

	return cfg, nil
}

// parseGraphSource defaults to file when GRAPH_FILE is set and to memory
// otherwise.
func parseGraphSource(raw string, cfg Config) (GraphSource, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		if cfg.Graph.File != "" {
			return GraphSourceFile, nil
		}
		return GraphSourceMemory, nil
	}
	switch s := GraphSource(raw); s {
	case GraphSourceMemory:
		return s, nil
	case GraphSourceFile:
		if cfg.Graph.File == "" {
			return "", fmt.Errorf("GRAPH_SOURCE=file requires GRAPH_FILE")
		}
		return s, nil
	case GraphSourcePostgres:
		if cfg.DB.DSN == "" {
			return "", fmt.Errorf("GRAPH_SOURCE=postgres requires GALAXYASSIST_DB_DSN")
		}
		return s, nil
	case GraphSourceNeo4j:
		if cfg.Neo4j.URI == "" {
			return "", fmt.Errorf("GRAPH_SOURCE=neo4j requires NEO4J_URI")
		}
		return s, nil
	default:
		return "", fmt.Errorf("invalid GRAPH_SOURCE %q", raw)
	}
}

func valueOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}
