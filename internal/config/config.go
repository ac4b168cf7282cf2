package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8000
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBName     = "gamdel"
	defaultDBCharset  = "utf8mb4"
	defaultDataDir    = "data"

	defaultAnswerTimeoutSeconds = 45
	defaultContextLimit         = 8000
)

// Load reads the YAML config file at path, applies env overrides and
// defaults, and returns the normalized AppConfig. A missing file is not an
// error; envs and defaults alone can configure the service.
func Load(path string) (*AppConfig, error) {
	raw := rawAppConfig{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env + defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := raw.normalize()
	applyEnv(cfg)
	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDev reports whether the service runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development") || c.Env == ""
}

// DSN assembles the MySQL DSN from the database block unless one is given
// verbatim.
func (c DatabaseConfig) DSN() string {
	if v := strings.TrimSpace(c.RawDSN); v != "" {
		return v
	}
	host := orDefault(c.Host, defaultDBHost)
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := orDefault(c.User, defaultDBUser)
	name := orDefault(c.Name, defaultDBName)
	charset := orDefault(c.Charset, defaultDBCharset)
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		user, c.Password, host, port, name, charset)
}

func (r rawAppConfig) normalize() *AppConfig {
	cfg := &AppConfig{
		Port:     r.Port,
		Env:      strings.TrimSpace(r.Env),
		Database: r.Database,
		RedisURL: strings.TrimSpace(r.RedisURL),
		DataDir:  strings.TrimSpace(r.DataDir),
		AI:       r.AI,
		Resolver: r.Resolver,
	}
	if cfg.Env == "" {
		cfg.Env = strings.TrimSpace(r.NodeEnv)
	}
	return cfg
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("GAMDEL_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("GAMDEL_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("GAMDEL_DSN"); v != "" {
		cfg.Database.RawDSN = v
	}
	if v := os.Getenv("GAMDEL_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("GAMDEL_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("GAMDEL_AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("GAMDEL_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("GAMDEL_AI_ENDPOINT"); v != "" {
		cfg.AI.Endpoint = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379/0"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if cfg.AI.Type == "" {
		cfg.AI.Type = "openai"
	}
	if cfg.AI.TimeoutSeconds <= 0 {
		cfg.AI.TimeoutSeconds = defaultAnswerTimeoutSeconds
	}
	if cfg.Resolver.ContextLimit <= 0 {
		cfg.Resolver.ContextLimit = defaultContextLimit
	}
	if cfg.Resolver.MinScore == nil {
		cfg.Resolver.MinScore = new(float64)
		*cfg.Resolver.MinScore = -1 // resolver substitutes its default
	}
}

func validate(cfg *AppConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Port)
	}
	return nil
}

func orDefault(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
