package config

// AppConfig holds runtime startup configuration loaded from YAML plus env
// overrides.
type AppConfig struct {
	Port     int            `yaml:"port"`
	Env      string         `yaml:"env"` // "development" | "production"
	Database DatabaseConfig `yaml:"database"`
	RedisURL string         `yaml:"redis_url"`
	DataDir  string         `yaml:"data_dir"`
	AI       AIProvider     `yaml:"ai"`
	Resolver ResolverConfig `yaml:"resolver"`
}

// DatabaseConfig configures the MySQL metadata store.
type DatabaseConfig struct {
	RawDSN   string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// AIProvider configures the generative answering backend.
type AIProvider struct {
	Type           string `yaml:"type"` // openai | openai-compatible | anthropic
	APIKey         string `yaml:"api_key"`
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ResolverConfig tunes document resolution.
type ResolverConfig struct {
	// MinScore is the vector-stage similarity cutoff; nil means the resolver
	// default. Zero disables the cutoff for any positive score; a zero score
	// still counts as no signal.
	MinScore *float64 `yaml:"min_score"`
	// ContextLimit caps the document characters fed to the answerer.
	ContextLimit int `yaml:"context_limit"`
}

// rawAppConfig accepts legacy/alias keys before normalization.
type rawAppConfig struct {
	Port     int            `yaml:"port"`
	Env      string         `yaml:"env"`
	NodeEnv  string         `yaml:"node_env"`
	Database DatabaseConfig `yaml:"database"`
	RedisURL string         `yaml:"redis_url"`
	DataDir  string         `yaml:"data_dir"`
	AI       AIProvider     `yaml:"ai"`
	Resolver ResolverConfig `yaml:"resolver"`
}
