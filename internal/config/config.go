package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// StorageConfig represents result storage configuration
type StorageConfig struct {
	// Backend selects the key-value store: file, sqlite, redis or memory
	Backend string `yaml:"backend"`

	// Path is the store file for the file and sqlite backends
	Path string `yaml:"path"`

	// RedisURL is the connection URL for the redis backend
	RedisURL string `yaml:"redis_url"`

	// Prefix is prepended to every key (redis backend only)
	Prefix string `yaml:"prefix"`

	// Key is where the latest score is stored
	Key string `yaml:"key"`

	// HistoryKey is where past assessment records are stored
	HistoryKey string `yaml:"history_key"`

	// MaxHistory caps the number of kept records (0 = unlimited)
	MaxHistory int `yaml:"max_history"`

	// Timeout bounds each storage operation
	Timeout time.Duration `yaml:"timeout"`
}

// Config represents wellnest configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where session logs will be written
	LogDir string `yaml:"log_dir"`

	// NoColor disables colored terminal output
	NoColor bool `yaml:"no_color"`

	// Storage contains result storage configuration
	Storage StorageConfig `yaml:"storage"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "warn",
		LogDir:   "logs",
		NoColor:  false,
		Storage: StorageConfig{
			Backend:    BackendFile,
			Path:       "",
			RedisURL:   "redis://localhost:6379/0",
			Prefix:     "wellnest:",
			Key:        "wellnest_quiz_results",
			HistoryKey: "wellnest_quiz_history",
			MaxHistory: 50,
			Timeout:    5 * time.Second,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are parsed by hand so "5s" style values work
	type yamlStorage struct {
		Backend    string `yaml:"backend"`
		Path       string `yaml:"path"`
		RedisURL   string `yaml:"redis_url"`
		Prefix     string `yaml:"prefix"`
		Key        string `yaml:"key"`
		HistoryKey string `yaml:"history_key"`
		MaxHistory int    `yaml:"max_history"`
		Timeout    string `yaml:"timeout"`
	}
	type yamlConfig struct {
		LogLevel string      `yaml:"log_level"`
		LogDir   string      `yaml:"log_dir"`
		NoColor  bool        `yaml:"no_color"`
		Storage  yamlStorage `yaml:"storage"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.NoColor {
		cfg.NoColor = true
	}

	// Only keys present in the storage section override defaults
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if section, exists := rawMap["storage"]; exists && section != nil {
			storageMap, _ := section.(map[string]interface{})
			st := yamlCfg.Storage

			if _, exists := storageMap["backend"]; exists {
				cfg.Storage.Backend = st.Backend
			}
			if _, exists := storageMap["path"]; exists {
				cfg.Storage.Path = st.Path
			}
			if _, exists := storageMap["redis_url"]; exists {
				cfg.Storage.RedisURL = st.RedisURL
			}
			if _, exists := storageMap["prefix"]; exists {
				cfg.Storage.Prefix = st.Prefix
			}
			if _, exists := storageMap["key"]; exists {
				cfg.Storage.Key = st.Key
			}
			if _, exists := storageMap["history_key"]; exists {
				cfg.Storage.HistoryKey = st.HistoryKey
			}
			if _, exists := storageMap["max_history"]; exists {
				cfg.Storage.MaxHistory = st.MaxHistory
			}
			if st.Timeout != "" {
				timeout, err := time.ParseDuration(st.Timeout)
				if err != nil {
					return nil, fmt.Errorf("invalid storage.timeout format %q: %w", st.Timeout, err)
				}
				cfg.Storage.Timeout = timeout
			}
		}
	}

	return cfg, nil
}

// Load reads $home/.env (if present), $home/config.yaml, applies environment
// overrides, then the given overrides (typically CLI flags), and finally
// resolves relative paths against home.
func Load(home string, overrides ...func(*Config)) (*Config, error) {
	if err := LoadDotEnv(home); err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(ConfigPath(home))
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(cfg)
	}
	cfg.ResolvePaths(home)

	return cfg, nil
}

// LoadDotEnv loads $home/.env into the process environment. Variables that
// are already set win. A missing file is not an error.
func LoadDotEnv(home string) error {
	envPath := filepath.Join(home, ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", envPath, err)
	}
	return nil
}

// ApplyEnv applies WELLNEST_* environment overrides
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("WELLNEST_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("WELLNEST_STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("WELLNEST_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("WELLNEST_REDIS_URL"); v != "" {
		c.Storage.RedisURL = v
	}
	if v := os.Getenv("WELLNEST_MAX_HISTORY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WELLNEST_MAX_HISTORY %q: %w", v, err)
		}
		c.Storage.MaxHistory = n
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.NoColor = true
	}
	return nil
}

// ResolvePaths makes LogDir and Storage.Path absolute relative to home and
// fills in the default store file for file and sqlite backends.
func (c *Config) ResolvePaths(home string) {
	if c.LogDir != "" && !filepath.IsAbs(c.LogDir) {
		c.LogDir = filepath.Join(home, c.LogDir)
	}

	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case BackendFile:
			c.Storage.Path = "store.json"
		case BackendSQLite:
			c.Storage.Path = "wellnest.db"
		}
	}
	if c.Storage.Path != "" && c.Storage.Path != ":memory:" && !filepath.IsAbs(c.Storage.Path) {
		c.Storage.Path = filepath.Join(home, c.Storage.Path)
	}
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, backend *string, storagePath *string) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if backend != nil {
		c.Storage.Backend = *backend
	}
	if storagePath != nil {
		c.Storage.Path = *storagePath
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path cannot be empty for the %s backend", c.Storage.Backend)
		}
	case BackendRedis:
		if c.Storage.RedisURL == "" {
			return fmt.Errorf("storage.redis_url cannot be empty for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("invalid storage.backend %q, must be one of: file, sqlite, redis, memory", c.Storage.Backend)
	}

	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key cannot be empty")
	}
	if c.Storage.HistoryKey == "" {
		return fmt.Errorf("storage.history_key cannot be empty")
	}
	if c.Storage.Key == c.Storage.HistoryKey {
		return fmt.Errorf("storage.key and storage.history_key must differ, both are %q", c.Storage.Key)
	}
	if c.Storage.MaxHistory < 0 {
		return fmt.Errorf("storage.max_history must be >= 0, got %d", c.Storage.MaxHistory)
	}
	if c.Storage.Timeout < 0 {
		return fmt.Errorf("storage.timeout must be >= 0, got %v", c.Storage.Timeout)
	}

	return nil
}
