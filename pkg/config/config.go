package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/qnkhuat/blockterm/pkg/gui"
	"github.com/qnkhuat/blockterm/pkg/store"
	"gopkg.in/yaml.v3"
)

const envPrefix = "BLOCKTERM_"

type Log struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

type Server struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host_key"`
	Client      string        `yaml:"client"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

type Config struct {
	Log    Log          `yaml:"log"`
	Store  store.Config `yaml:"store"`
	Server Server       `yaml:"server"`

	// Seed drives the tray. 0 means seed from the clock.
	Seed   int64          `yaml:"seed"`
	Theme  string         `yaml:"theme"`
	Themes []gui.ThemeHex `yaml:"themes"`
	Events string         `yaml:"events"`
}

func Default() Config {
	return Config{
		Log: Log{
			Path:  "log",
			Level: "info",
		},
		Store: store.Config{
			Driver: "file",
			Path:   "scores.yaml",
		},
		Server: Server{
			Addr:        ":2022",
			Client:      "./blockterm",
			IdleTimeout: 30 * time.Minute,
		},
		Theme: "basic",
	}
}

// Load reads the YAML file at path over the defaults, then applies .env and
// BLOCKTERM_* environment overrides. A missing file or .env is not an error.
func Load(path string, dotenv string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config: load %s: %w", dotenv, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Flags holds command line overrides. Zero values leave the config alone.
type Flags struct {
	LogPath string
	Store   string
	Seed    int64
	Theme   string
	Events  string
}

// Apply layers f over the loaded config and validates the result again.
func (c *Config) Apply(f Flags) error {
	if f.LogPath != "" {
		c.Log.Path = f.LogPath
	}
	if f.Store != "" {
		c.Store.Driver = f.Store
	}
	if f.Seed != 0 {
		c.Seed = f.Seed
	}
	if f.Theme != "" {
		c.Theme = f.Theme
	}
	if f.Events != "" {
		c.Events = f.Events
	}

	return c.Validate()
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"LOG_PATH":       &c.Log.Path,
		"LOG_LEVEL":      &c.Log.Level,
		"STORE_DRIVER":   &c.Store.Driver,
		"STORE_PATH":     &c.Store.Path,
		"REDIS_URL":      &c.Store.RedisURL,
		"PG_DSN":         &c.Store.PGDSN,
		"SERVER_ADDR":    &c.Server.Addr,
		"SERVER_HOSTKEY": &c.Server.HostKey,
		"SERVER_CLIENT":  &c.Server.Client,
		"THEME":          &c.Theme,
		"EVENTS":         &c.Events,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "SEED"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %sSEED: %w", envPrefix, err)
		}
		c.Seed = seed
	}

	if v, ok := os.LookupEnv(envPrefix + "SERVER_IDLE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sSERVER_IDLE_TIMEOUT: %w", envPrefix, err)
		}
		c.Server.IdleTimeout = d
	}

	return nil
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case "memory":
	case "file":
		if c.Store.Path == "" {
			return errors.New("config: file store needs store.path")
		}
	case "redis":
		if c.Store.RedisURL == "" {
			return errors.New("config: redis store needs store.redis_url")
		}
	case "postgres":
		if c.Store.PGDSN == "" {
			return errors.New("config: postgres store needs store.pg_dsn")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}

	if c.Server.IdleTimeout < 0 {
		return errors.New("config: server.idle_timeout must not be negative")
	}

	return nil
}
