package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AppConfig defines application configuration loaded from files and environment.
type AppConfig struct {
	Env      string         `koanf:"env"`
	HTTP     HTTPConfig     `koanf:"http"`
	JWT      JWTConfig      `koanf:"jwt"`
	OAuth    OAuthConfig    `koanf:"oauth"`
	Database DatabaseConfig `koanf:"database"`
	Cache    CacheConfig    `koanf:"cache"`
	Log      LogConfig      `koanf:"log"`
}

type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type JWTConfig struct {
	Secret string `koanf:"secret"`
	// Duration is the access token lifetime in seconds.
	Duration int64 `koanf:"duration"`
}

func (c JWTConfig) Lifetime() time.Duration { return time.Duration(c.Duration) * time.Second }

type OAuthConfig struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
}

type DatabaseConfig struct {
	Driver         string `koanf:"driver"`
	DSN            string `koanf:"dsn"`
	MigrateOnStart bool   `koanf:"migrate_on_start"`
	SeedOnStart    bool   `koanf:"seed_on_start"`
}

type CacheConfig struct {
	Driver string        `koanf:"driver"`
	Addr   string        `koanf:"addr"`
	Prefix string        `koanf:"prefix"`
	TTL    time.Duration `koanf:"ttl"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// LoadOptions controls where LoadConfig looks.
type LoadOptions struct {
	// ConfigDir defaults to $CONFIG_DIR, then "config".
	ConfigDir string
	// Env selects config.<Env>.yaml; defaults to $APP_ENV, then "local".
	Env string
	// LoadFiles enables the yaml files; env vars are always read.
	LoadFiles bool
	// EnvPrefix defaults to "CATALOG_".
	EnvPrefix string
}

// LoadConfig builds an AppConfig. Loading order:
// 1) config/config.yaml (optional)
// 2) config/config.<APP_ENV>.yaml (optional)
// 3) Environment variables with prefix CATALOG_ mapped using __ as nested separator, e.g. CATALOG_JWT__SECRET
func LoadConfig(opts LoadOptions) (*AppConfig, error) {
	k := koanf.New(".")
	if opts.ConfigDir == "" {
		opts.ConfigDir = os.Getenv("CONFIG_DIR")
	}
	if opts.ConfigDir == "" {
		opts.ConfigDir = "config"
	}
	if opts.Env == "" {
		opts.Env = os.Getenv("APP_ENV")
	}
	if opts.Env == "" {
		opts.Env = "local"
	}
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = "CATALOG_"
	}

	if opts.LoadFiles {
		for _, name := range []string{"config.yaml", "config." + opts.Env + ".yaml"} {
			path := filepath.Join(opts.ConfigDir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("config: loading %s: %w", path, err)
			}
		}
	}

	prefix := opts.EnvPrefix
	if err := k.Load(env.Provider(prefix, ".", func(s string) string {
		// CATALOG_JWT__SECRET -> jwt.secret
		s = strings.TrimPrefix(s, prefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("config: loading env: %w", err)
	}

	var c AppConfig
	if err := k.Unmarshal("", &c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if c.Env == "" {
		c.Env = opts.Env
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *AppConfig) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 15 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.ShutdownTimeout == 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if c.JWT.Duration == 0 {
		c.JWT.Duration = 86400
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "none"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 10 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate rejects configurations the service cannot start with.
func (c *AppConfig) Validate() error {
	switch {
	case strings.TrimSpace(c.JWT.Secret) == "":
		return fmt.Errorf("config: jwt.secret is required")
	case c.JWT.Duration <= 0:
		return fmt.Errorf("config: jwt.duration must be positive, got %d", c.JWT.Duration)
	case c.OAuth.ClientID == "" || c.OAuth.ClientSecret == "":
		return fmt.Errorf("config: oauth.client_id and oauth.client_secret are required")
	case c.Database.Driver != "postgres" && c.Database.Driver != "sqlite":
		return fmt.Errorf("config: unsupported database.driver %q", c.Database.Driver)
	}
	return nil
}
