package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/weeks/pkg/buildinfo"
	"github.com/matzehuels/weeks/pkg/errors"
	"github.com/matzehuels/weeks/pkg/grid"
	"github.com/matzehuels/weeks/pkg/i18n"
)

const (
	appName  = "weeks"
	fileName = "config.toml"
)

// Environment variables that override file settings.
const (
	EnvBaseURL      = "WEEKS_BASE_URL"
	EnvLanguage     = "WEEKS_LANG"
	EnvCacheDir     = "WEEKS_CACHE_DIR"
	EnvRedisAddr    = "WEEKS_REDIS_ADDR"
	EnvCacheVersion = "WEEKS_CACHE_VERSION"
)

// Config is the complete application configuration.
type Config struct {
	Grid    grid.Constraints `toml:"grid"`
	Share   Share            `toml:"share"`
	Offline Offline          `toml:"offline"`
	TUI     TUI              `toml:"tui"`
}

// Share configures link generation.
type Share struct {
	BaseURL  string        `toml:"base_url" validate:"required,url"`
	Language i18n.Language `toml:"language" validate:"oneof=en de"`
}

// Offline configures the offline response cache.
type Offline struct {
	// Version namespaces cache entries; empty means the build version.
	Version string `toml:"version" validate:"omitempty,max=64"`

	// Dir is the file cache directory; empty means the user cache directory.
	Dir string `toml:"dir"`

	// RedisAddr selects a shared Redis store instead of the file cache.
	RedisAddr     string `toml:"redis_addr" validate:"omitempty,hostname_port"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db" validate:"gte=0"`

	// Origin is the deployment precached by "weeks cache install".
	Origin string   `toml:"origin" validate:"omitempty,url"`
	Assets []string `toml:"assets" validate:"dive,startswith=/"`

	TTL Duration `toml:"ttl" validate:"gte=0"`
}

// TUI configures the interactive shell.
type TUI struct {
	Grid grid.Constraints `toml:"grid"`
}

// Duration is a time.Duration written as "72h" in TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Grid: grid.DefaultConstraints(),
		Share: Share{
			BaseURL:  "https://weeks.example.com/",
			Language: i18n.Default,
		},
		Offline: Offline{
			Assets: []string{"/", "/index.html", "/manifest.webmanifest"},
		},
		TUI: TUI{Grid: grid.TerminalConstraints()},
	}
}

// CacheVersion returns the configured cache version or the build version.
func (o Offline) CacheVersion() string {
	if o.Version != "" {
		return o.Version
	}
	return buildinfo.CacheVersion()
}

// DefaultPath returns $XDG_CONFIG_HOME/weeks/config.toml, falling back to
// ~/.config/weeks/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the configuration from path, applies WEEKS_* environment
// overrides and validates the result. An empty path loads the default
// location, where a missing file yields the defaults. An explicit path must
// exist.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "locate config")
		}
		path = p
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := cfg.decode(f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
		}
	case stderrors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open config")
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML from r on top of the defaults and validates the result.
// Environment variables are not consulted.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	c.Grid.Gaps = c.Grid.Gaps.Sorted()
	c.TUI.Grid.Gaps = c.TUI.Grid.Gaps.Sorted()
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.Share.BaseURL = v
	}
	if v, ok := lookup(EnvLanguage); ok && v != "" {
		lang, err := i18n.ParseLanguage(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvLanguage)
		}
		c.Share.Language = lang
	}
	if v, ok := lookup(EnvCacheDir); ok && v != "" {
		c.Offline.Dir = v
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Offline.RedisAddr = v
	}
	if v, ok := lookup(EnvCacheVersion); ok && v != "" {
		c.Offline.Version = v
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every section and returns an INVALID_CONFIG error naming
// the offending fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !stderrors.As(err, &verrs) {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate config")
		}
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Namespace() + " (" + fe.Tag() + ")"
		}
		return errors.New(errors.ErrCodeInvalidConfig, "invalid config: %s", strings.Join(fields, ", "))
	}
	if c.Offline.Version != "" {
		if err := errors.ValidateCacheVersion(c.Offline.Version); err != nil {
			return err
		}
	}
	if err := errors.ValidateURL(c.Share.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "share.base_url")
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
