// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `<root>/conf/.env` file (godotenv, never overrides variables
     already set in the process environment).
  2. `conf/global.yaml`.
  3. Environment variables prefixed `SITE_`, where `__` maps to "."
     (e.g., `SITE_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled into strongly-typed structs,
defaults are filled in, the result is validated, enriched with the runtime
root path, and cached in an `atomic.Pointer` for lock-free reads.

Secrets
-------
Values that start with `vault:` are left untouched by Load.  cmd/web calls
ResolveSecrets with the Vault client once it exists, which swaps every
reference for the secret's plain value.

Instrumentation
---------------
  • DEBUG spans – root discovery, YAML read, env overlay.
  • ERROR spans – YAML parse, env overlay, unmarshal, validation failures.
  • INFO  span  – final "config loaded" with key highlights.
  • Logs use the global *sugared* logger (`zap.S()`), so early boot issues
    surface even before the file logger is installed.

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`;
    this lets `go run ./cmd/web` work from any sub-directory.
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix marks environment overrides.
const EnvPrefix = "SITE_"

// VaultPrefix marks a value that must be fetched from Vault.
const VaultPrefix = "vault:"

var current atomic.Pointer[Config]

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves SITE_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to the executable heuristic for the production
// layout (<root>/bin/web).
func rootDir() string {
	if r := os.Getenv(EnvPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load discovers the root directory and calls LoadFrom.
func Load() (*Config, error) {
	return LoadFrom(rootDir())
}

// LoadFrom reads .env, YAML, and env overrides under root, applies
// defaults, validates, and caches the Config.
func LoadFrom(root string) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	// Env overrides: SITE_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	applyDefaults(&cfg)

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"db_driver", cfg.Database.Driver,
		"session_driver", cfg.Session.Driver,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// envKey maps SITE_HTTP__LISTEN_ADDR to http.listen_addr.  SITE_ROOT is
// consumed by rootDir and dropped here.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	if s == "ROOT" {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}

func applyDefaults(c *Config) {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = ":8080"
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = 60 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
	if c.Database.MaxOpen == 0 {
		c.Database.MaxOpen = 15
	}
	if c.Database.MaxIdle == 0 {
		c.Database.MaxIdle = 5
	}
	if c.Session.Driver == "" {
		if c.Database.Driver == "memory" {
			c.Session.Driver = "memory"
		} else {
			c.Session.Driver = "sql"
		}
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "pcg_session"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 14 * 24 * time.Hour
	}
	if c.Session.PurgeInterval == 0 {
		c.Session.PurgeInterval = time.Hour
	}
	if c.Log.Dir == "" {
		c.Log.Dir = filepath.Join(c.Paths.Root, "logs")
	}
}

/*──────────────────────────── secrets ─────────────────────────────────────*/

// SecretResolver fetches the plain value behind a `vault:` reference.
type SecretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// ResolveSecrets replaces every `vault:` reference in secret fields.  A nil
// resolver is an error only when a reference is present.
func (c *Config) ResolveSecrets(ctx context.Context, r SecretResolver) error {
	for _, f := range []struct {
		name string
		val  *string
	}{
		{"database.password", &c.Database.Password},
		{"session.redis_password", &c.Session.RedisPassword},
	} {
		if !strings.HasPrefix(*f.val, VaultPrefix) {
			continue
		}
		if r == nil {
			return fmt.Errorf("%s: vault reference but no vault client", f.name)
		}
		plain, err := r.Resolve(ctx, strings.TrimPrefix(*f.val, VaultPrefix))
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.val = plain
	}
	return nil
}

// NeedsVault reports whether any secret field holds a vault reference.
func (c *Config) NeedsVault() bool {
	return strings.HasPrefix(c.Database.Password, VaultPrefix) ||
		strings.HasPrefix(c.Session.RedisPassword, VaultPrefix)
}

// FormatDSN substitutes the password into the DSN template when it carries
// a `%s` verb.
func (d Database) FormatDSN() string {
	if strings.Contains(d.DSN, "%s") {
		return fmt.Sprintf(d.DSN, d.Password)
	}
	return d.DSN
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config  { return current.Load() }
func Reload() error { _, err := Load(); return err }
