// internal/config/model.go
//
// Typed configuration model for the site.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                        – dotenv values,
//   • `conf/global.yaml`                     – primary static file,
//   • `SITE_`-prefixed environment overrides – highest precedence.
//
// Any secret whose value begins with `vault:` is resolved through
// ResolveSecrets after loading, so callers never see Vault references.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.  Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • Durations are strings in YAML ("15s", "336h") and decode through
//     koanf's mapstructure hook.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr"   validate:"required,hostname_port"`
	ForceHTTPS   bool          `koanf:"force_https"`
	ExposeErrors bool          `koanf:"expose_errors"`
	ReadTimeout  time.Duration `koanf:"read_timeout"  validate:"gte=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"  validate:"gte=0"`
}

//
// Database section
//

// Database holds the DSN template and its secret.
//
// The template (`DSN`) stays in YAML so operators can tweak host, port, or
// flags without touching Vault.  When it contains one `%s` verb the
// `Password` is substituted there at runtime, keeping credentials out of
// flat files and git history.
type Database struct {
	Driver   string `koanf:"driver"    validate:"oneof=mysql memory"`
	DSN      string `koanf:"dsn"       validate:"required_if=Driver mysql,dsn_verb"`
	Password string `koanf:"password"`
	MaxOpen  int    `koanf:"max_open"  validate:"gte=0"`
	MaxIdle  int    `koanf:"max_idle"  validate:"gte=0"`
}

//
// Session section
//

// Session selects where login sessions live.
type Session struct {
	Driver        string        `koanf:"driver"         validate:"oneof=sql redis memory"`
	CookieName    string        `koanf:"cookie_name"    validate:"required"`
	TTL           time.Duration `koanf:"ttl"            validate:"gt=0"`
	PurgeInterval time.Duration `koanf:"purge_interval" validate:"gte=0"`

	RedisAddr     string `koanf:"redis_addr"     validate:"required_if=Driver redis"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"       validate:"gte=0"`
	RedisPrefix   string `koanf:"redis_prefix"`
}

//
// Auth section
//

// Auth holds password hashing parameters.  Zero cost selects the bcrypt
// default.
type Auth struct {
	BcryptCost int `koanf:"bcrypt_cost" validate:"eq=0|min=4,max=31"`
}

//
// Log section
//

// Log controls the file logger.  An empty Dir means `<root>/logs`.
type Log struct {
	Dir   string `koanf:"dir"`
	Tee   bool   `koanf:"tee"`
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

//
// GeoIP section
//

// GeoIP points at an optional MaxMind database.
type GeoIP struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // SITE_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Session  Session  `koanf:"session"`
	Auth     Auth     `koanf:"auth"`
	Log      Log      `koanf:"log"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Paths    Paths    `koanf:"-"`
}
