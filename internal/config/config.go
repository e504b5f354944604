// Package config loads the server configuration from defaults, an optional config file,
// an optional .env file and COURSEGATE_ prefixed environment variables.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/errors/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "COURSEGATE"

const (
	// DriverPostgres stores sessions in PostgreSQL.
	DriverPostgres = "postgres"
	// DriverSpanner stores sessions in Cloud Spanner.
	DriverSpanner = "spanner"
)

const (
	// ExporterConsole writes request logs to the console.
	ExporterConsole = "console"
	// ExporterAWS writes JSON request logs to stdout for CloudWatch.
	ExporterAWS = "aws"
)

// Config is the server configuration.
type Config struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	PolicyFile      string        `mapstructure:"policy_file"`
	StaticDir       string        `mapstructure:"static_dir"`
	Database        Database      `mapstructure:"database"`
	OIDC            OIDC          `mapstructure:"oidc"`
	Cookie          Cookie        `mapstructure:"cookie"`
	Session         Session       `mapstructure:"session"`
	Log             Log           `mapstructure:"log"`
}

// Database selects and configures the session store.
type Database struct {
	Driver string `mapstructure:"driver"`
	// URL is the PostgreSQL connection string.
	URL string `mapstructure:"url"`
	// Spanner is the database name, projects/<project>/instances/<instance>/databases/<db>.
	Spanner      string `mapstructure:"spanner"`
	SessionTable string `mapstructure:"session_table"`
}

// OIDC configures the identity provider.
type OIDC struct {
	Issuer       string        `mapstructure:"issuer"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	RedirectURL  string        `mapstructure:"redirect_url"`
	RoleClaim    string        `mapstructure:"role_claim"`
	LoginURL     string        `mapstructure:"login_url"`
	WarmInterval time.Duration `mapstructure:"warm_interval"`
}

// Cookie configures the session cookies.
type Cookie struct {
	// Key is the base64 encoded cookie key. A random key is generated when empty, which
	// invalidates every session on restart.
	Key    string `mapstructure:"key"`
	Name   string `mapstructure:"name"`
	Domain string `mapstructure:"domain"`
}

// Session configures session lifetime.
type Session struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Log selects the request log exporter.
type Log struct {
	Exporter string `mapstructure:"exporter"`
	NoColor  bool   `mapstructure:"no_color"`
	// LogAll logs every request with the aws exporter, not only those with child logs.
	LogAll bool `mapstructure:"log_all"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("policy_file", "routes.yaml")
	v.SetDefault("static_dir", "web")

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.url", "")
	v.SetDefault("database.spanner", "")
	v.SetDefault("database.session_table", "Sessions")

	v.SetDefault("oidc.issuer", "")
	v.SetDefault("oidc.client_id", "")
	v.SetDefault("oidc.client_secret", "")
	v.SetDefault("oidc.redirect_url", "")
	v.SetDefault("oidc.role_claim", "public_metadata.role")
	v.SetDefault("oidc.login_url", "/auth/login")
	v.SetDefault("oidc.warm_interval", 5*time.Second)

	v.SetDefault("cookie.key", "")
	v.SetDefault("cookie.name", "auth")
	v.SetDefault("cookie.domain", "")

	v.SetDefault("session.timeout", 10*time.Minute)

	v.SetDefault("log.exporter", ExporterConsole)
	v.SetDefault("log.no_color", false)
	v.SetDefault("log.log_all", false)
}

// Load reads the configuration. configFile and dotEnvFile are optional; a missing
// dotEnvFile is ignored. Environment variables take precedence over the config file,
// e.g. COURSEGATE_OIDC_CLIENT_ID sets oidc.client_id.
func Load(configFile, dotEnvFile string) (*Config, error) {
	if dotEnvFile != "" {
		if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, "godotenv.Load(%s)", dotEnvFile)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "viper.ReadInConfig(%s)", configFile)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "viper.Unmarshal()")
	}

	return cfg, nil
}

// Validate checks the settings the serve command cannot run without.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			return errors.New("database.url is required for the postgres driver")
		}
	case DriverSpanner:
		if c.Database.Spanner == "" {
			return errors.New("database.spanner is required for the spanner driver")
		}
	default:
		return errors.Newf("unknown database.driver %q, expected %s or %s", c.Database.Driver, DriverPostgres, DriverSpanner)
	}

	if c.OIDC.Issuer == "" || c.OIDC.ClientID == "" || c.OIDC.RedirectURL == "" {
		return errors.New("oidc.issuer, oidc.client_id and oidc.redirect_url are required")
	}
	if c.Session.Timeout <= 0 {
		return errors.Newf("session.timeout must be positive, got %s", c.Session.Timeout)
	}
	if c.Log.Exporter != ExporterConsole && c.Log.Exporter != ExporterAWS {
		return errors.Newf("unknown log.exporter %q, expected %s or %s", c.Log.Exporter, ExporterConsole, ExporterAWS)
	}

	return nil
}
