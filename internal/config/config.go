package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env      string `yaml:"app_env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		// mongo | postgres | memory
		Driver   string `yaml:"driver"`
		Postgres struct {
			DSN      string `yaml:"dsn"`
			MaxConns int    `yaml:"max_conns"`
		} `yaml:"postgres"`
		Mongo struct {
			URI      string `yaml:"uri"`
			Database string `yaml:"database"`
			MaxPool  int    `yaml:"max_pool"`
		} `yaml:"mongo"`
		ConnectTimeout string `yaml:"connect_timeout"`
	} `yaml:"storage"`

	// Cache de roles (off por defecto).
	Cache struct {
		// none | memory | redis
		Kind  string `yaml:"kind"`
		TTL   string `yaml:"ttl"`
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    string `yaml:"ttl"`
	} `yaml:"jwt"`

	Payment struct {
		StripeSecretKey string `yaml:"stripe_secret_key"`
		Currency        string `yaml:"currency"`
	} `yaml:"payment"`

	// Bootstrap: Admin inicial si el store no tiene ninguno.
	Bootstrap struct {
		AdminEmail string `yaml:"admin_email"`
	} `yaml:"bootstrap"`

	// Policy: toggles de autorización por endpoint.
	Policy Policy `yaml:"policy"`
}

// Policy agrupa los huecos de autorización heredados que se pueden cerrar
// por configuración. Los defaults reproducen el comportamiento histórico.
type Policy struct {
	UpdateProductRequiresAuth bool `yaml:"update_product_requires_auth"`
	EnforceProductOwner       bool `yaml:"enforce_product_owner"`
	AdvertiseRequiresSeller   bool `yaml:"advertise_requires_seller"`
	ReportRequiresSeller      bool `yaml:"report_requires_seller"`
	RoleChangeRequiresAdmin   bool `yaml:"role_change_requires_admin"`
	LegacyOrderProductByName  bool `yaml:"legacy_order_product_by_name"`
}

// DefaultPolicy retorna los toggles por defecto.
func DefaultPolicy() Policy {
	return Policy{
		UpdateProductRequiresAuth: true,
		LegacyOrderProductByName:  true,
	}
}

// Load lee el YAML (opcional: path vacío o inexistente usa solo defaults),
// aplica overrides de env y valida.
func Load(path string) (*Config, error) {
	c := Config{Policy: DefaultPolicy()}

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// sin archivo: env + defaults
		default:
			return nil, err
		}
	}

	c.applyEnvOverrides()
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// sane defaults
func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "mongo"
	}
	if c.Storage.Mongo.Database == "" {
		c.Storage.Mongo.Database = "best-seller"
	}
	if c.Storage.ConnectTimeout == "" {
		c.Storage.ConnectTimeout = "10s"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "none"
	}
	if c.Cache.TTL == "" {
		c.Cache.TTL = "2m"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "bestseller:"
	}
	if c.JWT.TTL == "" {
		c.JWT.TTL = "24h"
	}
	if c.Payment.Currency == "" {
		c.Payment.Currency = "usd"
	}
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = strings.ToLower(v)
	}

	// SERVER: PORT es el nombre histórico; SERVER_ADDR gana si están ambos.
	if v, ok := getEnvStr("PORT"); ok {
		c.Server.Addr = ":" + strings.TrimPrefix(strings.TrimSpace(v), ":")
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}
	if v, ok := getEnvStr("SHUTDOWN_TIMEOUT"); ok {
		c.Server.ShutdownTimeout = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := getEnvStr("MONGODB_URL"); ok {
		c.Storage.Mongo.URI = v
	}
	if v, ok := getEnvStr("MONGODB_DATABASE"); ok {
		c.Storage.Mongo.Database = v
	}
	if v, ok := getEnvStr("POSTGRES_DSN"); ok {
		c.Storage.Postgres.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_CONNS"); ok {
		c.Storage.Postgres.MaxConns = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := getEnvStr("CACHE_TTL"); ok {
		c.Cache.TTL = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	// JWT
	if v, ok := getEnvStr("ACCESS_TOKEN_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_TTL"); ok {
		c.JWT.TTL = v
	}

	// PAYMENT
	if v, ok := getEnvStr("STRIPE_SECRET_KEY"); ok {
		c.Payment.StripeSecretKey = v
	}
	if v, ok := getEnvStr("PAYMENT_CURRENCY"); ok {
		c.Payment.Currency = strings.ToLower(v)
	}

	// BOOTSTRAP
	if v, ok := getEnvStr("BOOTSTRAP_ADMIN_EMAIL"); ok {
		c.Bootstrap.AdminEmail = strings.TrimSpace(v)
	}

	// POLICY
	if v, ok := getEnvBool("POLICY_UPDATE_PRODUCT_REQUIRES_AUTH"); ok {
		c.Policy.UpdateProductRequiresAuth = v
	}
	if v, ok := getEnvBool("POLICY_ENFORCE_PRODUCT_OWNER"); ok {
		c.Policy.EnforceProductOwner = v
	}
	if v, ok := getEnvBool("POLICY_ADVERTISE_REQUIRES_SELLER"); ok {
		c.Policy.AdvertiseRequiresSeller = v
	}
	if v, ok := getEnvBool("POLICY_REPORT_REQUIRES_SELLER"); ok {
		c.Policy.ReportRequiresSeller = v
	}
	if v, ok := getEnvBool("POLICY_ROLE_CHANGE_REQUIRES_ADMIN"); ok {
		c.Policy.RoleChangeRequiresAdmin = v
	}
	if v, ok := getEnvBool("POLICY_LEGACY_ORDER_PRODUCT_BY_NAME"); ok {
		c.Policy.LegacyOrderProductByName = v
	}
}

// Validate verifica los valores críticos.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("config: jwt secret is required (ACCESS_TOKEN_SECRET)")
	}

	switch c.Storage.Driver {
	case "mongo":
		if strings.TrimSpace(c.Storage.Mongo.URI) == "" {
			return errors.New("config: MONGODB_URL is required for storage driver mongo")
		}
	case "postgres":
		if strings.TrimSpace(c.Storage.Postgres.DSN) == "" {
			return errors.New("config: POSTGRES_DSN is required for storage driver postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}

	switch c.Cache.Kind {
	case "none", "memory":
	case "redis":
		if strings.TrimSpace(c.Cache.Redis.Addr) == "" {
			return errors.New("config: REDIS_ADDR is required for cache kind redis")
		}
	default:
		return fmt.Errorf("config: unknown cache kind %q", c.Cache.Kind)
	}

	// validate string durations
	for name, v := range map[string]string{
		"jwt.ttl":                 c.JWT.TTL,
		"cache.ttl":               c.Cache.TTL,
		"storage.connect_timeout": c.Storage.ConnectTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

// Duration parsea un campo de duración ya validado.
func Duration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// DSN retorna la connection string del driver activo.
func (c *Config) DSN() string {
	switch c.Storage.Driver {
	case "mongo":
		return c.Storage.Mongo.URI
	case "postgres":
		return c.Storage.Postgres.DSN
	}
	return ""
}
