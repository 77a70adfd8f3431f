package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa la configuración del BFF (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	MockAPI  MockAPIConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UpstreamConfig API REST de inventario.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig sesiones del BFF.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
	Store  string // memory | redis
}

// RedisConfig conexión para SESSION_STORE=redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CatalogConfig parámetros del catálogo de productos.
type CatalogConfig struct {
	PageSize   int
	SupplierID int // id_fornecedor enviado en altas y ediciones
}

// MockAPIConfig API simulada para desarrollo local (cmd/mockapi).
type MockAPIConfig struct {
	Port  int
	Shape string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad; .env se carga antes sin sobrescribir las existentes.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignoramos error si no existe

	v := viper.New()

	// Opcional: config.yaml en . o ./config
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "gestao-estoque"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Upstream: UpstreamConfig{
			BaseURL: getString(v, "UPSTREAM_BASE_URL", "http://localhost:5000"),
			Timeout: time.Duration(getInt(v, "UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Session: SessionConfig{
			Secret: getString(v, "SESSION_SECRET", ""),
			TTL:    time.Duration(getInt(v, "SESSION_TTL_MINUTES", 480)) * time.Minute,
			Issuer: getString(v, "SESSION_ISSUER", "gestao-estoque"),
			Store:  strings.ToLower(getString(v, "SESSION_STORE", "memory")),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			PageSize:   getInt(v, "CATALOG_PAGE_SIZE", 10),
			SupplierID: getInt(v, "CATALOG_SUPPLIER_ID", 564),
		},
		MockAPI: MockAPIConfig{
			Port:  getInt(v, "MOCKAPI_PORT", 5000),
			Shape: getString(v, "MOCKAPI_SHAPE", "docs"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Session.Store != "memory" && c.Session.Store != "redis" {
		return fmt.Errorf("config: SESSION_STORE inválido %q (memory|redis)", c.Session.Store)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL_MINUTES debe ser positivo")
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("config: CATALOG_PAGE_SIZE debe ser positivo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
