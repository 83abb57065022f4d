// Package config carga la configuración desde un YAML opcional (CONFIG_PATH)
// y variables de entorno, que siempre tienen prioridad.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	AppName string `yaml:"app_name" env:"APP_NAME" env-default:"medicine-cabinet"`

	Log       Log        `yaml:"log"`
	HTTP      HTTPServer `yaml:"http_server"`
	Auth      Auth       `yaml:"auth"`
	Cabinet   Cabinet    `yaml:"cabinet"`
	RateLimit RateLimit  `yaml:"rate_limit"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

type HTTPServer struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Auth: sin JWT_SECRET el servicio corre en modo dev (header X-Debug-User-ID).
type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
	JWTIssuer string `yaml:"jwt_issuer" env:"JWT_ISSUER"`
}

// Cabinet: WarningHorizonDays = 0 usa el default del motor (90).
// RequireOpeningDate viene activo: el alta exige fecha de apertura para reglas post-apertura.
type Cabinet struct {
	WarningHorizonDays int  `yaml:"warning_horizon_days" env:"WARNING_HORIZON_DAYS" env-default:"90"`
	RequireOpeningDate bool `yaml:"require_opening_date" env:"REQUIRE_OPENING_DATE" env-default:"true"`

	// Si viene, al arrancar se carga el botiquín/familia/recordatorios de ejemplo para ese hogar.
	SeedDemoHousehold string `yaml:"seed_demo_household" env:"SEED_DEMO_HOUSEHOLD"`
}

// RateLimit: RPS <= 0 lo desactiva.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS" env-default:"0"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"20"`
}

func (h HTTPServer) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(h.Port), ":")
}

// Load lee CONFIG_PATH si está seteado; si no, solo env + defaults.
func Load() (Config, error) {
	var cfg Config

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot load config: %s", err)
	}
	return cfg
}

func (c Config) validate() error {
	if c.Cabinet.WarningHorizonDays < 0 {
		return fmt.Errorf("warning_horizon_days must be >= 0, got %d", c.Cabinet.WarningHorizonDays)
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit burst must be > 0 when rps is set")
	}
	return nil
}
