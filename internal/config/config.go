package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config agrupa la configuración necesaria para correr la aplicación.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns  int32  `env:"DB_MAX_CONNS" envDefault:"10"`

	JWTSecret   string `env:"SUPABASE_JWT_SECRET,required,notEmpty"`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:"authenticated"`

	// Tabla de la lista de desejos; se interpola en SQL, por eso se valida.
	TableName string `env:"WISHLIST_TABLE" envDefault:"lista_desejos"`

	QueryTimeout    time.Duration `env:"DB_QUERY_TIMEOUT" envDefault:"5s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// loadDotEnv es variable para poder reemplazarla en tests.
var loadDotEnv = func() error {
	return godotenv.Load()
}

// Load lee variables de entorno (y un .env opcional) y valida lo mínimo indispensable.
func Load() (Config, error) {
	// El .env es opcional: en producción las variables vienen del entorno.
	_ = loadDotEnv()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg *Config) normalize() error {
	// Normalizamos por si alguien manda ":8080"
	cfg.Port = strings.TrimPrefix(strings.TrimSpace(cfg.Port), ":")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.TableName = strings.TrimSpace(cfg.TableName)
	if !tableNamePattern.MatchString(cfg.TableName) {
		return fmt.Errorf("invalid WISHLIST_TABLE %q", cfg.TableName)
	}

	cfg.JWTAudience = strings.TrimSpace(cfg.JWTAudience)
	if cfg.JWTAudience == "" {
		return errors.New("JWT_AUDIENCE must not be empty")
	}

	if cfg.QueryTimeout <= 0 {
		return errors.New("DB_QUERY_TIMEOUT must be positive")
	}
	if cfg.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.DBMaxConns < 1 {
		return errors.New("DB_MAX_CONNS must be at least 1")
	}

	return nil
}
