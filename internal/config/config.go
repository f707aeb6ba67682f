package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Stage string `env:"STAGE,required"`
	Port  string `env:"PORT,default=3000"`

	DB  DBConfig
	JWT JWTConfig

	BcryptCost     int     `env:"BCRYPT_COST,default=10"`
	AuthRateLimit  float64 `env:"AUTH_RATE_LIMIT,default=5"`
	AuthRateBurst  int     `env:"AUTH_RATE_BURST,default=10"`
	MigrateOnStart bool    `env:"MIGRATE_ON_START,default=true"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST,required"`
	Port     int    `env:"DB_PORT,required"`
	Username string `env:"DB_USERNAME,required"`
	Password string `env:"DB_PASSWORD,required"`
	Database string `env:"DB_DATABASE,required"`
	SSLMode  string `env:"DB_SSLMODE,default=disable"`
}

type JWTConfig struct {
	Secret    string        `env:"JWT_SECRET,required"`
	ExpiresIn time.Duration `env:"JWT_EXPIRES_IN,default=1h"`
}

// Load читает окружение (плюс .env.stage.<STAGE> и .env, если есть) и валидирует его.
// Уже выставленные переменные окружения имеют приоритет над файлами.
func Load() (Config, error) {
	if stage := os.Getenv("STAGE"); stage != "" {
		if err := loadEnvFile(".env.stage." + stage); err != nil {
			return Config{}, err
		}
	}
	if err := loadEnvFile(".env"); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadEnvFile пропускает только отсутствующий файл; нечитаемый или битый файл - ошибка
func loadEnvFile(name string) error {
	if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(name); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Stage) == "" {
		errs = append(errs, errors.New("STAGE must not be blank"))
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		errs = append(errs, fmt.Errorf("PORT %q is not a valid port", c.Port))
	}
	if c.DB.Port < 1 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Errorf("DB_PORT %d is out of range", c.DB.Port))
	}
	if strings.TrimSpace(c.DB.Host) == "" {
		errs = append(errs, errors.New("DB_HOST must not be blank"))
	}
	if strings.TrimSpace(c.DB.Database) == "" {
		errs = append(errs, errors.New("DB_DATABASE must not be blank"))
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be blank"))
	}
	if c.JWT.ExpiresIn <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRES_IN must be positive, got %s", c.JWT.ExpiresIn))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be within [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.AuthRateLimit <= 0 || c.AuthRateBurst < 1 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Stage == "prod"
}

// DatabaseURL собирает postgres:// DSN из отдельных DB_* переменных
func (c DBConfig) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}
