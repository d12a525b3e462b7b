// Package config содержит настройки, которые магазин читает из окружения. Они разбираются один раз при
// старте и передаются компонентам явно, больше окружение никто не читает.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Auth     AuthConfig
	Database DatabaseConfig `envPrefix:"DB_"`
	Assets   AssetsConfig   `envPrefix:"MINIO_"`
	Email    EmailConfig    `envPrefix:"EMAIL_"`
	AdminUI  AdminUIConfig
	Log      LogConfig
}

type AppConfig struct {
	Env           string `env:"APP_ENV" envDefault:"prod"`
	Port          int    `env:"PORT" envDefault:"3001"`
	StoreFrontURL string `env:"STORE_FRONT_URL" envDefault:"http://localhost:3000"`
}

type APIConfig struct {
	AdminPath string `env:"ADMIN_API_PATH" envDefault:"admin-api"`
	ShopPath  string `env:"SHOP_API_PATH" envDefault:"shop-api"`
}

type AuthConfig struct {
	TokenMethods        []string `env:"AUTH_TOKEN_METHODS" envDefault:"bearer,cookie"`
	SuperadminUsername  string   `env:"SUPERADMIN_USERNAME"`
	SuperadminPassword  string   `env:"SUPERADMIN_PASSWORD"`
	CookieSecret        string   `env:"COOKIE_SECRET"`
	RequireVerification bool     `env:"REQUIRE_VERIFICATION" envDefault:"true"`
}

type DatabaseConfig struct {
	Host         string `env:"HOST,required"`
	Port         int    `env:"PORT" envDefault:"5432"`
	Name         string `env:"NAME,required"`
	Schema       string `env:"SCHEMA" envDefault:"public"`
	Username     string `env:"USERNAME"`
	Password     string `env:"PASSWORD"`
	SSLMode      string `env:"SSLMODE" envDefault:"disable"`
	HistoryTable string `env:"MIGRATIONS_TABLE" envDefault:"migrations"`
	// FailFastLock: второй параллельный запуск завершается ошибкой вместо ожидания.
	FailFastLock bool `env:"MIGRATIONS_FAIL_FAST"`
}

type AssetsConfig struct {
	Bucket          string `env:"BUCKET"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Endpoint        string `env:"ENDPOINT"`
	Region          string `env:"REGION"`
}

type EmailConfig struct {
	Host        string `env:"HOST"`
	Port        int    `env:"PORT"`
	User        string `env:"USER"`
	Password    string `env:"PASSWORD"`
	FromName    string `env:"FROM_NAME"`
	FromAddress string `env:"FROM_ADDRESS"`
}

type AdminUIConfig struct {
	// по умолчанию App.Port+2
	Port int `env:"ADMIN_UI_PORT"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load загружает dotenv файлы (по умолчанию ".env") в окружение процесса, не перезаписывая уже заданные
// переменные, и разбирает Config. Отсутствие файла ошибкой не считается.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return parse(env.Options{})
}

// FromEnvironment разбирает Config только из переданных переменных.
func FromEnvironment(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.AdminUI.Port == 0 {
		cfg.AdminUI.Port = cfg.App.Port + 2
	}
	return &cfg, nil
}

func (c *Config) IsDev() bool {
	return c.App.Env == "dev"
}

// DSN возвращает строку подключения в формате libpq keyword/value. Значения берутся в кавычки, поэтому
// пароль или имя пользователя могут содержать пробелы, кавычки и обратные слэши.
func (c DatabaseConfig) DSN() string {
	parts := []string{
		dsnPair("host", c.Host),
		dsnPair("port", strconv.Itoa(c.Port)),
		dsnPair("dbname", c.Name),
		dsnPair("sslmode", c.SSLMode),
	}
	if c.Username != "" {
		parts = append(parts, dsnPair("user", c.Username))
	}
	if c.Password != "" {
		parts = append(parts, dsnPair("password", c.Password))
	}
	if c.Schema != "" {
		parts = append(parts, dsnPair("search_path", c.Schema))
	}
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func dsnPair(key, value string) string {
	return key + "='" + dsnEscaper.Replace(value) + "'"
}

func (c EmailConfig) FromHeader() string {
	return fmt.Sprintf("%q <%s>", c.FromName, c.FromAddress)
}

func (c AppConfig) VerifyEmailAddressURL() string {
	return strings.TrimRight(c.StoreFrontURL, "/") + "/verify"
}

func (c AppConfig) PasswordResetURL() string {
	return strings.TrimRight(c.StoreFrontURL, "/") + "/password-reset"
}

func (c AppConfig) ChangeEmailAddressURL() string {
	return strings.TrimRight(c.StoreFrontURL, "/") + "/verify-email-change"
}
