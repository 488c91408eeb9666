package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/maynagashev/cinecatalog/internal/services"
	"github.com/maynagashev/cinecatalog/internal/tmdb"
)

const (
	defaultServerPort = "5000"
	defaultEnvFile    = ".env"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"

	// Переменные окружения.
	envServerPort   = "SERVER_PORT"
	envDatabaseDSN  = "DATABASE_DSN"
	envJWTSecret    = "JWT_SECRET" //nolint:gosec // Имя переменной окружения, а не секрет
	envJWTTTL       = "JWT_TTL"
	envBcryptCost   = "BCRYPT_COST"
	envTMDBAPIKey   = "TMDB_API_KEY"
	envTMDBBaseURL  = "TMDB_BASE_URL"
	envTMDBLanguage = "TMDB_LANGUAGE"
	envTMDBTimeout  = "TMDB_TIMEOUT"
	envCORSOrigins  = "CORS_ALLOWED_ORIGINS"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envTLSCertFile  = "TLS_CERT_FILE"
	envTLSKeyFile   = "TLS_KEY_FILE"
)

// config хранит конфигурацию сервера. Собирается один раз в main.
type config struct {
	Port        string
	DatabaseDSN string

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	TMDB tmdb.Config

	CORSOrigins []string
	LogLevel    string
	LogFormat   string

	CertFile string
	KeyFile  string
}

// TLSEnabled сообщает, заданы ли оба файла для HTTPS.
func (c *config) TLSEnabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// rawFlags - строковые значения флагов до применения окружения и значений по умолчанию.
type rawFlags struct {
	port, dsn, jwtSecret, jwtTTL, bcryptCost           string
	tmdbAPIKey, tmdbBaseURL, tmdbLanguage, tmdbTimeout string
	corsOrigins, logLevel, logFormat                   string
	certFile, keyFile                                  string
}

// parseFlags разбирает флаги, переменные окружения и файл .env.
// Приоритет: флаг, затем окружение, затем .env, затем значение по умолчанию.
func parseFlags() (*config, error) {
	if err := loadEnvFile(defaultEnvFile); err != nil {
		return nil, err
	}

	var raw rawFlags
	flag.StringVar(&raw.port, "port", "",
		fmt.Sprintf("Порт HTTP-сервера (env: %s, default: %s)", envServerPort, defaultServerPort))
	flag.StringVar(&raw.dsn, "database-dsn", "",
		fmt.Sprintf("Строка подключения к PostgreSQL (env: %s)", envDatabaseDSN))
	flag.StringVar(&raw.jwtSecret, "jwt-secret", "",
		fmt.Sprintf("Секрет подписи JWT (env: %s)", envJWTSecret))
	flag.StringVar(&raw.jwtTTL, "jwt-ttl", "",
		fmt.Sprintf("Время жизни токена (env: %s, default: %s)", envJWTTTL, services.DefaultTokenTTL))
	flag.StringVar(&raw.bcryptCost, "bcrypt-cost", "",
		fmt.Sprintf("Стоимость bcrypt (env: %s, default: %d)", envBcryptCost, services.DefaultBcryptCost))
	flag.StringVar(&raw.tmdbAPIKey, "tmdb-api-key", "",
		fmt.Sprintf("API ключ TMDB (env: %s)", envTMDBAPIKey))
	flag.StringVar(&raw.tmdbBaseURL, "tmdb-base-url", "",
		fmt.Sprintf("Базовый URL TMDB (env: %s, default: %s)", envTMDBBaseURL, tmdb.DefaultBaseURL))
	flag.StringVar(&raw.tmdbLanguage, "tmdb-language", "",
		fmt.Sprintf("Язык ответов TMDB (env: %s, default: %s)", envTMDBLanguage, tmdb.DefaultLanguage))
	flag.StringVar(&raw.tmdbTimeout, "tmdb-timeout", "",
		fmt.Sprintf("Таймаут запросов к TMDB (env: %s, default: %s)", envTMDBTimeout, tmdb.DefaultTimeout))
	flag.StringVar(&raw.corsOrigins, "cors-origins", "",
		fmt.Sprintf("Разрешенные источники CORS через запятую (env: %s)", envCORSOrigins))
	flag.StringVar(&raw.logLevel, "log-level", "",
		fmt.Sprintf("Уровень логирования (env: %s, default: %s)", envLogLevel, defaultLogLevel))
	flag.StringVar(&raw.logFormat, "log-format", "",
		fmt.Sprintf("Формат логов text|json (env: %s, default: %s)", envLogFormat, defaultLogFormat))
	flag.StringVar(&raw.certFile, "cert-file", "",
		fmt.Sprintf("Путь к файлу TLS-сертификата (env: %s)", envTLSCertFile))
	flag.StringVar(&raw.keyFile, "key-file", "",
		fmt.Sprintf("Путь к файлу TLS-ключа (env: %s)", envTLSKeyFile))

	flag.Parse()

	return buildConfig(raw)
}

// buildConfig применяет окружение и значения по умолчанию, затем проверяет результат.
func buildConfig(raw rawFlags) (*config, error) {
	cfg := &config{
		Port:        resolve(raw.port, envServerPort, defaultServerPort),
		DatabaseDSN: resolve(raw.dsn, envDatabaseDSN, ""),
		JWTSecret:   resolve(raw.jwtSecret, envJWTSecret, ""),
		TMDB: tmdb.Config{
			APIKey:   resolve(raw.tmdbAPIKey, envTMDBAPIKey, ""),
			BaseURL:  resolve(raw.tmdbBaseURL, envTMDBBaseURL, tmdb.DefaultBaseURL),
			Language: resolve(raw.tmdbLanguage, envTMDBLanguage, tmdb.DefaultLanguage),
		},
		CORSOrigins: splitList(resolve(raw.corsOrigins, envCORSOrigins, "")),
		LogLevel:    resolve(raw.logLevel, envLogLevel, defaultLogLevel),
		LogFormat:   resolve(raw.logFormat, envLogFormat, defaultLogFormat),
		CertFile:    resolve(raw.certFile, envTLSCertFile, ""),
		KeyFile:     resolve(raw.keyFile, envTLSKeyFile, ""),
	}

	var err error
	if cfg.JWTTTL, err = parseDuration(resolve(raw.jwtTTL, envJWTTTL, ""), services.DefaultTokenTTL); err != nil {
		return nil, fmt.Errorf("некорректное время жизни токена (%s): %w", envJWTTTL, err)
	}
	if cfg.TMDB.Timeout, err = parseDuration(resolve(raw.tmdbTimeout, envTMDBTimeout, ""), tmdb.DefaultTimeout); err != nil {
		return nil, fmt.Errorf("некорректный таймаут TMDB (%s): %w", envTMDBTimeout, err)
	}
	cfg.BcryptCost = services.DefaultBcryptCost
	if value := resolve(raw.bcryptCost, envBcryptCost, ""); value != "" {
		if cfg.BcryptCost, err = strconv.Atoi(value); err != nil {
			return nil, fmt.Errorf("некорректная стоимость bcrypt (%s): %w", envBcryptCost, err)
		}
	}

	// Проверяем обязательные параметры
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("не указана строка подключения к БД (--database-dsn или " + envDatabaseDSN + ")")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("не указан секрет подписи JWT (--jwt-secret или " + envJWTSecret + ")")
	}
	if (cfg.CertFile == "") != (cfg.KeyFile == "") {
		return nil, errors.New("для HTTPS нужны оба файла: " + envTLSCertFile + " и " + envTLSKeyFile)
	}

	return cfg, nil
}

// loadEnvFile подгружает переменные из файла .env, не перезаписывая уже заданные.
// Отсутствие файла не считается ошибкой.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ошибка чтения %s: %w", path, err)
	}
	return nil
}

// resolve возвращает значение флага, переменной окружения или значение по умолчанию.
func resolve(flagValue, envKey, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if value, ok := os.LookupEnv(envKey); ok && value != "" {
		return value
	}
	return fallback
}

func parseDuration(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("значение должно быть положительным: %s", value)
	}
	return d, nil
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
