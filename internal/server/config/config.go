// Package config отвечает за:
// - чтение server.yaml (файл опционален)
// - подстановку переменных окружения вида ${AWS_S3_BUCKET_NAME}
// - переопределение настроек через переменные окружения (envconfig)
// - проставление дефолтов
// - валидацию (чтобы сервер не стартовал с дырявыми настройками)
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config — корневая структура всего конфига сервера.
type Config struct {
	Env        string           `yaml:"env"` // dev|stage|prod
	Server     ServerConfig     `yaml:"server"`
	DB         DBConfig         `yaml:"db"`
	Migrations MigrationsConfig `yaml:"migrations"`
	Password   PasswordConfig   `yaml:"password"`
	Storage    StorageConfig    `yaml:"storage"`
	Workload   WorkloadConfig   `yaml:"workload"`
	CORS       CORSConfig       `yaml:"cors"`
	Errors     ErrorsConfig     `yaml:"errors"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig — настройки HTTP-сервера.
type ServerConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	// WriteTimeout должен покрывать /api/sleep (до 999 секунд), поэтому 0 = без лимита.
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // время на graceful shutdown
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`   // лимит размера тела запроса
}

// DBConfig — настройки подключения к базе данных.
//
// Если DSN пустой, он собирается из Host/Port/User/Password/Name.
type DBConfig struct {
	DSN             string        `yaml:"dsn"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// MigrationsConfig — настройки миграций БД.
type MigrationsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// PasswordConfig — настройки хэширования паролей пользователей.
type PasswordConfig struct {
	Hasher string       `yaml:"hasher"` // argon2id|bcrypt
	Argon2 Argon2Config `yaml:"argon2"`
	Bcrypt BcryptConfig `yaml:"bcrypt"`
}

// Argon2Config — параметры argon2id.
type Argon2Config struct {
	Time      uint32 `yaml:"time"`
	MemoryKiB uint32 `yaml:"memory_kib"`
	Threads   uint8  `yaml:"threads"`
	KeyLen    uint32 `yaml:"key_len"`
	SaltLen   uint32 `yaml:"salt_len"`
}

// BcryptConfig — параметры bcrypt.
type BcryptConfig struct {
	Cost int `yaml:"cost"`
}

// StorageConfig — объектное хранилище (S3 или совместимое, например MinIO).
type StorageConfig struct {
	Bucket          string        `yaml:"bucket"`
	Region          string        `yaml:"region"`
	AccessKeyID     string        `yaml:"access_key_id"`
	SecretAccessKey string        `yaml:"secret_access_key"`
	Endpoint        string        `yaml:"endpoint"`   // пусто = AWS
	KeyPrefix       string        `yaml:"key_prefix"` // course-images
	UploadURLTTL    time.Duration `yaml:"upload_url_ttl"`
}

// WorkloadConfig — параметры диагностической нагрузки (/api/sleep).
type WorkloadConfig struct {
	CPUWorkers int `yaml:"cpu_workers"` // сколько CPU-задач может выполняться одновременно
	SeedCount  int `yaml:"seed_count"`  // сколько курсов вставляет задача tasks=2
	PrimeN     int `yaml:"prime_n"`     // какое простое число ищет задача tasks=1
}

// CORSConfig — настройки CORS.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	Debug            bool     `yaml:"debug"`
}

// ErrorsConfig — политика логирования ошибок.
type ErrorsConfig struct {
	// GlobalLogging включает логирование стека для необработанных ошибок.
	GlobalLogging bool `yaml:"global_logging"`
}

// LogConfig — настройки логирования (zap).
type LogConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // json|console
	Dir    string `yaml:"dir"`
	Stderr bool   `yaml:"stderr"`
}

// EnvOverrides — переменные окружения, которые перекрывают значения из yaml.
//
// nil-поле означает, что переменная не задана.
type EnvOverrides struct {
	Port               *int           `envconfig:"PORT"`
	DBDSN              *string        `envconfig:"DB_DSN"`
	DBHost             *string        `envconfig:"DB_HOST"`
	DBPort             *int           `envconfig:"DB_PORT"`
	DBUser             *string        `envconfig:"DB_USER"`
	DBPassword         *string        `envconfig:"DB_PASSWORD"`
	DBName             *string        `envconfig:"DB_NAME"`
	GlobalErrorLogging *bool          `envconfig:"ENABLE_GLOBAL_ERROR_LOGGING"`
	AWSAccessKeyID     *string        `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey *string        `envconfig:"AWS_SECRET_ACCESS_KEY"`
	AWSRegion          *string        `envconfig:"AWS_REGION"`
	S3Bucket           *string        `envconfig:"AWS_S3_BUCKET_NAME"`
	S3Endpoint         *string        `envconfig:"AWS_S3_ENDPOINT"`
	UploadURLTTL       *time.Duration `envconfig:"UPLOAD_URL_TTL"`
	LogLevel           *string        `envconfig:"LOG_LEVEL"`
}

// Load читает YAML (если файл есть), подставляет переменные окружения вида ${VAR},
// затем парсит в структуру, применяет env-переопределения, проставляет дефолты и валидирует.
func Load(path string) (*Config, error) {
	var cfg Config

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Подставляем переменные окружения в текст YAML:
		// bucket: "${AWS_S3_BUCKET_NAME}" -> bucket: "реальное_значение"
		raw = []byte(ExpandEnvStrict(string(raw)))
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("не удалось распарсить yaml: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// без файла работаем на дефолтах и переменных окружения
	default:
		return nil, fmt.Errorf("не удалось прочитать конфиг: %w", err)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ExpandEnvStrict заменяет ${VAR} на значение из окружения.
// Если переменная не задана — оставляем ${VAR} как есть,
// а потом Validate() упадёт с понятной ошибкой.
func ExpandEnvStrict(s string) string {
	re := regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)
	return re.ReplaceAllStringFunc(s, func(m string) string {
		sub := re.FindStringSubmatch(m)
		if len(sub) != 2 {
			return m
		}
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		return m
	})
}

// ApplyEnvOverrides переопределяет настройки переменными окружения.
// Например PORT=9090 переопределит server.port.
func (c *Config) ApplyEnvOverrides() error {
	var ov EnvOverrides
	if err := envconfig.Process("", &ov); err != nil {
		return fmt.Errorf("не удалось прочитать переменные окружения: %w", err)
	}

	setInt(&c.Server.Port, ov.Port)
	setString(&c.DB.DSN, ov.DBDSN)
	setString(&c.DB.Host, ov.DBHost)
	setInt(&c.DB.Port, ov.DBPort)
	setString(&c.DB.User, ov.DBUser)
	setString(&c.DB.Password, ov.DBPassword)
	setString(&c.DB.Name, ov.DBName)
	if ov.GlobalErrorLogging != nil {
		c.Errors.GlobalLogging = *ov.GlobalErrorLogging
	}
	setString(&c.Storage.AccessKeyID, ov.AWSAccessKeyID)
	setString(&c.Storage.SecretAccessKey, ov.AWSSecretAccessKey)
	setString(&c.Storage.Region, ov.AWSRegion)
	setString(&c.Storage.Bucket, ov.S3Bucket)
	setString(&c.Storage.Endpoint, ov.S3Endpoint)
	if ov.UploadURLTTL != nil {
		c.Storage.UploadURLTTL = *ov.UploadURLTTL
	}
	setString(&c.Log.Level, ov.LogLevel)
	return nil
}

// ApplyDefaults — дефолтные значения, если в yaml поле не задано.
func ApplyDefaults(cfg *Config) {
	// необязательные поля с неподставленными ${VAR} считаем незаданными
	for _, p := range []*string{
		&cfg.Storage.Region,
		&cfg.Storage.AccessKeyID,
		&cfg.Storage.SecretAccessKey,
		&cfg.Storage.Endpoint,
	} {
		if isPlaceholder(*p) {
			*p = ""
		}
	}

	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = 10 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = 1 << 20
	}
	if cfg.DB.DSN == "" && cfg.DB.Host != "" {
		cfg.DB.DSN = cfg.DB.BuildDSN()
	}
	if cfg.DB.MaxOpenConns == 0 {
		cfg.DB.MaxOpenConns = 25
	}
	if cfg.DB.MaxIdleConns == 0 {
		cfg.DB.MaxIdleConns = 25
	}
	if cfg.DB.ConnMaxIdleTime == 0 {
		cfg.DB.ConnMaxIdleTime = 5 * time.Minute
	}
	if cfg.Migrations.Path == "" {
		cfg.Migrations.Path = "file://migrations/postgres"
	}
	if cfg.Password.Hasher == "" {
		cfg.Password.Hasher = "bcrypt"
	}
	if cfg.Password.Bcrypt.Cost == 0 {
		cfg.Password.Bcrypt.Cost = 10
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.KeyPrefix == "" {
		cfg.Storage.KeyPrefix = "course-images"
	}
	if cfg.Storage.UploadURLTTL == 0 {
		cfg.Storage.UploadURLTTL = 60 * time.Second
	}
	if cfg.Workload.CPUWorkers == 0 {
		cfg.Workload.CPUWorkers = runtime.NumCPU()
	}
	if cfg.Workload.SeedCount == 0 {
		cfg.Workload.SeedCount = 1000
	}
	if cfg.Workload.PrimeN == 0 {
		cfg.Workload.PrimeN = 1000
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// BuildDSN собирает postgres DSN из отдельных параметров.
func (d DBConfig) BuildDSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	port := d.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(sslmode),
	}
	return u.String()
}

// Addr возвращает адрес для http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate проверяет, что конфиг заполнен корректно.
// Если что-то не так — возвращаем ошибку и сервер НЕ стартует.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port некорректен: %d", c.Server.Port)
	}

	// База данных
	if c.DB.DSN == "" {
		return errors.New("db.dsn обязателен (или db.host/db.name, или DB_DSN)")
	}
	if strings.Contains(c.DB.DSN, "${") {
		return fmt.Errorf("db.dsn содержит неподставленную переменную: %q", c.DB.DSN)
	}

	// Хэширование паролей
	switch strings.ToLower(c.Password.Hasher) {
	case "argon2id":
		if c.Password.Argon2.Time == 0 || c.Password.Argon2.MemoryKiB == 0 || c.Password.Argon2.Threads == 0 {
			return errors.New("password.argon2 должен быть настроен для argon2id")
		}
	case "bcrypt":
		if c.Password.Bcrypt.Cost < 4 || c.Password.Bcrypt.Cost > 31 {
			return fmt.Errorf("password.bcrypt.cost должен быть в диапазоне 4..31 (сейчас %d)", c.Password.Bcrypt.Cost)
		}
	default:
		return fmt.Errorf("password.hasher должен быть argon2id|bcrypt (сейчас %q)", c.Password.Hasher)
	}

	// Объектное хранилище
	if c.Storage.Bucket == "" || strings.Contains(c.Storage.Bucket, "${") {
		return errors.New("storage.bucket обязателен (через ${AWS_S3_BUCKET_NAME} или AWS_S3_BUCKET_NAME)")
	}
	if c.Storage.UploadURLTTL < time.Second || c.Storage.UploadURLTTL > 7*24*time.Hour {
		return fmt.Errorf("storage.upload_url_ttl вне диапазона 1s..168h: %s", c.Storage.UploadURLTTL)
	}
	if c.Storage.Endpoint != "" {
		if _, err := url.ParseRequestURI(c.Storage.Endpoint); err != nil {
			return fmt.Errorf("storage.endpoint некорректен: %w", err)
		}
	}

	if c.Workload.CPUWorkers < 0 {
		return fmt.Errorf("workload.cpu_workers должен быть >= 0 (сейчас %d)", c.Workload.CPUWorkers)
	}
	if c.Workload.SeedCount < 0 || c.Workload.PrimeN < 0 {
		return errors.New("workload.seed_count и workload.prime_n не могут быть отрицательными")
	}

	return nil
}

func isPlaceholder(s string) bool {
	return strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}")
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
