package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Server     ServerConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Logger     LoggerConfig
	Cache      CacheConfig
	Dictionary DictionaryConfig
	Storage    StorageConfig
	Mail       MailConfig
	RateLimit  RateLimitConfig
	Tracing    TracingConfig
}

type AppConfig struct {
	Name        string
	FrontendURL string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DBConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
	CORSOrigins  string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type LoggerConfig struct {
	Env   string
	Level string
	File  LogFileConfig
}

// LogFileConfig enables a rotating log file next to stdout when Path is set.
type LogFileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type CacheConfig struct {
	StatsTTL      time.Duration
	DictionaryTTL time.Duration
}

type DictionaryConfig struct {
	BaseURL string
	Timeout time.Duration
}

type StorageConfig struct {
	Provider string // "local" or "minio"
	Local    LocalStorageConfig
	Minio    MinioConfig
}

type LocalStorageConfig struct {
	Dir          string
	PublicPrefix string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether outgoing mail can be sent.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.Username != "" && m.Password != ""
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	SampleRatio float64
	ServiceName string
}

func setDefaults() {
	viper.SetDefault("app.name", "lingo-quiz")
	viper.SetDefault("app.frontend_url", "http://localhost:3001")

	viper.SetDefault("server.port", 5000)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("server.body_limit_mb", 110)
	viper.SetDefault("server.cors_origins", "http://localhost:3000")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.user", "postgres")
	viper.SetDefault("db.name", "lingo_quiz")
	viper.SetDefault("db.sslmode", "disable")
	viper.SetDefault("db.max_open_conns", 20)
	viper.SetDefault("db.max_idle_conns", 5)

	viper.SetDefault("jwt.access_token_ttl", "168h")

	viper.SetDefault("logger.env", "development")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.file.max_size_mb", 100)
	viper.SetDefault("logger.file.max_backups", 5)
	viper.SetDefault("logger.file.max_age_days", 30)

	viper.SetDefault("cache.stats_ttl", "5m")
	viper.SetDefault("cache.dictionary_ttl", "24h")

	viper.SetDefault("dictionary.base_url", "https://api.dictionaryapi.dev/api/v2/entries/en")
	viper.SetDefault("dictionary.timeout", "10s")

	viper.SetDefault("storage.provider", "local")
	viper.SetDefault("storage.local.dir", "uploads")
	viper.SetDefault("storage.local.public_prefix", "/uploads")

	viper.SetDefault("mail.port", 587)

	viper.SetDefault("rate_limit.rps", 5)
	viper.SetDefault("rate_limit.burst", 10)

	viper.SetDefault("tracing.sample_ratio", 0.1)
	viper.SetDefault("tracing.service_name", "lingo-quiz")
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables always win over it.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../config")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		App: AppConfig{
			Name:        viper.GetString("app.name"),
			FrontendURL: viper.GetString("app.frontend_url"),
		},
		DB: DBConfig{
			Host:         viper.GetString("db.host"),
			Port:         viper.GetInt("db.port"),
			User:         viper.GetString("db.user"),
			Password:     viper.GetString("db.password"),
			DBName:       viper.GetString("db.name"),
			SSLMode:      viper.GetString("db.sslmode"),
			MaxOpenConns: viper.GetInt("db.max_open_conns"),
			MaxIdleConns: viper.GetInt("db.max_idle_conns"),
		},
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  time.Duration(viper.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("server.write_timeout")) * time.Second,
			BodyLimitMB:  viper.GetInt("server.body_limit_mb"),
			CORSOrigins:  viper.GetString("server.cors_origins"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey:      viper.GetString("jwt.secret_key"),
			AccessTokenTTL: viper.GetDuration("jwt.access_token_ttl"),
		},
		Logger: LoggerConfig{
			Env:   viper.GetString("logger.env"),
			Level: viper.GetString("logger.level"),
			File: LogFileConfig{
				Path:       viper.GetString("logger.file.path"),
				MaxSizeMB:  viper.GetInt("logger.file.max_size_mb"),
				MaxBackups: viper.GetInt("logger.file.max_backups"),
				MaxAgeDays: viper.GetInt("logger.file.max_age_days"),
				Compress:   viper.GetBool("logger.file.compress"),
			},
		},
		Cache: CacheConfig{
			StatsTTL:      viper.GetDuration("cache.stats_ttl"),
			DictionaryTTL: viper.GetDuration("cache.dictionary_ttl"),
		},
		Dictionary: DictionaryConfig{
			BaseURL: viper.GetString("dictionary.base_url"),
			Timeout: viper.GetDuration("dictionary.timeout"),
		},
		Storage: StorageConfig{
			Provider: viper.GetString("storage.provider"),
			Local: LocalStorageConfig{
				Dir:          viper.GetString("storage.local.dir"),
				PublicPrefix: viper.GetString("storage.local.public_prefix"),
			},
			Minio: MinioConfig{
				Endpoint:  viper.GetString("storage.minio.endpoint"),
				AccessKey: viper.GetString("storage.minio.access_key"),
				SecretKey: viper.GetString("storage.minio.secret_key"),
				Bucket:    viper.GetString("storage.minio.bucket"),
				UseSSL:    viper.GetBool("storage.minio.use_ssl"),
				PublicURL: viper.GetString("storage.minio.public_url"),
			},
		},
		Mail: MailConfig{
			Host:     viper.GetString("mail.host"),
			Port:     viper.GetInt("mail.port"),
			Username: viper.GetString("mail.username"),
			Password: viper.GetString("mail.password"),
			From:     viper.GetString("mail.from"),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("rate_limit.rps"),
			Burst: viper.GetInt("rate_limit.burst"),
		},
		Tracing: TracingConfig{
			Enabled:     viper.GetBool("tracing.enabled"),
			Endpoint:    viper.GetString("tracing.endpoint"),
			Insecure:    viper.GetBool("tracing.insecure"),
			SampleRatio: viper.GetFloat64("tracing.sample_ratio"),
			ServiceName: viper.GetString("tracing.service_name"),
		},
	}

	// Plain env names used by existing deployments.
	if host := os.Getenv("DB_HOST"); host != "" {
		config.DB.Host = host
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.DB.Password = password
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		config.DB.DBName = dbname
	}
	if port := os.Getenv("PORT"); port != "" {
		viper.Set("server.port", port)
		config.Server.Port = viper.GetInt("server.port")
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.JWT.SecretKey = secret
	}
	if origins := os.Getenv("CORS_ORIGIN"); origins != "" {
		config.Server.CORSOrigins = origins
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if emailUser := os.Getenv("EMAIL_USER"); emailUser != "" {
		config.Mail.Username = emailUser
		if config.Mail.From == "" {
			config.Mail.From = emailUser
		}
		if config.Mail.Host == "" {
			config.Mail.Host = "smtp.gmail.com"
		}
	}
	if emailPass := os.Getenv("EMAIL_PASS"); emailPass != "" {
		config.Mail.Password = emailPass
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return errors.New("jwt secret key is not configured (jwt.secret_key or JWT_SECRET)")
	}
	if c.Storage.Provider != "local" && c.Storage.Provider != "minio" {
		return fmt.Errorf("unsupported storage provider: %q", c.Storage.Provider)
	}
	return nil
}

func (c *Config) GetDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DB.User, c.DB.Password),
		Host:   fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:   c.DB.DBName,
	}
	q := u.Query()
	if c.DB.SSLMode != "" {
		q.Set("sslmode", c.DB.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
