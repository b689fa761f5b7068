package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const appName = "resume-matcher"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Worker   WorkerConfig   `mapstructure:"worker"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
}

type GeminiConfig struct {
	APIKey      string        `mapstructure:"api-key"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	UploadPath  string `mapstructure:"upload-path"`
	MaxFileSize int64  `mapstructure:"max-file-size"`
}

type WorkerConfig struct {
	Concurrency  int           `mapstructure:"concurrency"`
	PollInterval time.Duration `mapstructure:"poll-interval"`
}

type AnalysisConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type LoggingConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// envBindings keeps the flat environment variable names used in .env files.
var envBindings = map[string]string{
	"server.port":           "PORT",
	"server.env":            "ENV",
	"database.host":         "DB_HOST",
	"database.port":         "DB_PORT",
	"database.user":         "DB_USER",
	"database.password":     "DB_PASSWORD",
	"database.name":         "DB_NAME",
	"gemini.api-key":        "GEMINI_API_KEY",
	"gemini.model":          "GEMINI_MODEL",
	"gemini.temperature":    "GEMINI_TEMPERATURE",
	"gemini.timeout":        "GEMINI_TIMEOUT",
	"storage.upload-path":   "UPLOAD_PATH",
	"storage.max-file-size": "MAX_FILE_SIZE",
	"worker.concurrency":    "WORKER_CONCURRENCY",
	"worker.poll-interval":  "WORKER_POLL_INTERVAL",
	"analysis.concurrency":  "ANALYSIS_CONCURRENCY",
	"logging.json":          "LOG_JSON",
	"logging.debug":         "LOG_DEBUG",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "resume_matcher")
	v.SetDefault("gemini.api-key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.temperature", 0.3)
	v.SetDefault("gemini.timeout", "60s")
	v.SetDefault("storage.upload-path", "./uploads")
	v.SetDefault("storage.max-file-size", 16*1024*1024)
	v.SetDefault("worker.concurrency", 3)
	v.SetDefault("worker.poll-interval", "10s")
	v.SetDefault("analysis.concurrency", 1)
	v.SetDefault("logging.json", false)
	v.SetDefault("logging.debug", false)
}

// Load reads .env, an optional resume-matcher.yaml and the environment, in
// increasing order of precedence.
func Load() (*Config, error) {
	// A missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	return load(viper.New(), "")
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load()

	return load(viper.New(), path)
}

func load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s environment variable: %w", env, err)
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Worker.Concurrency < 1 {
		cfg.Worker.Concurrency = 1
	}
	if cfg.Analysis.Concurrency < 1 {
		cfg.Analysis.Concurrency = 1
	}

	return &cfg, nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
