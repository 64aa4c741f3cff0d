package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Mail     MailConfig     `mapstructure:"mail"`
}

type ServerConfig struct {
	Port    int           `mapstructure:"port"`
	Mode    string        `mapstructure:"mode"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret      string       `mapstructure:"jwt_secret"`
	JWTExpiryHours int          `mapstructure:"jwt_expiry_hours"`
	JWTIssuer      string       `mapstructure:"jwt_issuer"`
	GitHub         GitHubConfig `mapstructure:"github"`
}

// GitHubConfig holds the GitHub OAuth application credentials.
type GitHubConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
	StateTimeout int    `mapstructure:"state_timeout"` // in minutes
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MailConfig struct {
	FromAddress string `mapstructure:"from_address"`
	ResetURL    string `mapstructure:"reset_url"`
}

func LoadConfig(configPath string) (*Config, error) {
	var config Config

	// If CONFIG_FILE environment variable is set, use it
	if envConfigFile := os.Getenv("CONFIG_FILE"); envConfigFile != "" {
		configPath = envConfigFile
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		dir := filepath.Dir(configPath)
		file := filepath.Base(configPath)
		ext := filepath.Ext(file)
		name := strings.TrimSuffix(file, ext)

		v.AddConfigPath(dir)
		v.SetConfigName(name)
	} else {
		// Fallback to default locations
		_, filename, _, _ := runtime.Caller(0)
		pkgConfigDir := filepath.Dir(filename)
		projectRoot := filepath.Join(pkgConfigDir, "..", "..")

		v.AddConfigPath(pkgConfigDir)
		v.AddConfigPath(projectRoot)
		v.AddConfigPath(filepath.Join(projectRoot, "pkg", "config"))
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error loading config file: %v", err)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Override with environment variables if they exist
	envVars := map[string]string{
		"database.host":              "DB_HOST",
		"database.port":              "DB_PORT",
		"database.user":              "DB_USER",
		"database.password":          "DB_PASSWORD",
		"database.name":              "DB_NAME",
		"database.sslmode":           "DB_SSLMODE",
		"server.port":                "SERVER_PORT",
		"server.mode":                "SERVER_MODE",
		"server.timeout":             "SERVER_TIMEOUT",
		"redis.host":                 "REDIS_HOST",
		"redis.port":                 "REDIS_PORT",
		"redis.password":             "REDIS_PASSWORD",
		"redis.db":                   "REDIS_DB",
		"auth.jwt_secret":            "JWT_SECRET",
		"auth.jwt_issuer":            "JWT_ISSUER",
		"auth.jwt_expiry_hours":      "JWT_EXPIRY_HOURS",
		"auth.github.enabled":        "OAUTH2_GITHUB_ENABLED",
		"auth.github.client_id":      "OAUTH2_GITHUB_CLIENT_ID",
		"auth.github.client_secret":  "OAUTH2_GITHUB_CLIENT_SECRET",
		"auth.github.redirect_url":   "OAUTH2_GITHUB_REDIRECT_URL",
		"auth.github.state_timeout":  "OAUTH2_GITHUB_STATE_TIMEOUT",
		"logging.level":              "LOG_LEVEL",
		"logging.format":             "LOG_FORMAT",
		"mail.from_address":          "MAIL_FROM_ADDRESS",
		"mail.reset_url":             "MAIL_RESET_URL",
	}

	for configKey, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			// Handle special cases for type conversion
			switch envVar {
			case "DB_PORT", "REDIS_PORT", "REDIS_DB", "SERVER_PORT", "JWT_EXPIRY_HOURS", "OAUTH2_GITHUB_STATE_TIMEOUT":
				if intVal, err := strconv.Atoi(value); err == nil {
					v.Set(configKey, intVal)
				}
			case "SERVER_TIMEOUT":
				if d, err := time.ParseDuration(value); err == nil {
					v.Set(configKey, d)
				}
			case "OAUTH2_GITHUB_ENABLED":
				if value == "true" || value == "1" {
					v.Set(configKey, true)
				} else if value == "false" || value == "0" {
					v.Set(configKey, false)
				}
			default:
				v.Set(configKey, value)
			}
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	return &config, nil
}
