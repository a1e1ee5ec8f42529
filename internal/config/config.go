package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultEnvFile = "configs/.env"
	devJWTSecret   = "nakliye_dev_secret_key"
)

// DBConfig holds the postgres connection settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds a postgres connection URL.
func (c DBConfig) DSN() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.Name + "?sslmode=" + c.SSLMode
}

// Config is the process configuration.
type Config struct {
	Port            string
	GinMode         string
	DB              DBConfig
	JWTSecret       string
	CORSOrigins     []string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// Release reports whether gin runs in release mode.
func (c *Config) Release() bool { return c.GinMode == "release" }

// Load reads configuration in order: flags, .env file (if present), environment, defaults.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("nakliye", pflag.ContinueOnError)
	envFile := fs.String("env-file", DefaultEnvFile, "path to the .env file")
	fs.StringP("port", "p", "", "port to listen on")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("No %s file found or error loading it", *envFile)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	if err := v.BindPFlag("port", fs.Lookup("port")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:    v.GetString("port"),
		GinMode: v.GetString("gin_mode"),
		DB: DBConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		JWTSecret:       v.GetString("jwt_secret"),
		CORSOrigins:     splitList(v.GetString("cors_origins")),
		AccessTokenTTL:  v.GetDuration("access_token_ttl"),
		RefreshTokenTTL: v.GetDuration("refresh_token_ttl"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "postgres")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("cors_origins", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("access_token_ttl", "24h")
	v.SetDefault("refresh_token_ttl", "168h")
}

func (c *Config) validate() error {
	p, err := strconv.Atoi(c.Port)
	if err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid port: %q", c.Port)
	}
	if c.JWTSecret == "" {
		if c.Release() {
			return fmt.Errorf("JWT_SECRET is required in release mode")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("invalid ACCESS_TOKEN_TTL")
	}
	if c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("invalid REFRESH_TOKEN_TTL")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
