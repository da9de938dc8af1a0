// Package config handles loading and parsing application configuration.
// It supports three sources (later sources win):
//  1. A .env file in the working directory, if one exists
//  2. An optional YAML file: CONFIG_PATH=/path/to/config.yaml or --config=...
//  3. Environment variables (always applied, see the env:"..." tags)
//
// Without a YAML file the whole configuration comes from the environment,
// so a container only needs DB_HOST, DB_PASSWORD and friends.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Environment names accepted in ENV.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and whether internal error detail is
	// returned to API clients. Only "development" exposes detail.
	Env string `yaml:"env" env:"ENV" env-default:"production"`

	HTTPServer `yaml:"http_server"`
	Database   `yaml:"database"`
	CORS       `yaml:"cors"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST"`
	// Port has no tag default: each binary supplies its own.
	Port int `yaml:"port" env:"PORT"`
}

// Database describes how to reach the relational store and how large the
// connection pool may grow.
type Database struct {
	// Driver selects the SQL dialect: mysql, postgres or sqlite3.
	Driver   string `yaml:"driver" env:"DB_DRIVER" env-default:"mysql"`
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER" env-default:"root"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	// Name is the database name, or the file path for sqlite3.
	Name        string `yaml:"name" env:"DB_NAME" env-default:"library_management"`
	MaxConns    int    `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"10"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"false"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

// Addr returns the host:port pair the server listens on.
func (h HTTPServer) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// IsDevelopment reports whether internal error detail may be shown to clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment || c.Env == "dev"
}

// Load reads the configuration. args are the command-line arguments without
// the program name; defaultPort is used when neither the file nor PORT sets one.
func Load(args []string, defaultPort int) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		fs := flag.NewFlagSet("config", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		path := fs.String("config", "", "Path to the configuration YAML file")
		if err := fs.Parse(args); err != nil && !errors.Is(err, flag.ErrHelp) {
			return nil, fmt.Errorf("config: parse flags: %w", err)
		}
		configPath = *path
	}

	var cfg Config
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config: file does not exist: %s", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configPath, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if cfg.HTTPServer.Port == 0 {
		cfg.HTTPServer.Port = defaultPort
	}
	if cfg.MaxConns <= 0 {
		return nil, fmt.Errorf("config: max_conns must be positive, got %d", cfg.MaxConns)
	}

	return &cfg, nil
}

// MustLoad is Load for process start-up: any error is fatal.
// If this returns, the config is valid.
func MustLoad(defaultPort int) *Config {
	cfg, err := Load(os.Args[1:], defaultPort)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}
	return cfg
}
