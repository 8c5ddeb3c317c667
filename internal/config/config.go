package config

import (
	"fmt"
	"time"
)

const (
	EnvDevelopment = "development"

	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

type Config struct {
	Env     string  `yaml:"env"`
	Server  Server  `yaml:"server"`
	API     API     `yaml:"api"`
	Session Session `yaml:"session"`
	Log     Log     `yaml:"log"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// API points at the policy backend.
type API struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Session struct {
	Store      string        `yaml:"store"`
	Lifetime   time.Duration `yaml:"lifetime"`
	CookieName string        `yaml:"cookie_name"`
	Secure     bool          `yaml:"secure"`
	File       FileStore     `yaml:"file"`
	Redis      RedisStore    `yaml:"redis"`
}

type FileStore struct {
	Path string `yaml:"path"`
}

type RedisStore struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type Log struct {
	Level string `yaml:"level"`
}

// New returns the built-in defaults, suitable for local development.
func New() *Config {
	return &Config{
		Env: EnvDevelopment,
		Server: Server{
			Host: "localhost",
			Port: 8123,
		},
		API: API{
			BaseURL: "http://localhost:5000",
			Timeout: 10 * time.Second,
		},
		Session: Session{
			Store:      StoreMemory,
			Lifetime:   24 * time.Hour,
			CookieName: "portal_session",
			File: FileStore{
				Path: "data/sessions.json",
			},
			Redis: RedisStore{
				Addr:   "127.0.0.1:6379",
				Prefix: "portal:session:",
			},
		},
		Log: Log{
			Level: "info",
		},
	}
}
