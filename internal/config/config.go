package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Debug      bool          `yaml:"debug"`
	Limiter    Limiter       `yaml:"limiter"`
	AuthSecret string        `yaml:"auth_secret" env:"AUTH_SECRET" env-required:"true"`
	Server     Server        `yaml:"server"`
	DB         DB            `yaml:"db"`
	SMTPServer SMTPServer    `yaml:"smtp_server"`
	Clients    ClientsConfig `yaml:"clients"`
	Tasks      Tasks         `yaml:"tasks"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
}

type Server struct {
	Port string `yaml:"port" env-default:"8000"`
	Host string `yaml:"host" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"2s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"5m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type DB struct {
	Dsn             string        `yaml:"dsn" env:"DB_DSN" env-required:"true"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
}

type SMTPServer struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port" env-default:"587"`
	Timeout      time.Duration `yaml:"timeout" env-default:"5s"`
	Username     string        `yaml:"username" env:"SMTP_USERNAME"`
	Password     string        `yaml:"password" env:"SMTP_PASSWORD"`
	Sender       string        `yaml:"sender" env-default:"Tiny Viewers <no-reply@tinyviewers.app>"`
	Support      string        `yaml:"support" env-default:"support@tinyviewers.app"`
	RetriesCount int           `yaml:"retries_count" env-default:"3"`
}

type ContentAI struct {
	APIKey    string `yaml:"api_key" env:"CONTENT_AI_API_KEY"`
	Model     string `yaml:"model" env-default:"claude-3-5-sonnet-latest"`
	MaxTokens int    `yaml:"max_tokens" env-default:"8192"`
	// Worst case one attempt blocks for the full model run; keep this generous.
	Timeout time.Duration `yaml:"timeout" env-default:"3m"`
}

type Metadata struct {
	APIKey  string        `yaml:"api_key" env:"METADATA_API_KEY"`
	Timeout time.Duration `yaml:"timeout" env-default:"15s"`
}

type Subtitles struct {
	APIKey   string        `yaml:"api_key" env:"SUBTITLES_API_KEY"`
	Language string        `yaml:"language" env-default:"en"`
	Timeout  time.Duration `yaml:"timeout" env-default:"30s"`
}

type ClientsConfig struct {
	ContentAI ContentAI `yaml:"content_ai"`
	Metadata  Metadata  `yaml:"metadata"`
	Subtitles Subtitles `yaml:"subtitles"`
}

type Tasks struct {
	MaxWorkers   int `yaml:"max_workers" env-default:"4"`
	MaxQueueSize int `yaml:"max_queue_size" env-default:"100"`
}

func MustLoad(configPath string) *Config {
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic(fmt.Errorf("config file %s not found", configPath))
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic(err)
	}
	return &cfg
}
