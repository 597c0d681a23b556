// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек сервиса.
type Config struct {
	Env                     string `yaml:"env" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Gemini                  `yaml:"gemini"`
	RabbitMQ                `yaml:"rabbitmq"`
	ScanSettings            `yaml:"scan"`
	SMTP                    `yaml:"smtp"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"30s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"5s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Gemini структура для настройки клиента генеративной модели.
type Gemini struct {
	APIKey        string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model         string        `yaml:"model" env-default:"gemini-3-pro-preview"`
	BaseURL       string        `yaml:"base_url"`
	TimeoutGemini time.Duration `yaml:"timeout" env-default:"60s"`
}

// RabbitMQ структура для настройки подключения к брокеру событий.
type RabbitMQ struct {
	URL          string `yaml:"url" env:"RABBITMQ_URL"`
	ScanExchange string `yaml:"scan_exchange" env-default:"purescan.events"`
	ScanQueue    string `yaml:"scan_queue" env-default:"scan.completed"`
}

// ScanSettings структура с параметрами пайплайна сканирования.
type ScanSettings struct {
	FreeScans    int           `yaml:"free_scans" env-default:"3"`
	ProgressTick time.Duration `yaml:"progress_tick" env-default:"100ms"`
	BillingDelay time.Duration `yaml:"billing_delay" env-default:"1500ms"`
}

// SMTP структура для настройки почтового транспорта уведомлений.
type SMTP struct {
	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port" env-default:"587"`
	SMTPUser string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
