package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"

	PushNone = "none"
	PushFCM  = "fcm"
	PushMQTT = "mqtt"
)

type Config struct {
	Env       string
	Server    server
	DB        db
	Push      push
	Events    events
	Lifecycle lifecycle
	Analytics analytics
}

type server struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

type db struct {
	Driver      string `env:"STORAGE_DRIVER"`
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
	SQLitePath  string `env:"SQLITE_PATH"`
}

type push struct {
	Driver          string        `env:"PUSH_DRIVER"`
	Timeout         time.Duration `env:"PUSH_TIMEOUT"`
	CredentialsPath string        `env:"FIREBASE_CREDENTIALS_PATH"`
	MQTT            mqtt
}

type mqtt struct {
	Broker      string `env:"MQTT_BROKER"`
	ClientID    string `env:"MQTT_CLIENT_ID"`
	Username    string `env:"MQTT_USERNAME"`
	Password    string `env:"MQTT_PASSWORD"`
	TopicPrefix string `env:"MQTT_TOPIC_PREFIX"`
}

type events struct {
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`
	Stream        string `env:"EVENTS_STREAM"`
}

type lifecycle struct {
	RequestTTL    time.Duration `env:"REQUEST_TTL"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

type analytics struct {
	TargetDate string `env:"ANALYTICS_TARGET_DATE"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvLocal)
	v.SetDefault("RUN_ADDRESS", ":8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("STORAGE_DRIVER", StorageMemory)
	v.SetDefault("MIGRATIONS_PATH", "migrations/postgres")
	v.SetDefault("SQLITE_PATH", "healthsync.db")
	v.SetDefault("PUSH_DRIVER", PushNone)
	v.SetDefault("PUSH_TIMEOUT", "10s")
	v.SetDefault("MQTT_CLIENT_ID", "healthsync-server")
	v.SetDefault("MQTT_TOPIC_PREFIX", "healthsync/devices")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("EVENTS_STREAM", "healthsync:events")
	v.SetDefault("REQUEST_TTL", "0s")
	v.SetDefault("SWEEP_INTERVAL", "1m")
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			log.Printf("failed to load %s: %v", envPath, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

// MustLoad паникует при невалидной конфигурации
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env: v.GetString("APP_ENV"),
		Server: server{
			RunAddress:      v.GetString("RUN_ADDRESS"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		DB: db{
			Driver:      v.GetString("STORAGE_DRIVER"),
			DatabaseURI: v.GetString("DATABASE_URI"),
			Migrations:  v.GetString("MIGRATIONS_PATH"),
			SQLitePath:  v.GetString("SQLITE_PATH"),
		},
		Push: push{
			Driver:          v.GetString("PUSH_DRIVER"),
			Timeout:         v.GetDuration("PUSH_TIMEOUT"),
			CredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
			MQTT: mqtt{
				Broker:      v.GetString("MQTT_BROKER"),
				ClientID:    v.GetString("MQTT_CLIENT_ID"),
				Username:    v.GetString("MQTT_USERNAME"),
				Password:    v.GetString("MQTT_PASSWORD"),
				TopicPrefix: v.GetString("MQTT_TOPIC_PREFIX"),
			},
		},
		Events: events{
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			Stream:        v.GetString("EVENTS_STREAM"),
		},
		Lifecycle: lifecycle{
			RequestTTL:    v.GetDuration("REQUEST_TTL"),
			SweepInterval: v.GetDuration("SWEEP_INTERVAL"),
		},
		Analytics: analytics{
			TargetDate: v.GetString("ANALYTICS_TARGET_DATE"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DB.DatabaseURI == "" {
			return fmt.Errorf("DATABASE_URI is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.DB.Driver)
	}

	switch c.Push.Driver {
	case PushNone:
	case PushFCM:
		if c.Push.CredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required for the fcm push driver")
		}
	case PushMQTT:
		if c.Push.MQTT.Broker == "" {
			return fmt.Errorf("MQTT_BROKER is required for the mqtt push driver")
		}
	default:
		return fmt.Errorf("unknown PUSH_DRIVER %q", c.Push.Driver)
	}

	if c.Lifecycle.RequestTTL > 0 && c.Lifecycle.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive when REQUEST_TTL is set")
	}
	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}
