package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeServer  = "server"
	ModeTUI     = "tui"
	ModeConsole = "console"

	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile    string        `yaml:"log-file" env:"LOG_FILE" env-default:""`
	Mode       string        `yaml:"mode" env:"MODE" env-default:"server"`
	HTTPPort   string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	GameTTL    time.Duration `yaml:"game-ttl" env:"GAME_TTL" env-default:"1h"`
	BotDelay   time.Duration `yaml:"bot-delay" env:"BOT_DELAY" env-default:"500ms"`
	Storage    string        `yaml:"storage" env:"STORAGE" env-default:"redis"`
	Redis      Redis         `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file, environment variables take precedence.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log-level %q", that.LogLevel)
	}

	switch that.Mode {
	case ModeServer, ModeTUI, ModeConsole:
	default:
		return fmt.Errorf("unknown mode %q", that.Mode)
	}

	switch that.Storage {
	case StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q", that.Storage)
	}

	if that.GameTTL < 0 {
		return fmt.Errorf("game-ttl must not be negative, got %s", that.GameTTL)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
