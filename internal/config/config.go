package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeHTTP    = "http"
	ModeConsole = "console"
)

var ErrUnknownMode = errors.New("unknown mode")

type Config struct {
	LogLevel  string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode      string        `yaml:"mode" env:"MODE" env-default:"http"`
	HTTPPort  string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	HumanMark string        `yaml:"human-mark" env:"HUMAN_MARK" env-default:"X"`
	GameTTL   time.Duration `yaml:"game-ttl" env:"GAME_TTL" env-default:"1h"`
	Redis     Redis         `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load reads the YAML file at path, then applies environment overrides. A
// missing file is not an error: the environment and defaults are used instead.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if config.Mode != ModeHTTP && config.Mode != ModeConsole {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, config.Mode)
	}

	return config, nil
}

// MustLoad - same as Load, but panics on error.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
