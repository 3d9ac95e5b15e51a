package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string    `yaml:"log-level" env-default:"info"`
	HTTPPort          string    `yaml:"http-port" env-default:"9090"`
	SocketPort        string    `yaml:"socket-port" env-default:"9091"`
	Redis             Redis     `yaml:"redis"`
	SQLiteStoragePath string    `yaml:"sqlite-storage-path" env-default:"rewards.db"`
	Faucet            Faucet    `yaml:"faucet"`
	Announcer         Announcer `yaml:"announcer"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Faucet struct {
	Endpoint string `yaml:"endpoint" env-default:"http://localhost:8100/faucet"`
	Token    string `yaml:"token" env-default:"GAS"`
	Amount   int    `yaml:"amount" env-default:"10"`
}

type Announcer struct {
	Endpoint string `yaml:"endpoint" env-default:"http://localhost:8200/announce"`
	Message  string `yaml:"message" env-default:"Someone just beat me at tic-tac-toe and walked away with the faucet reward. Well played!"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
