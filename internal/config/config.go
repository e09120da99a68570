package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Remote RemoteConfig
	Redis  RedisConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// RemoteConfig points at the persistence API, the store of record for
// events and table snapshots.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RedisConfig is optional; an empty Addr disables the cache, pub/sub and
// rate limiting entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverHost := os.Getenv("SERVER_HOST")
	if serverHost == "" {
		serverHost = "localhost"
	}

	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080"
	}

	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid SERVER_PORT: %w", op, err)
	}

	remoteBaseURL := os.Getenv("REMOTE_BASE_URL")
	if remoteBaseURL == "" {
		return nil, fmt.Errorf("%s: missing REMOTE_BASE_URL", op)
	}

	remoteTimeout := 10 * time.Second
	if s := os.Getenv("REMOTE_TIMEOUT_SEC"); s != "" {
		secs, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid REMOTE_TIMEOUT_SEC: %w", op, err)
		}
		remoteTimeout = time.Duration(secs) * time.Second
	}

	return &Config{
		Server: ServerConfig{
			Host: serverHost,
			Port: serverPort,
		},
		Remote: RemoteConfig{
			BaseURL: remoteBaseURL,
			Timeout: remoteTimeout,
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
	}, nil
}
