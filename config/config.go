package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	PlatformURL    string // Wallet API; empty disables stake debits and win credits
	Port           int
	GameName       string
	GameProvider   string
	DataDir        string
	LadderFile     string // Optional YAML threshold ladder registered at startup
	CatalogFile    string // Optional YAML match catalog
	TickInterval   time.Duration
	CelebrationFor time.Duration
	JackpotSeed    int64
	Log            LogConfig
}

// LogConfig feeds logger.New.
type LogConfig struct {
	Level    string
	Encoding string // "json" or "console"
}

func Load() *Config {
	port := 8081
	// Prefer PORT (Render, Fly.io, Railway, etc.) then LADDER_PORT
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	} else if p := os.Getenv("LADDER_PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	}
	gameName := os.Getenv("GAME_NAME")
	if gameName == "" {
		gameName = "Goal Ladder"
	}
	gameProvider := os.Getenv("GAME_PROVIDER")
	if gameProvider == "" {
		gameProvider = "Crypto LATAM"
	}
	dataDir := os.Getenv("LADDER_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logEncoding := os.Getenv("LOG_ENCODING")
	if logEncoding == "" {
		logEncoding = "json"
	}
	return &Config{
		PlatformURL:    os.Getenv("PLATFORM_URL"),
		Port:           port,
		GameName:       gameName,
		GameProvider:   gameProvider,
		DataDir:        dataDir,
		LadderFile:     os.Getenv("LADDER_FILE"),
		CatalogFile:    os.Getenv("LADDER_CATALOG_FILE"),
		TickInterval:   millis("LADDER_TICK_MS", 2000),
		CelebrationFor: millis("LADDER_CELEBRATION_MS", 2500),
		JackpotSeed:    int64Env("LADDER_JACKPOT_SEED", 300000),
		Log: LogConfig{
			Level:    logLevel,
			Encoding: logEncoding,
		},
	}
}

func millis(key string, def int) time.Duration {
	v := def
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			v = n
		}
	}
	return time.Duration(v) * time.Millisecond
}

func int64Env(key string, def int64) int64 {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
