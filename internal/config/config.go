package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"hwbot/internal/practicum"
)

// Config holds the tunables read from the optional config file.
// The three secrets never live here; they come from the environment.
type Config struct {
	Practicum PracticumConfig `json:"practicum"`
	Telegram  TelegramConfig  `json:"telegram"`
	Poll      PollConfig      `json:"poll"`
	Logging   LoggingConfig   `json:"logging"`
	Notifier  NotifierConfig  `json:"notifier"`
	Storage   StorageConfig   `json:"storage"`
}

type PracticumConfig struct {
	Endpoint string `json:"endpoint"`
	// Timeout is a Go duration string (e.g. "10s", "1m").
	Timeout string `json:"timeout"`
}

type TelegramConfig struct {
	// SendTimeout is a Go duration string bounding one send call.
	SendTimeout string `json:"send_timeout"`
}

type PollConfig struct {
	// Schedule accepts a Go duration ("10m"), HH:MM ("00:10"),
	// or a cron expression ("*/10 * * * *", "@every 10m").
	Schedule string `json:"schedule"`
	// SeedTimestamp is the from_date of the very first poll window.
	SeedTimestamp int64 `json:"seed_timestamp"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type NotifierConfig struct {
	RatePerSec int `json:"rate_per_sec"`
}

// StorageConfig controls the optional send-history store.
// An empty path disables persistence entirely.
type StorageConfig struct {
	Path string `json:"path"`
	// BusyTimeout is a Go duration string (sqlite).
	BusyTimeout string `json:"busy_timeout"`
}

// defaultSeedTimestamp matches the cursor the bot historically started from.
const defaultSeedTimestamp = 1681635226

func Default() Config {
	return Config{
		Practicum: PracticumConfig{Endpoint: practicum.DefaultEndpoint, Timeout: "10s"},
		Telegram:  TelegramConfig{SendTimeout: "10s"},
		Poll:      PollConfig{Schedule: "10m", SeedTimestamp: defaultSeedTimestamp},
		Logging: LoggingConfig{
			Level:   "debug",
			Console: true,
			File:    LoggingFile{Enabled: false, Path: "./hwbot.log"},
		},
		Notifier: NotifierConfig{RatePerSec: 1},
	}
}

// Parse strict-decodes config bytes on top of the defaults.
// YAML files are coerced to JSON first so one strict decoder serves both formats.
func Parse(path string, data []byte) (Config, error) {
	jb, format, err := coerceToJSONBytes(path, data)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode %s config: %w", format, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads and parses the config file.
// A missing file is not an error: defaults apply.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Parse(path, data)
}

func (c *Config) validate() error {
	if _, err := ParseSchedule(c.Poll.Schedule); err != nil {
		return fmt.Errorf("poll.schedule: %w", err)
	}
	if c.Poll.SeedTimestamp < 0 {
		return fmt.Errorf("poll.seed_timestamp must be >= 0")
	}
	if _, err := ParseDurationField("practicum.timeout", c.Practicum.Timeout); err != nil {
		return err
	}
	if _, err := ParseDurationField("telegram.send_timeout", c.Telegram.SendTimeout); err != nil {
		return err
	}
	if _, err := ParseDurationField("storage.busy_timeout", c.Storage.BusyTimeout); err != nil {
		return err
	}
	if c.Notifier.RatePerSec < 0 {
		return fmt.Errorf("notifier.rate_per_sec must be >= 0")
	}
	return nil
}
