package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Secrets are the three required environment values.
// They are the only startup-fatal configuration.
type Secrets struct {
	PracticumToken string `envconfig:"PRACTICUM_TOKEN"`
	TelegramToken  string `envconfig:"TELEGRAM_TOKEN"`
	TelegramChatID string `envconfig:"TELEGRAM_CHAT_ID"`
}

// MissingVarsError names exactly the environment variables that are absent.
type MissingVarsError struct {
	Names []string
}

func (e *MissingVarsError) Error() string {
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(e.Names, ", "))
}

// LoadSecrets reads the environment and verifies all three values are present.
// The missing-name list is built by hand so the error names every absent
// variable, not just the first one envconfig would stop at.
func LoadSecrets() (*Secrets, error) {
	var s Secrets
	if err := envconfig.Process("", &s); err != nil {
		return nil, err
	}

	var missing []string
	if strings.TrimSpace(s.PracticumToken) == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if strings.TrimSpace(s.TelegramToken) == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if strings.TrimSpace(s.TelegramChatID) == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return nil, &MissingVarsError{Names: missing}
	}
	return &s, nil
}

// ChatID parses the destination chat id.
func (s *Secrets) ChatID() (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s.TelegramChatID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("TELEGRAM_CHAT_ID is not a valid chat id: %w", err)
	}
	return id, nil
}
