// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Recognized environment variables.
const (
	EnvAdminUserIDs = "ADMIN_USER_IDS"
	EnvTableName    = "FAMILY_FOREST_TABLE_NAME"
	EnvBotToken     = "TELEGRAM_BOT_TOKEN"
)

// Config is the process configuration, loaded once at startup.
type Config struct {
	// AdminUserIDs is the static admin allowlist.
	AdminUserIDs []string

	// TableName is the Family Forest DynamoDB table.
	TableName string

	// TelegramToken authenticates outbound Bot API calls.
	TelegramToken string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		AdminUserIDs:  SplitIDs(os.Getenv(EnvAdminUserIDs)),
		TableName:     os.Getenv(EnvTableName),
		TelegramToken: os.Getenv(EnvBotToken),
	}
	if cfg.TableName == "" {
		return Config{}, fmt.Errorf("familyforest: %s is required", EnvTableName)
	}
	if cfg.TelegramToken == "" {
		return Config{}, fmt.Errorf("familyforest: %s is required", EnvBotToken)
	}
	return cfg, nil
}

// SplitIDs parses a comma-separated ID list, trimming whitespace and
// dropping empty entries.
func SplitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}
