package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"github.com/f9n/alertmanager-silences-slack-reporter/internal/pkg/errors"
	"github.com/f9n/alertmanager-silences-slack-reporter/internal/pkg/validator"
)

// Config holds all application configuration
type Config struct {
	AlertmanagerURL string `flag:"alertmanager-url" validate:"required"`
	SlackBotToken   string `flag:"slack-bot-token" validate:"required"`
	SlackChannelID  string `flag:"slack-channel-id" validate:"required"`

	Timeout   time.Duration
	Schedule  string
	DryRun    bool
	Output    string `flag:"output" validate:"omitempty,oneof=text json yaml"`
	LogLevel  string
	LogFormat string
}

// envForFlag maps each required flag to its environment variable fallback
var envForFlag = map[string]string{
	"alertmanager-url": "ALERTMANAGER_URL",
	"slack-bot-token":  "SLACK_BOT_TOKEN",
	"slack-channel-id": "SLACK_CHANNEL_ID",
}

// Load builds a Config from the merged flag/env view held by v and
// validates it. Flags take precedence over environment variables; that
// ordering is established by the viper bindings in the cli package.
func Load(v *viper.Viper) (*Config, error) {
	// Load .env if present; absence is not an error
	_ = godotenv.Load()

	cfg := &Config{
		AlertmanagerURL: v.GetString("alertmanager-url"),
		SlackBotToken:   v.GetString("slack-bot-token"),
		SlackChannelID:  v.GetString("slack-channel-id"),
		Timeout:         v.GetDuration("timeout"),
		Schedule:        v.GetString("schedule"),
		DryRun:          v.GetBool("dry-run"),
		Output:          v.GetString("output"),
		LogLevel:        v.GetString("log-level"),
		LogFormat:       v.GetString("log-format"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every required field is set and that optional
// fields carry usable values. The returned error names each missing
// flag and its environment variable fallback.
func (c *Config) Validate() error {
	if verrs := validator.New().Validate(c); len(verrs) > 0 {
		parts := make([]string, 0, len(verrs))
		for _, ve := range verrs {
			if env, ok := envForFlag[ve.Field]; ok && ve.Tag == "required" {
				parts = append(parts, fmt.Sprintf("--%s (%s)", ve.Field, env))
				continue
			}
			parts = append(parts, ve.Message)
		}
		return errors.Config("missing or invalid configuration: " + strings.Join(parts, ", "))
	}

	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			return errors.Config(fmt.Sprintf("invalid cron schedule %q: %v", c.Schedule, err))
		}
	}

	return nil
}
