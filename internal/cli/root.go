package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f9n/alertmanager-silences-slack-reporter/internal/alertmanager"
	"github.com/f9n/alertmanager-silences-slack-reporter/internal/config"
	"github.com/f9n/alertmanager-silences-slack-reporter/internal/pkg/logger"
	"github.com/f9n/alertmanager-silences-slack-reporter/internal/reporter"
	"github.com/f9n/alertmanager-silences-slack-reporter/internal/slack"
)

var rootCmd = &cobra.Command{
	Use:   "silence-reporter",
	Short: "Report Alertmanager silences to Slack",
	Long: `silence-reporter fetches the current silence set from an Alertmanager
instance, formats it into a readable digest, and posts that digest to a
Slack channel. By default it runs the pipeline once and exits; --schedule
keeps it running and reposts the report on a cron schedule.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// envBindings maps each config key to its environment variable fallback.
// Flags override these: viper resolves a set flag before the env var.
var envBindings = map[string]string{
	"alertmanager-url": "ALERTMANAGER_URL",
	"slack-bot-token":  "SLACK_BOT_TOKEN",
	"slack-channel-id": "SLACK_CHANNEL_ID",
	"log-level":        "LOG_LEVEL",
	"log-format":       "LOG_FORMAT",
}

func init() {
	f := rootCmd.Flags()
	f.StringP("alertmanager-url", "a", "", "Alertmanager base URL (env: ALERTMANAGER_URL)")
	f.StringP("slack-bot-token", "t", "", "Slack bot token (env: SLACK_BOT_TOKEN)")
	f.StringP("slack-channel-id", "c", "", "Slack channel ID (env: SLACK_CHANNEL_ID)")
	f.Duration("timeout", 30*time.Second, "timeout for each outbound HTTP call")
	f.String("schedule", "", "cron expression for repeated runs (empty: run once and exit)")
	f.Bool("dry-run", false, "print the report instead of posting it to Slack")
	f.StringP("output", "o", "text", "dry-run output format: text, json, yaml")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("log-format", "console", "log format: console, json")

	for _, name := range []string{
		"alertmanager-url", "slack-bot-token", "slack-channel-id",
		"timeout", "schedule", "dry-run", "output", "log-level", "log-format",
	} {
		_ = viper.BindPFlag(name, f.Lookup(name))
	}
	for key, env := range envBindings {
		_ = viper.BindEnv(key, env)
	}

	rootCmd.AddCommand(newVersionCmd())
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	amClient := alertmanager.NewClient(alertmanager.Config{
		BaseURL: cfg.AlertmanagerURL,
		Timeout: cfg.Timeout,
	})
	slackClient := slack.NewClient(slack.Config{
		Token:   cfg.SlackBotToken,
		Timeout: cfg.Timeout,
	})

	rep := reporter.New(cfg, log, amClient, slackClient)
	ctx := context.Background()

	if cfg.Schedule == "" {
		return rep.Run(ctx)
	}
	return runScheduled(ctx, cfg, log, rep)
}

// runScheduled reruns the pipeline on a cron schedule until the process
// is signalled. Per-tick failures are logged, not fatal: the next tick
// gets a fresh attempt.
func runScheduled(ctx context.Context, cfg *config.Config, log *logger.Logger, rep *reporter.Reporter) error {
	c := cron.New()
	if _, err := c.AddFunc(cfg.Schedule, func() {
		if err := rep.Run(ctx); err != nil {
			log.ErrorWithErr(err, "Scheduled run failed")
		}
	}); err != nil {
		return err
	}

	log.Infof("Running on schedule %q", cfg.Schedule)
	c.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("Shutting down")
	<-c.Stop().Done()
	return nil
}
