package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/f9n/alertmanager-silences-slack-reporter/internal/alertmanager"
	"github.com/f9n/alertmanager-silences-slack-reporter/internal/config"
	"github.com/f9n/alertmanager-silences-slack-reporter/internal/pkg/logger"
	"github.com/f9n/alertmanager-silences-slack-reporter/internal/report"
)

// SilenceLister fetches the current silence set
type SilenceLister interface {
	ListSilences(ctx context.Context) ([]alertmanager.Silence, error)
}

// MessagePoster publishes a text message to a channel
type MessagePoster interface {
	PostMessage(ctx context.Context, channel, text string) error
}

// Reporter runs the fetch -> format -> publish pipeline
type Reporter struct {
	cfg     *config.Config
	log     *logger.Logger
	fetcher SilenceLister
	poster  MessagePoster
	out     io.Writer
}

// New creates a Reporter wired to the given fetcher and poster
func New(cfg *config.Config, log *logger.Logger, fetcher SilenceLister, poster MessagePoster) *Reporter {
	return &Reporter{
		cfg:     cfg,
		log:     log,
		fetcher: fetcher,
		poster:  poster,
		out:     os.Stdout,
	}
}

// SetOutput redirects dry-run output, used in tests
func (r *Reporter) SetOutput(w io.Writer) {
	r.out = w
}

// Run executes one pipeline pass. Every error is terminal for the run:
// there is no retry and no partial success.
func (r *Reporter) Run(ctx context.Context) error {
	log := r.log.With("run_id", uuid.New().String())

	log.Infof("Fetching silences from %s", r.cfg.AlertmanagerURL)
	silences, err := r.fetcher.ListSilences(ctx)
	if err != nil {
		log.ErrorWithErr(err, "Fetching silences failed")
		return err
	}
	log.Infof("Found %d silence(s)", len(silences))

	text := report.Format(silences)

	if r.cfg.DryRun {
		log.Info("Dry run, skipping publish")
		return r.dump(silences, text)
	}

	if err := r.poster.PostMessage(ctx, r.cfg.SlackChannelID, text); err != nil {
		log.ErrorWithErr(err, "Publishing report failed")
		return err
	}

	log.Infof("Report sent to channel %s", r.cfg.SlackChannelID)
	return nil
}

// dump writes the report (or the raw silence set for structured
// formats) to the output writer instead of Slack
func (r *Reporter) dump(silences []alertmanager.Silence, text string) error {
	switch r.cfg.Output {
	case "json":
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(silences)
	case "yaml":
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(silences)
	default:
		_, err := fmt.Fprintln(r.out, text)
		return err
	}
}
