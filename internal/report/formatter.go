package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/f9n/alertmanager-silences-slack-reporter/internal/alertmanager"
)

// EmptyMessage is the fixed report body when no silences exist
const EmptyMessage = "No silences found in Alertmanager."

// commentPlaceholder is rendered when a silence carries no comment
const commentPlaceholder = "(no comment)"

// maxCommentLen caps how much of a silence comment is rendered
const maxCommentLen = 100

// Format renders the silence set into a single Slack mrkdwn text block.
// It is a pure function of its input: records are rendered in the order
// received and nothing is recomputed from the current time.
func Format(silences []alertmanager.Silence) string {
	if len(silences) == 0 {
		return EmptyMessage
	}

	var active, pending, expired int
	for _, s := range silences {
		switch s.Status.State {
		case "active":
			active++
		case "pending":
			pending++
		case "expired":
			expired++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Alertmanager Silences Report*: %d silence(s)\n", len(silences))
	fmt.Fprintf(&b, "*Total:* %d | *Active:* %d | *Pending:* %d | *Expired:* %d\n",
		len(silences), active, pending, expired)

	for _, s := range silences {
		b.WriteString("\n")
		writeSilence(&b, s)
	}

	return b.String()
}

func writeSilence(b *strings.Builder, s alertmanager.Silence) {
	fmt.Fprintf(b, "*ID:* %s\n", s.ID)
	fmt.Fprintf(b, "*Status:* %s, *CreatedBy:* %s\n", s.Status.State, s.CreatedBy)
	fmt.Fprintf(b, "*Date:* %s -> %s\n", formatTimestamp(s.StartsAt), formatTimestamp(s.EndsAt))
	fmt.Fprintf(b, "*Comment:* %s\n", formatComment(s.Comment))
	b.WriteString("*Matchers:*\n")
	for _, m := range s.Matchers {
		fmt.Fprintf(b, "  • `%s%s%s`\n", m.Name, matcherOperator(m), m.Value)
	}
}

// matcherOperator renders the PromQL-style matcher operator so regex
// matchers are visually distinct from exact ones
func matcherOperator(m alertmanager.Matcher) string {
	switch {
	case m.IsEqual && m.IsRegex:
		return "=~"
	case m.IsEqual:
		return "="
	case m.IsRegex:
		return "!~"
	default:
		return "!="
	}
}

func formatComment(comment string) string {
	if comment == "" {
		return commentPlaceholder
	}
	runes := []rune(comment)
	if len(runes) > maxCommentLen {
		return string(runes[:maxCommentLen]) + "..."
	}
	return comment
}

// formatTimestamp turns an RFC 3339 timestamp into a human-readable UTC
// form. Values that do not parse are passed through untouched.
func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
