package config

import (
	"github.com/urfave/cli/v3"

	"github.com/cadencehq/cadence/pkg/service/slack"
)

// Slack holds CLI flags for Slack notification configuration
type Slack struct {
	botToken  string
	channelID string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for digest and nudge notifications",
			Sources:     cli.EnvVars("CADENCE_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID to post notifications to",
			Sources:     cli.EnvVars("CADENCE_SLACK_CHANNEL_ID"),
			Destination: &s.channelID,
		},
	}
}

// IsConfigured reports whether both the token and channel are set
func (s *Slack) IsConfigured() bool {
	return s.botToken != "" && s.channelID != ""
}

// Configure builds the Slack service, or nil when not configured
func (s *Slack) Configure() (slack.Service, error) {
	if !s.IsConfigured() {
		return nil, nil
	}
	return slack.New(s.botToken, s.channelID)
}
