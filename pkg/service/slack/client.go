package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/cadencehq/cadence/pkg/domain/model"
)

// client implements Service interface
type client struct {
	api       *slack.Client
	channelID string
}

// Option is a functional option for client configuration
type Option func(*client)

// New creates a new Slack service posting to the given channel
func New(token, channelID string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	c := &client{
		api:       slack.New(token),
		channelID: channelID,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) PostPlanDigest(ctx context.Context, plan *model.DailyPlan, actions map[string]*model.Action) error {
	blocks := DigestBlocks(plan, actions)
	text := fmt.Sprintf("Daily plan for %s: %d actions (%s)",
		plan.Date.Format("Jan 2"), len(plan.ActionIDs), plan.Tier)

	if err := c.post(ctx, blocks, text); err != nil {
		return goerr.Wrap(err, "failed to post plan digest",
			goerr.V("user_id", plan.UserID),
			goerr.V("date", plan.Date.Format("2006-01-02")))
	}
	return nil
}

func (c *client) PostStallNudges(ctx context.Context, userID string, nudges []*model.StallNudge, leads map[string]*model.Lead) error {
	if len(nudges) == 0 {
		return nil
	}

	blocks := NudgeBlocks(nudges, leads)
	text := fmt.Sprintf("%d stalled conversation(s) need a channel switch", len(nudges))

	if err := c.post(ctx, blocks, text); err != nil {
		return goerr.Wrap(err, "failed to post stall nudges", goerr.V("user_id", userID))
	}
	return nil
}

func (c *client) post(ctx context.Context, blocks []slack.Block, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(text, false),
	)
	return err
}
