package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/cadencehq/cadence/pkg/cli/config"
	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/types"
	"github.com/cadencehq/cadence/pkg/engine"
	"github.com/cadencehq/cadence/pkg/usecase"
	"github.com/cadencehq/cadence/pkg/utils/logging"
)

func cmdPlan() *cli.Command {
	var userID string
	var dateStr string
	var freeMinutes int
	var overrideTier string
	var overrideReason string
	var repoCfg config.Repository
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Usage:       "User ID to plan for (required)",
			Required:    true,
			Sources:     cli.EnvVars("CADENCE_USER_ID"),
			Destination: &userID,
		},
		&cli.StringFlag{
			Name:        "date",
			Usage:       "Plan date as YYYY-MM-DD (today when empty)",
			Destination: &dateStr,
		},
		&cli.IntFlag{
			Name:        "free-minutes",
			Usage:       "Free minutes available today (stored default when negative)",
			Value:       -1,
			Destination: &freeMinutes,
		},
		&cli.StringFlag{
			Name:        "override-tier",
			Usage:       "Force a capacity tier (micro, light, standard, heavy)",
			Destination: &overrideTier,
		},
		&cli.StringFlag{
			Name:        "override-reason",
			Usage:       "Reason for the tier override",
			Destination: &overrideReason,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "plan",
		Aliases: []string{"p"},
		Usage:   "Generate and print a daily plan",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			date := time.Now()
			if dateStr != "" {
				parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
				if err != nil {
					return goerr.Wrap(err, "invalid date", goerr.V("date", dateStr))
				}
				date = parsed
			}

			var override *model.CapacityOverride
			if overrideTier != "" {
				tier, err := types.ParseCapacityTier(overrideTier)
				if err != nil {
					return goerr.Wrap(err, "invalid override tier", goerr.V("tier", overrideTier))
				}
				override = &model.CapacityOverride{Tier: tier, Reason: overrideReason}
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load planning policy")
			}

			uc := usecase.New(repo, usecase.WithPolicy(policy))

			plan, err := uc.Plan.GeneratePlan(ctx, userID, date, freeMinutes, override)
			if err != nil {
				return goerr.Wrap(err, "failed to generate plan")
			}

			printPlan(ctx, uc, plan)
			return nil
		},
	}
}

func printPlan(ctx context.Context, uc *usecase.UseCases, plan *model.DailyPlan) {
	header := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.FgHiBlack)
	fastWin := color.New(color.FgYellow)

	header.Printf("Plan for %s on %s\n", plan.UserID, plan.Date.Format("Mon, Jan 2 2006"))
	switch plan.TierSource {
	case types.TierSourceOverride:
		dim.Printf("  %s tier (override: %s)\n", plan.Tier, plan.OverrideReason)
	case types.TierSourceRecovery:
		dim.Printf("  %s tier (recovery day)\n", plan.Tier)
	default:
		dim.Printf("  %s tier, up to %d actions\n", plan.Tier, plan.MaxActions)
	}

	if len(plan.ActionIDs) == 0 {
		fmt.Println("  Nothing to do. Enjoy the slack.")
		return
	}

	for i, id := range plan.ActionIDs {
		action, err := uc.Action.Get(ctx, plan.UserID, id)
		if err != nil {
			dim.Printf("  %d. (missing action %s)\n", i+1, id)
			continue
		}

		line := fmt.Sprintf("  %d. %s", i+1, action.Title)
		if action.EstimatedMinutes > 0 {
			line += fmt.Sprintf(" (%dm)", action.EstimatedMinutes)
		}
		if action.PromisedDueAt != nil {
			line += fmt.Sprintf("  promised %s", engine.FormatPromise(*action.PromisedDueAt, plan.GeneratedAt))
		}
		if id == plan.FastWinID {
			fastWin.Printf("%s  [fast win]\n", line)
		} else {
			fmt.Println(line)
		}
	}
}
