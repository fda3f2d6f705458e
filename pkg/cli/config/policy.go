package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/cadencehq/cadence/pkg/domain/model/config"
	"github.com/cadencehq/cadence/pkg/domain/types"
	"github.com/cadencehq/cadence/pkg/utils/logging"
)

// Policy holds the CLI flag for the planning policy file
type Policy struct {
	path string
}

// Flags returns CLI flags for policy configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "Path to a TOML planning policy file (stock policy when empty)",
			Sources:     cli.EnvVars("CADENCE_POLICY"),
			Destination: &p.path,
		},
	}
}

// policyFile is the TOML shape of a planning policy. Every section is
// optional; omitted sections keep the stock values.
type policyFile struct {
	Tiers []struct {
		Tier       string `toml:"tier"`
		MaxActions int    `toml:"max_actions"`
	} `toml:"tier"`
	Bands []struct {
		UpToMinutes int    `toml:"up_to_minutes"`
		Tier        string `toml:"tier"`
	} `toml:"band"`
	Stalls []struct {
		Channel     string `toml:"channel"`
		DefaultDays int    `toml:"default_days"`
	} `toml:"stall"`
	Escalations []struct {
		From string `toml:"from"`
		To   string `toml:"to"`
	} `toml:"escalation"`

	InMotionWindowDays int    `toml:"in_motion_window_days"`
	FastWinMaxMinutes  int    `toml:"fast_win_max_minutes"`
	DefaultFreeMinutes int    `toml:"default_free_minutes"`
	WorkEndTime        string `toml:"work_end_time"`
}

// Configure loads the policy file, overlaying the stock policy. An empty
// path returns the stock policy unchanged.
func (p *Policy) Configure() (*domainConfig.PlanningPolicy, error) {
	policy := domainConfig.DefaultPlanningPolicy()
	if p.path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read policy file", goerr.V("path", p.path))
	}

	var file policyFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse policy file", goerr.V("path", p.path))
	}

	if len(file.Tiers) > 0 {
		capacities := make([]domainConfig.TierCapacity, 0, len(file.Tiers))
		for _, t := range file.Tiers {
			tier, err := types.ParseCapacityTier(t.Tier)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid tier in policy file", goerr.V("tier", t.Tier))
			}
			if t.MaxActions < 1 {
				return nil, goerr.New("tier max_actions must be at least 1",
					goerr.V("tier", t.Tier), goerr.V("max_actions", t.MaxActions))
			}
			capacities = append(capacities, domainConfig.TierCapacity{Tier: tier, MaxActions: t.MaxActions})
		}
		policy.TierCapacities = capacities
	}

	if len(file.Bands) > 0 {
		bands := make([]domainConfig.MinuteBand, 0, len(file.Bands))
		for _, b := range file.Bands {
			tier, err := types.ParseCapacityTier(b.Tier)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid tier in policy band", goerr.V("tier", b.Tier))
			}
			bands = append(bands, domainConfig.MinuteBand{UpToMinutes: b.UpToMinutes, Tier: tier})
		}
		policy.MinuteBands = bands
	}

	if len(file.Stalls) > 0 {
		stalls := make([]domainConfig.StallDefault, 0, len(file.Stalls))
		for _, s := range file.Stalls {
			channel, err := types.ParseChannel(s.Channel)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid channel in stall default", goerr.V("channel", s.Channel))
			}
			if s.DefaultDays < 1 {
				return nil, goerr.New("stall default_days must be at least 1",
					goerr.V("channel", s.Channel), goerr.V("default_days", s.DefaultDays))
			}
			stalls = append(stalls, domainConfig.StallDefault{Channel: channel, DefaultDays: s.DefaultDays})
		}
		policy.StallDefaults = stalls
	}

	if len(file.Escalations) > 0 {
		escalations := make([]domainConfig.EscalationPath, 0, len(file.Escalations))
		for _, e := range file.Escalations {
			from, err := types.ParseChannel(e.From)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid escalation source channel", goerr.V("channel", e.From))
			}
			to, err := types.ParseChannel(e.To)
			if err != nil {
				return nil, goerr.Wrap(err, "invalid escalation target channel", goerr.V("channel", e.To))
			}
			escalations = append(escalations, domainConfig.EscalationPath{From: from, To: to})
		}
		policy.Escalations = escalations
	}

	if file.InMotionWindowDays > 0 {
		policy.InMotionWindowDays = file.InMotionWindowDays
	}
	if file.FastWinMaxMinutes > 0 {
		policy.FastWinMaxMinutes = file.FastWinMaxMinutes
	}
	if file.DefaultFreeMinutes > 0 {
		policy.DefaultFreeMinutes = file.DefaultFreeMinutes
	}
	if file.WorkEndTime != "" {
		policy.WorkEndTime = file.WorkEndTime
	}

	logging.Default().Info("Loaded planning policy", "path", p.path)
	return policy, nil
}
