package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/cadencehq/cadence/pkg/cli/config"
	"github.com/cadencehq/cadence/pkg/domain/types"
)

func writePolicyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()
	return path
}

func TestPolicyDefaults(t *testing.T) {
	var cfg config.Policy

	policy, err := cfg.Configure()
	gt.NoError(t, err).Required()
	gt.Value(t, policy.MaxActionsFor(types.TierStandard)).Equal(5)
	gt.Value(t, policy.TierForMinutes(45)).Equal(types.TierLight)
	gt.Value(t, policy.StallThresholdFor(types.ChannelText)).Equal(3)
	gt.Value(t, policy.EscalationFor(types.ChannelLinkedIn)).Equal(types.ChannelEmail)
}

func TestPolicyOverlay(t *testing.T) {
	path := writePolicyFile(t, `
in_motion_window_days = 7
fast_win_max_minutes = 10

[[tier]]
tier = "micro"
max_actions = 2

[[tier]]
tier = "light"
max_actions = 4

[[stall]]
channel = "linkedin"
default_days = 5

[[escalation]]
from = "linkedin"
to = "text"
`)

	policy, err := config.NewPolicyForTest(path).Configure()
	gt.NoError(t, err).Required()

	gt.Value(t, policy.InMotionWindowDays).Equal(7)
	gt.Value(t, policy.FastWinMaxMinutes).Equal(10)
	gt.Value(t, policy.MaxActionsFor(types.TierMicro)).Equal(2)
	gt.Value(t, policy.MaxActionsFor(types.TierLight)).Equal(4)

	// Unlisted tiers fall back to the safe minimum
	gt.Value(t, policy.MaxActionsFor(types.TierHeavy)).Equal(1)

	// Replaced tables are replaced whole
	gt.Value(t, policy.StallThresholdFor(types.ChannelLinkedIn)).Equal(5)
	gt.Value(t, policy.StallThresholdFor(types.ChannelText)).Equal(0)
	gt.Value(t, policy.EscalationFor(types.ChannelLinkedIn)).Equal(types.ChannelText)

	// Untouched scalars keep stock values
	gt.Value(t, policy.DefaultFreeMinutes).Equal(120)
	gt.Value(t, policy.WorkEndTime).Equal("17:00")
}

func TestPolicyInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name: "unknown tier",
			content: `
[[tier]]
tier = "gigantic"
max_actions = 3
`,
		},
		{
			name: "zero max actions",
			content: `
[[tier]]
tier = "micro"
max_actions = 0
`,
		},
		{
			name: "unknown channel",
			content: `
[[stall]]
channel = "fax"
default_days = 3
`,
		},
		{
			name:    "malformed toml",
			content: `in_motion_window_days = `,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writePolicyFile(t, tc.content)

			_, err := config.NewPolicyForTest(path).Configure()
			gt.Value(t, err).NotNil()
		})
	}
}

func TestPolicyMissingFile(t *testing.T) {
	_, err := config.NewPolicyForTest("/no/such/policy.toml").Configure()
	gt.Value(t, err).NotNil()
}
