package cmd

import (
	"errors"
	"os"

	"github.com/huangsam/commitstreak/core"
	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD gating.
var checkCmd = &cobra.Command{
	Use:   "check [repo-path...]",
	Short: "Fail when the challenge is lost or too far behind pace",
	Long: `Evaluate the challenge and exit with a non-zero code when it has failed or
when the commit deficit against the expected pace exceeds --tolerance.

Designed for scheduled CI jobs that nag you before the streak is lost.

Examples:
  # Fail as soon as you fall behind
  streak check

  # Allow a buffer of five commits
  streak check --tolerance 5

  # Machine-readable verdict
  streak check --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := core.ExecuteCheck(rootCtx, cfg, cacheManager)
		if errors.Is(err, core.ErrCheckFailed) {
			os.Exit(1) // verdict already printed
		}
		if err != nil {
			contract.LogFatal("Challenge check failed", err)
		}
	},
}
