package cmd

import (
	"github.com/huangsam/commitstreak/core"
	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd reports the progress of the challenge.
var statsCmd = &cobra.Command{
	Use:   "stats [repo-path...]",
	Short: "Show challenge progress against the expected pace.",
	Long: `Count the commits made during the challenge window and compare them with
the linear pace needed to reach the required count by the end date.

Reports:
- Challenge state (pending, in progress, finished) and day counts
- Actual and expected commits done, remaining and percentage
- How far ahead or behind pace you are
- The verdict once it is known

Examples:
  # 365 commits in the year ending today, counted on GitHub
  GITHUB_TOKEN=... streak stats

  # 100 commits since January in two local repositories
  streak stats --source git --required-commits 100 --start 2026-01-01 ~/src/app ~/src/lib

  # Try out the report without fetching anything
  streak stats --demo in_progress

  # Export the report for other tools
  streak stats --output json --output-file streak.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot evaluate challenge", err)
		}
	},
}
