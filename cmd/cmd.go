// Package cmd defines the command-line interface for streak.
package cmd

import (
	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheExportCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("required-commits", "n", contract.DefaultRequiredCommits, "Commits required to complete the challenge")
	rootCmd.PersistentFlags().String("start", "", "Challenge start in ISO8601, YYYY-MM-DD or time ago (default: one day per required commit before end)")
	rootCmd.PersistentFlags().String("end", "", "Challenge end in ISO8601, YYYY-MM-DD or time ago (default: now)")
	rootCmd.PersistentFlags().String("source", string(schema.GitHubSource), "Commit source: github or git or fixed")
	rootCmd.PersistentFlags().Int("commits", 0, "Commit count reported by the fixed source")
	rootCmd.PersistentFlags().String("author", "", "Only count commits by this author (default: repository owner or git user.email)")
	rootCmd.PersistentFlags().String("repos", "", "Comma-separated local repositories for the git source")
	rootCmd.PersistentFlags().String("github-token", "", "GitHub token (prefer GITHUB_TOKEN or GITHUB_ACCESS_TOKEN)")
	rootCmd.PersistentFlags().String("demo", "", "Replace the challenge with a demo scenario: pending or in_progress or finished")
	rootCmd.PersistentFlags().String("demo-result", "", "Result of the demo scenario: unknown or succeeded or failed")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug behaviour (demo query parameters on serve)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print progress while fetching commits")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for percentages")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emoji in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-ttl", contract.DefaultCacheTTL.String(), "How long fetched commits stay fresh in the cache")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Int("tolerance", 0, "Commits behind pace tolerated before the check fails")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultServeAddr, "Address the HTTP service listens on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
