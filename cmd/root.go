package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/internal/iocache"
	"github.com/huangsam/commitstreak/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// cacheManager is the global cache manager instance.
var cacheManager contract.CacheManager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "streak",
	Short:              "Track a commit streak challenge.",
	Long:               `Streak compares the commits you made during a challenge window against the linear pace needed to reach the goal.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigFile()

	// Set environment variable prefix
	viper.SetEnvPrefix("STREAK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("required-commits", contract.DefaultRequiredCommits)
	viper.SetDefault("source", schema.GitHubSource)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("cache-ttl", contract.DefaultCacheTTL.String())
	viper.SetDefault("color", "yes")
	viper.SetDefault("emoji", "yes")
	viper.SetDefault("addr", contract.DefaultServeAddr)
}

// setConfigFile points Viper at --config or the default .streak.yaml locations.
func setConfigFile() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".streak") // Name of config file (without extension)
	viper.SetConfigType("yaml")    // We'll use YAML format
	viper.AddConfigPath(".")       // Look in the current directory
	viper.AddConfigPath("$HOME")   // Look in the home directory
}

// readConfigFile merges the config file into Viper. A missing file is fine.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// resolveConfig builds a validated config from everything Viper knows about.
func resolveConfig(ctx context.Context, args []string) (*contract.Config, *contract.ConfigRawInput, error) {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := readConfigFile(); err != nil {
		return nil, nil, err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	raw := &contract.ConfigRawInput{}
	if err := viper.Unmarshal(raw); err != nil {
		return nil, nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	raw.RepoPathArgs = args

	// 4. Run all validation and complex parsing.
	resolved := &contract.Config{}
	if err := contract.ProcessAndValidate(ctx, resolved, contract.NewLocalGitClient(), raw); err != nil {
		return nil, nil, err
	}
	return resolved, raw, nil
}

// sharedSetup unmarshals config, runs validation and initializes caching.
func sharedSetup(ctx context.Context, _ *cobra.Command, args []string) error {
	resolved, raw, err := resolveConfig(ctx, args)
	if err != nil {
		return err
	}
	*cfg = *resolved
	*input = *raw

	// Initialize caching with validated config
	if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize caching: %w", err)
	}
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetCacheManager sets the global cache manager.
func SetCacheManager(mgr contract.CacheManager) {
	cacheManager = mgr
}
