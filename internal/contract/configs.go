package contract

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/commitstreak/schema"
)

// Default values for configuration.
const (
	DefaultRequiredCommits = 365
	DefaultPrecision       = 1
	DefaultServeAddr       = "127.0.0.1:5000"
	DefaultCacheTTL        = time.Hour
)

// CacheGranularity defines the time granularity for caching fetched commits.
// This ensures consistent cache key generation and time window alignment across
// the application and tests.
const CacheGranularity = time.Hour

// Config holds the runtime configuration for a challenge evaluation.
// This struct remains the "final, validated" config.
type Config struct {
	RequiredCommits int
	StartTime       time.Time
	EndTime         time.Time
	EndIsNow        bool // End follows the evaluation instant
	StartIsLookback bool // Start is one day per required commit before the end

	Source       schema.CommitSource
	FixedCommits int      // Count reported by the fixed source
	Author       string   // Author filter; empty means repository owner (github) or git user.email (git)
	RepoPaths    []string // Local repositories for the git source
	GitHubToken  string   // Please use env var as this is plaintext

	DemoState  schema.ChallengeState // Empty when demo mode is off
	DemoResult schema.ChallengeResult

	Debug     bool
	Verbose   bool
	Tolerance int // Commits behind pace tolerated by the check command

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	UseEmojis  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	ServeAddr string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathArgs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	RequiredCommits int    `mapstructure:"required-commits"`
	Start           string `mapstructure:"start"`
	End             string `mapstructure:"end"`
	Source          string `mapstructure:"source"`
	Commits         int    `mapstructure:"commits"`
	Author          string `mapstructure:"author"`
	Repos           string `mapstructure:"repos"`
	GitHubToken     string `mapstructure:"github-token"`
	Demo            string `mapstructure:"demo"`
	DemoResult      string `mapstructure:"demo-result"`
	Debug           bool   `mapstructure:"debug"`
	Verbose         bool   `mapstructure:"verbose"`
	Precision       int    `mapstructure:"precision"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Width           int    `mapstructure:"width"`
	Color           string `mapstructure:"color"`
	Emoji           string `mapstructure:"emoji"`
	CacheBackend    string `mapstructure:"cache-backend"`
	CacheDBConnect  string `mapstructure:"cache-db-connect"`
	CacheTTL        string `mapstructure:"cache-ttl"`

	// --- Fields from checkCmd.Flags() ---
	Tolerance int `mapstructure:"tolerance"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`
}

// ChallengeOverrides holds per-request challenge parameters from an HTTP query
// or an MCP tool call. Nil and empty values keep the base configuration.
type ChallengeOverrides struct {
	RequiredCommits *int
	Start           string
	End             string
	Demo            string
	DemoResult      string
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.RepoPaths != nil {
		clone.RepoPaths = slices.Clone(c.RepoPaths)
	}
	return &clone
}

// CloneWithTimeWindow creates a copy of the Config and sets the new StartTime and EndTime.
func (c *Config) CloneWithTimeWindow(start time.Time, end time.Time) *Config {
	clone := c.Clone()
	clone.StartTime = start
	clone.EndTime = end
	return clone
}

// ChallengeSettings returns the configured challenge shape.
func (c *Config) ChallengeSettings() schema.ChallengeSettings {
	return schema.ChallengeSettings{
		RequiredCommitCount: c.RequiredCommits,
		StartDate:           c.StartTime,
		EndDate:             c.EndTime,
	}
}

// ChallengeSettingsAt returns the challenge shape evaluated at now. Defaulted
// bounds are resolved against now, so a long-running service keeps a rolling
// window instead of the one fixed when the config was loaded.
func (c *Config) ChallengeSettingsAt(now time.Time) schema.ChallengeSettings {
	settings := c.ChallengeSettings()
	if c.EndIsNow {
		settings.EndDate = now
	}
	if c.StartIsLookback {
		settings.StartDate = settings.EndDate.AddDate(0, 0, -lookbackDays(c.RequiredCommits))
	}
	return settings
}

// lookbackDays is the default challenge length for a required count.
func lookbackDays(required int) int {
	if required <= 0 {
		return DefaultRequiredCommits
	}
	return required
}

// DemoEnabled reports whether a demo scenario replaces the live challenge.
func (c *Config) DemoEnabled() bool {
	return c.DemoState != ""
}

// CacheStartTime returns a time truncated to the caching granularity.
func CacheStartTime(t time.Time) time.Time {
	return t.Truncate(CacheGranularity)
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, time.Now()); err != nil {
		return err
	}
	if err := processDemoMode(cfg, input.Demo, input.DemoResult); err != nil {
		return err
	}
	if err := processSource(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ApplyChallengeOverrides updates a config snapshot with per-request overrides.
// It must only be called on a clone, never on the shared base config.
func ApplyChallengeOverrides(cfg *Config, o ChallengeOverrides, now time.Time) error {
	if o.RequiredCommits != nil {
		cfg.RequiredCommits = *o.RequiredCommits
	}
	if o.Start != "" {
		t, err := ParseDateTime(o.Start, now)
		if err != nil {
			return fmt.Errorf("invalid start %q: %w", o.Start, err)
		}
		cfg.StartTime = t
		cfg.StartIsLookback = false
	}
	if o.End != "" {
		t, err := ParseDateTime(o.End, now)
		if err != nil {
			return fmt.Errorf("invalid end %q: %w", o.End, err)
		}
		cfg.EndTime = t
		cfg.EndIsNow = false
	}
	if o.Demo != "" || o.DemoResult != "" {
		if err := processDemoMode(cfg, o.Demo, o.DemoResult); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the cache backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := time.ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl '%s': %w", input.CacheTTL, err)
		}
		if ttl < 0 {
			return fmt.Errorf("cache-ttl cannot be negative (received %s)", input.CacheTTL)
		}
		cfg.CacheTTL = ttl
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.RequiredCommits = input.RequiredCommits
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Debug = input.Debug
	cfg.Verbose = input.Verbose
	cfg.Author = strings.TrimSpace(input.Author)
	cfg.ServeAddr = input.Addr
	if cfg.ServeAddr == "" {
		cfg.ServeAddr = DefaultServeAddr
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// --- 1. Counts ---
	if input.Commits < 0 {
		return fmt.Errorf("commits cannot be negative (received %d)", input.Commits)
	}
	cfg.FixedCommits = input.Commits

	if input.Tolerance < 0 {
		return fmt.Errorf("tolerance cannot be negative (received %d)", input.Tolerance)
	}
	cfg.Tolerance = input.Tolerance

	// --- 2. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 0 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml", input.Output)
	}

	// --- 3. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processTimeRange resolves the challenge range. The end defaults to now and
// the start defaults to one day per required commit before the end.
// Ordering is validated by the challenge window, not here.
func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.EndTime = now
	cfg.EndIsNow = input.End == ""
	if input.End != "" {
		t, err := ParseDateTime(input.End, now)
		if err != nil {
			return fmt.Errorf("invalid end date format for '%s': %w", input.End, err)
		}
		cfg.EndTime = t
	}

	cfg.StartTime = cfg.EndTime.AddDate(0, 0, -lookbackDays(cfg.RequiredCommits))
	cfg.StartIsLookback = input.Start == ""
	if input.Start != "" {
		t, err := ParseDateTime(input.Start, now)
		if err != nil {
			return fmt.Errorf("invalid start date format for '%s': %w", input.Start, err)
		}
		cfg.StartTime = t
	}

	return nil
}

// processDemoMode validates the demo scenario selection.
func processDemoMode(cfg *Config, demo, demoResult string) error {
	cfg.DemoState = schema.ChallengeState(strings.ToLower(strings.TrimSpace(demo)))
	cfg.DemoResult = schema.ChallengeResult(strings.ToLower(strings.TrimSpace(demoResult)))

	if cfg.DemoState != "" {
		if _, ok := schema.ValidChallengeStates[cfg.DemoState]; !ok {
			return fmt.Errorf("invalid demo state '%s'. must be pending, in_progress, finished", demo)
		}
	}
	if cfg.DemoResult == "" {
		cfg.DemoResult = schema.UnknownResult
		return nil
	}
	if cfg.DemoState == "" {
		return fmt.Errorf("demo result '%s' requires a demo state", demoResult)
	}
	if _, ok := schema.ValidChallengeResults[cfg.DemoResult]; !ok {
		return fmt.Errorf("invalid demo result '%s'. must be unknown, succeeded, failed", demoResult)
	}
	return nil
}

// processSource validates the commit source and its credentials or repositories.
func processSource(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	cfg.Source = schema.CommitSource(strings.ToLower(input.Source))
	if _, ok := schema.ValidCommitSources[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be github, git, fixed", input.Source)
	}

	switch cfg.Source {
	case schema.GitHubSource:
		cfg.GitHubToken = strings.TrimSpace(input.GitHubToken)
		if cfg.GitHubToken == "" {
			creds, err := LoadCredentials()
			if err != nil {
				return err
			}
			cfg.GitHubToken = creds.Token()
		}
		if cfg.GitHubToken == "" && !cfg.DemoEnabled() {
			return fmt.Errorf("a GitHub token is required for the github source. Set GITHUB_ACCESS_TOKEN or use --source git")
		}
	case schema.GitSource:
		return resolveRepoPaths(ctx, cfg, client, input)
	}
	return nil
}

// resolveRepoPaths resolves every requested path to the root of its Git repository.
func resolveRepoPaths(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	paths := slices.Clone(input.RepoPathArgs)
	for p := range strings.SplitSeq(input.Repos, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg.RepoPaths = nil
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		root, err := client.GetRepoRoot(ctx, filepath.Clean(abs))
		if err != nil {
			return err
		}
		if !slices.Contains(cfg.RepoPaths, root) {
			cfg.RepoPaths = append(cfg.RepoPaths, root)
		}
	}
	return nil
}
