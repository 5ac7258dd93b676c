package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/commitstreak/internal/contract"
	"github.com/huangsam/commitstreak/internal/iocache"
	"github.com/huangsam/commitstreak/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheConfig loads the cache settings without the full shared setup.
func cacheConfig() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := cacheConfig(); err != nil {
		return err
	}
	if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by challenge commands. This avoids token and
// repository validation for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the commit cache (avoids refetching commits)",
	Long: `Manage the cache of fetched commits that speeds up repeated evaluations.

Streak caches the commits listed for a challenge window so the GitHub API and
local repositories are not queried on every run.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  export  - Export cached commits to Parquet
  migrate - Run database schema migrations

Examples:
  # Check cache status
  streak cache status

  # Clear cache after rewriting history
  streak cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached commits",
	Long: `Delete all cached commits from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  streak cache clear

  # Clear MySQL cache (set connection string via env variable)
  STREAK_CACHE_BACKEND=mysql STREAK_CACHE_DB_CONNECT="..." streak cache clear`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return cacheConfig()
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := contract.GetCacheDBFilePath()
		if cfg.CacheBackend == schema.SQLiteBackend && cfg.CacheDBConnect != "" {
			dbFilePath = cfg.CacheDBConnect
		}
		if err := iocache.ClearCache(cfg.CacheBackend, dbFilePath, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the commit cache.

Displays:
- Backend type and connection status
- Total number of cached entries
- Last and oldest cache entry timestamps
- Cache database size`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetCommitStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}

// cacheExportCmd exports cached commits to Parquet files.
var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export cached commits to Parquet for analytics",
	Long: `Export the commit cache to Parquet for use with analytics tools.

Exports two datasets next to --output-file:
- <file>.cache_entries.parquet - one row per cached challenge window
- <file>.commits.parquet       - one row per cached commit

Requires: --output-file parameter

Examples:
  streak cache export --output-file streak
  duckdb -c "SELECT repository, count(*) FROM read_parquet('streak.commits.parquet') GROUP BY 1"`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Failed to export cache", errors.New("--output-file is required"))
		}
		if err := iocache.ExecuteCacheExport(os.Stdout, iocache.Manager.GetCommitStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export cache", err)
		}
	},
}

// cacheMigrateCmd runs database migrations for the commit cache.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the commit cache.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version
  streak cache migrate

  # Roll back every migration
  streak cache migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if err := cacheConfig(); err != nil {
			return err
		}
		// For SQLite backend with empty connection string, use default path
		if cfg.CacheBackend == schema.SQLiteBackend && cfg.CacheDBConnect == "" {
			cfg.CacheDBConnect = contract.GetCacheDBFilePath()
		}
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateCache(os.Stdout, cfg.CacheBackend, cfg.CacheDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate cache", err)
		}
	},
}
