package contract

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/commitstreak/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// baseInput returns raw input that passes validation with the fixed source.
func baseInput() *ConfigRawInput {
	return &ConfigRawInput{
		RequiredCommits: 10,
		Source:          string(schema.FixedSource),
		Commits:         4,
		Precision:       1,
		Output:          "text",
		Color:           "yes",
		Emoji:           "no",
		CacheBackend:    string(schema.SQLiteBackend),
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		setupMock   func(*MockGitClient, string) // Pass the expected working directory
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
		},
		{
			name:        "invalid source",
			mutate:      func(in *ConfigRawInput) { in.Source = "svn" },
			expectError: true,
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "precision out of range",
			mutate:      func(in *ConfigRawInput) { in.Precision = 5 },
			expectError: true,
		},
		{
			name:        "negative commits",
			mutate:      func(in *ConfigRawInput) { in.Commits = -1 },
			expectError: true,
		},
		{
			name:        "negative tolerance",
			mutate:      func(in *ConfigRawInput) { in.Tolerance = -3 },
			expectError: true,
		},
		{
			name:        "invalid color flag",
			mutate:      func(in *ConfigRawInput) { in.Color = "sometimes" },
			expectError: true,
		},
		{
			name:        "invalid start",
			mutate:      func(in *ConfigRawInput) { in.Start = "last tuesday" },
			expectError: true,
		},
		{
			name:        "invalid demo state",
			mutate:      func(in *ConfigRawInput) { in.Demo = "paused" },
			expectError: true,
		},
		{
			name:        "demo result without demo state",
			mutate:      func(in *ConfigRawInput) { in.DemoResult = "failed" },
			expectError: true,
		},
		{
			name:        "invalid cache ttl",
			mutate:      func(in *ConfigRawInput) { in.CacheTTL = "soon" },
			expectError: true,
		},
		{
			name: "mysql without connection string",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = string(schema.MySQLBackend)
			},
			expectError: true,
		},
		{
			name: "github without token",
			mutate: func(in *ConfigRawInput) {
				in.Source = string(schema.GitHubSource)
			},
			expectError: true,
		},
		{
			name: "github without token in demo mode",
			mutate: func(in *ConfigRawInput) {
				in.Source = string(schema.GitHubSource)
				in.Demo = string(schema.InProgressState)
			},
		},
		{
			name: "git source resolves repo root",
			mutate: func(in *ConfigRawInput) {
				in.Source = string(schema.GitSource)
			},
			setupMock: func(m *MockGitClient, workDir string) {
				m.On("GetRepoRoot", mock.Anything, workDir).Return("/mock/repo/root", nil)
			},
		},
		{
			name: "git source outside a repository",
			mutate: func(in *ConfigRawInput) {
				in.Source = string(schema.GitSource)
			},
			setupMock: func(m *MockGitClient, workDir string) {
				m.On("GetRepoRoot", mock.Anything, workDir).Return("", errors.New("not a git repository"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_ACCESS_TOKEN", "")
			t.Setenv("GITHUB_TOKEN", "")

			workDir, err := filepath.Abs(".")
			require.NoError(t, err)

			mockClient := &MockGitClient{}
			if tt.setupMock != nil {
				tt.setupMock(mockClient, workDir)
			}

			input := baseInput()
			tt.mutate(input)

			cfg := &Config{}
			err = ProcessAndValidate(context.Background(), cfg, mockClient, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockClient.AssertExpectations(t)
		})
	}
}

func TestProcessAndValidateFields(t *testing.T) {
	t.Setenv("GITHUB_ACCESS_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	input := baseInput()
	input.Output = "JSON"
	input.Tolerance = 2
	input.CacheTTL = "30m"
	input.Demo = "Finished"
	input.DemoResult = "succeeded"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, &MockGitClient{}, input))

	assert.Equal(t, 10, cfg.RequiredCommits)
	assert.Equal(t, schema.FixedSource, cfg.Source)
	assert.Equal(t, 4, cfg.FixedCommits)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, 2, cfg.Tolerance)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)
	assert.Equal(t, schema.FinishedState, cfg.DemoState)
	assert.Equal(t, schema.SucceededResult, cfg.DemoResult)
	assert.True(t, cfg.DemoEnabled())
	assert.Equal(t, DefaultServeAddr, cfg.ServeAddr)
}

func TestProcessAndValidateGitHubTokenFromEnv(t *testing.T) {
	t.Setenv("GITHUB_ACCESS_TOKEN", "env-token")

	input := baseInput()
	input.Source = string(schema.GitHubSource)

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, &MockGitClient{}, input))
	assert.Equal(t, "env-token", cfg.GitHubToken)
}

func TestResolveRepoPaths(t *testing.T) {
	ctx := context.Background()
	dirA, err := filepath.Abs("repoA")
	require.NoError(t, err)
	dirB, err := filepath.Abs("repoB")
	require.NoError(t, err)

	mockClient := &MockGitClient{}
	mockClient.On("GetRepoRoot", mock.Anything, dirA).Return("/repos/a", nil)
	mockClient.On("GetRepoRoot", mock.Anything, dirB).Return("/repos/a", nil)

	cfg := &Config{}
	input := &ConfigRawInput{RepoPathArgs: []string{"repoA"}, Repos: " repoB , "}
	require.NoError(t, resolveRepoPaths(ctx, cfg, mockClient, input))

	// Both paths live in the same repository, so it is listed once
	assert.Equal(t, []string{"/repos/a"}, cfg.RepoPaths)
	mockClient.AssertExpectations(t)
}

func TestProcessTimeRange(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)

	t.Run("defaults end to now and start to one day per commit", func(t *testing.T) {
		cfg := &Config{RequiredCommits: 30}
		require.NoError(t, processTimeRange(cfg, &ConfigRawInput{}, now))
		assert.Equal(t, now, cfg.EndTime)
		assert.Equal(t, now.AddDate(0, 0, -30), cfg.StartTime)
		assert.True(t, cfg.EndIsNow)
		assert.True(t, cfg.StartIsLookback)
	})

	t.Run("non-positive count uses default lookback", func(t *testing.T) {
		cfg := &Config{RequiredCommits: 0}
		require.NoError(t, processTimeRange(cfg, &ConfigRawInput{}, now))
		assert.Equal(t, now.AddDate(0, 0, -DefaultRequiredCommits), cfg.StartTime)
	})

	t.Run("explicit dates", func(t *testing.T) {
		cfg := &Config{RequiredCommits: 30}
		input := &ConfigRawInput{Start: "2025-01-01T00:00:00Z", End: "2025-12-31T00:00:00Z"}
		require.NoError(t, processTimeRange(cfg, input, now))
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), cfg.StartTime)
		assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), cfg.EndTime)
		assert.False(t, cfg.EndIsNow)
		assert.False(t, cfg.StartIsLookback)
	})

	t.Run("reversed range is left to the window", func(t *testing.T) {
		cfg := &Config{RequiredCommits: 30}
		input := &ConfigRawInput{Start: "2025-12-31T00:00:00Z", End: "2025-01-01T00:00:00Z"}
		assert.NoError(t, processTimeRange(cfg, input, now))
	})

	t.Run("relative start", func(t *testing.T) {
		cfg := &Config{RequiredCommits: 30}
		input := &ConfigRawInput{Start: "2 weeks ago"}
		require.NoError(t, processTimeRange(cfg, input, now))
		assert.Equal(t, now.AddDate(0, 0, -14), cfg.StartTime)
	})
}

func TestConfigClone(t *testing.T) {
	base := &Config{RequiredCommits: 5, RepoPaths: []string{"/a"}}
	clone := base.Clone()
	clone.RequiredCommits = 7
	clone.RepoPaths[0] = "/b"

	assert.Equal(t, 5, base.RequiredCommits)
	assert.Equal(t, "/a", base.RepoPaths[0])

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 10)
	windowed := base.CloneWithTimeWindow(start, end)
	assert.Equal(t, start, windowed.StartTime)
	assert.Equal(t, end, windowed.EndTime)
	assert.True(t, base.StartTime.IsZero())
}

func TestChallengeSettings(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	cfg := &Config{RequiredCommits: 365, StartTime: start, EndTime: end}

	assert.Equal(t, schema.ChallengeSettings{
		RequiredCommitCount: 365,
		StartDate:           start,
		EndDate:             end,
	}, cfg.ChallengeSettings())
}

func TestChallengeSettingsAt(t *testing.T) {
	loaded := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	later := loaded.Add(36 * time.Hour)

	t.Run("defaulted bounds follow now", func(t *testing.T) {
		cfg := &Config{RequiredCommits: 30}
		require.NoError(t, processTimeRange(cfg, &ConfigRawInput{}, loaded))

		settings := cfg.ChallengeSettingsAt(later)
		assert.Equal(t, later, settings.EndDate)
		assert.Equal(t, later.AddDate(0, 0, -30), settings.StartDate)
	})

	t.Run("explicit start keeps its date with a rolling end", func(t *testing.T) {
		cfg := &Config{RequiredCommits: 30}
		require.NoError(t, processTimeRange(cfg, &ConfigRawInput{Start: "2025-10-01T00:00:00Z"}, loaded))

		settings := cfg.ChallengeSettingsAt(later)
		assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), settings.StartDate)
		assert.Equal(t, later, settings.EndDate)
	})

	t.Run("explicit bounds are fixed", func(t *testing.T) {
		cfg := &Config{RequiredCommits: 30}
		input := &ConfigRawInput{Start: "2025-01-01T00:00:00Z", End: "2025-12-31T00:00:00Z"}
		require.NoError(t, processTimeRange(cfg, input, loaded))
		assert.Equal(t, cfg.ChallengeSettings(), cfg.ChallengeSettingsAt(later))
	})

	t.Run("zero required falls back to the default lookback", func(t *testing.T) {
		cfg := &Config{RequiredCommits: 0, EndIsNow: true, StartIsLookback: true}
		settings := cfg.ChallengeSettingsAt(later)
		assert.Equal(t, later.AddDate(0, 0, -DefaultRequiredCommits), settings.StartDate)
		assert.Equal(t, 0, settings.RequiredCommitCount)
	})
}

func TestApplyChallengeOverrides(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	base := &Config{
		RequiredCommits: 365,
		StartTime:       now.AddDate(-1, 0, 0),
		EndTime:         now,
		DemoResult:      schema.UnknownResult,
	}

	t.Run("empty overrides keep the base", func(t *testing.T) {
		cfg := base.Clone()
		require.NoError(t, ApplyChallengeOverrides(cfg, ChallengeOverrides{}, now))
		assert.Equal(t, *base, *cfg)
	})

	t.Run("overrides replace fields on the clone only", func(t *testing.T) {
		cfg := base.Clone()
		required := 5
		o := ChallengeOverrides{
			RequiredCommits: &required,
			Start:           "2025-10-01",
			End:             "2025-10-31",
			Demo:            "in_progress",
			DemoResult:      "failed",
		}
		require.NoError(t, ApplyChallengeOverrides(cfg, o, now))
		assert.Equal(t, 5, cfg.RequiredCommits)
		assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), cfg.StartTime)
		assert.Equal(t, time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC), cfg.EndTime)
		assert.Equal(t, schema.InProgressState, cfg.DemoState)
		assert.Equal(t, schema.FailedResult, cfg.DemoResult)
		assert.Equal(t, 365, base.RequiredCommits)
		assert.False(t, base.DemoEnabled())
	})

	t.Run("explicit zero required is kept for validation", func(t *testing.T) {
		cfg := base.Clone()
		zero := 0
		require.NoError(t, ApplyChallengeOverrides(cfg, ChallengeOverrides{RequiredCommits: &zero}, now))
		assert.Equal(t, 0, cfg.RequiredCommits)
	})

	t.Run("explicit dates stop following now", func(t *testing.T) {
		cfg := base.Clone()
		cfg.EndIsNow, cfg.StartIsLookback = true, true
		o := ChallengeOverrides{Start: "2025-10-01", End: "2025-10-31"}
		require.NoError(t, ApplyChallengeOverrides(cfg, o, now))
		assert.False(t, cfg.EndIsNow)
		assert.False(t, cfg.StartIsLookback)
	})

	t.Run("bad dates", func(t *testing.T) {
		assert.Error(t, ApplyChallengeOverrides(base.Clone(), ChallengeOverrides{Start: "tomorrowish"}, now))
		assert.Error(t, ApplyChallengeOverrides(base.Clone(), ChallengeOverrides{End: "2025-13-45"}, now))
	})

	t.Run("bad demo", func(t *testing.T) {
		assert.Error(t, ApplyChallengeOverrides(base.Clone(), ChallengeOverrides{Demo: "paused"}, now))
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite ignores connection", schema.SQLiteBackend, "", false},
		{"none ignores connection", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/streak", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/streak", true},
		{"mysql missing db", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 user=u dbname=streak", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=streak", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
