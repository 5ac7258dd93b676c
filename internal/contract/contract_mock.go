package contract

import (
	"context"
	"time"

	"github.com/huangsam/commitstreak/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// GetRepoHash implements the GitClient interface.
func (m *MockGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}

// GetConfigValue implements the GitClient interface.
func (m *MockGitClient) GetConfigValue(ctx context.Context, repoPath string, key string) (string, error) {
	ret := m.Called(ctx, repoPath, key)
	return ret.String(0), ret.Error(1)
}

// GetAuthorLog implements the GitClient interface.
func (m *MockGitClient) GetAuthorLog(ctx context.Context, repoPath string, author string, start, end time.Time) ([]byte, error) {
	ret := m.Called(ctx, repoPath, author, start, end)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// MockCommitLister is a mock implementation of CommitLister for testing.
type MockCommitLister struct {
	mock.Mock
}

var _ CommitLister = &MockCommitLister{} // Compile-time check

// ListCommits implements the CommitLister interface.
func (m *MockCommitLister) ListCommits(ctx context.Context, window schema.ChallengeWindow) ([]schema.CommitRecord, error) {
	ret := m.Called(ctx, window)
	records, _ := ret.Get(0).([]schema.CommitRecord)
	return records, ret.Error(1)
}

// Identity implements the CommitLister interface.
func (m *MockCommitLister) Identity() string {
	ret := m.Called()
	return ret.String(0)
}

// MockCommitCountProvider is a mock implementation of CommitCountProvider for testing.
type MockCommitCountProvider struct {
	mock.Mock
}

var _ CommitCountProvider = &MockCommitCountProvider{} // Compile-time check

// CommitCount implements the CommitCountProvider interface.
func (m *MockCommitCountProvider) CommitCount(ctx context.Context, window schema.ChallengeWindow) (int, error) {
	ret := m.Called(ctx, window)
	return ret.Int(0), ret.Error(1)
}
