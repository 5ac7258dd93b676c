package contract

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// skipIfGitNotAvailable skips the test if git binary is not found in PATH
func skipIfGitNotAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git binary not found in PATH: %v", err)
	}
}

// TestMockGitClient_Run ensures the mock correctly records and returns
// expected values when its Run method is called.
func TestMockGitClient_Run(t *testing.T) {
	// 1. Setup the Mock
	mockClient := new(MockGitClient)

	// Define the expected input arguments for the mock's 'Run' method.
	const expectedRepoPath = "/path/to/repo"
	expectedArgs := []string{"log", "-1", "--oneline"}

	// Define the expected output values.
	expectedOutput := []byte("a1b2c3d commit message")
	expectedError := errors.New("mocked git error")

	// The `Run` method implementation in MockGitClient converts the inputs
	// (repoPath string, args ...string) into a single []interface{} array
	// for `m.Called()`. We must match this structure in `.On()`.

	// Prepare the exact arguments that will be passed to m.Called() inside MockGitClient.Run()
	var calledArgs []any
	ctx := context.Background()
	calledArgs = append(calledArgs, ctx, expectedRepoPath)
	for _, arg := range expectedArgs {
		calledArgs = append(calledArgs, arg)
	}

	// 2. Program the Mock Behavior
	mockClient.
		On("Run", calledArgs...).              // Expect a call with these arguments.
		Return(expectedOutput, expectedError). // Program the values to return.
		Once()                                 // Expect the call to happen exactly once.

	// 3. Execute the Code Under Test (i.e., call the mock method)
	actualOutput, actualError := mockClient.Run(ctx, expectedRepoPath, expectedArgs...)

	// 4. Assertions

	// Verify that the returned values match the programmed values.
	assert.Equal(t, expectedOutput, actualOutput, "Run should return the programmed output")
	assert.Equal(t, expectedError, actualError, "Run should return the programmed error")

	// Verify that the expected method call actually occurred.
	// This confirms that the logic within MockGitClient.Run correctly called m.Called()
	// with the expected arguments, matching the .On() setup.
	mockClient.AssertExpectations(t)
}

// TestNewLocalGitClient tests the constructor for LocalGitClient.
func TestNewLocalGitClient(t *testing.T) {
	client := NewLocalGitClient()
	assert.NotNil(t, client, "NewLocalGitClient should return a non-nil client")
	assert.IsType(t, &LocalGitClient{}, client, "NewLocalGitClient should return a LocalGitClient instance")
}

// TestLocalGitClient_Run tests the Run method with various scenarios.
func TestLocalGitClient_Run(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()

	// Get the repository root
	repoRoot, err := client.GetRepoRoot(ctx, ".")
	if err != nil {
		t.Skipf("not inside a git repository: %v", err)
	}

	tests := []struct {
		name        string
		repoPath    string
		args        []string
		expectError bool
		setupMock   func(*mock.Mock)
	}{
		{
			name:        "invalid repo path",
			repoPath:    "/nonexistent/path",
			args:        []string{"status"},
			expectError: true,
		},
		{
			name:        "invalid git command",
			repoPath:    repoRoot, // Use repository root
			args:        []string{"invalid-command"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Run(ctx, tt.repoPath, tt.args...)
			if tt.expectError {
				assert.Error(t, err, "Run should return an error for %s", tt.name)
			} else {
				assert.NoError(t, err, "Run should not return an error for %s", tt.name)
			}
		})
	}
}

// TestLocalGitClient_GetRepoRoot tests the GetRepoRoot method.
func TestLocalGitClient_GetRepoRoot(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()

	root, err := client.GetRepoRoot(ctx, ".")
	if err != nil {
		t.Skipf("not inside a git repository: %v", err)
	}
	assert.NotEmpty(t, root, "GetRepoRoot should return a non-empty root path")

	// Test with absolute path to current directory
	root2, err := client.GetRepoRoot(ctx, root)
	assert.NoError(t, err, "GetRepoRoot should not return an error for absolute path")
	assert.Equal(t, root, root2, "GetRepoRoot should return the same root for absolute path")

	// Test with invalid path
	_, err = client.GetRepoRoot(ctx, "/nonexistent/path")
	assert.Error(t, err, "GetRepoRoot should return an error for non-git directory")
}

// TestLocalGitClient_GetRepoHash tests the GetRepoHash method.
func TestLocalGitClient_GetRepoHash(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()

	root, err := client.GetRepoRoot(ctx, ".")
	if err != nil {
		t.Skipf("not inside a git repository: %v", err)
	}

	hash, err := client.GetRepoHash(ctx, root)
	if err != nil {
		t.Skipf("repository has no commits: %v", err)
	}
	assert.Len(t, hash, 40, "GetRepoHash should return a full SHA-1 hash")

	_, err = client.GetRepoHash(ctx, "/nonexistent/path")
	assert.Error(t, err, "GetRepoHash should return an error for non-git directory")
}

// TestLocalGitClient_GetAuthorLog tests the GetAuthorLog method.
func TestLocalGitClient_GetAuthorLog(t *testing.T) {
	skipIfGitNotAvailable(t)

	client := NewLocalGitClient()
	ctx := context.Background()

	root, err := client.GetRepoRoot(ctx, ".")
	if err != nil {
		t.Skipf("not inside a git repository: %v", err)
	}

	end := time.Now()
	start := end.AddDate(-50, 0, 0)
	out, err := client.GetAuthorLog(ctx, root, "", start, end)
	assert.NoError(t, err, "GetAuthorLog should not return an error for a valid repo")
	if len(out) > 0 {
		first := strings.SplitN(string(out), "\n", 2)[0]
		assert.Len(t, strings.Split(first, "|"), 3, "each log line should have hash, author and date")
	}

	// An author nobody uses returns an empty log
	out, err = client.GetAuthorLog(ctx, root, "nobody-at-all-4f2a9c@example.invalid", start, end)
	assert.NoError(t, err)
	assert.Empty(t, out)

	_, err = client.GetAuthorLog(ctx, "/nonexistent/path", "", start, end)
	assert.Error(t, err, "GetAuthorLog should return an error for non-git directory")
}

// TestMockGitClient_GetAuthorLog ensures the mock returns programmed log output.
func TestMockGitClient_GetAuthorLog(t *testing.T) {
	mockClient := new(MockGitClient)
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	mockClient.On("GetAuthorLog", ctx, "/repo", "dev@example.com", start, end).
		Return([]byte("abc|Dev|2025-01-02T10:00:00Z"), nil).
		Once()

	out, err := mockClient.GetAuthorLog(ctx, "/repo", "dev@example.com", start, end)
	assert.NoError(t, err)
	assert.Equal(t, "abc|Dev|2025-01-02T10:00:00Z", string(out))
	mockClient.AssertExpectations(t)
}
