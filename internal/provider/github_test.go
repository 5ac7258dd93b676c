package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v69/github"
	"github.com/huangsam/commitstreak/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGitHub serves a fake GitHub API with two pages of repositories.
// The "octo/empty" repository fails like an empty repository does.
func newTestGitHub(t *testing.T) (*github.Client, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			_, _ = fmt.Fprint(w, `[{"name":"empty","full_name":"octo/empty","owner":{"login":"octo"}}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/user/repos?per_page=100&page=2>; rel="next"`, server.URL))
		_, _ = fmt.Fprint(w, `[{"name":"one","full_name":"octo/one","owner":{"login":"octo"}}]`)
	})
	mux.HandleFunc("/repos/octo/one/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "octo", r.URL.Query().Get("author"))
		assert.NotEmpty(t, r.URL.Query().Get("since"))
		assert.NotEmpty(t, r.URL.Query().Get("until"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `[
			{"sha":"bbb","author":{"login":"octo"},"commit":{"author":{"name":"Octo Cat","date":"2025-11-02T09:00:00Z"}}},
			{"sha":"aaa","commit":{"author":{"name":"Octo Cat","date":"2025-11-01T09:00:00Z"}}}
		]`)
	})
	mux.HandleFunc("/repos/octo/empty/commits", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = fmt.Fprint(w, `{"message":"Git Repository is empty."}`)
	})

	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL
	return client, mux
}

func TestGitHubListerListCommits(t *testing.T) {
	client, _ := newTestGitHub(t)
	lister := NewGitHubListerWithClient(client, "token", "", false)
	lister.now = func() time.Time { return fixedNow }

	records, err := lister.ListCommits(context.Background(), testWindow())
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Sorted by date; the empty repository is skipped
	assert.Equal(t, "aaa", records[0].SHA)
	assert.Equal(t, "Octo Cat", records[0].Author)
	assert.Equal(t, "octo/one", records[0].Repository)
	assert.Equal(t, "bbb", records[1].SHA)
	assert.Equal(t, "octo", records[1].Author)
	assert.Equal(t, time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC), records[1].Date.UTC())
}

func TestGitHubListerPendingWindow(t *testing.T) {
	client, _ := newTestGitHub(t)
	lister := NewGitHubListerWithClient(client, "token", "", false)
	lister.now = func() time.Time { return fixedNow }

	window := testWindow()
	window.StartDate = fixedNow.AddDate(0, 0, 1)
	window.EndDate = fixedNow.AddDate(0, 0, 5)
	window.State = schema.PendingState

	records, err := lister.ListCommits(context.Background(), window)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGitHubListerRepositoryFailure(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()
	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"message":"Bad credentials"}`)
	})

	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	lister := NewGitHubListerWithClient(client, "bad", "", false)
	lister.now = func() time.Time { return fixedNow }

	_, err = lister.ListCommits(context.Background(), testWindow())
	assert.Error(t, err)
}

func TestGitHubListerIdentity(t *testing.T) {
	a := NewGitHubListerWithClient(github.NewClient(nil), "token-a", "", false)
	b := NewGitHubListerWithClient(github.NewClient(nil), "token-b", "", false)
	c := NewGitHubListerWithClient(github.NewClient(nil), "token-a", "octo", false)

	assert.Contains(t, a.Identity(), "github:owner:")
	assert.NotContains(t, a.Identity(), "token-a")
	assert.NotEqual(t, a.Identity(), b.Identity())
	assert.Contains(t, c.Identity(), "github:octo:")
}
