package contract

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Credentials holds secrets that are only read from the environment.
type Credentials struct {
	GitHubAccessToken string `env:"GITHUB_ACCESS_TOKEN"`
	GitHubToken       string `env:"GITHUB_TOKEN"`
}

// Token returns the GitHub token, preferring GITHUB_ACCESS_TOKEN.
func (c Credentials) Token() string {
	if c.GitHubAccessToken != "" {
		return c.GitHubAccessToken
	}
	return c.GitHubToken
}

// LoadCredentials loads credentials from environment variables.
func LoadCredentials() (Credentials, error) {
	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return Credentials{}, fmt.Errorf("parse env: %w", err)
	}
	return creds, nil
}
