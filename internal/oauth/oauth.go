// Package oauth runs the authorization-code flow against Google and GitHub
// and resolves the signed-in profile.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"assetdesk/internal/config"
	"assetdesk/pkg/models"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const (
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
	googleUserURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type provider struct {
	config *oauth2.Config
	fetch  func(ctx context.Context, client *http.Client) (models.ExternalUser, error)
}

type Service struct {
	providers  map[string]*provider
	httpClient *http.Client
}

// NewService configures every provider that has client credentials.
func NewService(cfg config.AuthConfig) *Service {
	s := &Service{
		providers:  make(map[string]*provider),
		httpClient: http.DefaultClient,
	}

	if cfg.OAuthGitHubID != "" && cfg.OAuthGitHubSecret != "" {
		s.providers["github"] = &provider{
			config: &oauth2.Config{
				ClientID:     cfg.OAuthGitHubID,
				ClientSecret: cfg.OAuthGitHubSecret,
				Endpoint:     github.Endpoint,
				RedirectURL:  cfg.OAuthCallbackURL + "/auth/oauth/github/callback",
				Scopes:       []string{"user:email"},
			},
			fetch: func(ctx context.Context, client *http.Client) (models.ExternalUser, error) {
				return fetchGitHubUser(ctx, client, githubUserURL, githubEmailsURL)
			},
		}
	}

	if cfg.OAuthGoogleID != "" && cfg.OAuthGoogleSecret != "" {
		s.providers["google"] = &provider{
			config: &oauth2.Config{
				ClientID:     cfg.OAuthGoogleID,
				ClientSecret: cfg.OAuthGoogleSecret,
				Endpoint:     google.Endpoint,
				RedirectURL:  cfg.OAuthCallbackURL + "/auth/oauth/google/callback",
				Scopes:       []string{"email", "profile"},
			},
			fetch: func(ctx context.Context, client *http.Client) (models.ExternalUser, error) {
				return fetchGoogleUser(ctx, client, googleUserURL)
			},
		}
	}

	return s
}

// Providers lists the configured provider names, sorted.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for name := range s.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Service) AuthURL(name, state string) (string, error) {
	p, ok := s.providers[name]
	if !ok {
		return "", fmt.Errorf("unknown or unconfigured provider: %s", name)
	}

	return p.config.AuthCodeURL(state), nil
}

// Exchange trades an authorization code for the provider's profile of the user.
func (s *Service) Exchange(ctx context.Context, name, code string) (models.ExternalUser, error) {
	p, ok := s.providers[name]
	if !ok {
		return models.ExternalUser{}, fmt.Errorf("unknown or unconfigured provider: %s", name)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return models.ExternalUser{}, fmt.Errorf("token exchange failed: %w", err)
	}

	user, err := p.fetch(ctx, p.config.Client(ctx, token))
	if err != nil {
		return models.ExternalUser{}, fmt.Errorf("failed to fetch user info: %w", err)
	}

	return user, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func fetchGitHubUser(ctx context.Context, client *http.Client, userURL, emailsURL string) (models.ExternalUser, error) {
	var data struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := getJSON(ctx, client, userURL, &data); err != nil {
		return models.ExternalUser{}, err
	}

	email := data.Email
	if email == "" {
		// private address; fall back to the primary verified one
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := getJSON(ctx, client, emailsURL, &emails); err == nil {
			for _, e := range emails {
				if e.Verified && (e.Primary || email == "") {
					email = e.Email
				}
			}
		}
	}

	name := data.Name
	if name == "" {
		name = data.Login
	}

	return models.ExternalUser{
		ID:    fmt.Sprintf("%d", data.ID),
		Name:  name,
		Email: email,
	}, nil
}

func fetchGoogleUser(ctx context.Context, client *http.Client, userURL string) (models.ExternalUser, error) {
	var data struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := getJSON(ctx, client, userURL, &data); err != nil {
		return models.ExternalUser{}, err
	}

	return models.ExternalUser{ID: data.ID, Name: data.Name, Email: data.Email}, nil
}
