package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/probtrack/probtrack/internal/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// Authenticator abstracts the OAuth provider. It is consulted exactly once
// per login: exchange the code for a token, then resolve the token to a
// user. Every later request is authenticated from the session cookie alone.
// Tests substitute a mock implementation.
type Authenticator interface {
	GetToken(ctx context.Context, code string) (string, error)
	GetUserID(ctx context.Context, token string) (*GitHubUser, error)
}

type GitHubUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// InternalID is the stable identity used as the internal user id.
func (u *GitHubUser) InternalID() string {
	return strconv.FormatInt(u.ID, 10)
}

type GitHubAuthenticator struct {
	oauth2 *oauth2.Config
}

func NewGitHubAuthenticator(cfg config.GitHub) *GitHubAuthenticator {
	return &GitHubAuthenticator{
		oauth2: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user"},
		},
	}
}

func (a *GitHubAuthenticator) GetToken(ctx context.Context, code string) (string, error) {
	token, err := a.oauth2.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}
	return token.AccessToken, nil
}

func (a *GitHubAuthenticator) GetUserID(ctx context.Context, token string) (*GitHubUser, error) {
	client := a.oauth2.Client(ctx, &oauth2.Token{AccessToken: token})
	resp, err := client.Get("https://api.github.com/user")
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status from user endpoint: %s", resp.Status)
	}

	var user GitHubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &user, nil
}
