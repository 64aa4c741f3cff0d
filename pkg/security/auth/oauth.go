package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/pkg/config"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

var (
	ErrInvalidState     = errors.New("invalid or expired oauth state")
	ErrProviderDisabled = errors.New("oauth provider is not enabled")
	ErrNoVerifiedEmail  = errors.New("oauth account has no verified email")
)

// GitHubUser is the subset of the GitHub user payload we care about.
type GitHubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// OAuthStateStore manages OAuth state tokens to prevent CSRF
type OAuthStateStore struct {
	states map[string]time.Time
	mu     sync.Mutex
}

func newStateStore() *OAuthStateStore {
	return &OAuthStateStore{states: make(map[string]time.Time)}
}

func (s *OAuthStateStore) issue(ttl time.Duration) string {
	state := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = time.Now().Add(ttl)
	// Drop anything already expired while we hold the lock
	now := time.Now()
	for k, exp := range s.states {
		if now.After(exp) {
			delete(s.states, k)
		}
	}
	return state
}

func (s *OAuthStateStore) consume(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)
	return time.Now().Before(exp)
}

// OAuthService implements the GitHub login flow: authorization URL with a
// one-time state token, code exchange, and user profile retrieval.
type OAuthService struct {
	oauth      *oauth2.Config
	enabled    bool
	stateTTL   time.Duration
	stateStore *OAuthStateStore
	httpClient *http.Client
}

func NewOAuthService(cfg *config.Config) *OAuthService {
	ttl := time.Duration(cfg.Auth.GitHub.StateTimeout) * time.Minute
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return &OAuthService{
		oauth: &oauth2.Config{
			ClientID:     cfg.Auth.GitHub.ClientID,
			ClientSecret: cfg.Auth.GitHub.ClientSecret,
			RedirectURL:  cfg.Auth.GitHub.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		enabled:    cfg.Auth.GitHub.Enabled,
		stateTTL:   ttl,
		stateStore: newStateStore(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether the GitHub provider is configured
func (s *OAuthService) Enabled() bool {
	return s.enabled
}

// AuthURL returns the GitHub authorization URL with a fresh state token
func (s *OAuthService) AuthURL() (string, error) {
	if !s.enabled {
		return "", ErrProviderDisabled
	}
	state := s.stateStore.issue(s.stateTTL)
	return s.oauth.AuthCodeURL(state), nil
}

// Exchange validates the state, trades the code for a token and fetches the
// GitHub user profile. When the public profile has no email, the private
// verified-emails endpoint is consulted.
func (s *OAuthService) Exchange(ctx context.Context, state, code string) (*GitHubUser, error) {
	if !s.enabled {
		return nil, ErrProviderDisabled
	}
	if !s.stateStore.consume(state) {
		return nil, ErrInvalidState
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	client := s.oauth.Client(ctx, token)

	var user GitHubUser
	if err := getJSON(ctx, client, "https://api.github.com/user", &user); err != nil {
		return nil, fmt.Errorf("failed to fetch github user: %w", err)
	}

	if user.Email == "" {
		var emails []githubEmail
		if err := getJSON(ctx, client, "https://api.github.com/user/emails", &emails); err != nil {
			return nil, fmt.Errorf("failed to fetch github emails: %w", err)
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				user.Email = e.Email
				break
			}
		}
	}

	if user.Email == "" {
		return nil, ErrNoVerifiedEmail
	}

	return &user, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("github API returned %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
