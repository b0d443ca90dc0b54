package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GithubService lists a user's public repositories through the GitHub
// REST API. Credentials raise the unauthenticated rate limit and are
// optional.
type GithubService struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client
}

func NewGithubService(baseURL, clientID, clientSecret string) *GithubService {
	return &GithubService{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Repos fetches the five most recent repositories for a username. Any
// transport failure or non-200 response comes back as an error; callers
// translate that into a "no profile found" response.
func (s *GithubService) Repos(ctx context.Context, username string) ([]json.RawMessage, error) {
	q := url.Values{}
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if s.clientID != "" {
		q.Set("client_id", s.clientID)
		q.Set("client_secret", s.clientSecret)
	}
	reqURL := fmt.Sprintf("%s/users/%s/repos?%s", s.baseURL, url.PathEscape(username), q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("user-agent", "devconnect-api")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("github responded with status %d", resp.StatusCode)
	}

	var repos []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, err
	}
	return repos, nil
}
