// Package github is a minimal REST v3 client covering exactly what the
// scorer needs: repository metadata, the decoded README, content listings,
// the language breakdown, and a CI workflow probe.
package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.github.com"

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient takes an optional token; unauthenticated requests work for
// public repositories at a lower rate limit.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

type Repository struct {
	FullName      string    `json:"full_name"`
	Description   string    `json:"description"`
	DefaultBranch string    `json:"default_branch"`
	Language      string    `json:"language"`
	Stars         int       `json:"stargazers_count"`
	OpenIssues    int       `json:"open_issues_count"`
	PushedAt      time.Time `json:"pushed_at"`
}

type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

func (c *Client) Repository(ctx context.Context, owner, repo string) (*Repository, error) {
	var r Repository
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s", owner, repo), &r); err != nil {
		return nil, fmt.Errorf("fetch repository: %w", err)
	}
	return &r, nil
}

// Readme returns the decoded README content, or "" when the repository has
// none.
func (c *Client) Readme(ctx context.Context, owner, repo string) (string, error) {
	var payload struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/readme", owner, repo), &payload)
	if isNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("fetch readme: %w", err)
	}
	if payload.Encoding != "base64" {
		return payload.Content, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decode readme: %w", err)
	}
	return string(decoded), nil
}

// Contents lists a directory. A missing path is an empty listing, not an
// error; optional directories like .github/workflows probe through here.
func (c *Client) Contents(ctx context.Context, owner, repo, path string) ([]Entry, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/contents", owner, repo)
	if path != "" {
		endpoint += "/" + path
	}
	var entries []Entry
	err := c.get(ctx, endpoint, &entries)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch contents: %w", err)
	}
	return entries, nil
}

// FileContent fetches and decodes a single file.
func (c *Client) FileContent(ctx context.Context, owner, repo, path string) (string, error) {
	var payload struct {
		Content string `json:"content"`
	}
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, path), &payload); err != nil {
		return "", fmt.Errorf("fetch file %s: %w", path, err)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decode file %s: %w", path, err)
	}
	return string(decoded), nil
}

// Languages returns the repository's languages ordered by byte count.
func (c *Client) Languages(ctx context.Context, owner, repo string) ([]string, error) {
	var byteCounts map[string]int
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/languages", owner, repo), &byteCounts); err != nil {
		return nil, fmt.Errorf("fetch languages: %w", err)
	}
	languages := make([]string, 0, len(byteCounts))
	for lang := range byteCounts {
		languages = append(languages, lang)
	}
	sort.Slice(languages, func(i, j int) bool {
		if byteCounts[languages[i]] != byteCounts[languages[j]] {
			return byteCounts[languages[i]] > byteCounts[languages[j]]
		}
		return languages[i] < languages[j]
	})
	return languages, nil
}

// HasWorkflows reports whether the repository defines GitHub Actions
// workflows.
func (c *Client) HasWorkflows(ctx context.Context, owner, repo string) (bool, error) {
	entries, err := c.Contents(ctx, owner, repo, ".github/workflows")
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("github api status %d: %s", e.code, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
