package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/omerda/jira-reminder/internal/issue"
)

const (
	searchPath = "/rest/api/3/search/jql"
	UserAgent  = "jira-reminder/1.0 (github.com/omerda/jira-reminder)"
	Timeout    = 15 * time.Second

	// maxIssues caps pagination so a runaway JQL cannot flood the chat
	maxIssues  = 1000
	maxRetries = 2 // retries after the first attempt
)

// Client is a minimal Jira Cloud search client authenticated with basic auth
// (account email + API token).
type Client struct {
	baseURL    string
	email      string
	apiToken   string
	maxResults int
	httpClient *http.Client
}

// NewClient creates a new Jira client. maxResults is the page size for search
// requests; values outside 1..100 fall back to 50.
func NewClient(baseURL, email, apiToken string, maxResults int) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("jira base URL is required")
	}
	if email == "" {
		return nil, fmt.Errorf("jira email is required")
	}
	if apiToken == "" {
		return nil, fmt.Errorf("jira API token is required")
	}
	if maxResults <= 0 || maxResults > 100 {
		maxResults = 50
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		email:      email,
		apiToken:   apiToken,
		maxResults: maxResults,
		httpClient: &http.Client{
			Timeout: Timeout,
		},
	}, nil
}

// searchRequest is the POST body for the search/jql endpoint.
type searchRequest struct {
	JQL           string   `json:"jql"`
	MaxResults    int      `json:"maxResults"`
	Fields        []string `json:"fields"`
	Expand        string   `json:"expand,omitempty"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
}

// searchResponse is the relevant subset of the Jira search response.
type searchResponse struct {
	Issues        []apiIssue `json:"issues"`
	NextPageToken string     `json:"nextPageToken"`
}

type apiIssue struct {
	Key            string            `json:"key"`
	Fields         apiFields         `json:"fields"`
	RenderedFields apiRenderedFields `json:"renderedFields"`
}

type apiFields struct {
	Summary  string       `json:"summary"`
	Status   apiName      `json:"status"`
	Assignee *apiAssignee `json:"assignee"`
	DueDate  string       `json:"duedate"`
}

type apiRenderedFields struct {
	Description string `json:"description"` // HTML when expand=renderedFields
}

type apiName struct {
	Name string `json:"name"`
}

type apiAssignee struct {
	DisplayName string `json:"displayName"`
}

// SearchIssues runs the JQL query and returns all matching issues, following
// nextPageToken pagination up to the issue cap. Transient failures (network
// errors, 429, 5xx) are retried with exponential backoff; other HTTP errors
// fail immediately.
func (c *Client) SearchIssues(ctx context.Context, jql string) ([]*issue.Issue, error) {
	if strings.TrimSpace(jql) == "" {
		return nil, fmt.Errorf("jql query is required")
	}

	fetchedAt := time.Now().UTC()
	issues := make([]*issue.Issue, 0)
	nextPageToken := ""

	for {
		req := searchRequest{
			JQL:           jql,
			MaxResults:    c.maxResults,
			Fields:        []string{"summary", "status", "assignee", "duedate"},
			Expand:        "renderedFields",
			NextPageToken: nextPageToken,
		}

		var page *searchResponse
		operation := func() error {
			var err error
			page, err = c.doSearch(ctx, req)
			return err
		}

		bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
		if err := backoff.Retry(operation, bo); err != nil {
			return nil, fmt.Errorf("searching issues: %w", err)
		}

		for _, raw := range page.Issues {
			issues = append(issues, c.toIssue(raw, fetchedAt))
		}

		if page.NextPageToken == "" || len(issues) >= maxIssues {
			break
		}
		nextPageToken = page.NextPageToken
	}

	return issues, nil
}

// doSearch performs a single search request. Retryable failures are returned
// as plain errors; anything the caller should not retry is wrapped with
// backoff.Permanent.
func (c *Client) doSearch(ctx context.Context, sreq searchRequest) (*searchResponse, error) {
	body, err := json.Marshal(sreq)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("encoding search request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		httpErr := fmt.Errorf("jira API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, httpErr
		}
		return nil, backoff.Permanent(httpErr)
	}

	var result searchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("parsing response: %w", err))
	}

	return &result, nil
}

// toIssue maps an API issue into the internal representation.
func (c *Client) toIssue(raw apiIssue, fetchedAt time.Time) *issue.Issue {
	iss := &issue.Issue{
		Key:       raw.Key,
		Summary:   raw.Fields.Summary,
		Status:    raw.Fields.Status.Name,
		DueDate:   raw.Fields.DueDate,
		BrowseURL: c.BrowseURL(raw.Key),
		FetchedAt: fetchedAt,
	}
	if raw.Fields.Assignee != nil {
		iss.Assignee = raw.Fields.Assignee.DisplayName
	}
	if raw.RenderedFields.Description != "" {
		iss.Description = StripHTML(raw.RenderedFields.Description)
	}
	return iss
}

// BrowseURL returns the human-facing URL for an issue key.
func (c *Client) BrowseURL(key string) string {
	return fmt.Sprintf("%s/browse/%s", c.baseURL, key)
}
