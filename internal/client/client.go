// Package client talks to a TalentFlow API server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	tferr "github.com/talentflow/talentflow/internal/errors"
	"github.com/talentflow/talentflow/internal/model"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Unwrap maps the status onto the domain error sentinels so callers can use
// errors.IsNotFound and friends on remote failures.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return tferr.ErrNotFound
	case http.StatusConflict:
		return tferr.ErrConflict
	case http.StatusBadRequest:
		return tferr.ErrInvalidInput
	case http.StatusServiceUnavailable:
		return tferr.ErrNotInitialized
	}
	return nil
}

// Client is an HTTP client for the jobs, candidates and dashboard API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the server at baseURL, e.g. http://localhost:3000.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the server URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// --- Jobs ---

// ListJobs returns one page of jobs matching query.
func (c *Client) ListJobs(ctx context.Context, query model.JobQuery) (*model.JobPage, error) {
	params := url.Values{}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if query.Status != "" {
		params.Set("status", string(query.Status))
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(query.PageSize))
	}

	var page model.JobPage
	if err := c.do(ctx, http.MethodGet, "/jobs", params, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AllJobs walks every page of the listing matching query, in board order.
// Page and PageSize of query are ignored.
func (c *Client) AllJobs(ctx context.Context, query model.JobQuery) ([]model.Job, error) {
	query.PageSize = model.MaxPageSize
	var all []model.Job
	for page := 1; ; page++ {
		query.Page = page
		result, err := c.ListJobs(ctx, query)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Data...)
		if len(result.Data) == 0 || page >= result.TotalPages() {
			return all, nil
		}
	}
}

// GetJob returns a single job.
func (c *Client) GetJob(ctx context.Context, jobID string) (*model.Job, error) {
	var job model.Job
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(jobID), nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateJob creates a job at the end of the ordering.
func (c *Client) CreateJob(ctx context.Context, req model.CreateJobRequest) (*model.Job, error) {
	var job model.Job
	if err := c.do(ctx, http.MethodPost, "/jobs", nil, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob applies a partial update.
func (c *Client) UpdateJob(ctx context.Context, jobID string, req model.UpdateJobRequest) (*model.Job, error) {
	var job model.Job
	if err := c.do(ctx, http.MethodPatch, "/jobs/"+url.PathEscape(jobID), nil, req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// SetJobStatus archives or unarchives a job.
func (c *Client) SetJobStatus(ctx context.Context, jobID string, status model.JobStatus) (*model.Job, error) {
	return c.UpdateJob(ctx, jobID, model.UpdateJobRequest{Status: &status})
}

// DeleteJob removes a job.
func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(jobID), nil, nil, nil)
}

// ReorderJob moves a job between two positions of the full ordering.
// A conflict error means the job was no longer at fromOrder.
func (c *Client) ReorderJob(ctx context.Context, jobID string, fromOrder, toOrder int) error {
	req := model.ReorderRequest{FromOrder: fromOrder, ToOrder: toOrder}
	return c.do(ctx, http.MethodPatch, "/jobs/"+url.PathEscape(jobID)+"/reorder", nil, req, nil)
}

// --- Candidates ---

// ListCandidates returns candidates, all of them when jobID is empty.
func (c *Client) ListCandidates(ctx context.Context, jobID string) ([]model.Candidate, error) {
	params := url.Values{}
	if jobID != "" {
		params.Set("jobId", jobID)
	}
	var list model.CandidateList
	if err := c.do(ctx, http.MethodGet, "/candidates", params, nil, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// CreateCandidate records an application.
func (c *Client) CreateCandidate(ctx context.Context, req model.CreateCandidateRequest) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := c.do(ctx, http.MethodPost, "/candidates", nil, req, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// UpdateCandidate changes a candidate's stage or assessment.
func (c *Client) UpdateCandidate(ctx context.Context, candidateID string, req model.UpdateCandidateRequest) (*model.Candidate, error) {
	var candidate model.Candidate
	if err := c.do(ctx, http.MethodPatch, "/candidates/"+url.PathEscape(candidateID), nil, req, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// --- Dashboard ---

// Statistics returns the dashboard summary.
func (c *Client) Statistics(ctx context.Context) (*model.DashboardStatistics, error) {
	var stats model.DashboardStatistics
	if err := c.do(ctx, http.MethodGet, "/dashboard/statistics", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = params.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", resp.Header.Get("X-Request-ID"),
		"elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

// IsAPIError reports whether err came from a server response, as opposed to
// a transport failure.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
