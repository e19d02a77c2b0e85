package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"modgrip/internal/domain"
)

// maxBody caps how much of a response is read
const maxBody = 4 << 20

// StatusError is returned for non-2xx responses
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Options configures a Client
type Options struct {
	Endpoint          string
	Token             string
	Timeout           time.Duration // zero means no client timeout
	RequestsPerSecond float64       // zero or less disables throttling
	HTTPClient        *http.Client
	Logger            *zap.Logger
}

// Client talks to the remote module catalog
type Client struct {
	endpoint string
	token    string
	client   *http.Client
	limiter  *rate.Limiter
	logger   *zap.Logger
}

// NewClient creates a catalog client
func NewClient(opts Options) (*Client, error) {
	endpoint := strings.TrimRight(opts.Endpoint, "/")
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint must be http or https: %q", opts.Endpoint)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint: endpoint,
		token:    opts.Token,
		client:   httpClient,
		limiter:  limiter,
		logger:   logger.Named("api"),
	}, nil
}

type modulesResponse struct {
	Modules []domain.Module `json:"modules"`
}

type updateRequest struct {
	Description string `json:"description"`
}

// FetchModules returns one page of modules matching q
func (c *Client) FetchModules(ctx context.Context, q domain.ModuleQuery) ([]domain.Module, error) {
	params := url.Values{}
	if q.FreeText != "" {
		params.Set("search", q.FreeText)
	}
	if len(q.Tags) > 0 {
		params.Set("tags", strings.Join(q.Tags, ","))
	}
	if q.Filter != "" {
		params.Set("filter", string(q.Filter))
	}
	if q.PageSize > 0 {
		params.Set("limit", strconv.Itoa(q.PageSize))
	}

	path := "/modules"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp modulesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch modules: %w", err)
	}
	if resp.Modules == nil {
		resp.Modules = []domain.Module{}
	}
	return resp.Modules, nil
}

// CurrentUser returns the authenticated operator
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return domain.User{}, fmt.Errorf("fetch current user: %w", err)
	}
	return user, nil
}

// UpdateModule replaces a module's description
func (c *Client) UpdateModule(ctx context.Context, id int, description string) (domain.Module, error) {
	var mod domain.Module
	path := "/modules/" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodPut, path, updateRequest{Description: description}, &mod); err != nil {
		return domain.Module{}, fmt.Errorf("update module %d: %w", id, err)
	}
	return mod, nil
}

// DeleteModule removes a module
func (c *Client) DeleteModule(ctx context.Context, id int) error {
	if err := c.do(ctx, http.MethodDelete, "/modules/"+strconv.Itoa(id), nil, nil); err != nil {
		return fmt.Errorf("delete module %d: %w", id, err)
	}
	return nil
}

// do sends one request and decodes a JSON response into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
