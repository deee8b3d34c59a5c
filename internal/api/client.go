// Package api is the HTTP client for the site's content REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"site-admin/internal/cache"
)

const (
	maxResponseBytes = 8 << 20
	requestIDHeader  = "X-Request-ID"
)

type Config struct {
	BaseURL           string
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64
	CacheTTL          time.Duration
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	logger  *log.Logger
}

func NewClient(cfg Config, logger *log.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = max(1, int(cfg.RequestsPerSecond))
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Client{
		baseURL: base,
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		cache:   cache.New(cfg.CacheTTL),
		logger:  logger.WithPrefix("api"),
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// ListParams are the query parameters of a collection GET. Page is 1-based.
type ListParams struct {
	Page   int
	Limit  int
	Sort   string
	Search string
	Facets map[string]string
}

func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	for k, val := range p.Facets {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

// Page is one collection response. Pagination is nil when the API returned
// the whole collection.
type Page struct {
	Data       json.RawMessage
	Pagination *Pagination
}

func (c *Client) List(ctx context.Context, resource string, p ListParams) (*Page, error) {
	query := p.Values().Encode()
	key := "/" + resource + "?" + query

	if body, ok := c.cache.Get(resource, key); ok {
		env, err := parseEnvelope(http.StatusOK, body)
		if err == nil {
			c.logger.Debug("cache hit", "resource", resource, "query", query)
			return &Page{Data: env.Data, Pagination: env.Pagination}, nil
		}
	}

	env, body, err := c.do(ctx, http.MethodGet, "/"+resource, query, nil)
	if err != nil {
		return nil, err
	}
	c.cache.Set(resource, key, body)
	return &Page{Data: env.Data, Pagination: env.Pagination}, nil
}

func (c *Client) Get(ctx context.Context, resource, id string) (json.RawMessage, error) {
	env, _, err := c.do(ctx, http.MethodGet, itemPath(resource, id), "", nil)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) Create(ctx context.Context, resource string, payload any) (json.RawMessage, error) {
	env, _, err := c.do(ctx, http.MethodPost, "/"+resource, "", payload)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Update sends a partial payload; absent fields are left alone by the server.
func (c *Client) Update(ctx context.Context, resource, id string, payload any) (json.RawMessage, error) {
	env, _, err := c.do(ctx, http.MethodPut, itemPath(resource, id), "", payload)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) Delete(ctx context.Context, resource, id string) error {
	_, _, err := c.do(ctx, http.MethodDelete, itemPath(resource, id), "", nil)
	return err
}

// Invalidate forgets every cached list response for resource.
func (c *Client) Invalidate(resource string) {
	c.cache.Invalidate(resource)
	c.logger.Debug("cache invalidated", "resource", resource)
}

func itemPath(resource, id string) string {
	return "/" + resource + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path, query string, payload any) (*envelope, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if query != "" {
		target += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	env, err := parseEnvelope(resp.StatusCode, data)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			apiErr.RequestID = requestID
		}
		return nil, nil, err
	}
	return env, data, nil
}

func parseEnvelope(status int, data []byte) (*envelope, error) {
	var env envelope
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &env); err != nil {
			if status >= http.StatusBadRequest {
				return nil, &Error{Status: status, Message: http.StatusText(status)}
			}
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	} else if status < http.StatusBadRequest {
		env.Success = true
	}

	if status >= http.StatusBadRequest || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return nil, &Error{Status: status, Message: msg}
	}
	return &env, nil
}
