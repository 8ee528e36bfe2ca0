// Package api is a small client for the diet backend REST API.
package api

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
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/dietwatch/internal/model"
)

// maxPages stops ListDiets from following a nextLink cycle forever.
const maxPages = 1000

// ErrNotFound matches an *APIError for a 404 response via errors.Is.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Body       string
	RequestID  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("diet API error %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Is reports whether target is ErrNotFound and e is a 404.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. "https://api.example.com/v1".
	BaseURL string
	// Token is a static bearer token. Ignored when TokenURL is set.
	Token string
	// ClientID, ClientSecret and TokenURL enable the OAuth2 client credentials grant.
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
	// TokenFile caches client credentials tokens between runs. Empty disables caching.
	TokenFile string
	// HTTPClient is the underlying transport. Defaults to http.DefaultClient.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is an authenticated diet API client.
type Client struct {
	base       *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for opts.BaseURL.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("api base URL is not configured")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid api base URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base URL %q: scheme must be http or https", opts.BaseURL)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts.Logger = logger

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if ts := tokenSource(context.WithValue(ctx, oauth2.HTTPClient, httpClient), opts); ts != nil {
		httpClient = oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, httpClient), ts)
	}

	return &Client{base: base, httpClient: httpClient, logger: logger}, nil
}

// resolve turns a path relative to the API root, or an absolute link
// returned by the server, into a full URL.
func (c *Client) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid link %q: %w", ref, err)
	}
	return c.base.ResolveReference(u).String(), nil
}

func dietPath(id string) string {
	return "diets/" + url.PathEscape(id)
}

// do sends a request and decodes a JSON response into out when out is non-nil
// and the response has a body.
func (c *Client) do(ctx context.Context, method, ref string, in, out any) error {
	endpoint, err := c.resolve(ref)
	if err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("diet API request failed: %w", err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	c.logger.Debug("diet API request",
		"method", method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(data), RequestID: requestID}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding diet API response: %w", err)
	}
	return nil
}

// GetDiet fetches a single diet.
func (c *Client) GetDiet(ctx context.Context, id string) (model.Diet, error) {
	var d model.Diet
	if err := c.do(ctx, http.MethodGet, dietPath(id), nil, &d); err != nil {
		return model.Diet{}, fmt.Errorf("get diet %s: %w", id, err)
	}
	return d, nil
}

// ListOptions narrows ListDiets.
type ListOptions struct {
	UserID string
}

// listPage accepts both a bare array and a paged {"diets", "nextLink"} object.
type listPage struct {
	Diets    []model.Diet
	NextLink string
}

func (p *listPage) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		p.NextLink = ""
		return json.Unmarshal(data, &p.Diets)
	}
	var obj struct {
		Diets    []model.Diet `json:"diets"`
		NextLink string       `json:"nextLink"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.Diets, p.NextLink = obj.Diets, obj.NextLink
	return nil
}

// ListDiets fetches all diets matching opts, following pagination links.
func (c *Client) ListDiets(ctx context.Context, opts ListOptions) ([]model.Diet, error) {
	ref := "diets"
	if opts.UserID != "" {
		ref += "?" + url.Values{"userId": {opts.UserID}}.Encode()
	}

	all := []model.Diet{}
	for page := 0; ref != ""; page++ {
		if page >= maxPages {
			return nil, fmt.Errorf("list diets: more than %d pages", maxPages)
		}
		var p listPage
		if err := c.do(ctx, http.MethodGet, ref, nil, &p); err != nil {
			return nil, fmt.Errorf("list diets: %w", err)
		}
		all = append(all, p.Diets...)
		ref = p.NextLink
	}
	return all, nil
}

// UpdateDiet replaces a diet and returns the stored version. A response
// without a body returns d unchanged.
func (c *Client) UpdateDiet(ctx context.Context, d model.Diet) (model.Diet, error) {
	if d.ID == "" {
		return model.Diet{}, errors.New("update diet: missing id")
	}
	var out model.Diet
	if err := c.do(ctx, http.MethodPut, dietPath(d.ID), d, &out); err != nil {
		return model.Diet{}, fmt.Errorf("update diet %s: %w", d.ID, err)
	}
	if out.ID == "" {
		return d, nil
	}
	return out, nil
}

// DeleteDiet removes a diet.
func (c *Client) DeleteDiet(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, dietPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete diet %s: %w", id, err)
	}
	return nil
}
