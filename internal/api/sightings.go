package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/platewatch/internal/auth"
	"github.com/thesavant42/platewatch/internal/models"
	"golang.org/x/net/publicsuffix"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "platewatch/1.0"
	maxBodyBytes   = 32 << 20 // a full sighting list for one user
)

// Client talks to the sightings backend on behalf of one session
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	logger     *log.Logger

	mu      sync.RWMutex
	session auth.Session
}

// NewClient creates a client for the backend at baseURL.
// Cookies set by the backend are kept in a jar scoped by public suffix.
func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme must be http or https", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		baseURL: u,
		logger:  logger,
	}, nil
}

// BaseURL returns the backend address
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Session returns the session requests are sent with
func (c *Client) Session() auth.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetSession switches the identity requests are sent with.
// The token is stored as the backend's session cookie and sent as a bearer token.
// Requests already in flight keep the identity they started with.
func (c *Client) SetSession(s auth.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s

	cookie := &http.Cookie{Name: auth.CookieName, Value: s.Token, Path: "/"}
	if s.IsAnonymous() {
		cookie.MaxAge = -1
	}
	c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{cookie})
}

// FetchSightings retrieves every sighting visible to the session
func (c *Client) FetchSightings(ctx context.Context) ([]models.Sighting, error) {
	var list models.SightingList
	endpoint := c.endpoint("get-list")

	raw, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, c.malformed(endpoint, err)
	}
	if _, ok := envelope["data"]; !ok {
		return nil, c.malformed(endpoint, errors.New("response has no data field"))
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, c.malformed(endpoint, err)
	}

	if c.logger != nil {
		c.logger.Info("Fetched sightings", "count", len(list.Data))
	}
	return list.Data, nil
}

// FetchSighting retrieves a single sighting by id
func (c *Client) FetchSighting(ctx context.Context, id string) (models.Sighting, error) {
	var s models.Sighting
	endpoint := c.endpoint("get-list", id)

	raw, err := c.get(ctx, endpoint)
	if err != nil {
		return s, err
	}

	var envelope struct {
		Data *models.Sighting `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return s, c.malformed(endpoint, err)
	}
	if envelope.Data == nil {
		return s, c.malformed(endpoint, errors.New("response has no data field"))
	}
	return *envelope.Data, nil
}

// WhoAmI resolves the user id behind the current session
func (c *Client) WhoAmI(ctx context.Context) (string, error) {
	endpoint := c.endpoint("whoami")

	raw, err := c.get(ctx, endpoint)
	if err != nil {
		return "", err
	}

	var body struct {
		UID string `json:"uid"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", c.malformed(endpoint, err)
	}
	if body.UID == "" {
		return "", c.malformed(endpoint, errors.New("response has no uid"))
	}
	return body.UID, nil
}

func (c *Client) endpoint(segments ...string) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/")
	for _, s := range segments {
		u.Path += "/" + s
	}
	return u.String()
}

// get performs a credentialed GET and returns the body of a 2xx response
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Failed to create request", "url", endpoint, "error", err)
		}
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if session := c.Session(); !session.IsAnonymous() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	if c.logger != nil {
		c.logger.Debug("GET", "endpoint", endpoint)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Request failed", "url", endpoint, "error", err)
		}
		return nil, &FetchError{Kind: KindNetwork, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &FetchError{Kind: KindStatus, URL: endpoint, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body)))}
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			fe.Kind = KindAuthorization
		case http.StatusNotFound:
			fe.Kind = KindNotFound
		}
		if c.logger != nil {
			c.logger.Warn("Request rejected", "url", endpoint, "status", resp.StatusCode)
		}
		return nil, fe
	}

	return body, nil
}

func (c *Client) malformed(endpoint string, err error) error {
	if c.logger != nil {
		c.logger.Error("Malformed response", "url", endpoint, "error", err)
	}
	return &FetchError{Kind: KindMalformed, URL: endpoint, Err: err}
}
