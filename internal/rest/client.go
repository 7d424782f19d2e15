// Package rest implements the session-token client for the appliance REST API.
//
// Authentication is a login call that returns a token; the token is attached
// as a bearer credential to every subsequent request for the lifetime of the
// session. Mutating verbs may return a job id for asynchronous operations,
// which callers poll with JobStatus.
package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the per-request timeout applied when the config does not
// override it.
const DefaultTimeout = 30 * time.Second

// Config describes one appliance endpoint.
type Config struct {
	Host     string
	Port     int
	Scheme   string
	Username string
	Password string
	// Insecure disables TLS certificate verification. Appliances commonly
	// ship with self-signed certificates.
	Insecure bool
	Timeout  time.Duration
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Method string
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

// Client is a single-session client for one appliance. It is not safe for
// concurrent use; the report renders strictly sequentially so it never is.
type Client struct {
	base     *url.URL
	http     *http.Client
	log      *slog.Logger
	username string
	password string
	token    string
	calls    int
}

// New builds a client for the given endpoint. No connection is made until
// Login.
func New(cfg Config, log *slog.Logger) (*Client, error) {
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "https"
	}
	port := cfg.Port
	if port == 0 {
		port = 8443
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	base, err := url.Parse(fmt.Sprintf("%s://%s:%d/", scheme, cfg.Host, port))
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint for host %q: %w", cfg.Host, err)
	}

	transport := http.DefaultTransport
	if cfg.Insecure {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &Client{
		base:     base,
		http:     &http.Client{Timeout: timeout, Transport: transport},
		log:      log,
		username: cfg.Username,
		password: cfg.Password,
	}, nil
}

// Host returns the hostname this client talks to.
func (c *Client) Host() string { return c.base.Hostname() }

// Calls returns the number of requests issued so far, login included.
func (c *Client) Calls() int { return c.calls }

// Login establishes the session and stores the returned token.
func (c *Client) Login(ctx context.Context) error {
	body, err := c.do(ctx, http.MethodPost, "auth/login", nil, map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return fmt.Errorf("login to %s failed: %w", c.Host(), err)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Token == "" {
		return fmt.Errorf("login to %s: response carried no token", c.Host())
	}
	c.token = resp.Token
	c.log.Debug("session established", "host", c.Host())
	return nil
}

// Logout ends the session. Errors are returned but the session token is
// discarded either way.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "auth/logout", nil, nil)
	c.token = ""
	if err != nil {
		return fmt.Errorf("logout from %s: %w", c.Host(), err)
	}
	return nil
}

// Get issues a GET and returns the JSON-decoded body. A 204 or empty body
// decodes to nil: the API reports "nothing there" that way for several
// endpoints, so it is a legitimate empty result rather than an error.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (any, error) {
	body, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("GET %s: malformed response body: %w", path, err)
	}
	return decoded, nil
}

// Post issues a POST. For long-running operations the API answers with a job
// id, which is returned; an empty string means the operation completed
// synchronously.
func (c *Client) Post(ctx context.Context, path string, payload any) (string, error) {
	return c.mutate(ctx, http.MethodPost, path, payload)
}

// Put issues a PUT, with the same job-id semantics as Post.
func (c *Client) Put(ctx context.Context, path string, payload any) (string, error) {
	return c.mutate(ctx, http.MethodPut, path, payload)
}

// Delete issues a DELETE, with the same job-id semantics as Post.
func (c *Client) Delete(ctx context.Context, path string, payload any) (string, error) {
	return c.mutate(ctx, http.MethodDelete, path, payload)
}

// JobStatus polls an asynchronous job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (done bool, progress int, err error) {
	body, err := c.do(ctx, http.MethodGet, "jobStatus/"+url.PathEscape(jobID), nil, nil)
	if err != nil {
		return false, 0, err
	}
	var resp struct {
		Done     bool `json:"done"`
		Progress int  `json:"progress"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, 0, fmt.Errorf("jobStatus/%s: malformed response body: %w", jobID, err)
	}
	return resp.Done, resp.Progress, nil
}

func (c *Client) mutate(ctx context.Context, method, path string, payload any) (string, error) {
	body, err := c.do(ctx, method, path, nil, payload)
	if err != nil {
		return "", err
	}
	if len(body) == 0 {
		return "", nil
	}
	var resp struct {
		JobID string `json:"jobId"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%s %s: malformed response body: %w", method, path, err)
	}
	return resp.JobID, nil
}

func (c *Client) do(ctx context.Context, method, path string, params map[string]string, payload any) ([]byte, error) {
	ref := &url.URL{Path: strings.TrimPrefix(path, "/")}
	u := c.base.ResolveReference(ref)
	if len(params) > 0 {
		q := u.Query()
		for k, v := range params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encoding payload: %w", method, path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.calls++
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	c.log.Debug("request completed", "method", method, "path", path, "status", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error("unexpected status", "method", method, "path", path, "status", resp.StatusCode)
		return nil, &StatusError{Method: method, Path: path, Status: resp.StatusCode}
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	return body, nil
}
