// Package kmclient holds the configured client every endpoint call goes through.
package kmclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/kernel-memory-client/pkg/httpclient"
)

const (
	DefaultAuthHeaderName = "Authorization"
	DefaultAuthPrefix     = "Bearer"
)

// Client carries the base URL, transport and response-handling policy shared by endpoint calls.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL                 string
	transport               httpclient.Client
	raiseOnUnexpectedStatus bool
	log                     Logger
}

type settings struct {
	timeout                 time.Duration
	headers                 map[string]string
	cookies                 map[string]string
	verifySSL               bool
	followRedirects         bool
	raiseOnUnexpectedStatus bool
	token                   string
	authPrefix              string
	authHeaderName          string
	transport               httpclient.Client
	transportLogger         httpclient.Logger
	log                     Logger
}

// Option customizes a Client.
type Option func(*settings)

// WithTimeout sets the per-request timeout of the built-in transport.
func WithTimeout(d time.Duration) Option { return func(s *settings) { s.timeout = d } }

// WithHeaders adds headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(s *settings) {
		for k, v := range headers {
			s.headers[k] = v
		}
	}
}

// WithCookies adds cookies sent with every request.
func WithCookies(cookies map[string]string) Option {
	return func(s *settings) {
		for k, v := range cookies {
			s.cookies[k] = v
		}
	}
}

// WithVerifySSL toggles TLS certificate verification.
func WithVerifySSL(verify bool) Option { return func(s *settings) { s.verifySSL = verify } }

// WithFollowRedirects toggles following 3xx responses.
func WithFollowRedirects(follow bool) Option { return func(s *settings) { s.followRedirects = follow } }

// WithRaiseOnUnexpectedStatus makes undocumented status codes return an *UnexpectedStatusError
// instead of an absent parsed value.
func WithRaiseOnUnexpectedStatus(raise bool) Option {
	return func(s *settings) { s.raiseOnUnexpectedStatus = raise }
}

// WithToken authenticates every request with token.
func WithToken(token string) Option { return func(s *settings) { s.token = token } }

// WithAuthPrefix sets the scheme placed before the token. Empty sends the bare token.
func WithAuthPrefix(prefix string) Option { return func(s *settings) { s.authPrefix = prefix } }

// WithAuthHeaderName sets the header carrying the token.
func WithAuthHeaderName(name string) Option { return func(s *settings) { s.authHeaderName = name } }

// WithHTTPClient replaces the built-in transport. Timeout, header, cookie, TLS, redirect
// and token options are then ignored; the caller owns the transport's configuration.
func WithHTTPClient(c httpclient.Client) Option { return func(s *settings) { s.transport = c } }

// WithLogger sets the logger used by endpoint calls.
func WithLogger(log Logger) Option { return func(s *settings) { s.log = log } }

// WithTransportLogger sets the logger the built-in transport reports through.
func WithTransportLogger(log httpclient.Logger) Option {
	return func(s *settings) { s.transportLogger = log }
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base url must use http or https scheme, got: %q", parsed.Scheme)
	}

	s := &settings{
		timeout:        httpclient.DefaultTimeout,
		headers:        make(map[string]string),
		cookies:        make(map[string]string),
		verifySSL:      true,
		authPrefix:     DefaultAuthPrefix,
		authHeaderName: DefaultAuthHeaderName,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	transport := s.transport
	if transport == nil {
		if s.token != "" {
			s.headers[s.authHeaderName] = authValue(s.authPrefix, s.token)
		}
		transport = httpclient.NewRestyClient(httpclient.Options{
			Timeout:         s.timeout,
			Headers:         s.headers,
			Cookies:         s.cookies,
			SkipTLSVerify:   !s.verifySSL,
			FollowRedirects: s.followRedirects,
			Logger:          s.transportLogger,
		})
	}

	return &Client{
		baseURL:                 strings.TrimRight(baseURL, "/"),
		transport:               transport,
		raiseOnUnexpectedStatus: s.raiseOnUnexpectedStatus,
		log:                     ensureLogger(s.log),
	}, nil
}

// NewAuthenticated creates a Client that sends token on every request.
func NewAuthenticated(baseURL, token string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("token is required")
	}
	return New(baseURL, append([]Option{WithToken(token)}, opts...)...)
}

func authValue(prefix, token string) string {
	if prefix == "" {
		return token
	}
	return prefix + " " + token
}

// BaseURL returns the service root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// RaiseOnUnexpectedStatus reports the configured unexpected-status policy.
func (c *Client) RaiseOnUnexpectedStatus() bool { return c.raiseOnUnexpectedStatus }

// Logger returns the client's logger; never nil.
func (c *Client) Logger() Logger { return c.log }

// Do resolves req against the base URL and sends it through the transport.
// Transport errors are returned unmodified.
func (c *Client) Do(ctx context.Context, req *httpclient.Request) (httpclient.Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	resolved := *req
	resolved.URL = c.resolve(req.URL)
	return c.transport.Do(ctx, &resolved)
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
