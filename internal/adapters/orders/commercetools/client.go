// Package commercetools queries orders from the commercetools HTTP API
package commercetools

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	perr "orderexport/internal/platform/errors"
	"orderexport/internal/platform/logger"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultUA   = "orderexport"
	tokenPath   = "/oauth/token"
	maxBodySize = 64 << 20
)

// Options configures the Client
type Options struct {
	ProjectKey   string `env:"CTP_PROJECT_KEY" validate:"required"`
	ClientID     string `env:"CTP_CLIENT_ID" validate:"required"`
	ClientSecret string `env:"CTP_CLIENT_SECRET" validate:"required"`
	AuthURL      string `env:"CTP_AUTH_URL" validate:"required,url"`
	APIURL       string `env:"CTP_API_URL" validate:"required,url"`
	Scopes       []string
	UserAgent    string

	// Timeout bounds each HTTP exchange; 0 leaves the transport defaults
	Timeout time.Duration
}

// Client is a minimal commercetools REST client authenticated with client credentials
// Tokens are fetched lazily and cached by the oauth2 transport
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient builds a client whose transport performs the client credentials flow
// ctx scopes the token source; pass a context that lives as long as the client
func NewClient(ctx context.Context, o Options) *Client {
	cc := clientcredentials.Config{
		ClientID:     o.ClientID,
		ClientSecret: o.ClientSecret,
		TokenURL:     strings.TrimRight(o.AuthURL, "/") + tokenPath,
		Scopes:       o.Scopes,
	}
	return New(o, cc.Client(ctx))
}

// New wraps an already authenticated http client
func New(o Options, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout > 0 {
		hc.Timeout = o.Timeout
	}
	o.APIURL = strings.TrimRight(o.APIURL, "/")
	return &Client{
		http: hc,
		opts: o,
		log:  *logger.Named("commercetools"),
		now:  time.Now,
	}
}

// get issues one GET against the project api; a non-200 reply is an error
func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	url := c.opts.APIURL + "/" + c.opts.ProjectKey + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFetch, "commercetools new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "commercetools request failed")
	}

	logger.C(ctx).Debug().
		Str("component", "commercetools").
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("commercetools http response")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		_ = resp.Body.Close()
		code := perr.ErrorCodeFetch
		if resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusBadGateway {
			code = perr.ErrorCodeUnavailable
		}
		return nil, perr.Newf(code, "commercetools unexpected status %d body %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp, nil
}
