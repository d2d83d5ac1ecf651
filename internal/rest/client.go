package rest

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/metal-toolbox/afsync/internal/metrics"
)

// Credentials are the basic auth credentials sent with each request.
type Credentials struct {
	Username string
	Password string
}

// Client performs JSON requests against a single API root.
type Client struct {
	api     string
	root    string
	creds   Credentials
	client  *retryablehttp.Client
	headers http.Header
	logger  *logrus.Logger
}

// Option sets optional Client parameters.
type Option func(*Client)

// WithHTTPClient sets the underlying http client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client.HTTPClient = hc
	}
}

// WithHeader adds a header sent with each request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// WithLogger sets the logger requests are traced to.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewHTTPClient returns an http client instrumented for tracing,
// a nil tlsConfig and a zero timeout keep the net/http defaults.
func NewHTTPClient(tlsConfig *tls.Config, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if tlsConfig != nil {
		transport.TLSClientConfig = tlsConfig
	}

	return &http.Client{
		Transport: otelhttp.NewTransport(transport),
		Timeout:   timeout,
	}
}

// New returns a Client for the API rooted at root, api names the API in errors and metrics.
func New(api, root string, creds Credentials, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	rc.CheckRetry = noRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.HTTPClient = NewHTTPClient(nil, 0)

	c := &Client{
		api:     api,
		root:    strings.TrimSuffix(root, "/"),
		creds:   creds,
		client:  rc,
		headers: http.Header{},
		logger:  logrus.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// requests are never retried, any response is handed back as is.
func noRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, err
}

// URL joins the path elements onto the API root, each element is path escaped.
func (c *Client) URL(elem ...string) string {
	escaped := make([]string, 0, len(elem))
	for _, e := range elem {
		escaped = append(escaped, url.PathEscape(e))
	}

	return c.root + "/" + strings.Join(escaped, "/")
}

// Get decodes the JSON response of a GET on rawURL into out.
func (c *Client) Get(ctx context.Context, rawURL string, out interface{}) error {
	return c.do(ctx, http.MethodGet, rawURL, nil, out)
}

// Put sends in as JSON body and decodes the response into out when out is non nil.
func (c *Client) Put(ctx context.Context, rawURL string, in, out interface{}) error {
	return c.do(ctx, http.MethodPut, rawURL, in, out)
}

func (c *Client) do(ctx context.Context, method, rawURL string, in, out interface{}) error {
	// rawBody stays a nil interface for requests without a body
	var rawBody interface{}

	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(ErrEncode, err.Error())
		}

		rawBody = body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, rawURL, rawBody)
	if err != nil {
		return err
	}

	for k := range c.headers {
		req.Header.Set(k, c.headers.Get(k))
	}

	req.Header.Set("Accept", "application/json")

	if rawBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.SetBasicAuth(c.creds.Username, c.creds.Password)

	c.logger.WithFields(logrus.Fields{"api": c.api, "method": method, "url": rawURL}).Trace("request")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RequestErrorCount.WithLabelValues(c.api).Inc()
		return errors.Wrap(err, c.api+": "+method+" "+rawURL)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RequestErrorCount.WithLabelValues(c.api).Inc()

		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return &RequestError{
			API:        c.api,
			Method:     method,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       bytes.TrimSpace(excerpt),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(ErrDecode, c.api+": "+rawURL+": "+err.Error())
	}

	return nil
}
