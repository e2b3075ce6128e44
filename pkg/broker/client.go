// Package broker is a thin client for the Pact Broker: it fetches contracts
// and publishes verification results. Every failure is reported as a
// *pacterr.Error; nothing is retried.
package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/VaticanUK/com-pact/pkg/logging"
	"github.com/VaticanUK/com-pact/pkg/pacterr"
	"github.com/VaticanUK/com-pact/pkg/verification"
)

// PublishRelation is the hypermedia relation carrying the URL that
// verification results are published to.
const PublishRelation = "pb:publish-verification-results"

// maxContractSize bounds how much of a broker response is read.
const maxContractSize = 10 * 1024 * 1024

// Client is an HTTP client for a Pact Broker.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	username   string
	password   string
	userAgent  string
	logger     *slog.Logger

	timeout    time.Duration
	hasTimeout bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the HTTP timeout. It is applied to a copy of the HTTP
// client once every option has run, so a shared client is never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
		c.hasTimeout = true
	}
}

// WithToken sets a bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithBasicAuth sets basic auth credentials.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a broker client. The base address is required.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, pacterr.New("A PactBrokerClient with at least a BaseAddress should be configured to be able to retrieve contracts.")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: verification.Implementation,
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hasTimeout && c.httpClient.Timeout != c.timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns the broker base address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchResult is a contract retrieved from the broker.
type FetchResult struct {
	// ContractBody is the raw contract document.
	ContractBody string
	// PublishResultsURL is where verification results are posted. Empty
	// when the broker did not advertise one.
	PublishResultsURL string
}

type hal struct {
	Links map[string]json.RawMessage `json:"_links"`
}

type halLink struct {
	Href string `json:"href"`
}

// Fetch retrieves the contract at path, relative to the base address.
func (c *Client) Fetch(ctx context.Context, path string) (*FetchResult, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, pacterr.Wrap(err, "Pact cannot be retrieved using the provided Pact Broker Client: "+err.Error())
	}
	req.Header.Set("Accept", "application/hal+json, application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, pacterr.Wrap(err, "Pact cannot be retrieved using the provided Pact Broker Client: "+err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("fetched pact", "url", target, "status", resp.StatusCode)
	if !successful(resp.StatusCode) {
		return nil, pacterr.New("Getting pact from Pact Broker failed. Pact Broker returned " + StatusName(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxContractSize))
	if err != nil {
		return nil, pacterr.Wrap(err, "Pact cannot be retrieved using the provided Pact Broker Client: "+err.Error())
	}

	return &FetchResult{
		ContractBody:      string(body),
		PublishResultsURL: publishURL(body),
	}, nil
}

// Publish posts a verification result to url.
func (c *Client) Publish(ctx context.Context, url string, result *verification.Result) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(result); err != nil {
		return pacterr.Wrap(err, "Verification results cannot be published using the provided Pact Broker Client: "+err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return pacterr.Wrap(err, "Verification results cannot be published using the provided Pact Broker Client: "+err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return pacterr.Wrap(err, "Verification results cannot be published using the provided Pact Broker Client: "+err.Error())
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxContractSize))

	c.logger.Debug("published verification results", "url", url, "status", resp.StatusCode)
	if !successful(resp.StatusCode) {
		return pacterr.New("Publishing verification results to Pact Broker failed. Pact Broker returned " + StatusName(resp.StatusCode))
	}
	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.httpClient.Do(req)
}

func successful(status int) bool {
	return status >= 200 && status < 300
}

// publishURL extracts the publish relation from a HAL document. The
// relation may be a single link or a list of links; the first is used.
func publishURL(body []byte) string {
	var doc hal
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}
	raw, ok := doc.Links[PublishRelation]
	if !ok {
		return ""
	}

	var link halLink
	if err := json.Unmarshal(raw, &link); err == nil {
		return link.Href
	}
	var links []halLink
	if err := json.Unmarshal(raw, &links); err == nil && len(links) > 0 {
		return links[0].Href
	}
	return ""
}

// StatusName returns the reason phrase of an HTTP status in CamelCase, such
// as "BadRequest" or "NotFound". Unknown codes are returned as digits.
func StatusName(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return strconv.Itoa(code)
	}
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, cases.Title(language.English).String(text))
}
