package tideways

import (
	"context"
	"decommission/base"
	"decommission/base/api"
	"decommission/base/utils"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/ratelimit"
)

const serversFormKey = "servers[]"

// status codes worth another attempt when retries are enabled
var retryStatusCodes = []int{
	http.StatusTooManyRequests,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

type Options struct {
	BaseURL string
	Token   string
	// per request timeout, ignored when HTTPClient is set
	Timeout time.Duration
	// requests per second, 0 - unlimited
	RateLimit int
	// retries of listing calls, 0 - single attempt
	MaxRetries int
	Debug      bool
	HTTPClient *http.Client
}

// Client talks to the Tideways REST API of one account token
type Client struct {
	api        *api.Client
	baseURL    string
	maxRetries int
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = base.TidewaysURL
	}

	apiClient := &api.Client{
		HTTPClient:     httpClient,
		Debug:          opts.Debug,
		DefaultHeaders: map[string]string{"Authorization": "Bearer " + opts.Token},
	}
	if opts.RateLimit > 0 {
		apiClient.Limiter = ratelimit.New(opts.RateLimit)
	}
	return &Client{api: apiClient, baseURL: baseURL, maxRetries: opts.MaxRetries}
}

func (c *Client) organizationURL(organization string) string {
	return c.baseURL + base.TidewaysAPIPrefix + "/" + url.PathEscape(organization)
}

func (c *Client) ApplicationsURL(organization string) string {
	return c.organizationURL(organization) + "/applications"
}

func (c *Client) ServersURL(organization, application string) string {
	return c.organizationURL(organization) + "/" + url.PathEscape(application) + "/servers"
}

func (c *Client) get(ctx context.Context, url string) (json.RawMessage, error) {
	callFun := func() (interface{}, *http.Response, error) {
		var raw json.RawMessage
		resp, err := c.api.Request(ctx, http.MethodGet, url, nil, &raw)
		return raw, resp, err
	}
	out, err := utils.HTTPCallRetry(ctx, callFun, true, c.maxRetries, retryStatusCodes...)
	if err != nil {
		return nil, err
	}
	return out.(json.RawMessage), nil
}

// ListApplications returns applications registered under organization
func (c *Client) ListApplications(ctx context.Context, organization string) ([]Application, error) {
	raw, err := c.get(ctx, c.ApplicationsURL(organization))
	if err != nil {
		return nil, errors.Wrap(err, "List applications")
	}
	apps, err := ParseApplications(raw)
	if err != nil {
		return nil, errors.Wrap(err, "List applications")
	}
	return apps, nil
}

// ListServers returns servers registered under application
func (c *Client) ListServers(ctx context.Context, organization, application string) ([]Server, error) {
	raw, err := c.get(ctx, c.ServersURL(organization, application))
	if err != nil {
		return nil, errors.Wrap(err, "List servers")
	}
	servers, err := ParseServers(raw)
	if err != nil {
		return nil, errors.Wrap(err, "List servers")
	}
	return servers, nil
}

// DeleteServers removes given servers and returns the count reported by API.
// It is never retried, a repeated call would report already removed servers as missing.
func (c *Client) DeleteServers(ctx context.Context, organization, application string, serverIDs []string) (int, error) {
	if len(serverIDs) == 0 {
		return 0, nil
	}
	form := url.Values{serversFormKey: serverIDs}
	var raw json.RawMessage
	_, err := c.api.RequestForm(ctx, http.MethodDelete, c.ServersURL(organization, application), form, &raw)
	if err != nil {
		return 0, errors.Wrap(err, "Delete servers")
	}
	removed, err := ParseDeleteResponse(raw)
	if err != nil {
		return 0, errors.Wrap(err, "Delete servers")
	}
	return removed, nil
}
