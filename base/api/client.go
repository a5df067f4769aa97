package api

import (
	"bytes"
	"context"
	"decommission/base"
	"decommission/base/utils"
	"io"
	"net/http"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/ratelimit"
)

// error responses are cut to this length in error messages
const maxErrorBodyLen = 256

type Client struct {
	HTTPClient     *http.Client
	Debug          bool
	DefaultHeaders map[string]string
	// optional, throttles outgoing requests
	Limiter ratelimit.Limiter
}

// Request sends requestPtr (if not nil) as JSON and decodes JSON response into responseOutPtr.
// Failures without a usable response are base.ErrTransport, undecodable bodies base.ErrMalformedResponse.
func (o *Client) Request(ctx context.Context, method, url string,
	requestPtr interface{}, responseOutPtr interface{}) (*http.Response, error) {
	var body io.Reader
	contentType := ""
	if requestPtr != nil {
		data, err := sonic.ConfigStd.Marshal(requestPtr)
		if err != nil {
			return nil, errors.Wrap(err, "Request json encoding failed")
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return o.do(ctx, method, url, contentType, body, responseOutPtr)
}

// RequestForm sends form url-encoded in request body, e.g. for DELETE requests with parameters.
func (o *Client) RequestForm(ctx context.Context, method, url string,
	form url.Values, responseOutPtr interface{}) (*http.Response, error) {
	body := bytes.NewBufferString(form.Encode())
	return o.do(ctx, method, url, "application/x-www-form-urlencoded", body, responseOutPtr)
}

func (o *Client) do(ctx context.Context, method, url, contentType string, body io.Reader,
	responseOutPtr interface{}) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, base.WrapTransportError(err, "Request making failed")
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	addHeaders(httpReq, o.DefaultHeaders)

	if o.Limiter != nil {
		o.Limiter.Take()
	}

	httpResp, err := utils.CallAPI(o.httpClient(), httpReq, o.Debug)
	if err != nil {
		return httpResp, base.WrapTransportError(err, "Request failed")
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return httpResp, base.WrapTransportError(err, "Response body reading failed")
	}

	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		err = errors.Errorf("unexpected status code %d, body: %s", httpResp.StatusCode, truncate(bodyBytes))
		return httpResp, base.WrapTransportError(err, "Request failed")
	}

	if responseOutPtr == nil {
		return httpResp, nil
	}
	err = sonic.ConfigStd.Unmarshal(bodyBytes, responseOutPtr)
	if err != nil {
		return httpResp, base.WrapMalformedError(err, "Response json parsing failed")
	}
	return httpResp, nil
}

func (o *Client) httpClient() *http.Client {
	if o.HTTPClient == nil {
		return http.DefaultClient
	}
	return o.HTTPClient
}

func addHeaders(request *http.Request, headersMap map[string]string) {
	if headersMap == nil {
		return
	}
	for k, v := range headersMap {
		request.Header.Set(k, v)
	}
}

func truncate(body []byte) string {
	if len(body) > maxErrorBodyLen {
		return string(body[:maxErrorBodyLen]) + "..."
	}
	return string(body)
}
