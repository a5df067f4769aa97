package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httputil"
	"regexp"
	"time"

	"github.com/lestrrat-go/backoff/v2"
	"github.com/pkg/errors"
)

// first retry delay, exponential policy doubles it up to RetryMaxInterval
var (
	RetryInterval    = time.Second
	RetryMaxInterval = time.Minute
)

var authHeaderRe = regexp.MustCompile(`(?mi)^(Authorization:)[^\r\n]*`)

// HTTPCallRetry calls httpCallFun until it succeeds or maxRetries are exhausted.
// Calls which got no response at all and responses with codesToRetry are retried,
// other failures are returned immediately. maxRetries <= 0 means a single attempt.
func HTTPCallRetry(ctx context.Context, httpCallFun func() (outputDataPtr interface{}, resp *http.Response, err error),
	exponentialRetry bool, maxRetries int, codesToRetry ...int) (outputDataPtr interface{}, err error) {
	if maxRetries <= 0 {
		outDataPtr, resp, callErr := httpCallFun()
		if callErr != nil {
			return nil, errors.Wrap(callErr, "HTTP call failed"+tryGetResponseDetails(resp))
		}
		return outDataPtr, nil
	}

	backoffState := startBackoff(ctx, exponentialRetry, maxRetries)
	attempt := 0
	var lastErr error
	for backoff.Continue(backoffState) {
		attempt++
		outDataPtr, resp, callErr := httpCallFun()
		if callErr == nil {
			return outDataPtr, nil
		}
		lastErr = errors.Wrap(callErr, "HTTP call failed"+tryGetResponseDetails(resp))

		if statusCodeFound(resp, codesToRetry) {
			Log("attempt", attempt, "status_code", TryGetStatusCode(resp)).
				Warn("HTTP call ended with wrong status code")
			continue
		}

		if resp == nil {
			Log("attempt", attempt, "err", callErr.Error()).Warn("HTTP call failed, trying again")
			continue
		}

		return nil, lastErr
	}
	if lastErr == nil {
		lastErr = ctx.Err()
	}
	return nil, errors.Wrapf(lastErr, "HTTP retry call failed, attempts: %d", attempt)
}

func CallAPI(client *http.Client, request *http.Request, debugEnabled bool) (*http.Response, error) {
	if debugEnabled {
		dump, err := httputil.DumpRequestOut(request, true)
		if err != nil {
			return nil, err
		}
		Log("dump", fmt.Sprintf("\n%s\n", redactDump(dump))).Debug("http call")
	}

	resp, err := client.Do(request)
	if err != nil {
		return resp, err
	}

	if debugEnabled {
		dump, err := httputil.DumpResponse(resp, true)
		if err != nil {
			return resp, err
		}
		Log("dump", fmt.Sprintf("\n%s\n", string(dump))).Debug("http response")
	}
	return resp, err
}

func redactDump(dump []byte) string {
	return authHeaderRe.ReplaceAllString(string(dump), "$1 [redacted]")
}

func tryGetResponseDetails(response *http.Response) string {
	details := ""
	if response != nil {
		details = fmt.Sprintf(", status code: %d", response.StatusCode)
	}
	return details
}

func TryGetStatusCode(response *http.Response) int {
	if response == nil {
		return 0
	}
	return response.StatusCode
}

func startBackoff(ctx context.Context, exponential bool, maxRetries int) backoff.Controller {
	if exponential {
		policy := backoff.Exponential(
			backoff.WithMinInterval(RetryInterval),
			backoff.WithMaxInterval(RetryMaxInterval),
			backoff.WithJitterFactor(0.05),
			backoff.WithMaxRetries(maxRetries),
		)
		return policy.Start(ctx)
	}
	policy := backoff.Constant(backoff.WithInterval(RetryInterval), backoff.WithMaxRetries(maxRetries))
	return policy.Start(ctx)
}

func statusCodeFound(response *http.Response, statusCodes []int) bool {
	if response == nil {
		return false
	}

	for _, code := range statusCodes {
		if code == response.StatusCode {
			return true
		}
	}
	return false
}
