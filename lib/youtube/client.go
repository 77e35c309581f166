package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"opinionlens-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("lib/youtube")

const defaultBaseUrl = "https://www.googleapis.com/youtube/v3"

// the API caps commentThreads.list at 100 results per page
const defaultPageSize = 100

// consecutive retryable failures tolerated for a single page request
// before the failure escalates to fatal
const maxRetries = 5

// Client wraps the YouTube Data API v3. It is explicitly constructed and
// passed around; nothing here is process-global.
type Client struct {
	http     *resty.Client
	pageSize int
	sleep    func(ctx context.Context, d time.Duration) error
}

type ClientOptions struct {
	// required. from the Google Cloud console, supplied as a query
	// parameter on every request.
	ApiKey string
	// overridden in tests, defaults to the public API endpoint
	BaseUrl string
	// per-page maxResults, defaults to the API maximum of 100
	PageSize int
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.ApiKey == "" {
		return nil, fmt.Errorf("youtube: api key is required")
	}
	if opts.BaseUrl == "" {
		opts.BaseUrl = defaultBaseUrl
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	httpClient.SetTimeout(time.Second * 30)
	httpClient.SetQueryParam("key", opts.ApiKey)

	// 2 requests max per second, burst >= 2 just means that no
	// requests will be dropped
	rateLimiter := rate.NewLimiter(2, 2)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, "youtube/http")

	return &Client{
		http:     httpClient,
		pageSize: opts.PageSize,
		sleep:    sleepContext,
	}, nil
}

// APIError is a status-classified failure from the remote API. Retryable
// ones (rate limit, quota, server errors) are retried with backoff by the
// request loop; everything else aborts the current video.
type APIError struct {
	StatusCode int
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("youtube api: %d %s: %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("youtube api: %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Retryable() bool {
	return e.StatusCode == 403 || e.StatusCode == 429 || e.StatusCode >= 500
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func parseAPIError(res *resty.Response) *APIError {
	out := &APIError{StatusCode: res.StatusCode(), Message: res.Status()}
	var body apiErrorBody
	if err := json.Unmarshal(res.Body(), &body); err == nil && body.Error.Code != 0 {
		out.Message = body.Error.Message
		if len(body.Error.Errors) > 0 {
			out.Reason = body.Error.Errors[0].Reason
		}
	}
	return out
}

// getJSON performs one logical GET, retrying the same request with
// exponential backoff while failures stay retryable. The attempt counter
// covers consecutive failures only; any success resets it by virtue of
// each call starting fresh.
func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, out any) error {
	attempts := 0
	for {
		res, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(query).
			Get(path)
		if err != nil {
			// transport failures never carried a retryable
			// status: fatal for this video
			return fmt.Errorf("get %s: %w", path, err)
		}
		if res.IsSuccess() {
			return json.Unmarshal(res.Body(), out)
		}

		apiErr := parseAPIError(res)
		attempts++
		if !apiErr.Retryable() || attempts > maxRetries {
			return apiErr
		}
		delay := Delay(attempts)
		slog.Warn(
			"retryable api failure, backing off",
			"path", path,
			"status", apiErr.StatusCode,
			"reason", apiErr.Reason,
			"attempt", attempts,
			"delay", delay,
		)
		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
