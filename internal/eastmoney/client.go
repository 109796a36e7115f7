package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/fundlens/fundlens/internal/apperrors"
	"github.com/fundlens/fundlens/internal/model"
)

// Client provides fund market data: daily NAV history and the intraday
// estimate for the current session.
type Client interface {
	FetchHistory(ctx context.Context, code string, days int) (model.NAVSeries, error)
	FetchEstimate(ctx context.Context, code string) (*model.RealtimeEstimate, error)
}

const maxRetries = 3

// estimate timestamps are published in Beijing time
var beijing = time.FixedZone("CST", 8*60*60)

// HTTPClient is the production Client backed by the public fund data
// endpoints. Transient failures are retried with exponential backoff;
// malformed payloads are permanent and fail immediately.
type HTTPClient struct {
	historyBaseURL  string
	estimateBaseURL string
	httpClient      *http.Client
}

// NewHTTPClient creates a client for the given endpoint base URLs.
func NewHTTPClient(historyBaseURL, estimateBaseURL string) *HTTPClient {
	return &HTTPClient{
		historyBaseURL:  historyBaseURL,
		estimateBaseURL: estimateBaseURL,
		httpClient:      &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchHistory retrieves up to days of daily NAV rows for a fund, oldest
// first. The feed returns rows newest first; they are reversed here.
func (c *HTTPClient) FetchHistory(ctx context.Context, code string, days int) (model.NAVSeries, error) {
	url := fmt.Sprintf("%s?fundCode=%s&pageIndex=1&pageSize=%d", c.historyBaseURL, code, days)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp historyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProviderResponse, err)
	}
	if resp.ErrCode != 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrProviderResponse, resp.ErrMsg)
	}
	if len(resp.Data.LSJZList) == 0 {
		return nil, apperrors.ErrFundNotFound
	}

	series := make(model.NAVSeries, 0, len(resp.Data.LSJZList))
	for _, item := range resp.Data.LSJZList {
		date, err := time.Parse("2006-01-02", item.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", apperrors.ErrProviderResponse, item.Date)
		}
		nav, err := strconv.ParseFloat(item.UnitNAV, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad nav %q", apperrors.ErrProviderResponse, item.UnitNAV)
		}
		series = append(series, model.NAVPoint{
			Date:            date.UTC(),
			UnitNAV:         nav,
			DailyGrowthRate: parsePercent(item.DailyGrowthRate),
		})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series, nil
}

// FetchEstimate retrieves the intraday NAV estimate for a fund. The feed is
// JSONP; the payload is unwrapped before decoding.
func (c *HTTPClient) FetchEstimate(ctx context.Context, code string) (*model.RealtimeEstimate, error) {
	url := fmt.Sprintf("%s/%s.js?rt=%d", c.estimateBaseURL, code, time.Now().UnixMilli())

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	payload, err := unwrapJSONP(string(body))
	if err != nil {
		return nil, err
	}

	var resp estimateResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProviderResponse, err)
	}

	nav, err := strconv.ParseFloat(resp.EstimatedNAV, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad estimate %q", apperrors.ErrProviderResponse, resp.EstimatedNAV)
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", resp.EstimationTime, beijing)
	if err != nil {
		return nil, fmt.Errorf("%w: bad estimate time %q", apperrors.ErrProviderResponse, resp.EstimationTime)
	}

	return &model.RealtimeEstimate{
		Code:               resp.Code,
		EstimatedNAV:       nav,
		EstimatedChangePct: parsePercent(resp.EstimatedChange),
		EstimationTime:     at,
	}, nil
}

// get performs a GET with retries. HTTP 404 and payload-shape problems are
// permanent; network errors and 5xx responses back off and retry.
func (c *HTTPClient) get(ctx context.Context, url string) ([]byte, error) {
	operation := func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		// The fund endpoints reject requests without a site referer.
		req.Header.Set("Referer", "https://fund.eastmoney.com/")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, backoff.Permanent(apperrors.ErrFundNotFound)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", apperrors.ErrProviderUnavailable, resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxRetries),
	)
}

// unwrapJSONP strips the jsonpgz(...) wrapper around the estimate payload.
func unwrapJSONP(body string) (string, error) {
	start := strings.Index(body, "(")
	end := strings.LastIndex(body, ")")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: not a jsonp payload", apperrors.ErrProviderResponse)
	}
	return body[start+1 : end], nil
}

// parsePercent parses a percent string, treating empty or dash values as
// zero. Dividend and non-trading days publish an empty growth rate.
func parsePercent(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" || s == "-" || s == "--" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
