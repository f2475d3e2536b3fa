// Package cwl fetches published draw results from the China Welfare Lottery
// open endpoint and converts them into draw records.
package cwl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ssqtools/predictor/internal/draw"
)

// DefaultBaseURL is the official draw-notice search endpoint.
const DefaultBaseURL = "https://www.cwl.gov.cn/cwl_admin/front/cwlkj/search/kjxx/findDrawNotice"

const listingReferer = "https://www.cwl.gov.cn/ygkj/wqkjgg/ssq/"

// defaultPageSize is the largest page the endpoint serves reliably.
const defaultPageSize = 30

// weekdaySuffix strips the "(二)" style weekday annotation from dates.
var weekdaySuffix = regexp.MustCompile(`\(.*?\)`)

// Client talks to the CWL endpoint. Zero-value timeouts and URLs fall back to
// sane defaults through NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a fetch client. baseURL may be empty to use the official
// endpoint; tests point it at a local server.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log.With().Str("component", "cwl_client").Logger(),
	}
}

// apiItem mirrors one entry of the endpoint's result array. Red numbers come
// comma-joined in draw order, e.g. "01,10,11,16,26,24".
type apiItem struct {
	Code string `json:"code"`
	Date string `json:"date"`
	Red  string `json:"red"`
	Blue string `json:"blue"`
}

type apiResponse struct {
	Result []apiItem `json:"result"`
}

// FetchPage retrieves one page of draw notices, newest first as the endpoint
// returns them.
func (c *Client) FetchPage(ctx context.Context, pageNo, pageSize int) ([]draw.Record, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	params := url.Values{
		"name":       {"ssq"},
		"issueCount": {""},
		"issueStart": {""},
		"issueEnd":   {""},
		"dayStart":   {""},
		"dayEnd":     {""},
		"pageNo":     {strconv.Itoa(pageNo)},
		"pageSize":   {strconv.Itoa(pageSize)},
		"week":       {""},
		"systemType": {"PC"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build draw notice request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Referer", listingReferer)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("draw notice request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("draw notice request returned status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode draw notice response: %w", err)
	}

	records := make([]draw.Record, 0, len(payload.Result))
	for _, item := range payload.Result {
		rec, err := parseItem(item)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	c.log.Debug().Int("page", pageNo).Int("count", len(records)).Msg("Fetched draw notice page")
	return records, nil
}

// FetchSince pages through the endpoint until it reaches a period already in
// the archive (exclusive) or maxPages is hit, and returns the new records
// oldest first. An empty sincePeriod fetches everything available.
func (c *Client) FetchSince(ctx context.Context, sincePeriod string, maxPages int) ([]draw.Record, error) {
	if maxPages <= 0 {
		maxPages = 200
	}

	var collected []draw.Record
	for page := 1; page <= maxPages; page++ {
		batch, err := c.FetchPage(ctx, page, defaultPageSize)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		done := false
		for _, rec := range batch {
			if sincePeriod != "" && rec.Period <= sincePeriod {
				done = true
				break
			}
			collected = append(collected, rec)
		}
		if done || len(batch) < defaultPageSize {
			break
		}
	}

	// Newest-first from the endpoint; flip to the oldest-first order every
	// consumer expects.
	for i, j := 0, len(collected)-1; i < j; i, j = i+1, j-1 {
		collected[i], collected[j] = collected[j], collected[i]
	}

	c.log.Info().Int("new_records", len(collected)).Str("since", sincePeriod).Msg("Fetched draw history")
	return collected, nil
}

// parseItem validates one endpoint entry into a draw record.
func parseItem(item apiItem) (draw.Record, error) {
	rec := draw.Record{
		Period: strings.TrimSpace(item.Code),
		Date:   cleanDate(item.Date),
	}

	redParts := strings.Split(item.Red, ",")
	if len(redParts) != draw.RedsPerDraw {
		return draw.Record{}, fmt.Errorf("%w: period %s: expected %d red numbers, got %d", draw.ErrDataFormat, rec.Period, draw.RedsPerDraw, len(redParts))
	}
	for i, part := range redParts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return draw.Record{}, fmt.Errorf("%w: period %s: red number %q is not a number", draw.ErrDataFormat, rec.Period, part)
		}
		rec.Reds[i] = n
	}

	blue, err := strconv.Atoi(strings.TrimSpace(item.Blue))
	if err != nil {
		return draw.Record{}, fmt.Errorf("%w: period %s: blue number %q is not a number", draw.ErrDataFormat, rec.Period, item.Blue)
	}
	rec.Blue = blue

	if err := rec.Validate(); err != nil {
		return draw.Record{}, err
	}
	rec.SortReds()

	return rec, nil
}

// cleanDate drops the weekday suffix: "2025-10-14(二)" -> "2025-10-14".
func cleanDate(date string) string {
	return strings.TrimSpace(weekdaySuffix.ReplaceAllString(strings.TrimSpace(date), ""))
}
