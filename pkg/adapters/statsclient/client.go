// Package statsclient reads click totals from a running /stats endpoint.
package statsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wadjakorntonsri/go-click-counter/pkg/ports"
)

type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint:   strings.TrimSpace(endpoint),
		token:      strings.TrimSpace(token),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchStats returns by_ad_id for the last `days` days. An unset endpoint yields an
// empty result rather than an error.
func (c *Client) FetchStats(ctx context.Context, days int) (map[string]int64, error) {
	if c.endpoint == "" {
		log.Info().Msg("stats skipped: missing STATS_ENDPOINT")
		return map[string]int64{}, nil
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse stats endpoint: %w", err)
	}
	q := u.Query()
	q.Set("days", strconv.Itoa(days))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("stats endpoint returned %s", resp.Status)
	}

	var body struct {
		ByAdID map[string]any `json:"by_ad_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}

	out := make(map[string]int64, len(body.ByAdID))
	for id, v := range body.ByAdID {
		if n, ok := toInt(v); ok {
			out[id] = n
		}
	}
	return out, nil
}

// toInt accepts JSON numbers and integer strings.
func toInt(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

var _ ports.StatsFetcher = (*Client)(nil)
