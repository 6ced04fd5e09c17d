package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hwbot/pkg/logx"
)

// DefaultEndpoint is the homework statuses listing of the Practicum user API.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

const defaultTimeout = 10 * time.Second

type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// Client fetches homework statuses. One GET per call, no retries;
// the monitor's schedule is the retry policy.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	log      logx.Logger
}

func New(cfg Config, log logx.Logger) *Client {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		token:    cfg.Token,
		http:     &http.Client{Timeout: timeout},
		log:      log,
	}
}

// Fetch requests homework statuses changed since cursor (a Unix timestamp)
// and returns the decoded JSON document unmodified.
//
// The cursor check is defensive: the monitor always passes a real timestamp,
// but a bad cursor must fail before any network I/O.
func (c *Client) Fetch(ctx context.Context, cursor int64) (any, error) {
	if cursor < 0 {
		return nil, &Error{Kind: KindInvalidCursor, Detail: fmt.Sprintf("from_date must be a non-negative Unix timestamp, got %d", cursor)}
	}

	q := url.Values{}
	q.Set("from_date", strconv.FormatInt(cursor, 10))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, &Error{Kind: KindConnection, Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindConnection, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &Error{Kind: KindUnexpectedStatus, Status: resp.StatusCode, Endpoint: c.endpoint}
	}

	var doc any
	dec := json.NewDecoder(resp.Body)
	// json.Number keeps current_date exact instead of going through float64.
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Err: err}
	}

	// A 200 body can still carry a server-level rejection.
	if m, ok := doc.(map[string]any); ok {
		code, _ := m["code"].(string)
		errText, _ := m["error"].(string)
		if code != "" || errText != "" {
			return nil, &Error{Kind: KindServerRejected, Code: code, Detail: errText}
		}
	}

	c.log.Trace("API answer received", logx.Int64("from_date", cursor))
	return doc, nil
}
