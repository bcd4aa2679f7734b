package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/pders01/brief/internal/config"
	"github.com/pders01/brief/internal/debuglog"
	"github.com/pders01/brief/internal/validation"
)

const (
	pathEmails        = "/gmail/process_emails"
	pathSlackChannels = "/slack/channels"
	pathSlackMessages = "/slack/fetch_summarized"
	pathSlackDaily    = "/slack/fetch_summarized_daily"
	pathTelegram      = "/telegram/fetch_summarized"
	pathTelegramDaily = "/telegram/fetch_summarized_daily"
	pathLogout        = "/logout"
)

// SummaryError is what the daily-summary calls return when the backend could
// not be reached or answered badly.
const SummaryError = "Error fetching summary."

var (
	errHTTPStatus   = errors.New("unexpected HTTP status")
	errNoChannelID  = errors.New("channel id is required")
	errDecodingBody = errors.New("decoding response")
)

// Client talks to the summarization backend. None of its fetch methods return
// errors: failures are logged and replaced by empty defaults.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	metrics   *metrics
}

func NewClient(cfg *config.Config, reg prometheus.Registerer) (*Client, error) {
	baseURL, err := validation.NewAPIURLValidator().ValidateAndNormalize(cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}

	timeout := cfg.API.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   baseURL,
		userAgent: cfg.API.UserAgent,
		client: &http.Client{
			Timeout: timeout,
		},
		metrics: newMetrics(reg),
	}, nil
}

// BaseURL returns the normalized backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle keep-alive connections.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	start := time.Now()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		c.metrics.record(path, outcomeTransportError, time.Since(start))
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.record(path, outcomeTransportError, time.Since(start))
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.record(path, outcomeHTTPError, time.Since(start))
		return fmt.Errorf("%w: %d", errHTTPStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.record(path, outcomeDecodeError, time.Since(start))
		return fmt.Errorf("%w: %w", errDecodingBody, err)
	}

	c.metrics.record(path, outcomeOK, time.Since(start))
	return nil
}

func logFailure(endpoint string, err error) {
	debuglog.WithFields(map[string]interface{}{
		"endpoint": endpoint,
		"error":    err.Error(),
	}).Errorf("backend request failed")
}

func (c *Client) skip(endpoint string) {
	c.metrics.record(endpoint, outcomeSkipped, 0)
	logFailure(endpoint, errNoChannelID)
}

func channelQuery(channelID string) url.Values {
	return url.Values{"channel_id": []string{channelID}}
}

func (c *Client) FetchEmails(ctx context.Context) Emails {
	var payload emailsPayload
	if err := c.get(ctx, pathEmails, nil, &payload); err != nil {
		logFailure(pathEmails, err)
		return emptyEmails()
	}

	return Emails{
		Urgent: orEmpty(payload.Urgent),
		Mid:    orEmpty(payload.Mid),
		Low:    orEmpty(payload.Low),
	}
}

func (c *Client) FetchSlackChannels(ctx context.Context) []Channel {
	var payload channelsPayload
	if err := c.get(ctx, pathSlackChannels, nil, &payload); err != nil {
		logFailure(pathSlackChannels, err)
		return []Channel{}
	}
	return orEmpty(payload.Channels)
}

// FetchSlackFromChannel returns the summarized messages of one channel. An
// empty channelID returns an empty list without contacting the backend.
func (c *Client) FetchSlackFromChannel(ctx context.Context, channelID string) []Message {
	if channelID == "" {
		c.skip(pathSlackMessages)
		return []Message{}
	}

	var payload slackPayload
	if err := c.get(ctx, pathSlackMessages, channelQuery(channelID), &payload); err != nil {
		logFailure(pathSlackMessages, err)
		return []Message{}
	}
	return orEmpty(payload.Messages)
}

func (c *Client) FetchTelegramAll(ctx context.Context) []Message {
	var payload telegramPayload
	if err := c.get(ctx, pathTelegram, nil, &payload); err != nil {
		logFailure(pathTelegram, err)
		return []Message{}
	}
	return orEmpty(payload.Messages)
}

// FetchSlackDailySummary prefers the backend's pre-built all_summary and
// falls back to joining the per-message summaries.
func (c *Client) FetchSlackDailySummary(ctx context.Context, channelID string) string {
	if channelID == "" {
		c.skip(pathSlackDaily)
		return ""
	}

	var payload slackDailyPayload
	if err := c.get(ctx, pathSlackDaily, channelQuery(channelID), &payload); err != nil {
		logFailure(pathSlackDaily, err)
		return SummaryError
	}

	if payload.AllSummary != "" {
		return payload.AllSummary
	}
	if payload.Messages != nil {
		parts := make([]string, 0, len(*payload.Messages))
		for _, msg := range *payload.Messages {
			parts = append(parts, msg.SummaryOr(""))
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func (c *Client) FetchTelegramDailySummary(ctx context.Context) string {
	var payload telegramDailyPayload
	if err := c.get(ctx, pathTelegramDaily, nil, &payload); err != nil {
		logFailure(pathTelegramDaily, err)
		return SummaryError
	}
	return payload.DailySummary
}

// Logout ends the backend session. A payload carrying an "error" string is
// reported through LogoutResult.Error as well.
func (c *Client) Logout(ctx context.Context) LogoutResult {
	var payload any
	if err := c.get(ctx, pathLogout, nil, &payload); err != nil {
		logFailure(pathLogout, err)
		return LogoutResult{Error: err.Error()}
	}

	result := LogoutResult{}
	if data, ok := payload.(map[string]any); ok {
		result.Data = data
		if msg, ok := data["error"].(string); ok && msg != "" {
			result.Error = msg
		}
	}
	return result
}

// FetchAllData fetches emails and Telegram messages, plus Slack messages when
// channelID is set, concurrently. If the aggregation itself fails the result
// is all-empty and err is non-nil.
func (c *Client) FetchAllData(ctx context.Context, channelID string) (AllData, error) {
	var (
		emails   = emptyEmails()
		slack    = []Message{}
		telegram = []Message{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(recovered(func() { emails = c.FetchEmails(gctx) }))
	if channelID != "" {
		g.Go(recovered(func() { slack = c.FetchSlackFromChannel(gctx, channelID) }))
	}
	g.Go(recovered(func() { telegram = c.FetchTelegramAll(gctx) }))

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		debuglog.WithFields(map[string]interface{}{
			"component": "api",
			"error":     err.Error(),
		}).Errorf("fetching all data failed")
		return emptyAllData(), fmt.Errorf("fetching all data: %w", err)
	}

	return AllData{Emails: emails, Slack: slack, Telegram: telegram}, nil
}

func recovered(fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic during fetch: %v", r)
			}
		}()
		fn()
		return nil
	}
}
