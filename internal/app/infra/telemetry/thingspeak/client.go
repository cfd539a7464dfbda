package thingspeak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ban/healthsense/internal/app/infra/telemetry"
)

// SourceName 数据源名称
const SourceName = "thingspeak"

const maxErrorBody = 512

// Client ThingSpeak REST 客户端
type Client struct {
	baseURL    string
	channelID  string
	apiKey     string
	httpClient *http.Client
}

// feedsResponse feeds.json 响应
type feedsResponse struct {
	Channel struct {
		ID int64 `json:"id"`
	} `json:"channel"`
	Feeds []telemetry.FeedEntry `json:"feeds"`
}

// NewClient 创建客户端，timeout 为单次请求超时
func NewClient(baseURL, channelID, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		channelID:  channelID,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name 数据源名称
func (c *Client) Name() string {
	return SourceName
}

// LatestEntry 拉取频道最新一条记录
func (c *Client) LatestEntry(ctx context.Context) (*telemetry.FeedEntry, error) {
	q := url.Values{}
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	q.Set("results", "1")
	endpoint := fmt.Sprintf("%s/channels/%s/feeds.json?%s", c.baseURL, url.PathEscape(c.channelID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %s", telemetry.ErrUpstream, c.redact(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", telemetry.ErrUpstream, c.redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status=%d body=%s", telemetry.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var feeds feedsResponse
	if err := json.NewDecoder(resp.Body).Decode(&feeds); err != nil {
		return nil, fmt.Errorf("%w: decode feeds: %v", telemetry.ErrUpstream, err)
	}
	if len(feeds.Feeds) == 0 {
		return nil, telemetry.ErrNoReading
	}

	// results=1 时只有一条，兜底取最后一条
	entry := feeds.Feeds[len(feeds.Feeds)-1]
	if entry.ChannelID == "" {
		entry.ChannelID = c.channelID
	}
	return &entry, nil
}

// redact *url.Error 的文本带完整 URL（含编码后的 api_key），只保留操作名和底层错误
func (c *Client) redact(err error) string {
	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg = fmt.Sprintf("%s %s/channels/%s/feeds.json: %v", urlErr.Op, c.baseURL, c.channelID, urlErr.Err)
	}
	if c.apiKey == "" {
		return msg
	}
	for _, key := range []string{c.apiKey, url.QueryEscape(c.apiKey), url.PathEscape(c.apiKey)} {
		msg = strings.ReplaceAll(msg, key, "***")
	}
	return msg
}
