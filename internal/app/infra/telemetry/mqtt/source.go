package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"ban/healthsense/internal/app/infra/telemetry"
	"ban/healthsense/pkg/logger"
)

// SourceName 数据源名称
const SourceName = "mqtt"

const connectTimeout = 10 * time.Second

// Options MQTT 连接参数
type Options struct {
	Broker    string
	Topic     string
	ClientID  string
	Username  string
	Password  string
	ChannelID string
}

// Source 订阅 feed 主题，缓存最近一条消息
type Source struct {
	opts   Options
	client paho.Client
	logger logger.Logger

	mu     sync.RWMutex
	latest *telemetry.FeedEntry
}

// NewSource 创建 MQTT 数据源（未连接）
func NewSource(opts Options, log logger.Logger) *Source {
	if opts.ClientID == "" {
		opts.ClientID = "healthsense-" + uuid.New().String()[:8]
	}
	return &Source{opts: opts, logger: log}
}

// Start 连接 broker 并订阅主题，断线后由 paho 自动重连并重新订阅
func (s *Source) Start(ctx context.Context) error {
	clientOpts := paho.NewClientOptions().
		AddBroker(s.opts.Broker).
		SetClientID(s.opts.ClientID).
		SetUsername(s.opts.Username).
		SetPassword(s.opts.Password).
		SetAutoReconnect(true).
		SetConnectTimeout(connectTimeout).
		SetOnConnectHandler(func(c paho.Client) {
			token := c.Subscribe(s.opts.Topic, 0, s.handleMessage)
			token.Wait()
			if err := token.Error(); err != nil {
				s.logger.Errorf(ctx, "[MQTT] Subscribe %s failed: %v", s.opts.Topic, err)
				return
			}
			s.logger.Infof(ctx, "[MQTT] Subscribed to %s", s.opts.Topic)
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			s.logger.Warnf(ctx, "[MQTT] Connection lost: %v", err)
		})

	s.client = paho.NewClient(clientOpts)
	token := s.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt connect to %s timed out", s.opts.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect to %s failed: %w", s.opts.Broker, err)
	}
	return nil
}

// Name 数据源名称
func (s *Source) Name() string {
	return SourceName
}

// LatestEntry 返回最近一条消息，尚未收到消息时返回 ErrNoReading
func (s *Source) LatestEntry(ctx context.Context) (*telemetry.FeedEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, telemetry.ErrNoReading
	}
	entry := *s.latest
	return &entry, nil
}

// Close 断开连接
func (s *Source) Close() {
	if s.client != nil && s.client.IsConnected() {
		s.client.Disconnect(250)
	}
}

// handleMessage 解析失败的消息丢弃，不覆盖已有读数
func (s *Source) handleMessage(_ paho.Client, msg paho.Message) {
	var entry telemetry.FeedEntry
	if err := json.Unmarshal(msg.Payload(), &entry); err != nil {
		s.logger.Warnf(context.Background(), "[MQTT] Drop malformed message on %s: %v", msg.Topic(), err)
		return
	}
	if entry.ChannelID == "" {
		entry.ChannelID = s.opts.ChannelID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// 乱序到达的旧消息不覆盖新消息
	if s.latest != nil && entry.EntryID != 0 && entry.EntryID < s.latest.EntryID {
		return
	}
	s.latest = &entry
}
