package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ban/healthsense/internal/common/model"
)

// PubSub Redis 发布/订阅客户端
type PubSub struct {
	client *redis.Client
}

// NewPubSub 创建 PubSub 实例
func NewPubSub(addr, password string, db int) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 测试连接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &PubSub{client: client}, nil
}

// AlertChannel 告警频道命名：{prefix}:{channelID}
func AlertChannel(prefix, channelID string) string {
	if channelID == "" {
		channelID = "default"
	}
	return fmt.Sprintf("%s:%s", prefix, channelID)
}

// PublishAlert 发布告警通知，返回收到消息的订阅者数量
func (p *PubSub) PublishAlert(ctx context.Context, channel string, notification *model.HealthAlertNotification) (int64, error) {
	msgJSON, err := json.Marshal(notification)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal notification: %w", err)
	}

	receivers, err := p.client.Publish(ctx, channel, msgJSON).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to publish notification: %w", err)
	}

	return receivers, nil
}

// Close 关闭 Redis 连接
func (p *PubSub) Close() error {
	return p.client.Close()
}
