package common

import (
	"context"
	"encoding/json"

	"ban/healthsense/internal/common/model"
	"ban/healthsense/internal/framework"
	"ban/healthsense/pkg/logger"
)

// Notifier 告警通知发布接口（Redis PubSub 实现）
type Notifier interface {
	PublishAlert(ctx context.Context, channel string, notification *model.HealthAlertNotification) (int64, error)
}

// Deps Handler 依赖
type Deps struct {
	Notifier      Notifier
	ChannelPrefix string
	Logger        logger.Logger
}

// HandlerServProc Handler 构造函数类型
type HandlerServProc func(meta *framework.JobMeta, payload json.RawMessage, deps *Deps) (HandlerServ, error)

// HandlerServ Handler 接口
type HandlerServ interface {
	Process(ctx context.Context) error
}
