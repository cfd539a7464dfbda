package healthalert

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"ban/healthsense/internal/alertworker/domains/common"
	"ban/healthsense/internal/common/model"
	"ban/healthsense/internal/framework"
	"ban/healthsense/pkg/errorutil"
	redisinfra "ban/healthsense/pkg/infra/redis"
)

// Handler 健康告警 Handler
type Handler struct {
	meta *framework.JobMeta
	data *model.HealthAlertData
	deps *common.Deps
	now  func() time.Time
}

// NewHandler 解析并校验告警业务数据
func NewHandler(meta *framework.JobMeta, payload json.RawMessage, deps *common.Deps) (common.HandlerServ, error) {
	if len(payload) == 0 {
		return nil, errorutil.NonRetriable("health alert payload is empty")
	}

	var data model.HealthAlertData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, errorutil.NonRetriableWithCause("unmarshal health alert data failed", err)
	}
	if data.Prediction != 1 {
		return nil, errorutil.NonRetriable("health alert requires prediction=1")
	}
	if deps == nil || deps.Notifier == nil {
		return nil, errorutil.NonRetriable("notifier is not configured")
	}

	return &Handler{
		meta: meta,
		data: &data,
		deps: deps,
		now:  time.Now,
	}, nil
}

// Process 推送告警通知到 Redis 频道
func (h *Handler) Process(ctx context.Context) error {
	channel := redisinfra.AlertChannel(h.deps.ChannelPrefix, h.data.ChannelID)

	notification := &model.HealthAlertNotification{
		AlertID:    uuid.New().String(),
		RequestID:  h.meta.RequestID,
		ChannelID:  h.data.ChannelID,
		Prediction: h.data.Prediction,
		Alert:      *h.data,
		Timestamp:  h.now().Unix(),
	}

	receivers, err := h.deps.Notifier.PublishAlert(ctx, channel, notification)
	if err != nil {
		// Redis 故障可恢复，交给 lmstfy 重新投递
		return errorutil.RetriableWithCause("publish health alert failed", err)
	}

	if h.deps.Logger != nil {
		h.deps.Logger.Infof(ctx, "[HealthAlert] Notification published: channel=%s, alert_id=%s, receivers=%d",
			channel, notification.AlertID, receivers)
	}
	return nil
}
