package mdalert

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"ban/healthsense/internal/app/domains/entity/etprediction"
	"ban/healthsense/internal/common/model"
	"ban/healthsense/pkg/logger"
)

// Publisher 队列发布接口（lmstfy 客户端实现）
type Publisher interface {
	Publish(queue string, data []byte, ttl uint32, tries uint16, delay uint32) (string, error)
}

// AlertModule 告警模块
// 职责：构造标准化告警消息并投递到 lmstfy 队列
type AlertModule struct {
	publisher Publisher
	queue     string
	ttl       uint32
	tries     uint16
}

// NewAlertModule 创建告警模块
func NewAlertModule(publisher Publisher, queue string, ttl uint32, tries uint16) *AlertModule {
	return &AlertModule{
		publisher: publisher,
		queue:     queue,
		ttl:       ttl,
		tries:     tries,
	}
}

// PublishAlert 发布告警任务，返回 job id
func (m *AlertModule) PublishAlert(ctx context.Context, p *etprediction.Prediction) (string, error) {
	if p == nil || p.Reading == nil {
		return "", fmt.Errorf("prediction with reading is required")
	}

	// 复用 HTTP 请求的 trace id，保证全链路可追踪
	requestID := logger.TraceID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	r := p.Reading
	message := model.HealthAlertJob{
		Payload: model.HealthAlertPayload{
			Data: model.HealthAlertEnvelope{
				RequestID:  requestID,
				ActionType: model.ActionTypeHealthAlert,
				OrgID:      "0",
				ID:         strconv.FormatInt(r.EntryID, 10),
				Data: model.HealthAlertData{
					ChannelID:      r.ChannelID,
					EntryID:        r.EntryID,
					Source:         r.Source,
					ModelID:        p.ModelID,
					Prediction:     p.Class,
					Probability:    p.Probability,
					HeartRate:      r.HeartRate,
					BodyTemp:       r.BodyTemp,
					AccelerometerX: r.AccelerometerX,
					AccelerometerY: r.AccelerometerY,
					AccelerometerZ: r.AccelerometerZ,
					ReadAt:         r.CreatedAt,
					PredictedAt:    p.PredictedAt,
				},
			},
		},
	}

	data, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("marshal alert job failed: %w", err)
	}

	jobID, err := m.publisher.Publish(m.queue, data, m.ttl, m.tries, 0)
	if err != nil {
		return "", fmt.Errorf("publish alert job failed: %w", err)
	}
	return jobID, nil
}
