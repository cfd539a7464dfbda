package model

import "time"

// ActionTypeHealthAlert 告警任务类型
const ActionTypeHealthAlert = "health_alert"

// HealthAlertJob 告警任务消息（与 framework.Job 结构一致）
type HealthAlertJob struct {
	Payload HealthAlertPayload `json:"payload"`
}

type HealthAlertPayload struct {
	Data HealthAlertEnvelope `json:"data"`
}

// HealthAlertEnvelope 标准消息头 + 业务数据
type HealthAlertEnvelope struct {
	RequestID  string          `json:"request_id"`
	ActionType string          `json:"action_type"`
	OrgID      string          `json:"org_id"`
	ID         string          `json:"id"`
	Data       HealthAlertData `json:"data"`
}

// HealthAlertData 告警业务数据
type HealthAlertData struct {
	ChannelID      string    `json:"channel_id"`
	EntryID        int64     `json:"entry_id"`
	Source         string    `json:"source"`
	ModelID        string    `json:"model_id"`
	Prediction     int       `json:"prediction"`
	Probability    *float64  `json:"probability,omitempty"`
	HeartRate      float64   `json:"heart_rate"`
	BodyTemp       float64   `json:"body_temp"`
	AccelerometerX float64   `json:"accelerometer_x"`
	AccelerometerY float64   `json:"accelerometer_y"`
	AccelerometerZ float64   `json:"accelerometer_z"`
	ReadAt         time.Time `json:"read_at"`
	PredictedAt    time.Time `json:"predicted_at"`
}

// HealthAlertNotification 推送到 Redis 的告警通知
type HealthAlertNotification struct {
	AlertID    string          `json:"alert_id"`
	RequestID  string          `json:"request_id"`
	ChannelID  string          `json:"channel_id"`
	Prediction int             `json:"prediction"`
	Alert      HealthAlertData `json:"alert"`
	Timestamp  int64           `json:"timestamp"`
}
