package response

import "time"

// LegacyPredictionResponse GET /predict 响应，保持原有格式
type LegacyPredictionResponse struct {
	Prediction int `json:"prediction" example:"1"`
}

// PredictionResponse 预测响应（DTO）
type PredictionResponse struct {
	Prediction  int              `json:"prediction" example:"1"`
	Probability *float64         `json:"probability,omitempty" example:"0.93"`
	ModelID     string           `json:"model_id" example:"health-tree-v1"`
	Reading     *ReadingResponse `json:"reading"`
	PredictedAt time.Time        `json:"predicted_at"`
}

// ReadingResponse 读数（DTO）
type ReadingResponse struct {
	ChannelID      string     `json:"channel_id,omitempty"`
	EntryID        int64      `json:"entry_id,omitempty"`
	Source         string     `json:"source"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	HeartRate      float64    `json:"heart_rate"`
	BodyTemp       float64    `json:"body_temp"`
	AccelerometerX float64    `json:"accelerometer_x"`
	AccelerometerY float64    `json:"accelerometer_y"`
	AccelerometerZ float64    `json:"accelerometer_z"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"healthsense"`
	ModelID string `json:"model_id" example:"health-tree-v1"`
}
