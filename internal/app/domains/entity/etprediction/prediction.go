package etprediction

import (
	"time"

	"ban/healthsense/internal/app/domains/entity/etreading"
)

// ClassAlert 需要告警的类别
const ClassAlert = 1

// Prediction 预测结果
type Prediction struct {
	Class       int
	Probability *float64
	ModelID     string
	Reading     *etreading.Reading
	PredictedAt time.Time
}

// IsAlert 是否需要告警
func (p *Prediction) IsAlert() bool {
	return p.Class == ClassAlert
}
