package prediction

import "ban/healthsense/internal/app/domains/services/svprediction"

// ServiceName 服务名
const ServiceName = "healthsense"

// PredictionHandler 预测 HTTP 处理器
type PredictionHandler struct {
	predictionService *svprediction.PredictionService
}

// NewPredictionHandler 创建预测处理器实例
func NewPredictionHandler(predictionService *svprediction.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
	}
}
