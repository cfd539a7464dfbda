package response

import (
	"ban/healthsense/internal/app/domains/entity/etprediction"
	"ban/healthsense/internal/app/domains/entity/etreading"
)

// FromPredictionEntity 从领域对象转换为响应 DTO
func FromPredictionEntity(p *etprediction.Prediction) *PredictionResponse {
	return &PredictionResponse{
		Prediction:  p.Class,
		Probability: p.Probability,
		ModelID:     p.ModelID,
		Reading:     fromReadingEntity(p.Reading),
		PredictedAt: p.PredictedAt,
	}
}

// ToLegacy GET /predict 只返回类别
func ToLegacy(p *etprediction.Prediction) *LegacyPredictionResponse {
	return &LegacyPredictionResponse{Prediction: p.Class}
}

func fromReadingEntity(r *etreading.Reading) *ReadingResponse {
	if r == nil {
		return nil
	}
	resp := &ReadingResponse{
		ChannelID:      r.ChannelID,
		EntryID:        r.EntryID,
		Source:         r.Source,
		HeartRate:      r.HeartRate,
		BodyTemp:       r.BodyTemp,
		AccelerometerX: r.AccelerometerX,
		AccelerometerY: r.AccelerometerY,
		AccelerometerZ: r.AccelerometerZ,
	}
	if !r.CreatedAt.IsZero() {
		t := r.CreatedAt
		resp.CreatedAt = &t
	}
	return resp
}
