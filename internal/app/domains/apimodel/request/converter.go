package request

import "ban/healthsense/internal/app/domains/entity/etreading"

// ToReadingEntity 将 Request DTO 转换为领域对象
func (r *CreatePredictionRequest) ToReadingEntity() *etreading.Reading {
	return &etreading.Reading{
		HeartRate:      *r.HeartRate,
		BodyTemp:       *r.BodyTemp,
		AccelerometerX: *r.AccelerometerX,
		AccelerometerY: *r.AccelerometerY,
		AccelerometerZ: *r.AccelerometerZ,
	}
}
