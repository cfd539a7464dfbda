package request

// CreatePredictionRequest 按请求体特征预测
// 字段使用指针，0 是合法取值，缺省与 0 需要区分
type CreatePredictionRequest struct {
	HeartRate      *float64 `json:"heart_rate" binding:"required" example:"121"`
	BodyTemp       *float64 `json:"body_temp" binding:"required" example:"37.2"`
	AccelerometerX *float64 `json:"accelerometer_x" binding:"required" example:"-1200"`
	AccelerometerY *float64 `json:"accelerometer_y" binding:"required" example:"300"`
	AccelerometerZ *float64 `json:"accelerometer_z" binding:"required" example:"9800"`
}
