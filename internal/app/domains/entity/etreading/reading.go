package etreading

import "time"

// Reading 一次传感器读数
type Reading struct {
	ChannelID      string
	EntryID        int64
	Source         string
	CreatedAt      time.Time
	HeartRate      float64
	BodyTemp       float64
	AccelerometerX float64
	AccelerometerY float64
	AccelerometerZ float64
}

// Features 按模型特征顺序返回
// [heart_rate, body_temp, accelerometer_x, accelerometer_y, accelerometer_z]
func (r *Reading) Features() []float64 {
	return []float64{
		r.HeartRate,
		r.BodyTemp,
		r.AccelerometerX,
		r.AccelerometerY,
		r.AccelerometerZ,
	}
}
