package dataset

// 默认阈值
const (
	DefaultHeartRateThreshold     = 116
	DefaultBodyTempThreshold      = 38.0
	DefaultAccelerometerThreshold = 18000.0
)

// Columns CSV 表头，顺序与模型特征一致，最后一列为标签
var Columns = []string{
	"heart_rate",
	"body_temp",
	"accelerometer_x",
	"accelerometer_y",
	"accelerometer_z",
	"target",
}

// Sample 一行合成数据
type Sample struct {
	HeartRate      int
	BodyTemp       float64
	AccelerometerX float64
	AccelerometerY float64
	AccelerometerZ float64
	Target         int
}

// Thresholds 标签阈值，三个加速度轴共用一个阈值
type Thresholds struct {
	HeartRate     float64
	BodyTemp      float64
	Accelerometer float64
}

// DefaultThresholds 默认阈值
func DefaultThresholds() Thresholds {
	return Thresholds{
		HeartRate:     DefaultHeartRateThreshold,
		BodyTemp:      DefaultBodyTempThreshold,
		Accelerometer: DefaultAccelerometerThreshold,
	}
}

// Exceeded 任一指标严格大于阈值即为 true
func (t Thresholds) Exceeded(heartRate, bodyTemp, accelX, accelY, accelZ float64) bool {
	return heartRate > t.HeartRate ||
		bodyTemp > t.BodyTemp ||
		accelX > t.Accelerometer ||
		accelY > t.Accelerometer ||
		accelZ > t.Accelerometer
}

// Label 计算样本标签（0/1）
func Label(s Sample, t Thresholds) int {
	if t.Exceeded(float64(s.HeartRate), s.BodyTemp, s.AccelerometerX, s.AccelerometerY, s.AccelerometerZ) {
		return 1
	}
	return 0
}

// Features 按特征顺序返回样本取值
func (s Sample) Features() []float64 {
	return []float64{
		float64(s.HeartRate),
		s.BodyTemp,
		s.AccelerometerX,
		s.AccelerometerY,
		s.AccelerometerZ,
	}
}

// Summary 数据集统计
type Summary struct {
	Rows      int
	Positives int
}

// Summarize 统计行数与正样本数
func Summarize(samples []Sample) Summary {
	s := Summary{Rows: len(samples)}
	for _, sample := range samples {
		if sample.Target == 1 {
			s.Positives++
		}
	}
	return s
}
