package dataset

import "math/rand"

// DefaultSeed 默认随机种子
const DefaultSeed = 42

// DefaultSamples 默认样本数
const DefaultSamples = 1000

// 取值区间，左闭右开
const (
	heartRateMin = 100
	heartRateMax = 140
	bodyTempMin  = 11.0
	bodyTempMax  = 41.0
	accelMin     = -16000.0
	accelMax     = 21000.0
)

// GeneratorConfig 生成器配置
type GeneratorConfig struct {
	Seed       int64
	Thresholds Thresholds
}

// Generator 合成数据生成器，同一 seed 生成相同数据
type Generator struct {
	rng        *rand.Rand
	thresholds Thresholds
}

// NewGenerator 创建生成器
// cfg.Thresholds 三项全为 0 时视为未配置，使用 DefaultThresholds；
// 只要有一项非零就原样使用（其余为 0 的项按阈值 0 处理）
func NewGenerator(cfg GeneratorConfig) *Generator {
	thresholds := cfg.Thresholds
	if thresholds == (Thresholds{}) {
		thresholds = DefaultThresholds()
	}
	return &Generator{
		rng:        rand.New(rand.NewSource(cfg.Seed)),
		thresholds: thresholds,
	}
}

// Generate 生成 n 行数据
// 按列依次采样：先生成全部心率，再体温，再三个加速度轴
func (g *Generator) Generate(n int) []Sample {
	if n <= 0 {
		return []Sample{}
	}

	samples := make([]Sample, n)
	for i := range samples {
		samples[i].HeartRate = heartRateMin + g.rng.Intn(heartRateMax-heartRateMin)
	}
	for i := range samples {
		samples[i].BodyTemp = g.uniform(bodyTempMin, bodyTempMax)
	}
	for i := range samples {
		samples[i].AccelerometerX = g.uniform(accelMin, accelMax)
	}
	for i := range samples {
		samples[i].AccelerometerY = g.uniform(accelMin, accelMax)
	}
	for i := range samples {
		samples[i].AccelerometerZ = g.uniform(accelMin, accelMax)
	}
	for i := range samples {
		samples[i].Target = Label(samples[i], g.thresholds)
	}
	return samples
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}
