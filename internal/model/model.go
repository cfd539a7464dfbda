package model

import (
	"errors"
	"fmt"
	"math"
)

// FeatureNames 模型输入特征，顺序固定
var FeatureNames = []string{
	"heart_rate",
	"body_temp",
	"accelerometer_x",
	"accelerometer_y",
	"accelerometer_z",
}

// ErrFeatureCount 特征向量长度不匹配
var ErrFeatureCount = errors.New("model: feature vector length mismatch")

// Result 单次预测结果
type Result struct {
	Class       int
	Probability *float64 // 类别 1 的概率，模型不提供时为 nil
}

// Predictor 预测器
type Predictor interface {
	Predict(features []float64) (Result, error)
	ID() string
	Features() []string
}

// featureNames 返回副本，调用方修改不影响 FeatureNames
func featureNames() []string {
	return append([]string(nil), FeatureNames...)
}

// checkFeatures 校验长度和取值
func checkFeatures(features []float64) error {
	if len(features) != len(FeatureNames) {
		return fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(features), len(FeatureNames))
	}
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("model: feature %s is not finite", FeatureNames[i])
		}
	}
	return nil
}

func probability(p float64) *float64 {
	return &p
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}
