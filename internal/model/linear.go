package model

// Logistic 逻辑回归
type Logistic struct {
	id        string
	intercept float64
	weights   []float64 // 与 FeatureNames 对齐
	threshold float64
}

// ID 模型标识
func (l *Logistic) ID() string { return l.id }

// Features 输入特征
func (l *Logistic) Features() []string { return featureNames() }

// Predict 预测，概率不低于阈值判为 1
func (l *Logistic) Predict(features []float64) (Result, error) {
	if err := checkFeatures(features); err != nil {
		return Result{}, err
	}

	score := l.intercept
	for i, w := range l.weights {
		score += w * features[i]
	}
	p := sigmoid(score)

	class := 0
	if p >= l.threshold {
		class = 1
	}
	return Result{Class: class, Probability: probability(p)}, nil
}
