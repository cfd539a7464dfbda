package model

import "ban/healthsense/internal/dataset"

// Rules 直接使用数据集打标规则
type Rules struct {
	id         string
	thresholds dataset.Thresholds
}

// NewRules 基于阈值创建规则模型
func NewRules(id string, t dataset.Thresholds) *Rules {
	return &Rules{id: id, thresholds: t}
}

// ID 模型标识
func (r *Rules) ID() string { return r.id }

// Features 输入特征
func (r *Rules) Features() []string { return featureNames() }

// Predict 预测
func (r *Rules) Predict(features []float64) (Result, error) {
	if err := checkFeatures(features); err != nil {
		return Result{}, err
	}
	if r.thresholds.Exceeded(features[0], features[1], features[2], features[3], features[4]) {
		return Result{Class: 1}, nil
	}
	return Result{Class: 0}, nil
}
