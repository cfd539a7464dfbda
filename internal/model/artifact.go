package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"ban/healthsense/internal/dataset"
)

// 模型类型
const (
	KindTree     = "tree"
	KindForest   = "forest"
	KindLogistic = "logistic"
	KindRules    = "rules"
)

const defaultLogisticThreshold = 0.5

// rulesSpec 三个阈值都必须显式给出，缺省不能当作 0
type rulesSpec struct {
	HeartRate     *float64 `json:"heart_rate"`
	BodyTemp      *float64 `json:"body_temp"`
	Accelerometer *float64 `json:"accelerometer"`
}

func (r *rulesSpec) validate() error {
	fields := []struct {
		name  string
		value *float64
	}{
		{"heart_rate", r.HeartRate},
		{"body_temp", r.BodyTemp},
		{"accelerometer", r.Accelerometer},
	}
	for _, f := range fields {
		if f.value == nil {
			return fmt.Errorf("thresholds.%s is required", f.name)
		}
		if math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			return fmt.Errorf("thresholds.%s must be finite", f.name)
		}
	}
	return nil
}

// artifact 模型文件结构
type artifact struct {
	ModelID    string             `json:"model_id"`
	Kind       string             `json:"kind"`
	Features   []string           `json:"features"`
	Tree       *treeSpec          `json:"tree,omitempty"`
	Trees      []treeSpec         `json:"trees,omitempty"`
	Intercept  float64            `json:"intercept,omitempty"`
	Weights    map[string]float64 `json:"weights,omitempty"`
	Threshold  *float64           `json:"threshold,omitempty"`
	Thresholds *rulesSpec         `json:"thresholds,omitempty"`
}

// Load 读取模型文件，wantSHA256 非空时校验文件摘要
func Load(path, wantSHA256 string) (Predictor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}

	if wantSHA256 != "" {
		sum := sha256.Sum256(data)
		got := hex.EncodeToString(sum[:])
		if !strings.EqualFold(got, wantSHA256) {
			return nil, fmt.Errorf("model: artifact checksum mismatch: got %s want %s", got, wantSHA256)
		}
	}

	return Parse(data)
}

// Parse 解析并校验模型内容
func Parse(data []byte) (Predictor, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("model: decode artifact: %w", err)
	}
	if err := validateArtifact(&a); err != nil {
		return nil, err
	}

	switch a.Kind {
	case KindTree:
		return &Tree{id: a.ModelID, spec: *a.Tree}, nil
	case KindForest:
		return &Forest{id: a.ModelID, trees: a.Trees}, nil
	case KindLogistic:
		weights := make([]float64, len(FeatureNames))
		for i, name := range FeatureNames {
			weights[i] = a.Weights[name]
		}
		threshold := defaultLogisticThreshold
		if a.Threshold != nil {
			threshold = *a.Threshold
		}
		return &Logistic{id: a.ModelID, intercept: a.Intercept, weights: weights, threshold: threshold}, nil
	default:
		return NewRules(a.ModelID, dataset.Thresholds{
			HeartRate:     *a.Thresholds.HeartRate,
			BodyTemp:      *a.Thresholds.BodyTemp,
			Accelerometer: *a.Thresholds.Accelerometer,
		}), nil
	}
}

func validateArtifact(a *artifact) error {
	if a.ModelID == "" {
		return fmt.Errorf("model: model_id must not be empty")
	}
	if len(a.Features) != len(FeatureNames) {
		return fmt.Errorf("model: features must list %d names, got %d", len(FeatureNames), len(a.Features))
	}
	for i, name := range FeatureNames {
		if a.Features[i] != name {
			return fmt.Errorf("model: features[%d] must be %q, got %q", i, name, a.Features[i])
		}
	}

	switch a.Kind {
	case KindTree:
		if a.Tree == nil {
			return fmt.Errorf("model: tree must be set for kind %q", KindTree)
		}
		if err := a.Tree.validate("tree"); err != nil {
			return fmt.Errorf("model: %w", err)
		}
	case KindForest:
		if len(a.Trees) == 0 {
			return fmt.Errorf("model: trees must not be empty for kind %q", KindForest)
		}
		for i := range a.Trees {
			if err := a.Trees[i].validate(fmt.Sprintf("trees[%d]", i)); err != nil {
				return fmt.Errorf("model: %w", err)
			}
		}
	case KindLogistic:
		if len(a.Weights) == 0 {
			return fmt.Errorf("model: weights must not be empty")
		}
		known := make(map[string]bool, len(FeatureNames))
		for _, name := range FeatureNames {
			known[name] = true
		}
		for name := range a.Weights {
			if !known[name] {
				return fmt.Errorf("model: weights has unknown feature %q", name)
			}
		}
		if a.Threshold != nil && (*a.Threshold < 0 || *a.Threshold > 1) {
			return fmt.Errorf("model: threshold must be in [0,1], got %v", *a.Threshold)
		}
	case KindRules:
		if a.Thresholds == nil {
			return fmt.Errorf("model: thresholds must be set for kind %q", KindRules)
		}
		if err := a.Thresholds.validate(); err != nil {
			return fmt.Errorf("model: %w", err)
		}
	default:
		return fmt.Errorf("model: unknown kind %q", a.Kind)
	}
	return nil
}
