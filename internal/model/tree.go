package model

import "fmt"

// treeNode CART 节点，Value 非空即为叶子
// 内部节点：x[Feature] <= Threshold 走 Left，否则走 Right
type treeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     *int      `json:"value,omitempty"`
	Probas    []float64 `json:"probas,omitempty"`
}

type treeSpec struct {
	Nodes []treeNode `json:"nodes"`
}

// validate 子节点下标必须大于父节点，保证无环
func (t *treeSpec) validate(prefix string) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("%s.nodes must not be empty", prefix)
	}
	for i, n := range t.Nodes {
		field := fmt.Sprintf("%s.nodes[%d]", prefix, i)
		if n.Value != nil {
			if *n.Value != 0 && *n.Value != 1 {
				return fmt.Errorf("%s.value must be 0 or 1, got %d", field, *n.Value)
			}
			if n.Probas != nil {
				if len(n.Probas) != 2 {
					return fmt.Errorf("%s.probas must have 2 entries, got %d", field, len(n.Probas))
				}
				for _, p := range n.Probas {
					if p < 0 || p > 1 {
						return fmt.Errorf("%s.probas must be in [0,1]", field)
					}
				}
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= len(FeatureNames) {
			return fmt.Errorf("%s.feature out of range: %d", field, n.Feature)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) {
			return fmt.Errorf("%s.left invalid: %d", field, n.Left)
		}
		if n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("%s.right invalid: %d", field, n.Right)
		}
	}
	return nil
}

// leaf 沿树下行到叶子
func (t *treeSpec) leaf(x []float64) *treeNode {
	n := &t.Nodes[0]
	for n.Value == nil {
		if x[n.Feature] <= n.Threshold {
			n = &t.Nodes[n.Left]
		} else {
			n = &t.Nodes[n.Right]
		}
	}
	return n
}

// positiveProba 叶子的类别 1 概率，无 probas 时取类别本身
func (n *treeNode) positiveProba() float64 {
	if len(n.Probas) == 2 {
		return n.Probas[1]
	}
	return float64(*n.Value)
}

// Tree 决策树
type Tree struct {
	id   string
	spec treeSpec
}

// ID 模型标识
func (t *Tree) ID() string { return t.id }

// Features 输入特征
func (t *Tree) Features() []string { return featureNames() }

// Predict 预测
func (t *Tree) Predict(features []float64) (Result, error) {
	if err := checkFeatures(features); err != nil {
		return Result{}, err
	}
	leaf := t.spec.leaf(features)
	res := Result{Class: *leaf.Value}
	if len(leaf.Probas) == 2 {
		res.Probability = probability(leaf.Probas[1])
	}
	return res, nil
}

// Forest 随机森林，多数投票，平票判为 1
type Forest struct {
	id    string
	trees []treeSpec
}

// ID 模型标识
func (f *Forest) ID() string { return f.id }

// Features 输入特征
func (f *Forest) Features() []string { return featureNames() }

// Predict 预测
func (f *Forest) Predict(features []float64) (Result, error) {
	if err := checkFeatures(features); err != nil {
		return Result{}, err
	}

	positives := 0
	sum := 0.0
	for i := range f.trees {
		leaf := f.trees[i].leaf(features)
		if *leaf.Value == 1 {
			positives++
		}
		sum += leaf.positiveProba()
	}

	class := 0
	if positives*2 >= len(f.trees) {
		class = 1
	}
	return Result{
		Class:       class,
		Probability: probability(sum / float64(len(f.trees))),
	}, nil
}
