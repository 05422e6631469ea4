package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// leaf marks a node without children (sklearn TREE_LEAF).
const leaf = -1

// Tree is one decision tree in sklearn's flat array layout.
type Tree struct {
	ChildrenLeft  []int       `yaml:"children_left"`
	ChildrenRight []int       `yaml:"children_right"`
	Feature       []int       `yaml:"feature"`
	Threshold     []float64   `yaml:"threshold"`
	Value         [][]float64 `yaml:"value"` // per node, per class
}

// ForestFile is the on-disk tree ensemble export.
type ForestFile struct {
	NFeatures    int      `yaml:"n_features"`
	FeatureNames []string `yaml:"feature_names"`
	Classes      []int64  `yaml:"classes"`
	Trees        []Tree   `yaml:"trees"`
}

// Forest averages the normalized leaf distributions of its trees and picks
// the most probable class, as a random forest does.
type Forest struct {
	nFeatures int
	nClasses  int
	names     []string
	classes   []int64
	trees     []Tree
}

// LoadForest reads a tree ensemble from a YAML or JSON file.
func LoadForest(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	var f ForestFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("classifier: parse %s: %w", path, err)
	}
	forest, err := NewForest(f)
	if err != nil {
		return nil, fmt.Errorf("classifier: %s: %w", path, err)
	}
	return forest, nil
}

// NewForest validates f. Every tree must be well formed: child and feature
// indices in range and one value row per node with one entry per class.
func NewForest(f ForestFile) (*Forest, error) {
	if f.NFeatures <= 0 {
		return nil, fmt.Errorf("forest: n_features must be positive, got %d", f.NFeatures)
	}
	if len(f.FeatureNames) != 0 && len(f.FeatureNames) != f.NFeatures {
		return nil, fmt.Errorf("forest: %d feature_names for %d features", len(f.FeatureNames), f.NFeatures)
	}
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("forest: no trees")
	}

	nClasses := -1
	for ti, t := range f.Trees {
		n := len(t.ChildrenLeft)
		if n == 0 || len(t.ChildrenRight) != n || len(t.Feature) != n ||
			len(t.Threshold) != n || len(t.Value) != n {
			return nil, fmt.Errorf("forest: tree %d: node arrays differ in length", ti)
		}
		for i := 0; i < n; i++ {
			l, r := t.ChildrenLeft[i], t.ChildrenRight[i]
			if (l == leaf) != (r == leaf) {
				return nil, fmt.Errorf("forest: tree %d node %d: exactly one child is a leaf", ti, i)
			}
			if l != leaf {
				if l <= i || l >= n || r <= i || r >= n {
					return nil, fmt.Errorf("forest: tree %d node %d: child index out of range", ti, i)
				}
				if t.Feature[i] < 0 || t.Feature[i] >= f.NFeatures {
					return nil, fmt.Errorf("forest: tree %d node %d: feature %d out of range", ti, i, t.Feature[i])
				}
			}
			if nClasses == -1 {
				nClasses = len(t.Value[i])
			}
			if len(t.Value[i]) != nClasses || nClasses == 0 {
				return nil, fmt.Errorf("forest: tree %d node %d: expected %d class values, got %d",
					ti, i, nClasses, len(t.Value[i]))
			}
		}
	}
	if len(f.Classes) != 0 && len(f.Classes) != nClasses {
		return nil, fmt.Errorf("forest: %d classes listed, trees have %d", len(f.Classes), nClasses)
	}

	return &Forest{
		nFeatures: f.NFeatures,
		nClasses:  nClasses,
		names:     f.FeatureNames,
		classes:   f.Classes,
		trees:     f.Trees,
	}, nil
}

// NumFeatures returns the number of input columns.
func (f *Forest) NumFeatures() int {
	return f.nFeatures
}

// FeatureNames returns the training column names, if recorded.
func (f *Forest) FeatureNames() []string {
	return f.names
}

// Predict returns one class per row.
func (f *Forest) Predict(x [][]float64) ([]int64, error) {
	out := make([]int64, len(x))
	for r, row := range x {
		proba, err := f.PredictProba(row)
		if err != nil {
			return nil, fmt.Errorf("forest: row %d: %w", r, err)
		}
		best := 0
		for c := 1; c < len(proba); c++ {
			if proba[c] > proba[best] {
				best = c
			}
		}
		if len(f.classes) != 0 {
			out[r] = f.classes[best]
		} else {
			out[r] = int64(best)
		}
	}
	return out, nil
}

// PredictProba returns the mean class distribution over all trees.
func (f *Forest) PredictProba(row []float64) ([]float64, error) {
	if len(row) != f.nFeatures {
		return nil, fmt.Errorf("got %d columns, want %d", len(row), f.nFeatures)
	}
	proba := make([]float64, f.nClasses)
	for _, t := range f.trees {
		dist := t.Value[t.leafFor(row)]
		var total float64
		for _, v := range dist {
			total += v
		}
		if total == 0 {
			continue
		}
		for c, v := range dist {
			proba[c] += v / total
		}
	}
	for c := range proba {
		proba[c] /= float64(len(f.trees))
	}
	return proba, nil
}

// leafFor walks the tree. Inputs are compared at float32 precision because
// the thresholds were learned on float32 data. Children always have larger
// indices than their parent, so the walk terminates.
func (t Tree) leafFor(row []float64) int {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if float64(float32(row[t.Feature[node]])) <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return node
}

// Close is a no-op; the forest holds no external resources.
func (f *Forest) Close() error {
	return nil
}
