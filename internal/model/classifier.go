package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Classifier labels a batch of feature vectors. Labels are 0 or 1 and are
// positionally aligned with the input; the decision boundary is opaque to
// callers.
type Classifier interface {
	Classify(features []float64) ([]int, error)
}

// Model kinds supported by the artifact loader
const (
	KindLogistic  = "logistic"
	KindThreshold = "threshold"
)

// artifact is the on-disk encoding of a pre-trained model
type artifact struct {
	Kind string `json:"kind"`

	// logistic
	Weight    float64 `json:"weight"`
	Bias      float64 `json:"bias"`
	Threshold float64 `json:"threshold"`

	// threshold
	Cutoff float64 `json:"cutoff"`
}

// Load reads a pre-trained model artifact from path.
// The artifact is opaque to the pipeline; only the Classify capability leaks out.
func Load(path string) (Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}

	switch a.Kind {
	case KindLogistic:
		threshold := a.Threshold
		if threshold == 0 {
			threshold = 0.5
		}
		return &LogisticModel{Weight: a.Weight, Bias: a.Bias, Threshold: threshold}, nil
	case KindThreshold:
		return &ThresholdModel{Cutoff: a.Cutoff}, nil
	default:
		return nil, fmt.Errorf("unknown model kind %q in %s", a.Kind, path)
	}
}

// LogisticModel is a single-feature logistic regression
type LogisticModel struct {
	Weight    float64
	Bias      float64
	Threshold float64
}

// Classify labels each feature by thresholding the sigmoid output
func (m *LogisticModel) Classify(features []float64) ([]int, error) {
	labels := make([]int, len(features))
	for i, x := range features {
		p := 1.0 / (1.0 + math.Exp(-(m.Weight*x + m.Bias)))
		if p >= m.Threshold {
			labels[i] = 1
		}
	}
	return labels, nil
}

// ThresholdModel labels 1 when the feature exceeds a fixed cutoff
type ThresholdModel struct {
	Cutoff float64
}

// Classify labels each feature against the cutoff
func (m *ThresholdModel) Classify(features []float64) ([]int, error) {
	labels := make([]int, len(features))
	for i, x := range features {
		if x > m.Cutoff {
			labels[i] = 1
		}
	}
	return labels, nil
}
