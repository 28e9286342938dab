package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// DefaultThreshold is used when an artifact carries no threshold.
const DefaultThreshold = 0.5

// LogisticRegression is a linear model exported as plain weights. Predict
// returns 1 when the modelled probability is at least Threshold.
type LogisticRegression struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Threshold    float64   `json:"threshold"`
}

func (lr *LogisticRegression) Predict(features []float64) (int, error) {
	if len(lr.Coefficients) == 0 {
		return 0, errors.New("model not loaded")
	}
	p, err := lr.Probability(features)
	if err != nil {
		return 0, err
	}
	if p >= lr.Threshold {
		return 1, nil
	}
	return 0, nil
}

// Probability returns the modelled probability of label 1.
func (lr *LogisticRegression) Probability(features []float64) (float64, error) {
	if len(features) != len(lr.Coefficients) {
		return 0, fmt.Errorf("expected %d features, got %d", len(lr.Coefficients), len(features))
	}
	z := lr.Intercept
	for i, w := range lr.Coefficients {
		z += w * features[i]
	}
	if math.IsNaN(z) {
		return 0, errors.New("non-numeric activation")
	}
	return 1 / (1 + math.Exp(-z)), nil
}

func (lr *LogisticRegression) Load(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var artifact struct {
		Intercept    float64   `json:"intercept"`
		Coefficients []float64 `json:"coefficients"`
		Threshold    *float64  `json:"threshold"`
	}
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return fmt.Errorf("decode logistic regression: %w", err)
	}
	if len(artifact.Coefficients) != FeatureCount {
		return fmt.Errorf("logistic regression has %d coefficients, schema has %d features", len(artifact.Coefficients), FeatureCount)
	}
	threshold := DefaultThreshold
	if artifact.Threshold != nil {
		threshold = *artifact.Threshold
	}
	if threshold < 0 || threshold > 1 || math.IsNaN(threshold) {
		return fmt.Errorf("threshold %v outside [0, 1]", threshold)
	}
	*lr = LogisticRegression{
		Intercept:    artifact.Intercept,
		Coefficients: artifact.Coefficients,
		Threshold:    threshold,
	}
	return nil
}
