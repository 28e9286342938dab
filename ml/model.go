package ml

// Classifier is a loaded, read-only binary model. Predict receives one row of
// FeatureCount values in schema order and returns its label.
type Classifier interface {
	Predict(features []float64) (int, error)
}

// ClassifierFunc adapts a plain function to Classifier.
type ClassifierFunc func(features []float64) (int, error)

func (f ClassifierFunc) Predict(features []float64) (int, error) {
	return f(features)
}
