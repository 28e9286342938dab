package ml

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Diagnosis is the interpreted classifier output.
type Diagnosis int

const (
	NoDiseaseIndicated Diagnosis = iota
	DiseaseIndicated
)

func (d Diagnosis) String() string {
	switch d {
	case DiseaseIndicated:
		return "disease_indicated"
	case NoDiseaseIndicated:
		return "no_disease_indicated"
	default:
		return fmt.Sprintf("diagnosis(%d)", int(d))
	}
}

// Message returns the sentence shown to the doctor.
func (d Diagnosis) Message() string {
	if d == DiseaseIndicated {
		return "Pasien terindikasi terkena penyakit jantung."
	}
	return "Pasien tidak terindikasi penyakit jantung."
}

// Label returns the classifier label the diagnosis came from.
func (d Diagnosis) Label() int {
	return int(d)
}

// Predictor turns feature vectors into diagnoses using a loaded classifier.
// It keeps no per-call state and is safe for concurrent use as long as the
// classifier is.
type Predictor struct {
	model  Classifier
	logger *zap.Logger
}

func NewPredictor(model Classifier, logger *zap.Logger) *Predictor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{model: model, logger: logger}
}

// Predict calls the classifier exactly once. It never retries and never
// panics: classifier failures come back as *ClassifierInvocationError and
// labels other than 0 or 1 as *UnexpectedOutputError.
func (p *Predictor) Predict(vector FeatureVector) (diagnosis Diagnosis, err error) {
	if p.model == nil {
		return 0, p.fail(vector, &ClassifierInvocationError{Err: errors.New("no classifier loaded")})
	}
	for i, v := range vector {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, p.fail(vector, &ClassifierInvocationError{
				Err: fmt.Errorf("feature %s is not finite", featureOrder[i]),
			})
		}
	}

	label, err := p.invoke(vector.Slice())
	if err != nil {
		return 0, p.fail(vector, &ClassifierInvocationError{Err: err})
	}
	switch label {
	case 1:
		return DiseaseIndicated, nil
	case 0:
		return NoDiseaseIndicated, nil
	default:
		return 0, p.fail(vector, &UnexpectedOutputError{Output: label})
	}
}

func (p *Predictor) invoke(row []float64) (label int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classifier panicked: %v", r)
		}
	}()
	return p.model.Predict(row)
}

func (p *Predictor) fail(vector FeatureVector, err error) error {
	p.logger.Error("prediction failed",
		zap.Float64s("features", vector[:]),
		zap.Error(err),
	)
	return err
}
