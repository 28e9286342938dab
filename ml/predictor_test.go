package ml

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeModel struct {
	label int
	err   error
	calls [][]float64
}

func (f *fakeModel) Predict(features []float64) (int, error) {
	f.calls = append(f.calls, append([]float64(nil), features...))
	return f.label, f.err
}

func TestPredictorDiagnoses(t *testing.T) {
	vector, err := Encode(referenceInput())
	require.NoError(t, err)

	sick := &fakeModel{label: 1}
	diagnosis, err := NewPredictor(sick, zaptest.NewLogger(t)).Predict(vector)
	require.NoError(t, err)
	assert.Equal(t, DiseaseIndicated, diagnosis)
	assert.Equal(t, "Pasien terindikasi terkena penyakit jantung.", diagnosis.Message())
	require.Len(t, sick.calls, 1)
	assert.Equal(t, []float64{63, 1, 0, 145, 233, 1, 0, 150, 0, 2.3, 2, 0, 2}, sick.calls[0])

	healthy := &fakeModel{label: 0}
	diagnosis, err = NewPredictor(healthy, zaptest.NewLogger(t)).Predict(vector)
	require.NoError(t, err)
	assert.Equal(t, NoDiseaseIndicated, diagnosis)
	assert.Equal(t, "Pasien tidak terindikasi penyakit jantung.", diagnosis.Message())
	assert.Equal(t, 0, diagnosis.Label())
}

func TestPredictorUnexpectedOutput(t *testing.T) {
	_, err := NewPredictor(&fakeModel{label: 2}, zaptest.NewLogger(t)).Predict(FeatureVector{})

	var unexpected *UnexpectedOutputError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, 2, unexpected.Output)
}

func TestPredictorClassifierError(t *testing.T) {
	cause := errors.New("shape mismatch")
	model := &fakeModel{err: cause}

	_, err := NewPredictor(model, zaptest.NewLogger(t)).Predict(FeatureVector{})
	var invocation *ClassifierInvocationError
	require.ErrorAs(t, err, &invocation)
	assert.ErrorIs(t, err, cause)
	assert.Len(t, model.calls, 1, "no retries")
}

func TestPredictorRecoversPanics(t *testing.T) {
	model := ClassifierFunc(func([]float64) (int, error) {
		panic("index out of range")
	})

	var err error
	assert.NotPanics(t, func() {
		_, err = NewPredictor(model, nil).Predict(FeatureVector{})
	})
	var invocation *ClassifierInvocationError
	assert.ErrorAs(t, err, &invocation)
}

func TestPredictorRejectsNonFiniteVector(t *testing.T) {
	model := &fakeModel{label: 1}
	vector := FeatureVector{}
	vector[4] = math.Inf(1)

	_, err := NewPredictor(model, zaptest.NewLogger(t)).Predict(vector)
	var invocation *ClassifierInvocationError
	require.ErrorAs(t, err, &invocation)
	assert.Contains(t, err.Error(), "chol")
	assert.Empty(t, model.calls)
}

func TestPredictorWithoutModel(t *testing.T) {
	_, err := NewPredictor(nil, nil).Predict(FeatureVector{})
	var invocation *ClassifierInvocationError
	assert.ErrorAs(t, err, &invocation)
}

func TestPredictorIsDeterministic(t *testing.T) {
	tree, err := NewDecisionTree(sampleTreeNodes())
	require.NoError(t, err)
	predictor := NewPredictor(tree, zaptest.NewLogger(t))

	vector, err := Encode(referenceInput())
	require.NoError(t, err)

	first, err := predictor.Predict(vector)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := predictor.Predict(vector)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDiagnosisString(t *testing.T) {
	assert.Equal(t, "disease_indicated", DiseaseIndicated.String())
	assert.Equal(t, "no_disease_indicated", NoDiseaseIndicated.String())
	assert.Equal(t, "diagnosis(7)", Diagnosis(7).String())
}
