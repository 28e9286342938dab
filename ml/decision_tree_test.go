package ml

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splits on ca, then on thal
func sampleTreeNodes() []TreeNode {
	return []TreeNode{
		{FeatureIdx: 11, Threshold: 0.5, LeftChild: 1, RightChild: 4},
		{FeatureIdx: 12, Threshold: 2.5, LeftChild: 2, RightChild: 3},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, ClassLabel: 0, IsLeaf: true},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, ClassLabel: 1, IsLeaf: true},
		{FeatureIdx: -1, LeftChild: -1, RightChild: -1, ClassLabel: 1, IsLeaf: true},
	}
}

func TestDecisionTreePredict(t *testing.T) {
	model, err := NewDecisionTree(sampleTreeNodes())
	require.NoError(t, err)

	healthy := FeatureVector{63, 1, 0, 145, 233, 1, 0, 150, 0, 2.3, 2, 0, 2}
	label, err := model.Predict(healthy.Slice())
	require.NoError(t, err)
	assert.Equal(t, 0, label)

	reversible := healthy
	reversible[12] = 3
	label, err = model.Predict(reversible.Slice())
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	vessels := healthy
	vessels[11] = 2
	label, err = model.Predict(vessels.Slice())
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	assert.Equal(t, 2, model.Depth())
}

func TestDecisionTreeRejectsWrongWidth(t *testing.T) {
	model, err := NewDecisionTree(sampleTreeNodes())
	require.NoError(t, err)

	_, err = model.Predict([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestDecisionTreeUnloaded(t *testing.T) {
	_, err := (&DecisionTree{}).Predict(make([]float64, FeatureCount))
	assert.Error(t, err)
}

func TestDecisionTreeValidation(t *testing.T) {
	_, err := NewDecisionTree(nil)
	assert.Error(t, err)

	badFeature := sampleTreeNodes()
	badFeature[0].FeatureIdx = FeatureCount
	_, err = NewDecisionTree(badFeature)
	assert.ErrorContains(t, err, "feature index")

	backEdge := sampleTreeNodes()
	backEdge[1].RightChild = 0
	_, err = NewDecisionTree(backEdge)
	assert.ErrorContains(t, err, "right child")
}

func TestDecisionTreeLoad(t *testing.T) {
	payload, err := json.Marshal(sampleTreeNodes())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, os.WriteFile(path, payload, 0o600))

	model := &DecisionTree{}
	require.NoError(t, model.Load(path))
	label, err := model.Predict(FeatureVector{63, 1, 0, 145, 233, 1, 0, 150, 0, 2.3, 2, 3, 3}.Slice())
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}
