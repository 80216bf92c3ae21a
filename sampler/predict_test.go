package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/fastbayes/regress/model"
	"github.com/fastbayes/regress/rand"
)

func splitRows(x *mat.Dense, y []float64, cut int) (*model.Dataset, *mat.Dense, []float64) {
	n, p := x.Dims()
	train, err := model.NewDataset(y[:cut], mat.DenseCopyOf(x.Slice(0, cut, 0, p)))
	if err != nil {
		panic(err)
	}
	test := mat.DenseCopyOf(x.Slice(cut, n, 0, p))
	return train, test, y[cut:]
}

func TestPredictLM(t *testing.T) {
	assert := assert.New(t)

	sim := simLinear(t, 808, 400, 12, 5)
	train, xTest, yTest := splitRows(sim.Data.X, sim.Data.Y, 200)

	gen, err := rand.NewGenerator(9)
	assert.NoError(err)
	res, err := FitNormalLM(train, shortConfig(), gen)
	assert.NoError(err)

	pred, err := PredictLM(res, xTest, 0.95)
	assert.NoError(err)

	assert.Len(pred.Mean, 200)
	for i := range pred.Mean {
		assert.True(pred.Lower[i] <= pred.Median[i], "row %d interval inverted", i)
		assert.True(pred.Median[i] <= pred.Upper[i], "row %d interval inverted", i)
		assert.True(pred.SD[i] > 0)
	}

	r, err := model.PearsonR(yTest, pred.Mean)
	assert.NoError(err)
	assert.True(r > 0.9, "predictive correlation %v too low", r)
}

func TestPredictLogit(t *testing.T) {
	assert := assert.New(t)

	gen, err := rand.NewGenerator(21)
	assert.NoError(err)
	sim, err := model.SimLogitReg(gen, 400, 10, 4, 0.5, 4.0, 1.5)
	assert.NoError(err)
	train, xTest, yTest := splitRows(sim.Data.X, sim.Data.Y, 200)

	gen, err = rand.NewGenerator(22)
	assert.NoError(err)
	res, err := FitNormalLogit(train, shortConfig(), gen)
	assert.NoError(err)

	pred, err := PredictLogit(res, xTest, 0.95, 0.5)
	assert.NoError(err)

	for i := range pred.Mean {
		assert.True(pred.Mean[i] >= 0 && pred.Mean[i] <= 1)
		assert.True(pred.Lower[i] >= 0 && pred.Upper[i] <= 1)
		assert.True(pred.Class[i] == 0 || pred.Class[i] == 1)
	}

	acc, err := model.ClassAccuracy(pred.Class, yTest)
	assert.NoError(err)
	assert.True(acc > 0.75, "test accuracy %v too low", acc)
}

func TestPredictValidation(t *testing.T) {
	assert := assert.New(t)

	sim := simLinear(t, 3, 80, 6, 3)
	gen, err := rand.NewGenerator(4)
	assert.NoError(err)
	res, err := FitNormalLM(sim.Data, shortConfig(), gen)
	assert.NoError(err)

	// Wrong predictor count
	bad := mat.NewDense(5, 7, nil)
	pred, err := PredictLM(res, bad, 0.95)
	assert.Nil(pred)
	assert.Error(err)

	// Credible level outside (0,1)
	ok := mat.NewDense(5, 6, nil)
	pred, err = PredictLM(res, ok, 1.5)
	assert.Nil(pred)
	assert.Error(err)

	// Nil test design
	pred, err = PredictLM(res, nil, 0.95)
	assert.Nil(pred)
	assert.Error(err)

	lpred, err := PredictLogit(res, nil, 0.95, 0.5)
	assert.Nil(lpred)
	assert.Error(err)
}
