// Package linear implements a small linear regression model with a pluggable
// training cost: ordinary least squares or L2-penalized (ridge). The fit and
// predict routines are shared; the strategies differ only in how they score a
// fitted model.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	transforms "github.com/gomlx/go-transforms"
)

// Cost scores a fitted model from its targets, predictions and weights.
type Cost interface {
	Cost(y, pred, w mat.Vector) float64
}

// LeastSquares is the ordinary least-squares cost: MSE(y, pred).
type LeastSquares struct{}

// Cost implements Cost.
func (LeastSquares) Cost(y, pred, _ mat.Vector) float64 {
	return MSE(y, pred)
}

// Ridge is the L2-penalized cost: MSE(y, pred) + Alpha * mean(w²).
type Ridge struct {
	Alpha float64
}

// Cost implements Cost.
func (r Ridge) Cost(y, pred, w mat.Vector) float64 {
	return MSE(y, pred) + r.Alpha*MSEScalar(w, 0)
}

// Model is a linear regression model y ≈ X·W. Fit solves for W in closed
// form and keeps the training targets and predictions around so Cost can
// score the fit.
type Model struct {
	// W holds the fitted weights; nil until Fit succeeds.
	W *mat.VecDense
	// Y and Pred are the training targets and the model's predictions on the
	// training inputs, stored by Fit.
	Y    *mat.VecDense
	Pred *mat.VecDense

	cost Cost
}

// New returns a model scored by the given cost strategy. A nil cost defaults
// to LeastSquares.
func New(cost Cost) *Model {
	if cost == nil {
		cost = LeastSquares{}
	}
	return &Model{cost: cost}
}

// Fit solves the least-squares problem min ‖X·w - y‖² via QR and stores the
// weights, targets and fitted predictions. X must have at least as many rows
// as columns and y must have one entry per row.
func (m *Model) Fit(x mat.Matrix, y mat.Vector) error {
	rows, cols := x.Dims()
	if rows == 0 || cols == 0 {
		return errors.Wrapf(transforms.ErrInvalidInput, "Fit: empty design matrix (%d, %d)", rows, cols)
	}
	if y.Len() != rows {
		return errors.Wrapf(transforms.ErrInvalidInput,
			"Fit: design matrix has %d rows but y has %d entries", rows, y.Len())
	}

	var qr mat.QR
	qr.Factorize(mat.DenseCopyOf(x))
	w := mat.NewVecDense(cols, nil)
	if err := qr.SolveVecTo(w, false, y); err != nil {
		return errors.Wrap(err, "Fit: least-squares solve failed")
	}
	klog.V(1).Infof("Fit: solved %d samples x %d features", rows, cols)

	m.W = w
	m.Y = mat.VecDenseCopyOf(y)
	m.Pred = mat.NewVecDense(rows, nil)
	m.Pred.MulVec(x, w)
	return nil
}

// Predict returns X·W for fresh inputs. The model must be fitted.
func (m *Model) Predict(x mat.Matrix) (*mat.VecDense, error) {
	if m.W == nil {
		return nil, errors.Wrap(transforms.ErrInvalidInput, "Predict: model is not fitted")
	}
	rows, cols := x.Dims()
	if cols != m.W.Len() {
		return nil, errors.Wrapf(transforms.ErrInvalidInput,
			"Predict: input has %d features, model has %d weights", cols, m.W.Len())
	}
	pred := mat.NewVecDense(rows, nil)
	pred.MulVec(x, m.W)
	return pred, nil
}

// Cost scores the fitted model with the model's cost strategy.
func (m *Model) Cost() (float64, error) {
	if m.W == nil {
		return 0, errors.Wrap(transforms.ErrInvalidInput, "Cost: model is not fitted")
	}
	return m.cost.Cost(m.Y, m.Pred, m.W), nil
}

// MSE returns the mean squared difference between two equal-length vectors.
// It panics with mat.ErrShape on a length mismatch, like the mat package.
func MSE(a, b mat.Vector) float64 {
	if a.Len() != b.Len() {
		panic(mat.ErrShape)
	}
	var sum float64
	for i := 0; i < a.Len(); i++ {
		d := a.AtVec(i) - b.AtVec(i)
		sum += d * d
	}
	return sum / float64(a.Len())
}

// MSEScalar returns the mean squared difference between a vector and a
// scalar, i.e. mean((a-v)²).
func MSEScalar(a mat.Vector, v float64) float64 {
	var sum float64
	for i := 0; i < a.Len(); i++ {
		d := a.AtVec(i) - v
		sum += d * d
	}
	return sum / float64(a.Len())
}
