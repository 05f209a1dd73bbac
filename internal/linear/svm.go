package linear

import (
	"log/slog"
	"math"
	"math/rand/v2"
)

// LinearSVM is a one-vs-rest L2-regularized squared-hinge linear SVM fitted
// by dual coordinate descent. The intercept is learned as the weight of a
// constant feature of value 1 and is regularized with the other weights.
type LinearSVM struct {
	C       float64
	Tol     float64
	MaxIter int
	Seed    uint64
}

// NewLinearSVM returns a classifier with C=1 and a 1000 pass cap.
func NewLinearSVM() LinearSVM {
	return LinearSVM{C: 1, Tol: 1e-4, MaxIter: 1000, Seed: 42}
}

// Fit trains one binary machine per class.
func (s LinearSVM) Fit(x []Vector, y []int, nFeatures int) (*Model, error) {
	if err := checkInput(x, y); err != nil {
		return nil, err
	}
	classes, _ := classIndex(y)
	m := newModel(classes, nFeatures)
	if len(classes) == 1 {
		return m, nil
	}

	for k, class := range classes {
		sign := make([]float64, len(y))
		for i, label := range y {
			if label == class {
				sign[i] = 1
			} else {
				sign[i] = -1
			}
		}
		m.Intercepts[k] = s.fitBinary(x, sign, m.Weights[k])
	}
	return m, nil
}

// fitBinary solves the dual for labels in {-1,+1}, writes the weights into w
// and returns the bias.
func (s LinearSVM) fitBinary(x []Vector, sign []float64, w []float64) float64 {
	c := s.C
	if c <= 0 {
		c = 1
	}
	diag := 1 / (2 * c)

	n := len(x)
	alpha := make([]float64, n)
	qd := make([]float64, n)
	for i, xi := range x {
		qd[i] = xi.SquaredNorm() + 1 + diag
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewPCG(s.Seed, s.Seed+1))

	var bias float64
	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = 1000
	}
	tol := s.Tol
	if tol <= 0 {
		tol = 1e-4
	}

	iter := 0
	for ; iter < maxIter; iter++ {
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

		pgMax, pgMin := math.Inf(-1), math.Inf(1)
		for _, i := range order {
			g := sign[i]*(x[i].Dot(w)+bias) - 1 + diag*alpha[i]

			pg := g
			if alpha[i] == 0 && g > 0 {
				pg = 0
			}
			pgMax = math.Max(pgMax, pg)
			pgMin = math.Min(pgMin, pg)

			if math.Abs(pg) < 1e-12 {
				continue
			}
			old := alpha[i]
			alpha[i] = math.Max(old-g/qd[i], 0)
			d := (alpha[i] - old) * sign[i]
			x[i].AddScaled(w, d)
			bias += d
		}

		if pgMax-pgMin <= tol {
			break
		}
	}
	if iter == maxIter {
		slog.Debug("Linear SVM hit iteration cap", "max_iter", maxIter)
	}
	return bias
}
