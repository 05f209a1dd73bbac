package linear

import (
	"log/slog"
	"math"
)

// ClassWeight selects how per-sample loss weights are derived from labels.
type ClassWeight int

const (
	// Uniform weighs every sample equally.
	Uniform ClassWeight = iota
	// Balanced weighs class c by n / (k * n_c) to offset class-count skew.
	Balanced
)

// LogisticRegression is an L2-regularized multinomial logistic regression
// fitted by accelerated full-batch gradient descent.
type LogisticRegression struct {
	C           float64
	Tol         float64
	MaxIter     int
	ClassWeight ClassWeight
}

// NewLogisticRegression returns a classifier with C=1, balanced weights and a
// 2000 iteration cap.
func NewLogisticRegression() LogisticRegression {
	return LogisticRegression{C: 1, Tol: 1e-4, MaxIter: 2000, ClassWeight: Balanced}
}

// Fit trains the model. The loss is averaged over samples and the intercepts
// are not penalized.
func (lr LogisticRegression) Fit(x []Vector, y []int, nFeatures int) (*Model, error) {
	if err := checkInput(x, y); err != nil {
		return nil, err
	}
	classes, index := classIndex(y)
	m := newModel(classes, nFeatures)
	if len(classes) == 1 {
		return m, nil
	}

	n := len(x)
	k := len(classes)
	target := make([]int, n)
	for i, label := range y {
		target[i] = index[label]
	}
	weights := sampleWeights(target, k, lr.ClassWeight)

	c := lr.C
	if c <= 0 {
		c = 1
	}
	reg := 1 / (c * float64(n))

	// Softmax curvature is bounded by 1/2 per unit of squared input norm.
	var maxNorm, maxWeight float64
	for i, xi := range x {
		maxNorm = math.Max(maxNorm, xi.SquaredNorm())
		maxWeight = math.Max(maxWeight, weights[i])
	}
	step := 1 / (0.5*maxWeight*(maxNorm+1) + reg)

	stride := nFeatures + 1
	theta := make([]float64, k*stride)
	prev := make([]float64, k*stride)
	look := make([]float64, k*stride)
	grad := make([]float64, k*stride)

	iter := 0
	for iter = 1; iter <= lr.maxIter(); iter++ {
		momentum := float64(iter-1) / float64(iter+2)
		for j := range look {
			look[j] = theta[j] + momentum*(theta[j]-prev[j])
		}

		gmax := lr.gradient(look, grad, x, target, weights, k, stride, reg)
		if gmax < lr.tol() {
			copy(theta, look)
			break
		}

		copy(prev, theta)
		for j := range theta {
			theta[j] = look[j] - step*grad[j]
		}
	}
	if iter > lr.maxIter() {
		slog.Debug("Logistic regression hit iteration cap", "max_iter", lr.maxIter())
	}

	for r := 0; r < k; r++ {
		copy(m.Weights[r], theta[r*stride:r*stride+nFeatures])
		m.Intercepts[r] = theta[r*stride+nFeatures]
	}
	return m, nil
}

// gradient fills grad with the objective gradient at theta and returns its
// largest absolute component.
func (lr LogisticRegression) gradient(theta, grad []float64, x []Vector, target []int, weights []float64, k, stride int, reg float64) float64 {
	nFeatures := stride - 1
	n := float64(len(x))

	for j := range grad {
		grad[j] = 0
	}
	for r := 0; r < k; r++ {
		row := theta[r*stride : r*stride+nFeatures]
		g := grad[r*stride : r*stride+nFeatures]
		for f := range row {
			g[f] = reg * row[f]
		}
	}

	probs := make([]float64, k)
	for i, xi := range x {
		for r := 0; r < k; r++ {
			probs[r] = xi.Dot(theta[r*stride:r*stride+nFeatures]) + theta[r*stride+nFeatures]
		}
		softmax(probs)
		for r := 0; r < k; r++ {
			d := probs[r]
			if r == target[i] {
				d--
			}
			d *= weights[i] / n
			if d == 0 {
				continue
			}
			xi.AddScaled(grad[r*stride:r*stride+nFeatures], d)
			grad[r*stride+nFeatures] += d
		}
	}

	var gmax float64
	for _, g := range grad {
		gmax = math.Max(gmax, math.Abs(g))
	}
	return gmax
}

func (lr LogisticRegression) maxIter() int {
	if lr.MaxIter <= 0 {
		return 2000
	}
	return lr.MaxIter
}

func (lr LogisticRegression) tol() float64 {
	if lr.Tol <= 0 {
		return 1e-4
	}
	return lr.Tol
}

// softmax converts scores into probabilities in place.
func softmax(scores []float64) {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		maxScore = math.Max(maxScore, s)
	}
	var sum float64
	for i, s := range scores {
		scores[i] = math.Exp(s - maxScore)
		sum += scores[i]
	}
	for i := range scores {
		scores[i] /= sum
	}
}

func sampleWeights(target []int, k int, cw ClassWeight) []float64 {
	weights := make([]float64, len(target))
	if cw != Balanced {
		for i := range weights {
			weights[i] = 1
		}
		return weights
	}

	counts := make([]int, k)
	for _, t := range target {
		counts[t]++
	}
	n := float64(len(target))
	for i, t := range target {
		weights[i] = n / (float64(k) * float64(counts[t]))
	}
	return weights
}
