// Package evaluation scores predictions and renders the training report.
package evaluation

import (
	"fmt"

	"github.com/Veraticus/complaint-sorter/internal/model"
)

// Evaluate compares predictions with the true labels. Macro-F1 averages
// over the labels present in either sequence; an undefined ratio counts as 0.
func Evaluate(truth, predicted []model.Label) (model.Metrics, error) {
	if len(truth) != len(predicted) {
		return model.Metrics{}, fmt.Errorf("cannot evaluate %d predictions against %d labels", len(predicted), len(truth))
	}

	m := model.Metrics{Samples: len(truth)}
	correct := 0
	for i, t := range truth {
		p := predicted[i]
		if !t.Valid() || !p.Valid() {
			return model.Metrics{}, fmt.Errorf("invalid label at %d: true %d, predicted %d", i, int(t), int(p))
		}
		m.Confusion[t][p]++
		if t == p {
			correct++
		}
	}
	if len(truth) > 0 {
		m.Accuracy = float64(correct) / float64(len(truth))
	}

	var f1Sum float64
	present := 0
	for _, l := range model.AllLabels() {
		cm := classMetrics(m.Confusion, l)
		predictedCount := 0
		for t := range m.Confusion {
			predictedCount += m.Confusion[t][l]
		}
		if cm.Support == 0 && predictedCount == 0 {
			continue
		}
		m.PerClass = append(m.PerClass, cm)
		f1Sum += cm.F1
		present++
	}
	if present > 0 {
		m.MacroF1 = f1Sum / float64(present)
	}
	return m, nil
}

func classMetrics(cm model.ConfusionMatrix, l model.Label) model.ClassMetrics {
	tp := cm[l][l]
	var predicted, support int
	for k := range cm {
		predicted += cm[k][l]
		support += cm[l][k]
	}

	out := model.ClassMetrics{Label: l, Support: support}
	out.Precision = ratio(tp, predicted)
	out.Recall = ratio(tp, support)
	if out.Precision+out.Recall > 0 {
		out.F1 = 2 * out.Precision * out.Recall / (out.Precision + out.Recall)
	}
	return out
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
