package evaluation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/complaint-sorter/internal/model"
)

// WriteReport renders one section per candidate and a trailing best-model line.
func WriteReport(w io.Writer, results []model.CandidateResult, bestName string, bestF1 float64) error {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "=== %s ===\n", r.Name)
		fmt.Fprintf(&b, "accuracy: %.4f\n", r.Metrics.Accuracy)
		fmt.Fprintf(&b, "f1_macro: %.4f\n", r.Metrics.MacroF1)
		b.WriteString("confusion_matrix:\n")
		b.WriteString(FormatConfusion(r.Metrics.Confusion))
		b.WriteString("\nclassification_report:\n")
		b.WriteString(ClassificationReport(r.Metrics))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "BEST_MODEL: %s (f1_macro=%.4f)", bestName, bestF1)

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatConfusion renders the matrix as a JSON array of rows.
func FormatConfusion(cm model.ConfusionMatrix) string {
	rows := make([][]int, len(cm))
	for i := range cm {
		rows[i] = cm[i][:]
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Sprint(rows)
	}
	return string(data)
}

// ClassificationReport renders a precision/recall/F1/support table with
// accuracy, macro and support-weighted averages.
func ClassificationReport(m model.Metrics) string {
	const width = 12
	var b strings.Builder
	fmt.Fprintf(&b, "%*s %10s %10s %10s %10s\n\n", width, "", "precision", "recall", "f1-score", "support")

	var macro, weighted [3]float64
	support := 0
	for _, c := range m.PerClass {
		fmt.Fprintf(&b, "%*d %10.4f %10.4f %10.4f %10d\n", width, int(c.Label), c.Precision, c.Recall, c.F1, c.Support)
		macro[0] += c.Precision
		macro[1] += c.Recall
		macro[2] += c.F1
		weighted[0] += c.Precision * float64(c.Support)
		weighted[1] += c.Recall * float64(c.Support)
		weighted[2] += c.F1 * float64(c.Support)
		support += c.Support
	}
	if n := float64(len(m.PerClass)); n > 0 {
		for i := range macro {
			macro[i] /= n
		}
	}
	if support > 0 {
		for i := range weighted {
			weighted[i] /= float64(support)
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%*s %10s %10s %10.4f %10d\n", width, "accuracy", "", "", m.Accuracy, m.Samples)
	fmt.Fprintf(&b, "%*s %10.4f %10.4f %10.4f %10d\n", width, "macro avg", macro[0], macro[1], macro[2], m.Samples)
	fmt.Fprintf(&b, "%*s %10.4f %10.4f %10.4f %10d\n", width, "weighted avg", weighted[0], weighted[1], weighted[2], m.Samples)
	return b.String()
}
