package model

// RawRecord is a complaint row as read from the source file.
// Category is kept as any because the source may hold non-string values.
type RawRecord struct {
	Narrative any
	Category  any
}

// Example is a normalized narrative with its resolved label.
type Example struct {
	Text  string
	Label Label
}

// Split holds the two disjoint, class-stratified partitions of a prepared dataset.
type Split struct {
	Train []Example
	Test  []Example
}

// Texts returns the texts of the examples in order.
func Texts(examples []Example) []string {
	out := make([]string, len(examples))
	for i, ex := range examples {
		out[i] = ex.Text
	}
	return out
}

// Labels returns the labels of the examples in order.
func Labels(examples []Example) []Label {
	out := make([]Label, len(examples))
	for i, ex := range examples {
		out[i] = ex.Label
	}
	return out
}

// Summary describes a preparation run.
type Summary struct {
	ClassCounts  map[string]int    `json:"class_counts"`
	LabelMapping map[string]string `json:"label_mapping"`
	TotalKept    int               `json:"n_total_kept"`
	Train        int               `json:"n_train"`
	Test         int               `json:"n_test"`
	TotalRead    int               `json:"n_total_read"`
	Unmapped     int               `json:"n_dropped_unmapped"`
	TooShort     int               `json:"n_dropped_short"`
}
