// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// Label is one of the four fixed product categories a complaint can be assigned to.
type Label int

// Label codes. The set is closed: nothing outside 0..3 is ever produced.
const (
	LabelCreditReporting Label = iota
	LabelDebtCollection
	LabelConsumerLoan
	LabelMortgage
)

// NumLabels is the number of label codes.
const NumLabels = 4

var labelNames = [NumLabels]string{
	LabelCreditReporting: "Credit reporting, repair, or other",
	LabelDebtCollection:  "Debt collection",
	LabelConsumerLoan:    "Consumer Loan",
	LabelMortgage:        "Mortgage",
}

// AllLabels returns every label ordered by code.
func AllLabels() []Label {
	return []Label{LabelCreditReporting, LabelDebtCollection, LabelConsumerLoan, LabelMortgage}
}

// Valid reports whether l is one of the four label codes.
func (l Label) Valid() bool {
	return l >= 0 && l < NumLabels
}

// Name returns the canonical display name of the label.
func (l Label) Name() string {
	if !l.Valid() {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

func (l Label) String() string {
	return l.Name()
}

// ParseLabel converts an integer code into a Label.
func ParseLabel(code int) (Label, error) {
	l := Label(code)
	if !l.Valid() {
		return 0, fmt.Errorf("invalid label code %d", code)
	}
	return l, nil
}

// LabelMapping returns the code -> name mapping keyed by the decimal code.
func LabelMapping() map[string]string {
	m := make(map[string]string, NumLabels)
	for _, l := range AllLabels() {
		m[fmt.Sprintf("%d", int(l))] = l.Name()
	}
	return m
}
