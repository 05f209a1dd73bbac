package classification

import "github.com/Veraticus/complaint-sorter/internal/model"

// LabelRule maps a set of keywords onto a label.
type LabelRule struct {
	Keywords []string
	Label    model.Label
}

// DefaultRules returns the product keyword rules in priority order.
// Order matters: a category naming several products resolves to the first
// rule that matches.
func DefaultRules() []LabelRule {
	return []LabelRule{
		{Label: model.LabelCreditReporting, Keywords: []string{"credit reporting"}},
		{Label: model.LabelDebtCollection, Keywords: []string{"debt collection"}},
		{Label: model.LabelConsumerLoan, Keywords: []string{"consumer loan"}},
		{Label: model.LabelMortgage, Keywords: []string{"mortgage"}},
	}
}
