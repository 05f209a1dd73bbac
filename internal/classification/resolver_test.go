package classification

import (
	"testing"

	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		input  any
		name   string
		want   model.Label
		mapped bool
	}{
		{name: "exact mortgage", input: "Mortgage", want: model.LabelMortgage, mapped: true},
		{name: "prefix mortgage", input: "mortgage modification", want: model.LabelMortgage, mapped: true},
		{name: "padded upper mortgage", input: "MORTGAGE ", want: model.LabelMortgage, mapped: true},
		{name: "credit reporting long form", input: "Credit reporting, credit repair services, or other personal consumer reports", want: model.LabelCreditReporting, mapped: true},
		{name: "credit reporting exact", input: "Credit reporting", want: model.LabelCreditReporting, mapped: true},
		{name: "debt collection", input: "Debt collection", want: model.LabelDebtCollection, mapped: true},
		{name: "consumer loan", input: "Consumer Loan", want: model.LabelConsumerLoan, mapped: true},
		{name: "substring anywhere", input: "Payday loan, consumer loan, title loan", want: model.LabelConsumerLoan, mapped: true},
		{name: "student loan", input: "Student Loan", mapped: false},
		{name: "credit card", input: "Credit card or prepaid card", mapped: false},
		{name: "empty", input: "", mapped: false},
		{name: "whitespace", input: "   ", mapped: false},
		{name: "nil", input: nil, mapped: false},
		{name: "number", input: 3, mapped: false},
		{name: "float", input: 3.0, mapped: false},
	}

	r := DefaultResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.input)
			assert.Equal(t, tt.mapped, ok)
			if tt.mapped {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolvePriorityOrder(t *testing.T) {
	r := DefaultResolver()

	// Both keywords present: the earlier rule wins.
	got, ok := r.Resolve("mortgage and consumer loan")
	assert.True(t, ok)
	assert.Equal(t, model.LabelConsumerLoan, got)

	got, ok = r.Resolve("debt collection for a mortgage")
	assert.True(t, ok)
	assert.Equal(t, model.LabelDebtCollection, got)

	got, ok = r.Resolve("credit reporting about debt collection")
	assert.True(t, ok)
	assert.Equal(t, model.LabelCreditReporting, got)
}

func TestResolveDeterministic(t *testing.T) {
	r := DefaultResolver()
	for i := 0; i < 50; i++ {
		got, ok := r.Resolve("Mortgage; debt collection")
		assert.True(t, ok)
		assert.Equal(t, model.LabelDebtCollection, got)
	}
}

func TestNewResolverNormalizesKeywords(t *testing.T) {
	r := NewResolver([]LabelRule{
		{Label: model.LabelMortgage, Keywords: []string{"  HOME Loan ", ""}},
	})

	got, ok := r.Resolve("home loan servicing")
	assert.True(t, ok)
	assert.Equal(t, model.LabelMortgage, got)

	_, ok = r.Resolve("anything")
	assert.False(t, ok)
}

func TestDefaultRulesCoverEveryLabel(t *testing.T) {
	rules := DefaultRules()
	seen := make([]model.Label, 0, len(rules))
	for _, rule := range rules {
		seen = append(seen, rule.Label)
	}
	assert.Equal(t, model.AllLabels(), seen)
}
