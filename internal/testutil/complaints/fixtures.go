package complaints

import (
	"fmt"

	"github.com/Veraticus/complaint-sorter/internal/model"
	"github.com/Veraticus/complaint-sorter/internal/normalize"
)

// Vocabulary holds the distinguishing words of each label.
var Vocabulary = [model.NumLabels][]string{
	model.LabelCreditReporting: {"credit", "report", "bureau", "inaccurate", "equifax", "transunion", "experian", "dispute", "score", "inquiry"},
	model.LabelDebtCollection:  {"collector", "debt", "calls", "harassment", "owed", "collection", "agency", "validation", "threatening", "voicemail"},
	model.LabelConsumerLoan:    {"loan", "installment", "lender", "payday", "vehicle", "repossession", "auto", "title", "borrow", "apr"},
	model.LabelMortgage:        {"mortgage", "escrow", "foreclosure", "servicer", "modification", "refinance", "home", "property", "appraisal", "closing"},
}

// RawCategories holds a raw product string per label as found in source data.
var RawCategories = [model.NumLabels]string{
	model.LabelCreditReporting: "Credit reporting, credit repair services, or other personal consumer reports",
	model.LabelDebtCollection:  "Debt collection",
	model.LabelConsumerLoan:    "Consumer Loan",
	model.LabelMortgage:        "Mortgage",
}

var fillers = []string{"please help", "thank you", "this is unfair", "since last year", "again and again"}

// Narrative returns the i-th synthetic narrative for label.
func Narrative(label model.Label, i int) string {
	w := Vocabulary[label]
	return fmt.Sprintf("I am writing about my %s and the %s because %s was not %s,\n%s. Ref http://example.com/%d",
		w[i%len(w)], w[(i+3)%len(w)], w[(i+7)%len(w)], w[(i+5)%len(w)], fillers[i%len(fillers)], i)
}

// Records returns perClass raw records for every label, interleaved by label.
func Records(perClass int) []model.RawRecord {
	records := make([]model.RawRecord, 0, perClass*model.NumLabels)
	for i := 0; i < perClass; i++ {
		for _, l := range model.AllLabels() {
			records = append(records, model.RawRecord{
				Narrative: Narrative(l, i),
				Category:  RawCategories[l],
			})
		}
	}
	return records
}

// Examples returns the normalized, labeled form of Records.
func Examples(perClass int) []model.Example {
	examples := make([]model.Example, 0, perClass*model.NumLabels)
	for i := 0; i < perClass; i++ {
		for _, l := range model.AllLabels() {
			examples = append(examples, model.Example{Text: normalize.String(Narrative(l, i)), Label: l})
		}
	}
	return examples
}

// Exemplars returns one unseen phrase per label.
func Exemplars() map[model.Label]string {
	return map[model.Label]string{
		model.LabelCreditReporting: "The credit bureau put an inaccurate account on my report and ignored my dispute",
		model.LabelDebtCollection:  "A debt collector keeps making threatening calls about money I never owed",
		model.LabelConsumerLoan:    "The payday lender added fees to my auto installment loan",
		model.LabelMortgage:        "My mortgage servicer mishandled escrow and started foreclosure on my home",
	}
}
