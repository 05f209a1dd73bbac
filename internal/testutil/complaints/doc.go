// Package complaints provides synthetic complaint fixtures for tests.
//
// Each label has its own vocabulary so a correctly wired pipeline separates
// the classes almost perfectly:
//
//	records := complaints.Records(25)          // 100 raw records, 25 per label
//	examples := complaints.Examples(25)        // the same, already labeled
//	for label, phrase := range complaints.Exemplars() { ... }
package complaints
