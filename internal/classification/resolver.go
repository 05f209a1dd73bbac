// Package classification resolves raw product categories into label codes.
package classification

import (
	"strings"

	"github.com/Veraticus/complaint-sorter/internal/model"
)

// Resolver maps raw category strings onto the closed label set.
type Resolver struct {
	rules []LabelRule
}

// NewResolver creates a resolver that evaluates rules in the order given.
func NewResolver(rules []LabelRule) *Resolver {
	normalized := make([]LabelRule, 0, len(rules))
	for _, r := range rules {
		keys := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				keys = append(keys, k)
			}
		}
		normalized = append(normalized, LabelRule{Label: r.Label, Keywords: keys})
	}
	return &Resolver{rules: normalized}
}

// DefaultResolver returns a resolver over DefaultRules.
func DefaultResolver() *Resolver {
	return NewResolver(DefaultRules())
}

// Resolve returns the label for raw, or false when raw is not a string or
// matches no rule.
func (r *Resolver) Resolve(raw any) (model.Label, bool) {
	s, ok := raw.(string)
	if !ok {
		return 0, false
	}
	return r.ResolveString(s)
}

// ResolveString is Resolve for values already known to be strings.
func (r *Resolver) ResolveString(raw string) (model.Label, bool) {
	p := strings.ToLower(strings.TrimSpace(raw))
	for _, rule := range r.rules {
		for _, k := range rule.Keywords {
			// Equality and prefix are subsumed by the substring test but kept
			// so the three accepted shapes stay visible.
			if p == k || strings.HasPrefix(p, k) || strings.Contains(p, k) {
				return rule.Label, true
			}
		}
	}
	return 0, false
}
