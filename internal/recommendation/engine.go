package recommendation

import (
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
)

// Input is the state a rule evaluation sees
type Input struct {
	Inventory []domain.ClassifiedItem
	Weather   string
	Signals   []domain.IntelligenceSignal
}

// Rule is one independent condition that yields at most one recommendation
type Rule struct {
	Name     string
	Category string
	Eval     func(in Input) *domain.Recommendation
}

// Firing records a rule that triggered and what it produced
type Firing struct {
	Rule           string
	Recommendation domain.Recommendation
}

// Engine evaluates an ordered rule list and merges the result into a held set
type Engine struct {
	rules   []Rule
	dynamic map[string]bool
}

// NewEngine creates an engine over the given rules, kept in order.
func NewEngine(rules ...Rule) *Engine {
	e := &Engine{
		rules:   append([]Rule(nil), rules...),
		dynamic: make(map[string]bool, len(rules)),
	}
	for _, r := range rules {
		e.dynamic[categoryKey(r.Category)] = true
	}
	return e
}

// NewDefaultEngine creates an engine over DefaultRules.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultRules()...)
}

// Rules returns the rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// DynamicCategories returns the categories this engine can produce, in rule order.
func (e *Engine) DynamicCategories() []string {
	seen := make(map[string]bool, len(e.rules))
	out := make([]string, 0, len(e.dynamic))
	for _, r := range e.rules {
		if seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		out = append(out, r.Category)
	}
	return out
}

// IsDynamic reports whether entries of the category are replaced on each evaluation.
func (e *Engine) IsDynamic(category string) bool {
	return e.dynamic[categoryKey(category)]
}

// Fire runs every rule against the input and returns the triggered ones in rule order.
// The rule's category always wins over whatever the rule body set.
func (e *Engine) Fire(in Input) []Firing {
	fired := make([]Firing, 0, len(e.rules))
	for _, r := range e.rules {
		rec := r.Eval(in)
		if rec == nil {
			continue
		}
		out := *rec
		out.Category = r.Category
		out.TriggerSources = append(domain.StringList(nil), rec.TriggerSources...)
		fired = append(fired, Firing{Rule: r.Name, Recommendation: out})
	}
	return fired
}

// Evaluate fires the rules and merges the fresh recommendations into previous.
func (e *Engine) Evaluate(in Input, previous []domain.Recommendation) []domain.Recommendation {
	fired := e.Fire(in)
	fresh := make([]domain.Recommendation, len(fired))
	for i, f := range fired {
		fresh[i] = f.Recommendation
	}
	return Merge(previous, fresh, e.DynamicCategories())
}

// Merge drops every previous entry whose category is dynamic, then returns the
// fresh entries followed by the surviving previous ones. Neither input is modified
// and no re-sorting is done. Categories compare case-insensitively.
func Merge(previous, fresh []domain.Recommendation, dynamic []string) []domain.Recommendation {
	drop := make(map[string]bool, len(dynamic))
	for _, c := range dynamic {
		drop[categoryKey(c)] = true
	}

	merged := make([]domain.Recommendation, 0, len(fresh)+len(previous))
	merged = append(merged, fresh...)
	for _, rec := range previous {
		if drop[categoryKey(rec.Category)] {
			continue
		}
		merged = append(merged, rec)
	}
	return merged
}

func categoryKey(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
