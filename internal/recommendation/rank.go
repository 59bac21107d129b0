package recommendation

import (
	"sort"
	"strings"

	"github.com/andresuchdata/kopik/backend-go/internal/domain"
)

// Ranked returns a display-ordered copy: priority high to low, then profit impact
// descending, then title ascending.
func Ranked(recs []domain.Recommendation) []domain.Recommendation {
	out := append([]domain.Recommendation(nil), recs...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if pi != pj {
			return pi < pj
		}
		if out[i].ProfitImpact != out[j].ProfitImpact {
			return out[i].ProfitImpact > out[j].ProfitImpact
		}
		return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
	})
	return out
}

// Filter returns recommendations matching the priority and category, both optional.
func Filter(recs []domain.Recommendation, priority, category string) []domain.Recommendation {
	out := make([]domain.Recommendation, 0, len(recs))
	for _, r := range recs {
		if priority != "" && !strings.EqualFold(string(r.Priority), priority) {
			continue
		}
		if category != "" && !strings.EqualFold(category, "all") && !strings.EqualFold(r.Category, category) {
			continue
		}
		out = append(out, r)
	}
	return out
}
