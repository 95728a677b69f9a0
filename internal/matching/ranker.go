package matching

import (
	"sort"

	"github.com/founderlink/founderlink/internal/core"
)

// Rank filters out suggestions below minScore, sorts the rest by
// overall score descending, and truncates to limit. The sort is
// stable: equal scores keep their discovery order.
func Rank(suggestions []core.Suggestion, minScore float64, limit int) []core.Suggestion {
	ranked := make([]core.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if s.Score.Overall >= minScore {
			ranked = append(ranked, s)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Overall > ranked[j].Score.Overall
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
