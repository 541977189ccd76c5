// Package recommend scores skin-quiz answers against service categories and
// suggests matching treatments from the catalog.
package recommend

import (
	"sort"

	"github.com/glowtouch/booking-gateway/internal/availability"
)

// Answer is one quiz response mapped to a service category with a weight.
type Answer struct {
	QuestionID string `json:"questionId"`
	CategoryID string `json:"categoryId"`
	Weight     int    `json:"weight"`
}

// CategoryScores sums answer weights per category. Answers without a
// category or with a non-positive weight are ignored.
func CategoryScores(answers []Answer) map[string]int {
	scores := make(map[string]int)
	for _, a := range answers {
		if a.CategoryID == "" || a.Weight <= 0 {
			continue
		}
		scores[a.CategoryID] += a.Weight
	}
	return scores
}

// Services ranks active catalog services by their category's quiz score,
// dropping services in unscored categories. Ties keep catalog order; limit
// <= 0 means no limit.
func Services(answers []Answer, catalog []availability.Service, limit int) []availability.Service {
	scores := CategoryScores(answers)
	if len(scores) == 0 {
		return nil
	}

	type ranked struct {
		svc   availability.Service
		score int
		pos   int
	}
	var candidates []ranked
	for i, svc := range catalog {
		if !svc.Active {
			continue
		}
		score, ok := scores[svc.CategoryID]
		if !ok {
			continue
		}
		candidates = append(candidates, ranked{svc: svc, score: score, pos: i})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].pos < candidates[j].pos
	})

	if len(candidates) == 0 {
		return nil
	}
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]availability.Service, len(candidates))
	for i, c := range candidates {
		out[i] = c.svc
	}
	return out
}
