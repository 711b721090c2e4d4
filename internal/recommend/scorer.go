package recommend

import "counsellor/internal/domain"

// Score picks the category that best matches tokens.
//
// A category scores one point per token found in its keyword set (duplicates
// count again) plus the personality bonus of its traits. Only categories with
// a positive total are candidates. The strictly highest total wins; on a tie
// the category that appears first in categories is kept. The boolean is false
// when no category is a candidate.
func Score(tokens []string, categories []domain.CareerCategory, personality domain.PersonalityScore) (domain.RecommendationResult, bool) {
	var (
		best  domain.RecommendationResult
		found bool
	)
	for _, c := range categories {
		score := keywordHits(tokens, c)
		if len(personality) > 0 {
			score += personality.Bonus(c.PersonalityTraits)
		}
		if score <= 0 || len(c.Careers) == 0 {
			continue
		}
		if !found || score > best.Score {
			best = domain.RecommendationResult{Interest: c.Interest, Score: score, Careers: c.Careers}
			found = true
		}
	}
	return best, found
}

func keywordHits(tokens []string, c domain.CareerCategory) float64 {
	hits := 0
	for _, t := range tokens {
		if c.HasKeyword(t) {
			hits++
		}
	}
	return float64(hits)
}
