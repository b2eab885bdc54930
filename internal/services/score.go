package services

import "commute-learning-service/internal/domain"

// Tags that earn a ranking bonus in EfficiencyScore.
type ScoringTags struct {
	WorkRelevance string
	Fundamentals  string
	OfficialDocs  string
}

// DefaultScoringTags matches the tag vocabulary of the built-in catalog.
var DefaultScoringTags = ScoringTags{
	WorkRelevance: "업무연결",
	Fundamentals:  "기초다지기",
	OfficialDocs:  "공식문서",
}

// EfficiencyScore rates how worthwhile a pack is for a short commute.
//
// The score starts at 1.0, adds independent tag bonuses (+0.3 work relevance,
// +0.2 fundamentals, +0.2 official docs) and a time-window bonus
// (+0.2 for 5-15 minutes, +0.1 for 16-25 minutes). It is a view of
// scoreTenths, which ranking compares directly.
func EfficiencyScore(p domain.LearningPack, tags ScoringTags) float64 {
	return float64(scoreTenths(p, tags)) / 10
}

// scoreTenths is EfficiencyScore in integer tenths, so equal scores compare equal.
func scoreTenths(p domain.LearningPack, tags ScoringTags) int {
	score := 10

	if tags.WorkRelevance != "" && p.HasTag(tags.WorkRelevance) {
		score += 3
	}
	if tags.Fundamentals != "" && p.HasTag(tags.Fundamentals) {
		score += 2
	}
	if tags.OfficialDocs != "" && p.HasTag(tags.OfficialDocs) {
		score += 2
	}

	switch m := p.EstimatedMinutes; {
	case m >= 5 && m <= 15:
		score += 2
	case m >= 16 && m <= 25:
		score += 1
	}

	return score
}
