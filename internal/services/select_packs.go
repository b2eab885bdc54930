package services

import (
	"commute-learning-service/internal/domain"
	"slices"
)

// SelectPacks chooses packs that fit within budgetMinutes using a greedy
// ascending-cost walk.
//
// Packs are stable-sorted by EstimatedMinutes, so equal-cost packs keep their
// catalog order. Each pack is taken if it still fits; packs that do not fit are
// skipped rather than ending the walk. When nothing fits, the single cheapest
// pack is returned regardless of budget, so a non-empty catalog never yields
// an empty result. Invalid packs are ignored. budgetMinutes is not validated.
func SelectPacks(catalog []domain.LearningPack, budgetMinutes int) []domain.LearningPack {
	sorted := make([]domain.LearningPack, 0, len(catalog))
	for _, p := range catalog {
		if p.Validate() != nil {
			continue
		}
		sorted = append(sorted, p)
	}

	slices.SortStableFunc(sorted, func(a, b domain.LearningPack) int {
		return a.EstimatedMinutes - b.EstimatedMinutes
	})

	result := fitBudget(sorted, budgetMinutes)
	if len(result) == 0 && len(sorted) > 0 {
		return sorted[:1]
	}

	return result
}

// fitBudget walks packs in the given order and keeps every pack that still fits.
func fitBudget(ordered []domain.LearningPack, budgetMinutes int) []domain.LearningPack {
	result := make([]domain.LearningPack, 0, len(ordered))
	used := 0
	for _, p := range ordered {
		if used+p.EstimatedMinutes <= budgetMinutes {
			result = append(result, p)
			used += p.EstimatedMinutes
		}
	}
	return result
}

// TotalMinutes sums EstimatedMinutes across packs.
func TotalMinutes(packs []domain.LearningPack) int {
	total := 0
	for _, p := range packs {
		total += p.EstimatedMinutes
	}
	return total
}

// ClampMinutes rounds a requested budget into [minMinutes, maxMinutes].
func ClampMinutes(v, minMinutes, maxMinutes int) int {
	if v < minMinutes {
		return minMinutes
	}
	if v > maxMinutes {
		return maxMinutes
	}
	return v
}
