package services

import (
	"sort"
	"strings"

	"scamshield/internal/domain/models"
)

// clampScore bounds a score to [0,100]
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// urlRiskLevel buckets a URL sub-score: safe <30, suspicious <60
func urlRiskLevel(score int) models.RiskLevel {
	switch {
	case score < 30:
		return models.RiskLevelSafe
	case score < 60:
		return models.RiskLevelSuspicious
	default:
		return models.RiskLevelDangerous
	}
}

// messageRiskLevel buckets a message score: safe <25, suspicious <50
func messageRiskLevel(score int) models.RiskLevel {
	switch {
	case score < 25:
		return models.RiskLevelSafe
	case score < 50:
		return models.RiskLevelSuspicious
	default:
		return models.RiskLevelDangerous
	}
}

// contentRiskLevel buckets a page content score: safe <30, suspicious <60
func contentRiskLevel(score int) models.RiskLevel {
	switch {
	case score < 30:
		return models.RiskLevelSafe
	case score < 60:
		return models.RiskLevelSuspicious
	default:
		return models.RiskLevelDangerous
	}
}

// unifiedRiskLevel buckets the combined score: safe <=29, suspicious <=59
func unifiedRiskLevel(score int) models.RiskLevel {
	switch {
	case score <= 29:
		return models.RiskLevelSafe
	case score <= 59:
		return models.RiskLevelSuspicious
	default:
		return models.RiskLevelDangerous
	}
}

// topFactors returns up to n factors ordered by weight, ties keeping input order
func topFactors(factors []models.RiskFactor, n int) []models.RiskFactor {
	sorted := make([]models.RiskFactor, len(factors))
	copy(sorted, factors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func sumWeights(factors []models.RiskFactor) int {
	total := 0
	for _, f := range factors {
		total += f.Weight
	}
	return total
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
