package services

import (
	"fmt"
	"math"
	"strings"

	"scamshield/internal/domain/models"
)

// RiskAggregator reconciles URL and page content analyses into one verdict
type RiskAggregator struct{}

// NewRiskAggregator creates a new risk aggregator
func NewRiskAggregator() *RiskAggregator {
	return &RiskAggregator{}
}

// CombineScores merges the two sub-scores: the stronger signal wins outright
// once either passes 50, otherwise content is weighted 60/40 over the URL.
func CombineScores(urlScore, contentScore int) int {
	if urlScore > 50 || contentScore > 50 {
		return max(urlScore, contentScore)
	}
	return int(math.Round(float64(urlScore)*0.4 + float64(contentScore)*0.6))
}

// FromURL passes the URL assessment through, naming the scam type
func (g *RiskAggregator) FromURL(f *models.DomainFactors, urlResult *models.RiskAssessment) *models.RiskAssessment {
	out := *urlResult
	out.Factors = append([]models.RiskFactor(nil), urlResult.Factors...)

	switch {
	case f.DetectedBrand != "":
		out.ScamType = models.BrandImpersonationLabel(f.DetectedBrand)
	case out.RiskLevel != models.RiskLevelSafe:
		out.ScamType = models.ScamTypePhishing
	default:
		out.ScamType = models.ScamTypeUnknown
	}
	return &out
}

// Combine merges URL and content analyses of the same page
func (g *RiskAggregator) Combine(f *models.DomainFactors, urlResult *models.RiskAssessment, content *models.ContentAnalysis) *models.RiskAssessment {
	score := clampScore(CombineScores(urlResult.Score, content.Score))
	level := unifiedRiskLevel(score)

	factors := make([]models.RiskFactor, 0, len(urlResult.Factors)+len(content.Factors))
	for _, rf := range urlResult.Factors {
		rf.Source = models.FactorSourceURL
		factors = append(factors, rf)
	}
	for _, rf := range content.Factors {
		rf.Source = models.FactorSourceContent
		factors = append(factors, rf)
	}

	var scamType string
	switch {
	case content.Brand.ImpersonatedBrand != "":
		scamType = models.BrandImpersonationLabel(content.Brand.ImpersonatedBrand)
	case f.DetectedBrand != "":
		scamType = models.BrandImpersonationLabel(f.DetectedBrand)
	case content.Login.HasSensitiveFields:
		scamType = models.ScamTypeCredentialHarvesting
	case score > 50:
		scamType = models.ScamTypePhishing
	default:
		scamType = models.ScamTypeUnknown
	}

	contentConfidence := 50
	if content.Score > 0 {
		contentConfidence = 70
	}
	confidence := int(math.Round(float64(urlResult.Confidence+contentConfidence) / 2))

	return &models.RiskAssessment{
		Score:       score,
		RiskLevel:   level,
		IsScam:      level == models.RiskLevelDangerous,
		ScamType:    scamType,
		Confidence:  confidence,
		Explanation: explainCombined(level, f, content),
		Factors:     factors,
	}
}

func explainCombined(level models.RiskLevel, f *models.DomainFactors, content *models.ContentAnalysis) string {
	var parts []string

	switch {
	case content.Brand.ImpersonatedBrand != "":
		parts = append(parts, fmt.Sprintf("This page appears to impersonate %s but is not hosted on an official %s domain.",
			content.Brand.ImpersonatedBrand, content.Brand.ImpersonatedBrand))
	case f.DetectedBrand != "":
		parts = append(parts, fmt.Sprintf("This address imitates %s.", f.DetectedBrand))
	}
	if !f.IsHTTPS {
		parts = append(parts, "The connection is not secure (no HTTPS).")
	}
	if content.Login.HasSensitiveFields {
		parts = append(parts, "The page asks for sensitive information such as card numbers or identity numbers.")
	}
	if len(content.Login.SuspiciousFormActions) > 0 {
		parts = append(parts, fmt.Sprintf("Information entered here is sent to a different website (%s).",
			content.Login.SuspiciousFormActions[0].Destination))
	}

	switch level {
	case models.RiskLevelDangerous:
		parts = append(parts, "Recommendation: leave this page. Do not enter passwords, payment details or personal information.")
	case models.RiskLevelSuspicious:
		parts = append(parts, "Recommendation: be cautious and check the site's address before entering any information.")
	default:
		parts = append(parts, "No significant threats were detected on this page.")
	}

	return strings.Join(parts, "\n")
}
