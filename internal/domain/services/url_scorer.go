package services

import (
	"fmt"
	"strings"

	"scamshield/internal/domain/models"
)

// URL factor weights
const (
	weightIPAddress          = 35
	weightSuspiciousTLD      = 15
	weightBrandImpersonation = 40
	weightManySubdomains     = 10
	weightLongSubdomain      = 10
	weightNoHTTPS            = 15
	weightLongDomain         = 5
	weightSuspiciousNote     = 10

	longDomainThreshold = 30
)

// URLScorer turns DomainFactors into a scored assessment
type URLScorer struct{}

// NewURLScorer creates a new URL scorer
func NewURLScorer() *URLScorer {
	return &URLScorer{}
}

// Factors returns the weighted URL risk factors in a fixed order
func (s *URLScorer) Factors(f *models.DomainFactors) []models.RiskFactor {
	factors := []models.RiskFactor{}
	add := func(desc string, weight int) {
		factors = append(factors, models.RiskFactor{
			Description: desc,
			Weight:      weight,
			Source:      models.FactorSourceURL,
		})
	}

	if f.HasIPAddress {
		add("Uses an IP address instead of a domain name", weightIPAddress)
	}
	if f.IsSuspiciousTLD {
		add(fmt.Sprintf("Uses high-risk top-level domain %s", f.TLD), weightSuspiciousTLD)
	}
	if f.ContainsBrandName {
		add(fmt.Sprintf("Possible impersonation of %s", f.DetectedBrand), weightBrandImpersonation)
	}
	if f.HasManySubdomains {
		add("Unusually many subdomains", weightManySubdomains)
	}
	if f.HasLongSubdomain {
		add("Contains an unusually long subdomain", weightLongSubdomain)
	}
	if !f.IsHTTPS {
		add("Connection is not secure (no HTTPS)", weightNoHTTPS)
	}
	if f.DomainLength > longDomainThreshold {
		add("Unusually long domain name", weightLongDomain)
	}

	covered := make(map[string]bool, len(f.BrandNotes))
	for _, n := range f.BrandNotes {
		covered[n] = true
	}
	for _, note := range f.SuspiciousPatterns {
		if covered[note] {
			continue
		}
		covered[note] = true
		add(note, weightSuspiciousNote)
	}

	return factors
}

// Score computes the URL sub-score, level and explanation
func (s *URLScorer) Score(f *models.DomainFactors) *models.RiskAssessment {
	factors := s.Factors(f)
	score := clampScore(sumWeights(factors))
	level := urlRiskLevel(score)

	confidence := 50 + len(factors)*10
	if confidence > 95 {
		confidence = 95
	}

	return &models.RiskAssessment{
		Score:       score,
		RiskLevel:   level,
		IsScam:      score >= 60,
		ScamType:    models.ScamTypeUnknown,
		Confidence:  confidence,
		Explanation: explainURL(level, factors),
		Factors:     factors,
	}
}

func explainURL(level models.RiskLevel, factors []models.RiskFactor) string {
	if len(factors) == 0 {
		return "No risk indicators were found for this URL."
	}

	top := topFactors(factors, 3)
	descs := make([]string, len(top))
	for i, f := range top {
		descs[i] = f.Description
	}

	var b strings.Builder
	b.WriteString("Risk indicators: ")
	b.WriteString(strings.Join(descs, "; "))
	b.WriteString(". ")
	b.WriteString(urlRecommendation(level))
	return b.String()
}

func urlRecommendation(level models.RiskLevel) string {
	switch level {
	case models.RiskLevelDangerous:
		return "This site is likely a scam. Do not enter personal information."
	case models.RiskLevelSuspicious:
		return "Proceed with caution and do not enter personal information unless you trust this site."
	default:
		return "No major concerns, but proceed with caution."
	}
}
