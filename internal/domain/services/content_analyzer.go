package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"scamshield/internal/domain/models"
)

// Content factor weights
const (
	weightLoginForm          = 10
	weightSensitiveFields    = 20
	weightSuspiciousAction   = 25
	weightContentImpersonate = 40

	brandKeywordScore = 20
	brandLogoScore    = 30

	urgencyPhraseScore = 15
	typoPatternScore   = 5
	directRequestScore = 20
)

// ContentAnalyzer inspects a page snapshot for credential harvesting and
// brand impersonation signals
type ContentAnalyzer struct {
	registry       *Registry
	loginKeywords  []string
	sensitiveField *regexp.Regexp
	urgencyPhrases []string
	typoPatterns   []*regexp.Regexp
	directRequests []string
}

// NewContentAnalyzer creates a new content analyzer
func NewContentAnalyzer(reg *Registry) *ContentAnalyzer {
	return &ContentAnalyzer{
		registry: reg,
		loginKeywords: []string{
			"login", "log in", "password", "username", "email",
			"credential", "signin", "sign in",
		},
		sensitiveField: regexp.MustCompile(`\b(ssn|social security|credit card|card number|cvv|cvc|bank account|routing number|pin|mother'?s maiden name|date of birth)\b`),
		urgencyPhrases: []string{
			"account has been suspended",
			"account will be suspended",
			"account has been locked",
			"verify immediately",
			"24 hours",
			"48 hours",
			"unusual activity",
			"suspicious activity",
			"immediate action required",
			"limited time",
		},
		typoPatterns: compileAll(
			`\bacount\b`,
			`\bpasword\b`,
			`\b(verfy|verifiy)\b`,
			`\bsecurty\b`,
			`\binformations\b`,
			`\brecieve\b`,
			`\bkindly (verify|confirm|update|provide)\b`,
			`\bdear (customer|user|valued customer|account holder)\b`,
		),
		directRequests: []string{
			"enter your password",
			"enter your pin",
			"enter your ssn",
			"confirm your identity",
			"update your payment",
			"verify your account",
		},
	}
}

// Analyze inspects snap. Missing fields simply contribute no signal.
func (a *ContentAnalyzer) Analyze(snap *models.PageSnapshot) *models.ContentAnalysis {
	if snap == nil {
		snap = &models.PageSnapshot{}
	}

	var base *url.URL
	host := ""
	if snap.URL != "" {
		if u, err := url.Parse(withScheme(snap.URL)); err == nil {
			base = u
			host = strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
		}
	}
	text := strings.ToLower(snap.Text)

	result := &models.ContentAnalysis{
		Hostname: host,
		Login:    a.analyzeLoginForms(snap, base, host, text),
		Brand:    a.analyzeBrand(snap, host, text),
		Language: a.analyzePhishingLanguage(text),
	}

	factors := []models.RiskFactor{}
	add := func(desc string, weight int) {
		factors = append(factors, models.RiskFactor{
			Description: desc,
			Weight:      weight,
			Source:      models.FactorSourceContent,
		})
	}

	if result.Login.HasLoginForm {
		add("Page contains a login form", weightLoginForm)
	}
	if result.Login.HasSensitiveFields {
		add("Page requests sensitive financial or identity information", weightSensitiveFields)
	}
	if len(result.Login.SuspiciousFormActions) > 0 {
		dest := result.Login.SuspiciousFormActions[0].Destination
		add(fmt.Sprintf("Form submits data to a different site (%s)", dest), weightSuspiciousAction)
	}
	if result.Brand.ImpersonatedBrand != "" {
		add(fmt.Sprintf("Page appears to impersonate %s", result.Brand.ImpersonatedBrand), weightContentImpersonate)
	}
	if result.Language.Score > 0 {
		add("Page uses phishing language", result.Language.Score)
	}

	result.Factors = factors
	result.Score = clampScore(sumWeights(factors))
	result.RiskLevel = contentRiskLevel(result.Score)

	switch {
	case result.Brand.ImpersonatedBrand != "":
		result.ScamType = models.BrandImpersonationLabel(result.Brand.ImpersonatedBrand)
	case result.Login.HasSensitiveFields:
		result.ScamType = models.ScamTypeCredentialHarvesting
	case result.Score > 30:
		result.ScamType = models.ScamTypePhishing
	default:
		result.ScamType = models.ScamTypeUnknown
	}

	return result
}

// analyzeLoginForms looks for credential collection and off-site form posts
func (a *ContentAnalyzer) analyzeLoginForms(snap *models.PageSnapshot, base *url.URL, host, text string) models.LoginFormAnalysis {
	res := models.LoginFormAnalysis{
		HasLoginForm:       containsAny(text, a.loginKeywords),
		HasSensitiveFields: a.sensitiveField.MatchString(text),
	}

	for _, in := range snap.Inputs {
		if strings.EqualFold(strings.TrimSpace(in.Type), "password") {
			res.PasswordInputCount++
		}
	}
	if res.PasswordInputCount > 0 {
		res.HasLoginForm = true
	}

	for _, form := range snap.Forms {
		action := strings.TrimSpace(form.Action)
		if action == "" || strings.HasPrefix(action, "#") || strings.HasPrefix(strings.ToLower(action), "javascript:") {
			continue
		}
		ref, err := url.Parse(action)
		if err != nil {
			continue
		}
		dest := ref
		if base != nil {
			dest = base.ResolveReference(ref)
		}
		destHost := strings.TrimSuffix(strings.ToLower(dest.Hostname()), ".")
		if destHost == "" || destHost == host {
			continue
		}
		res.SuspiciousFormActions = append(res.SuspiciousFormActions, models.SuspiciousFormAction{
			Action:      action,
			Destination: destHost,
		})
	}

	return res
}

// analyzeBrand scores every registry brand referenced by the page and keeps
// the strongest one not hosted on its own domain
func (a *ContentAnalyzer) analyzeBrand(snap *models.PageSnapshot, host, text string) models.BrandImpersonationAnalysis {
	res := models.BrandImpersonationAnalysis{}

	for _, brand := range a.registry.Brands() {
		score := 0
		for _, kw := range brand.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				score += brandKeywordScore
			}
		}
		for _, logo := range brand.LogoSubstrings {
			for _, img := range snap.Images {
				if strings.Contains(strings.ToLower(img.Src), logo) || strings.Contains(strings.ToLower(img.Alt), logo) {
					score += brandLogoScore
				}
			}
		}
		if score == 0 || IsLegitimateDomain(host, brand) {
			continue
		}

		confidence := clampScore(score)
		res.Candidates = append(res.Candidates, models.BrandCandidate{Brand: brand.Name, Confidence: confidence})
		if confidence > res.Confidence {
			res.ImpersonatedBrand = brand.Name
			res.Confidence = confidence
		}
	}

	return res
}

// analyzePhishingLanguage scores pressure phrases, typos and direct requests
func (a *ContentAnalyzer) analyzePhishingLanguage(text string) models.PhishingLanguageAnalysis {
	res := models.PhishingLanguageAnalysis{}
	if text == "" {
		return res
	}

	score := 0
	for _, phrase := range a.urgencyPhrases {
		if strings.Contains(text, phrase) {
			res.UrgencyPhrases = append(res.UrgencyPhrases, phrase)
			score += urgencyPhraseScore
		}
	}
	for _, p := range a.typoPatterns {
		if m := p.FindString(text); m != "" {
			res.TypoPatterns = append(res.TypoPatterns, m)
			score += typoPatternScore
		}
	}
	for _, phrase := range a.directRequests {
		if strings.Contains(text, phrase) {
			res.DirectRequests = append(res.DirectRequests, phrase)
			score += directRequestScore
		}
	}

	res.Score = clampScore(score)
	return res
}
