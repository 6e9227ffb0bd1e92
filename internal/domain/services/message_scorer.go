package services

import (
	"fmt"
	"strings"

	"scamshield/internal/domain/models"
)

// categoryWeights are the per-match weights of each pattern category
var categoryWeights = map[models.PatternCategory]int{
	models.PatternUrgency:    10,
	models.PatternPayment:    25,
	models.PatternCredential: 30,
	models.PatternFakeJob:    20,
	models.PatternMLM:        20,
	models.PatternCrypto:     25,
	models.PatternLottery:    30,
	models.PatternRomance:    25,
	models.PatternThreat:     25,
}

const multipleIndicatorsBonus = 15

// scamTypeRule maps a category to its scam label and per-match multiplier.
// Order breaks ties.
type scamTypeRule struct {
	category   models.PatternCategory
	label      string
	multiplier int
}

var scamTypeRules = []scamTypeRule{
	{models.PatternCredential, models.ScamTypePhishing, 3},
	{models.PatternFakeJob, models.ScamTypeFakeJob, 3},
	{models.PatternMLM, models.ScamTypeMLM, 3},
	{models.PatternCrypto, models.ScamTypeCrypto, 3},
	{models.PatternLottery, models.ScamTypeLottery, 3},
	{models.PatternRomance, models.ScamTypeRomance, 3},
	{models.PatternThreat, models.ScamTypeIntimidation, 3},
	{models.PatternPayment, models.ScamTypeAdvanceFee, 2},
}

// MessageScorer weights detected pattern categories into an assessment
type MessageScorer struct {
	detector *MessagePatternDetector
}

// NewMessageScorer creates a new message scorer
func NewMessageScorer(detector *MessagePatternDetector) *MessageScorer {
	return &MessageScorer{detector: detector}
}

// Score computes the message assessment from its pattern matches.
// Blank text short-circuits to a zero-confidence safe verdict.
func (s *MessageScorer) Score(text string, matches models.PatternMatchSet) *models.RiskAssessment {
	if strings.TrimSpace(text) == "" {
		return &models.RiskAssessment{
			Score:       0,
			RiskLevel:   models.RiskLevelSafe,
			IsScam:      false,
			ScamType:    models.ScamTypeUnknown,
			Confidence:  0,
			Explanation: "No message text to analyze.",
			Factors:     []models.RiskFactor{},
		}
	}

	factors := []models.RiskFactor{}
	total := 0
	for _, c := range matches.Categories() {
		w := categoryWeights[c]
		contribution := w * matches.Count(c)
		if contribution > w*2 {
			contribution = w * 2
		}
		total += contribution
		factors = append(factors, models.RiskFactor{
			Description: fmt.Sprintf("%s (%d indicator%s)", s.detector.categoryDescription(c), matches.Count(c), plural(matches.Count(c))),
			Weight:      contribution,
			Source:      models.FactorSourceContent,
		})
	}

	if len(matches.Categories()) >= 3 {
		total += multipleIndicatorsBonus
		factors = append(factors, models.RiskFactor{
			Description: "Multiple scam indicators present",
			Weight:      multipleIndicatorsBonus,
			Source:      models.FactorSourceContent,
		})
	}

	score := clampScore(total)
	level := messageRiskLevel(score)

	confidence := 40 + matches.Total()*10
	if confidence > 95 {
		confidence = 95
	}

	return &models.RiskAssessment{
		Score:       score,
		RiskLevel:   level,
		IsScam:      score >= 50,
		ScamType:    classifyMessage(score, matches),
		Confidence:  confidence,
		Explanation: s.explain(level, matches),
		Factors:     factors,
	}
}

// classifyMessage picks the highest-scoring scam label. With no classifiable
// category the label is "Unknown" for a zero score and "Suspicious Message"
// otherwise.
func classifyMessage(score int, matches models.PatternMatchSet) string {
	best, bestScore := "", 0
	for _, rule := range scamTypeRules {
		ts := matches.Count(rule.category) * rule.multiplier
		if ts > bestScore {
			best, bestScore = rule.label, ts
		}
	}
	if bestScore > 0 {
		return best
	}
	if score == 0 {
		return models.ScamTypeUnknown
	}
	return models.ScamTypeSuspiciousMessage
}

func (s *MessageScorer) explain(level models.RiskLevel, matches models.PatternMatchSet) string {
	cats := matches.Categories()
	if len(cats) == 0 {
		return "No common scam patterns were detected in this message."
	}

	lines := make([]string, 0, len(cats)+2)
	lines = append(lines, "Detected warning signs:")
	for _, c := range cats {
		lines = append(lines, fmt.Sprintf("- %s: %q", s.detector.categoryDescription(c), matches[c][0]))
	}

	switch level {
	case models.RiskLevelDangerous:
		lines = append(lines, "This message is very likely a scam. Do not reply, click links, or send money. Block the sender and report the message.")
	case models.RiskLevelSuspicious:
		lines = append(lines, "Be careful. Verify the sender independently through an official channel before acting on this message.")
	default:
		lines = append(lines, "Low risk, but verify the sender independently if anything feels off.")
	}
	return strings.Join(lines, "\n")
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
