package services

import (
	"scamshield/internal/domain/models"
)

// Engine is the synchronous, stateless risk engine. It is safe for
// concurrent use; all shared state lives in the immutable Registry.
type Engine struct {
	registry   *Registry
	domains    *DomainAnalyzer
	urlScorer  *URLScorer
	detector   *MessagePatternDetector
	msgScorer  *MessageScorer
	content    *ContentAnalyzer
	aggregator *RiskAggregator
}

// NewEngine wires every analyzer against reg. A nil reg uses DefaultRegistry.
func NewEngine(reg *Registry) *Engine {
	if reg == nil {
		reg = DefaultRegistry()
	}
	detector := NewMessagePatternDetector()
	return &Engine{
		registry:   reg,
		domains:    NewDomainAnalyzer(reg),
		urlScorer:  NewURLScorer(),
		detector:   detector,
		msgScorer:  NewMessageScorer(detector),
		content:    NewContentAnalyzer(reg),
		aggregator: NewRiskAggregator(),
	}
}

// Registry returns the brand registry the engine was built with
func (e *Engine) Registry() *Registry {
	return e.registry
}

// DomainFactors extracts the structural URL signals without scoring them
func (e *Engine) DomainFactors(rawURL string) *models.DomainFactors {
	return e.domains.Analyze(rawURL)
}

// AnalyzeURL assesses a URL on its own
func (e *Engine) AnalyzeURL(rawURL string) *models.RiskAssessment {
	return e.AnalyzeWebsite(rawURL, nil)
}

// AnalyzeMessage assesses free text such as an SMS, email body or chat message
func (e *Engine) AnalyzeMessage(text string) *models.RiskAssessment {
	matches := e.detector.Detect(text)
	return e.msgScorer.Score(text, matches)
}

// AnalyzeContent runs the page content analysis alone
func (e *Engine) AnalyzeContent(snap *models.PageSnapshot) *models.ContentAnalysis {
	return e.content.Analyze(snap)
}

// AnalyzeWebsite assesses a URL together with its page snapshot. A nil
// snapshot yields the URL-only verdict.
func (e *Engine) AnalyzeWebsite(rawURL string, snap *models.PageSnapshot) *models.RiskAssessment {
	factors := e.domains.Analyze(rawURL)
	urlResult := e.urlScorer.Score(factors)

	if snap == nil {
		return e.aggregator.FromURL(factors, urlResult)
	}

	page := *snap
	if page.URL == "" {
		page.URL = rawURL
	}
	return e.aggregator.Combine(factors, urlResult, e.content.Analyze(&page))
}
