package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"scamshield/internal/domain/models"
	"scamshield/pkg/logger"
)

// ErrInvalidRequest is returned for analysis input rejected before analysis
var ErrInvalidRequest = errors.New("invalid request")

// AssessmentCache stores URL-only verdicts by hostname
type AssessmentCache interface {
	GetAssessment(ctx context.Context, hostname string) (*models.RiskAssessment, bool, error)
	SetAssessment(ctx context.Context, hostname string, a *models.RiskAssessment, ttl time.Duration) error
}

// ReportStore persists community reports
type ReportStore interface {
	Create(ctx context.Context, r *models.Report) error
	Check(ctx context.Context, reportType models.ReportType, normalized string) (*models.ReportCheck, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Report, error)
}

// EventPublisher announces scam verdicts and new reports
type EventPublisher interface {
	PublishDetection(ctx context.Context, kind models.AnalysisKind, subject string, a *models.RiskAssessment) error
	PublishReport(ctx context.Context, r *models.Report) error
}

// AnalysisOptions tunes the service limits
type AnalysisOptions struct {
	CacheTTL         time.Duration
	ExpansionTimeout time.Duration
	MaxBatchSize     int
	MaxTextLength    int
	MaxHTMLBytes     int
}

// DefaultAnalysisOptions returns the limits used when none are configured
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		CacheTTL:         time.Hour,
		ExpansionTimeout: 5 * time.Second,
		MaxBatchSize:     100,
		MaxTextLength:    10000,
		MaxHTMLBytes:     2 << 20,
	}
}

const maxReportDescription = 1000

// AnalysisService hosts the risk engine: it expands and caches URL verdicts,
// attaches community report counts and publishes scam detections. cache,
// reports and events may be nil.
type AnalysisService struct {
	engine   *Engine
	expander URLExpander
	cache    AssessmentCache
	reports  ReportStore
	events   EventPublisher
	opts     AnalysisOptions
	logger   *logger.Logger
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	engine *Engine,
	expander URLExpander,
	cache AssessmentCache,
	reports ReportStore,
	events EventPublisher,
	opts AnalysisOptions,
	log *logger.Logger,
) *AnalysisService {
	defaults := DefaultAnalysisOptions()
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaults.CacheTTL
	}
	if opts.ExpansionTimeout <= 0 {
		opts.ExpansionTimeout = defaults.ExpansionTimeout
	}
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = defaults.MaxBatchSize
	}
	if opts.MaxTextLength <= 0 {
		opts.MaxTextLength = defaults.MaxTextLength
	}
	if opts.MaxHTMLBytes <= 0 {
		opts.MaxHTMLBytes = defaults.MaxHTMLBytes
	}
	if expander == nil {
		expander = NewShortenerFlagExpander(engine.Registry())
	}

	return &AnalysisService{
		engine:   engine,
		expander: expander,
		cache:    cache,
		reports:  reports,
		events:   events,
		opts:     opts,
		logger:   log.WithComponent("analysis"),
	}
}

// Engine returns the underlying risk engine
func (s *AnalysisService) Engine() *Engine {
	return s.engine
}

// Options returns the effective limits
func (s *AnalysisService) Options() AnalysisOptions {
	return s.opts
}

// AnalyzeURL assesses a single URL, serving repeated hosts from cache
func (s *AnalysisService) AnalyzeURL(ctx context.Context, rawURL string) (*models.AnalysisResponse, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidRequest)
	}

	target, expanded := s.expand(ctx, rawURL)
	factors := s.engine.DomainFactors(target)
	host := factors.Hostname

	resp := &models.AnalysisResponse{
		ID:          uuid.New(),
		Kind:        models.AnalysisKindURL,
		Hostname:    host,
		ExpandedURL: expanded,
		CheckedAt:   time.Now(),
	}

	// The cache is keyed by host, so a verdict that depends on the path
	// neither reads nor writes it.
	var cached *models.RiskAssessment
	if !factors.PathSignals {
		cached = s.cachedAssessment(ctx, host)
	}
	if cached != nil {
		resp.Assessment = cached
		resp.CacheHit = true
	} else {
		resp.Assessment = s.engine.AnalyzeURL(target)
		if !factors.PathSignals {
			s.storeAssessment(ctx, host, resp.Assessment)
		}
	}

	resp.CommunityReports = s.communityReports(ctx, models.ReportTypeURL, target)

	if !resp.CacheHit {
		s.publishDetection(ctx, models.AnalysisKindURL, host, resp.Assessment)
	}

	s.logger.Debug().
		Str("host", host).
		Int("score", resp.Assessment.Score).
		Bool("cache_hit", resp.CacheHit).
		Msg("analyzed url")

	return resp, nil
}

// AnalyzeURLBatch assesses up to MaxBatchSize URLs in order
func (s *AnalysisService) AnalyzeURLBatch(ctx context.Context, urls []string) (*models.URLBatchAnalysisResponse, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: urls are required", ErrInvalidRequest)
	}
	if len(urls) > s.opts.MaxBatchSize {
		return nil, fmt.Errorf("%w: maximum %d URLs per batch", ErrInvalidRequest, s.opts.MaxBatchSize)
	}

	resp := &models.URLBatchAnalysisResponse{
		Results:   make([]models.AnalysisResponse, 0, len(urls)),
		CheckedAt: time.Now(),
	}

	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := s.AnalyzeURL(ctx, u)
		if err != nil {
			// a blank entry still gets a verdict so results align with input
			result = &models.AnalysisResponse{
				ID:         uuid.New(),
				Kind:       models.AnalysisKindURL,
				Assessment: s.engine.AnalyzeURL(u),
				CheckedAt:  time.Now(),
			}
		}
		if result.Assessment.RiskLevel == models.RiskLevelDangerous {
			resp.DangerousCount++
		}
		resp.Results = append(resp.Results, *result)
	}
	resp.TotalCount = len(resp.Results)

	return resp, nil
}

// AnalyzeMessage assesses free text
func (s *AnalysisService) AnalyzeMessage(ctx context.Context, text string) (*models.AnalysisResponse, error) {
	if utf8.RuneCountInString(text) > s.opts.MaxTextLength {
		return nil, fmt.Errorf("%w: text exceeds %d characters", ErrInvalidRequest, s.opts.MaxTextLength)
	}

	resp := &models.AnalysisResponse{
		ID:         uuid.New(),
		Kind:       models.AnalysisKindMessage,
		Assessment: s.engine.AnalyzeMessage(text),
		CheckedAt:  time.Now(),
	}

	s.publishDetection(ctx, models.AnalysisKindMessage, MessageDigest(text), resp.Assessment)

	return resp, nil
}

// AnalyzeWebsite assesses a page from a scraped snapshot or raw HTML. With
// neither, the verdict is URL-only.
func (s *AnalysisService) AnalyzeWebsite(ctx context.Context, req *models.WebsiteAnalysisRequest) (*models.AnalysisResponse, error) {
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" && req.Snapshot != nil {
		rawURL = strings.TrimSpace(req.Snapshot.URL)
	}
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidRequest)
	}

	snap := req.Snapshot
	if snap == nil && req.HTML != "" {
		if len(req.HTML) > s.opts.MaxHTMLBytes {
			return nil, fmt.Errorf("%w: html exceeds %d bytes", ErrInvalidRequest, s.opts.MaxHTMLBytes)
		}
		parsed, err := ParseHTMLSnapshot(rawURL, req.HTML)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		snap = parsed
	}
	if snap != nil {
		if text, cut := truncateRunes(snap.Text, s.opts.MaxTextLength*10); cut {
			trimmed := *snap
			trimmed.Text = text
			snap = &trimmed
		}
	}

	factors := s.engine.DomainFactors(rawURL)
	resp := &models.AnalysisResponse{
		ID:         uuid.New(),
		Kind:       models.AnalysisKindWebsite,
		Hostname:   factors.Hostname,
		Assessment: s.engine.AnalyzeWebsite(rawURL, snap),
		CheckedAt:  time.Now(),
	}
	resp.CommunityReports = s.communityReports(ctx, models.ReportTypeURL, rawURL)

	s.publishDetection(ctx, models.AnalysisKindWebsite, factors.Hostname, resp.Assessment)

	return resp, nil
}

// expand resolves shortened URLs under the expansion timeout. Failures fall
// back to the original URL.
func (s *AnalysisService) expand(ctx context.Context, rawURL string) (target, expanded string) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.ExpansionTimeout)
	defer cancel()

	exp, err := s.expander.Expand(ctx, rawURL)
	if err != nil || exp == nil {
		if err != nil {
			s.logger.Debug().Err(err).Str("url", rawURL).Msg("url expansion failed")
		}
		return rawURL, ""
	}
	if exp.Resolved && exp.FinalURL != "" && exp.FinalURL != rawURL {
		return exp.FinalURL, exp.FinalURL
	}
	return rawURL, ""
}

func (s *AnalysisService) cachedAssessment(ctx context.Context, host string) *models.RiskAssessment {
	if s.cache == nil || host == "" {
		return nil
	}
	a, ok, err := s.cache.GetAssessment(ctx, host)
	if err != nil {
		s.logger.Warn().Err(err).Str("host", host).Msg("failed to read cached assessment")
		return nil
	}
	if !ok {
		return nil
	}
	return a
}

func (s *AnalysisService) storeAssessment(ctx context.Context, host string, a *models.RiskAssessment) {
	if s.cache == nil || host == "" {
		return
	}
	if err := s.cache.SetAssessment(ctx, host, a, s.opts.CacheTTL); err != nil {
		s.logger.Warn().Err(err).Str("host", host).Msg("failed to cache assessment")
	}
}

func (s *AnalysisService) communityReports(ctx context.Context, t models.ReportType, value string) int {
	if s.reports == nil {
		return 0
	}
	normalized, err := NormalizeReportValue(t, value)
	if err != nil {
		return 0
	}
	check, err := s.reports.Check(ctx, t, normalized)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to count community reports")
		return 0
	}
	return check.Count
}

func (s *AnalysisService) publishDetection(ctx context.Context, kind models.AnalysisKind, subject string, a *models.RiskAssessment) {
	if s.events == nil || !a.IsScam {
		return
	}
	if err := s.events.PublishDetection(ctx, kind, subject, a); err != nil {
		s.logger.Warn().Err(err).Str("kind", string(kind)).Msg("failed to publish detection")
	}
}

// SubmitReport validates, normalizes and stores a community report.
// reporterID is hashed before storage.
func (s *AnalysisService) SubmitReport(ctx context.Context, req *models.CreateReportRequest, reporterID string) (*models.Report, error) {
	if s.reports == nil {
		return nil, errors.New("report store not configured")
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedReportType, req.Type)
	}

	normalized, err := NormalizeReportValue(req.Type, req.Value)
	if err != nil {
		return nil, err
	}

	desc := strings.TrimSpace(req.Description)
	if len(desc) > maxReportDescription {
		return nil, fmt.Errorf("%w: description exceeds %d characters", ErrInvalidReport, maxReportDescription)
	}

	report := &models.Report{
		ID:              uuid.New(),
		Type:            req.Type,
		Value:           strings.TrimSpace(req.Value),
		NormalizedValue: normalized,
		Description:     desc,
		ReporterHash:    hashReporter(reporterID),
		ReportedAt:      time.Now().UTC(),
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	s.logger.Info().
		Str("type", string(report.Type)).
		Str("value", report.NormalizedValue).
		Msg("community report submitted")

	if s.events != nil {
		if err := s.events.PublishReport(ctx, report); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish report")
		}
	}

	return report, nil
}

// CheckReported reports whether a value has been reported by the community
func (s *AnalysisService) CheckReported(ctx context.Context, t models.ReportType, value string) (*models.ReportCheck, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedReportType, t)
	}
	normalized, err := NormalizeReportValue(t, value)
	if err != nil {
		return nil, err
	}
	if s.reports == nil {
		return &models.ReportCheck{Type: t, NormalizedValue: normalized}, nil
	}

	check, err := s.reports.Check(ctx, t, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to check report: %w", err)
	}
	return check, nil
}

// RecentReports lists the newest community reports
func (s *AnalysisService) RecentReports(ctx context.Context, limit int) ([]*models.Report, error) {
	if s.reports == nil {
		return []*models.Report{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	reports, err := s.reports.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// truncateRunes keeps the first n characters of s without splitting a rune
func truncateRunes(s string, n int) (string, bool) {
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}

// MessageDigest identifies a message in events and logs without its content
func MessageDigest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:8])
}

func hashReporter(id string) string {
	if id == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
