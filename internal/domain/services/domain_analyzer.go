package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"scamshield/internal/domain/models"
)

// InvalidURLNote is the only suspicious pattern recorded for unparsable URLs
const InvalidURLNote = "Invalid URL format"

var ipv4Pattern = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)

// DomainAnalyzer extracts structural risk factors from a URL
type DomainAnalyzer struct {
	registry *Registry
}

// NewDomainAnalyzer creates a new domain analyzer
func NewDomainAnalyzer(reg *Registry) *DomainAnalyzer {
	return &DomainAnalyzer{registry: reg}
}

// Analyze parses rawURL into DomainFactors. It never fails: malformed input
// yields all-false factors noted with InvalidURLNote.
func (a *DomainAnalyzer) Analyze(rawURL string) *models.DomainFactors {
	if strings.TrimSpace(rawURL) == "" {
		return invalidDomainFactors()
	}
	parsed, err := url.Parse(withScheme(rawURL))
	if err != nil {
		return invalidDomainFactors()
	}
	host := strings.TrimSuffix(strings.ToLower(parsed.Hostname()), ".")
	if host == "" {
		return invalidDomainFactors()
	}

	f := &models.DomainFactors{
		Hostname:           host,
		DomainLength:       len(host),
		IsHTTPS:            strings.EqualFold(parsed.Scheme, "https"),
		SuspiciousPatterns: []string{},
	}

	// 1. Shorteners hide the destination; expansion happens outside the analyzer
	if a.registry.IsShortener(host) {
		f.IsShortened = true
		f.SuspiciousPatterns = append(f.SuspiciousPatterns,
			fmt.Sprintf("URL shortener (%s) hides the real destination", host))
	}

	// 2. IP literal
	f.HasIPAddress = ipv4Pattern.MatchString(host)

	// 3. TLD
	if i := strings.LastIndex(host, "."); i >= 0 {
		f.TLD = host[i:]
	}
	f.IsSuspiciousTLD = a.registry.IsSuspiciousTLD(f.TLD)

	// 4. Subdomain shape
	labels := strings.Split(host, ".")
	f.HasManySubdomains = len(labels) > 3
	for _, label := range labels {
		if len(label) > 20 {
			f.HasLongSubdomain = true
			break
		}
	}

	// 5-6. Brand containment, then lookalikes
	a.detectBrand(f, strings.ToLower(parsed.Path))

	// 7. Credential-page keywords in the path
	path := strings.ToLower(parsed.Path)
	for _, kw := range a.registry.SuspiciousKeywords() {
		if strings.Contains(path, kw) {
			f.SuspiciousPatterns = append(f.SuspiciousPatterns,
				fmt.Sprintf("Suspicious keyword %q in URL path", kw))
			f.PathSignals = true
		}
	}

	// 8. Remaining shape signals
	f.HasNumbers = strings.ContainsAny(host, "0123456789")
	f.HasHyphens = strings.Contains(host, "-")

	return f
}

// detectBrand sets the brand fields on f. The first containment match wins,
// lookalikes run only when containment found nothing, and a brand named in
// the path is the last resort.
func (a *DomainAnalyzer) detectBrand(f *models.DomainFactors, path string) {
	host := f.Hostname

	for _, brand := range a.registry.Brands() {
		for _, kw := range brand.Keywords {
			if !strings.Contains(host, hostKeyword(kw)) {
				continue
			}
			if IsLegitimateDomain(host, brand) {
				continue
			}
			a.flagBrand(f, brand.Name,
				fmt.Sprintf("Domain contains brand name %q but is not an official %s domain", hostKeyword(kw), brand.Name))
			return
		}
	}

	for _, la := range a.registry.Lookalikes() {
		if !la.Pattern.MatchString(host) {
			continue
		}
		if brand, ok := a.registry.Brand(la.Brand); ok && IsLegitimateDomain(host, brand) {
			continue
		}
		a.flagBrand(f, la.Brand,
			fmt.Sprintf("Domain imitates %s using lookalike characters", la.Brand))
		return
	}

	// A brand in the path only counts next to a credential keyword, so
	// /recipes/apple-pie stays clean while /paypal-login/ does not.
	if !containsAny(path, a.registry.SuspiciousKeywords()) {
		return
	}
	for _, brand := range a.registry.Brands() {
		if IsLegitimateDomain(host, brand) {
			continue
		}
		for _, kw := range brand.Keywords {
			k := hostKeyword(kw)
			if strings.Contains(path, k) {
				a.flagBrand(f, brand.Name,
					fmt.Sprintf("URL path references %s on a host it does not own", brand.Name))
				f.PathSignals = true
				return
			}
		}
	}
}

func (a *DomainAnalyzer) flagBrand(f *models.DomainFactors, brand, note string) {
	f.ContainsBrandName = true
	f.DetectedBrand = brand
	f.SuspiciousPatterns = append(f.SuspiciousPatterns, note)
	f.BrandNotes = append(f.BrandNotes, note)
}

func invalidDomainFactors() *models.DomainFactors {
	return &models.DomainFactors{
		SuspiciousPatterns: []string{InvalidURLNote},
	}
}
