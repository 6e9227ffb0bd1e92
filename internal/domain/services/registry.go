package services

import (
	"regexp"
	"strings"
	"sync"

	"scamshield/internal/domain/models"
)

// LookalikePattern is a character-substitution regex that mimics a brand
type LookalikePattern struct {
	Brand   string
	Pattern *regexp.Regexp
}

// Registry is the read-only reference data shared by every analyzer.
// It is built once and never mutated; accessors hand out copies.
type Registry struct {
	brands             []models.Brand
	suspiciousTLDs     map[string]bool
	shorteners         map[string]bool
	lookalikes         []LookalikePattern
	suspiciousKeywords []string
}

// NewRegistry creates a Registry with the default brand and pattern tables
func NewRegistry() *Registry {
	r := &Registry{}
	r.initBrands()
	r.initSuspiciousTLDs()
	r.initShorteners()
	r.initLookalikes()
	r.suspiciousKeywords = []string{
		"login", "signin", "verify", "secure", "account",
		"update", "confirm", "banking", "password", "credential",
	}
	return r
}

var defaultRegistry = sync.OnceValue(NewRegistry)

// DefaultRegistry returns the process-wide registry
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// initBrands initializes the known brand table
func (r *Registry) initBrands() {
	r.brands = []models.Brand{
		{
			Name:              "PayPal",
			Keywords:          []string{"paypal"},
			LogoSubstrings:    []string{"paypal-logo", "paypal_logo", "pp-logo", "paypal.svg", "paypal.png"},
			LegitimateDomains: []string{"paypal.com", "paypal.me", "paypalobjects.com"},
		},
		{
			Name:              "Amazon",
			Keywords:          []string{"amazon"},
			LogoSubstrings:    []string{"amazon-logo", "amazon_logo", "amazon.svg", "amazon.png"},
			LegitimateDomains: []string{"amazon.com", "amazon.co.uk", "amazon.de", "amazon.ca", "amazonaws.com", "media-amazon.com"},
		},
		{
			Name:              "Apple",
			Keywords:          []string{"apple", "icloud"},
			LogoSubstrings:    []string{"apple-logo", "apple_logo", "icloud-logo", "apple.svg"},
			LegitimateDomains: []string{"apple.com", "icloud.com"},
		},
		{
			Name:              "Microsoft",
			Keywords:          []string{"microsoft", "outlook", "office365"},
			LogoSubstrings:    []string{"microsoft-logo", "microsoft_logo", "ms-logo", "office-logo", "outlook-logo"},
			LegitimateDomains: []string{"microsoft.com", "live.com", "outlook.com", "office.com", "office365.com", "microsoftonline.com"},
		},
		{
			Name:              "Google",
			Keywords:          []string{"google", "gmail"},
			LogoSubstrings:    []string{"google-logo", "google_logo", "googlelogo", "gmail-logo"},
			LegitimateDomains: []string{"google.com", "gmail.com", "googleapis.com", "gstatic.com", "youtube.com"},
		},
		{
			Name:              "Facebook",
			Keywords:          []string{"facebook"},
			LogoSubstrings:    []string{"facebook-logo", "facebook_logo", "fb-logo"},
			LegitimateDomains: []string{"facebook.com", "fb.com", "fbcdn.net", "messenger.com"},
		},
		{
			Name:              "Netflix",
			Keywords:          []string{"netflix"},
			LogoSubstrings:    []string{"netflix-logo", "netflix_logo", "netflix.svg"},
			LegitimateDomains: []string{"netflix.com", "nflxext.com"},
		},
		{
			Name:              "Instagram",
			Keywords:          []string{"instagram"},
			LogoSubstrings:    []string{"instagram-logo", "instagram_logo", "ig-logo"},
			LegitimateDomains: []string{"instagram.com", "cdninstagram.com"},
		},
		{
			Name:              "Bank of America",
			Keywords:          []string{"bank of america", "bankofamerica"},
			LogoSubstrings:    []string{"bofa-logo", "boa-logo", "bankofamerica-logo"},
			LegitimateDomains: []string{"bankofamerica.com", "bofa.com"},
		},
		{
			Name:              "Chase",
			Keywords:          []string{"chase bank", "jpmorgan chase", "chaseonline"},
			LogoSubstrings:    []string{"chase-logo", "chase_logo"},
			LegitimateDomains: []string{"chase.com", "jpmorganchase.com"},
		},
		{
			Name:              "Wells Fargo",
			Keywords:          []string{"wells fargo", "wellsfargo"},
			LogoSubstrings:    []string{"wellsfargo-logo", "wf-logo"},
			LegitimateDomains: []string{"wellsfargo.com", "wf.com"},
		},
		{
			Name:              "DHL",
			Keywords:          []string{"dhl express", "dhl"},
			LogoSubstrings:    []string{"dhl-logo", "dhl_logo"},
			LegitimateDomains: []string{"dhl.com", "dhl.de"},
		},
	}
}

// initSuspiciousTLDs initializes the high-risk TLD set
func (r *Registry) initSuspiciousTLDs() {
	r.suspiciousTLDs = make(map[string]bool)
	for _, tld := range []string{".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".work", ".click", ".link", ".info"} {
		r.suspiciousTLDs[tld] = true
	}
}

// initShorteners initializes the known URL shortener set
func (r *Registry) initShorteners() {
	r.shorteners = make(map[string]bool)
	for _, host := range []string{"bit.ly", "tinyurl.com", "t.co", "goo.gl", "ow.ly", "is.gd", "buff.ly", "adf.ly", "tiny.cc"} {
		r.shorteners[host] = true
	}
}

// initLookalikes initializes character-substitution patterns for major brands
func (r *Registry) initLookalikes() {
	r.lookalikes = []LookalikePattern{
		{Brand: "PayPal", Pattern: regexp.MustCompile(`(?i)paypa[1i]`)},
		{Brand: "Google", Pattern: regexp.MustCompile(`(?i)g[o0]{2}gle`)},
		{Brand: "Amazon", Pattern: regexp.MustCompile(`(?i)arnaz[o0]n|amaz0n`)},
		{Brand: "Facebook", Pattern: regexp.MustCompile(`(?i)faceb[o0]{2}k`)},
		{Brand: "Microsoft", Pattern: regexp.MustCompile(`(?i)micr[o0]s[o0]ft`)},
		{Brand: "Netflix", Pattern: regexp.MustCompile(`(?i)netf1ix`)},
		{Brand: "Apple", Pattern: regexp.MustCompile(`(?i)app1e`)},
	}
}

// Brands returns a copy of the brand table
func (r *Registry) Brands() []models.Brand {
	out := make([]models.Brand, len(r.brands))
	copy(out, r.brands)
	return out
}

// Brand returns the brand with the given name
func (r *Registry) Brand(name string) (models.Brand, bool) {
	for _, b := range r.brands {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return models.Brand{}, false
}

// IsSuspiciousTLD checks a TLD (with leading dot) against the high-risk set
func (r *Registry) IsSuspiciousTLD(tld string) bool {
	return r.suspiciousTLDs[strings.ToLower(tld)]
}

// IsShortener checks whether a hostname belongs to a URL shortening service
func (r *Registry) IsShortener(host string) bool {
	return r.shorteners[strings.ToLower(host)]
}

// Lookalikes returns the lookalike patterns
func (r *Registry) Lookalikes() []LookalikePattern {
	out := make([]LookalikePattern, len(r.lookalikes))
	copy(out, r.lookalikes)
	return out
}

// SuspiciousKeywords returns the URL path keywords that hint at credential pages
func (r *Registry) SuspiciousKeywords() []string {
	out := make([]string, len(r.suspiciousKeywords))
	copy(out, r.suspiciousKeywords)
	return out
}

// IsLegitimateDomain checks if host is one of the brand's own domains:
// the exact domain, its www. form, or any subdomain of it.
func IsLegitimateDomain(host string, brand models.Brand) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	for _, d := range brand.LegitimateDomains {
		if host == d || host == "www."+d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// hostKeyword collapses a multi-word brand keyword into its hostname form
func hostKeyword(keyword string) string {
	return strings.ReplaceAll(strings.ToLower(keyword), " ", "")
}
