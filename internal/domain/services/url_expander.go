package services

import (
	"context"
	"net/url"
	"strings"
)

// Expansion is the outcome of resolving a possibly-shortened URL
type Expansion struct {
	OriginalURL string
	FinalURL    string
	IsShortened bool
	// Resolved is true only when redirects were actually followed.
	Resolved bool
}

// URLExpander resolves shortened URLs to their destination. Implementations
// that touch the network must honor ctx cancellation.
type URLExpander interface {
	Expand(ctx context.Context, rawURL string) (*Expansion, error)
}

// ShortenerFlagExpander flags known shortener hosts without following redirects
type ShortenerFlagExpander struct {
	registry *Registry
}

// NewShortenerFlagExpander creates the default, network-free expander
func NewShortenerFlagExpander(reg *Registry) *ShortenerFlagExpander {
	return &ShortenerFlagExpander{registry: reg}
}

// Expand implements URLExpander
func (e *ShortenerFlagExpander) Expand(ctx context.Context, rawURL string) (*Expansion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exp := &Expansion{OriginalURL: rawURL, FinalURL: rawURL}
	parsed, err := url.Parse(withScheme(rawURL))
	if err != nil {
		return exp, nil
	}
	exp.IsShortened = e.registry.IsShortener(parsed.Hostname())
	return exp, nil
}

// withScheme prefixes scheme-less input so url.Parse sees a host
func withScheme(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.Contains(lower, "://") {
		return trimmed
	}
	return "http://" + trimmed
}
