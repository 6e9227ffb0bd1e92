package services

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode"

	"scamshield/internal/domain/models"
)

var (
	// ErrInvalidReport is returned for a report whose value cannot be normalized
	ErrInvalidReport = errors.New("invalid report")
	// ErrUnsupportedReportType is returned for an unknown report type
	ErrUnsupportedReportType = errors.New("unsupported report type")
)

// NormalizeReportValue canonicalizes a reported value so equivalent spellings
// are counted together
func NormalizeReportValue(t models.ReportType, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: value is required", ErrInvalidReport)
	}

	switch t {
	case models.ReportTypeURL:
		return normalizeReportURL(value)
	case models.ReportTypePhone:
		return normalizePhone(value)
	case models.ReportTypeWallet:
		return normalizeWallet(value)
	case models.ReportTypeEmail:
		return normalizeEmail(value)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedReportType, t)
	}
}

// normalizeReportURL keeps host and path, lowercased, without scheme, query
// or trailing slash
func normalizeReportURL(value string) (string, error) {
	u, err := url.Parse(withScheme(value))
	if err != nil || u.Hostname() == "" {
		return "", fmt.Errorf("%w: malformed url", ErrInvalidReport)
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	path := strings.TrimRight(strings.ToLower(u.EscapedPath()), "/")
	return host + path, nil
}

// normalizePhone keeps digits, preserving a leading + for international numbers
func normalizePhone(value string) (string, error) {
	var b strings.Builder
	if strings.HasPrefix(value, "+") {
		b.WriteByte('+')
	}
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			digits++
		}
	}
	if digits < 7 || digits > 15 {
		return "", fmt.Errorf("%w: phone number must have 7 to 15 digits", ErrInvalidReport)
	}
	return b.String(), nil
}

// normalizeWallet lowercases hex (0x) addresses; other address formats are
// case-sensitive and kept as-is
func normalizeWallet(value string) (string, error) {
	if len(value) < 20 || strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: malformed wallet address", ErrInvalidReport)
	}
	if strings.HasPrefix(strings.ToLower(value), "0x") {
		return strings.ToLower(value), nil
	}
	return value, nil
}

func normalizeEmail(value string) (string, error) {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return "", fmt.Errorf("%w: malformed email address", ErrInvalidReport)
	}
	at := strings.LastIndex(addr.Address, "@")
	if at <= 0 || !strings.Contains(addr.Address[at+1:], ".") {
		return "", fmt.Errorf("%w: malformed email address", ErrInvalidReport)
	}
	return strings.ToLower(addr.Address), nil
}
