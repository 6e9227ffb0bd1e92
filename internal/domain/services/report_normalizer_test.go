package services

import (
	"errors"
	"testing"

	"scamshield/internal/domain/models"
)

func TestNormalizeReportValue(t *testing.T) {
	tests := []struct {
		name  string
		typ   models.ReportType
		value string
		want  string
	}{
		{"url drops scheme query and slash", models.ReportTypeURL, "HTTPS://Evil.Example.com/Login/?x=1", "evil.example.com/login"},
		{"url without scheme", models.ReportTypeURL, "  paypa1-login.com  ", "paypa1-login.com"},
		{"url trailing dot", models.ReportTypeURL, "http://scam.example.org./", "scam.example.org"},
		{"international phone", models.ReportTypePhone, "+1 (555) 123-4567", "+15551234567"},
		{"local phone", models.ReportTypePhone, "555.123.4567", "5551234567"},
		{"hex wallet lowercased", models.ReportTypeWallet, "0xABCDEF0123456789ABCDEF0123456789ABCDEF01", "0xabcdef0123456789abcdef0123456789abcdef01"},
		{"bech32 wallet untouched", models.ReportTypeWallet, "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq", "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq"},
		{"email with display name", models.ReportTypeEmail, "Support Team <Bad.Guy@Example.COM>", "bad.guy@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeReportValue(tt.typ, tt.value)
			if err != nil {
				t.Fatalf("NormalizeReportValue: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeReportValueRejects(t *testing.T) {
	tests := []struct {
		name  string
		typ   models.ReportType
		value string
		want  error
	}{
		{"empty", models.ReportTypeURL, "   ", ErrInvalidReport},
		{"short phone", models.ReportTypePhone, "12345", ErrInvalidReport},
		{"long phone", models.ReportTypePhone, "1234567890123456", ErrInvalidReport},
		{"short wallet", models.ReportTypeWallet, "0xabc", ErrInvalidReport},
		{"wallet with space", models.ReportTypeWallet, "0xabcdef0123 456789abcdef0123456789", ErrInvalidReport},
		{"email without tld", models.ReportTypeEmail, "user@localhost", ErrInvalidReport},
		{"not an email", models.ReportTypeEmail, "nobody", ErrInvalidReport},
		{"unknown type", models.ReportType("fax"), "555-1234", ErrUnsupportedReportType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeReportValue(tt.typ, tt.value)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
