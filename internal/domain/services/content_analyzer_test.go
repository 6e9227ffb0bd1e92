package services

import (
	"strings"
	"testing"

	"scamshield/internal/domain/models"
)

func paypalPhishingSnapshot() *models.PageSnapshot {
	return &models.PageSnapshot{
		URL:    "https://secure-login.example-verify.com/signin",
		Forms:  []models.PageForm{{Action: "https://collector.evil.ru/steal.php", Method: "post"}},
		Inputs: []models.PageInput{{Type: "email", Name: "email"}, {Type: "password", Name: "pass"}},
		Text:   "PayPal - Log in to your account. Enter your password to continue.",
	}
}

func TestContentAnalyzerBrandImpersonation(t *testing.T) {
	c := NewContentAnalyzer(DefaultRegistry()).Analyze(paypalPhishingSnapshot())

	if c.Brand.ImpersonatedBrand != "PayPal" {
		t.Fatalf("ImpersonatedBrand = %q, want PayPal", c.Brand.ImpersonatedBrand)
	}
	if !c.Login.HasLoginForm || c.Login.PasswordInputCount != 1 {
		t.Errorf("login = %+v", c.Login)
	}
	if len(c.Login.SuspiciousFormActions) != 1 || c.Login.SuspiciousFormActions[0].Destination != "collector.evil.ru" {
		t.Errorf("form actions = %+v", c.Login.SuspiciousFormActions)
	}
	// login 10 + action 25 + brand 40 + "enter your password" 20
	if c.Score != 95 {
		t.Errorf("Score = %d, want 95", c.Score)
	}
	if c.RiskLevel != models.RiskLevelDangerous {
		t.Errorf("RiskLevel = %s", c.RiskLevel)
	}
	if c.ScamType != models.BrandImpersonationLabel("PayPal") {
		t.Errorf("ScamType = %q", c.ScamType)
	}
}

func TestContentAnalyzerLegitimateHost(t *testing.T) {
	snap := paypalPhishingSnapshot()
	snap.URL = "https://www.paypal.com/signin"
	snap.Forms = []models.PageForm{{Action: "/signin/submit"}}

	c := NewContentAnalyzer(DefaultRegistry()).Analyze(snap)
	if c.Brand.ImpersonatedBrand != "" {
		t.Errorf("brand on its own domain flagged as %q", c.Brand.ImpersonatedBrand)
	}
	if len(c.Login.SuspiciousFormActions) != 0 {
		t.Errorf("relative action flagged: %+v", c.Login.SuspiciousFormActions)
	}
}

func TestContentAnalyzerFormActions(t *testing.T) {
	snap := &models.PageSnapshot{
		URL: "https://shop.example.com/checkout",
		Forms: []models.PageForm{
			{Action: ""},
			{Action: "#"},
			{Action: "javascript:void(0)"},
			{Action: "/pay"},
			{Action: "https://shop.example.com/pay"},
			{Action: "//cdn.other.net/collect"},
		},
	}

	c := NewContentAnalyzer(DefaultRegistry()).Analyze(snap)
	if len(c.Login.SuspiciousFormActions) != 1 {
		t.Fatalf("actions = %+v, want only the protocol-relative external one", c.Login.SuspiciousFormActions)
	}
	if got := c.Login.SuspiciousFormActions[0].Destination; got != "cdn.other.net" {
		t.Errorf("destination = %q", got)
	}
}

func TestContentAnalyzerLogoMatches(t *testing.T) {
	snap := &models.PageSnapshot{
		URL:    "https://netflix-account-help.example.org",
		Images: []models.PageImage{{Src: "/img/Netflix-Logo.png"}, {Alt: "netflix_logo"}},
	}

	c := NewContentAnalyzer(DefaultRegistry()).Analyze(snap)
	if c.Brand.ImpersonatedBrand != "Netflix" {
		t.Fatalf("ImpersonatedBrand = %q", c.Brand.ImpersonatedBrand)
	}
	if c.Brand.Confidence != 60 {
		t.Errorf("Confidence = %d, want 60", c.Brand.Confidence)
	}
}

func TestContentAnalyzerSensitiveFields(t *testing.T) {
	snap := &models.PageSnapshot{
		URL:  "https://refund-center.example.net",
		Text: "Please provide your credit card number and CVV to receive the refund.",
	}

	c := NewContentAnalyzer(DefaultRegistry()).Analyze(snap)
	if !c.Login.HasSensitiveFields {
		t.Fatal("sensitive fields not detected")
	}
	if c.ScamType != models.ScamTypeCredentialHarvesting {
		t.Errorf("ScamType = %q", c.ScamType)
	}
}

func TestContentAnalyzerPhishingLanguageCapped(t *testing.T) {
	text := "Your account has been suspended due to unusual activity. Verify immediately within 24 hours. " +
		"Immediate action required. Dear customer, kindly verify your acount. Enter your password, enter your pin, " +
		"enter your ssn, confirm your identity, update your payment and verify your account."

	lang := NewContentAnalyzer(DefaultRegistry()).analyzePhishingLanguage(strings.ToLower(text))
	if lang.Score != 100 {
		t.Errorf("Score = %d, want capped 100", lang.Score)
	}
	if len(lang.DirectRequests) != 6 {
		t.Errorf("direct requests = %v, want 6", lang.DirectRequests)
	}
}

func TestContentAnalyzerEmptySnapshot(t *testing.T) {
	a := NewContentAnalyzer(DefaultRegistry())
	for _, snap := range []*models.PageSnapshot{nil, {}} {
		c := a.Analyze(snap)
		if c.Score != 0 || c.RiskLevel != models.RiskLevelSafe || c.ScamType != models.ScamTypeUnknown {
			t.Errorf("Analyze(%v) = %+v, want empty safe result", snap, c)
		}
	}
}
