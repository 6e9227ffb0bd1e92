package services

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"scamshield/internal/domain/models"
)

func TestEngineScenarioA(t *testing.T) {
	a := NewEngine(nil).AnalyzeURL("https://www.google.com")

	if a.RiskLevel != models.RiskLevelSafe || a.IsScam {
		t.Errorf("verdict = %s/%v (score %d), want safe", a.RiskLevel, a.IsScam, a.Score)
	}
	if a.ScamType != models.ScamTypeUnknown {
		t.Errorf("ScamType = %q", a.ScamType)
	}
}

func TestEngineScenarioB(t *testing.T) {
	e := NewEngine(nil)
	a := e.AnalyzeURL("http://192.168.1.1/paypal-login/verify.php")

	if a.RiskLevel != models.RiskLevelDangerous || !a.IsScam {
		t.Fatalf("verdict = %s/%v (score %d), want dangerous scam", a.RiskLevel, a.IsScam, a.Score)
	}
	f := e.DomainFactors("http://192.168.1.1/paypal-login/verify.php")
	if !strings.EqualFold(f.DetectedBrand, "paypal") {
		t.Errorf("DetectedBrand = %q, want paypal", f.DetectedBrand)
	}
	if a.ScamType != models.BrandImpersonationLabel("PayPal") {
		t.Errorf("ScamType = %q", a.ScamType)
	}
}

func TestEngineScenarioD(t *testing.T) {
	snap := paypalPhishingSnapshot()
	a := NewEngine(nil).AnalyzeWebsite(snap.URL, snap)

	if a.RiskLevel != models.RiskLevelDangerous || !a.IsScam {
		t.Fatalf("verdict = %s/%v (score %d), want dangerous scam", a.RiskLevel, a.IsScam, a.Score)
	}
	if a.ScamType != "Brand Impersonation (PayPal)" {
		t.Errorf("ScamType = %q", a.ScamType)
	}
	if a.Score != 95 {
		t.Errorf("Score = %d, want the content score 95", a.Score)
	}

	var sawURL, sawContent bool
	for _, rf := range a.Factors {
		switch rf.Source {
		case models.FactorSourceURL:
			sawURL = true
		case models.FactorSourceContent:
			sawContent = true
		}
	}
	if !sawURL || !sawContent {
		t.Errorf("factors should come from both sources: %+v", a.Factors)
	}
	if !strings.Contains(a.Explanation, "impersonate PayPal") || !strings.Contains(a.Explanation, "collector.evil.ru") {
		t.Errorf("explanation %q", a.Explanation)
	}
}

func TestEngineLegitimacyException(t *testing.T) {
	e := NewEngine(nil)
	if f := e.DomainFactors("https://www.paypal.com/login"); f.DetectedBrand != "" {
		t.Errorf("DetectedBrand = %q on the brand's own domain", f.DetectedBrand)
	}
	if a := e.AnalyzeURL("https://www.paypal.com/login"); a.RiskLevel != models.RiskLevelSafe {
		t.Errorf("RiskLevel = %s", a.RiskLevel)
	}
}

func TestEngineLookalike(t *testing.T) {
	e := NewEngine(nil)
	if f := e.DomainFactors("http://paypa1-login.com"); f.DetectedBrand != "PayPal" {
		t.Errorf("DetectedBrand = %q, want PayPal", f.DetectedBrand)
	}
}

func TestEngineIPLiteralDominance(t *testing.T) {
	e := NewEngine(nil)
	for _, u := range []string{"https://10.0.0.1", "http://8.8.8.8/", "https://999.1.1.1/path"} {
		f := e.DomainFactors(u)
		if !f.HasIPAddress {
			t.Errorf("%s: HasIPAddress false", u)
			continue
		}
		if a := e.AnalyzeURL(u); a.Score < weightIPAddress {
			t.Errorf("%s: score %d < %d", u, a.Score, weightIPAddress)
		}
	}
}

func TestEngineBareIPLiteralIsDangerous(t *testing.T) {
	// ip 35 + four labels 10 + no https 15
	a := NewEngine(nil).AnalyzeURL("http://1.2.3.4")
	if a.Score != 60 || a.RiskLevel != models.RiskLevelDangerous || !a.IsScam {
		t.Errorf("verdict = %d/%s/%v, want 60 dangerous scam", a.Score, a.RiskLevel, a.IsScam)
	}
}

func TestEngineWebsiteWithoutSnapshotPassesThrough(t *testing.T) {
	e := NewEngine(nil)
	u := "http://paypal-secure.tk/login"
	if !reflect.DeepEqual(e.AnalyzeURL(u), e.AnalyzeWebsite(u, nil)) {
		t.Error("AnalyzeURL and AnalyzeWebsite(nil) should agree")
	}

	// tld 15 + no https 15 + two keyword notes 20
	got := e.AnalyzeURL("http://suspicious.example.tk/verify/update")
	if got.RiskLevel != models.RiskLevelSuspicious {
		t.Fatalf("RiskLevel = %s (score %d), want suspicious", got.RiskLevel, got.Score)
	}
	if got.ScamType != models.ScamTypePhishing {
		t.Errorf("elevated URL without brand should be labeled Phishing, got %q", got.ScamType)
	}
}

func TestEngineIdempotent(t *testing.T) {
	e := NewEngine(nil)
	snap := paypalPhishingSnapshot()

	if !reflect.DeepEqual(e.AnalyzeURL("http://paypa1-login.com"), e.AnalyzeURL("http://paypa1-login.com")) {
		t.Error("AnalyzeURL is not idempotent")
	}
	msg := "You've won the lottery! Pay the processing fee now."
	if !reflect.DeepEqual(e.AnalyzeMessage(msg), e.AnalyzeMessage(msg)) {
		t.Error("AnalyzeMessage is not idempotent")
	}
	if !reflect.DeepEqual(e.AnalyzeWebsite(snap.URL, snap), e.AnalyzeWebsite(snap.URL, snap)) {
		t.Error("AnalyzeWebsite is not idempotent")
	}
}

func TestCombineScores(t *testing.T) {
	for u := 0; u <= 100; u += 5 {
		for c := 0; c <= 100; c += 5 {
			var want int
			if u > 50 || c > 50 {
				want = max(u, c)
			} else {
				want = int(math.Round(float64(u)*0.4 + float64(c)*0.6))
			}
			if got := CombineScores(u, c); got != want {
				t.Fatalf("CombineScores(%d, %d) = %d, want %d", u, c, got, want)
			}
		}
	}

	if got := CombineScores(51, 0); got != 51 {
		t.Errorf("just over the threshold = %d, want 51", got)
	}
	if got := CombineScores(50, 50); got != 50 {
		t.Errorf("weighted at threshold = %d, want 50", got)
	}
	if got := CombineScores(15, 20); got != 18 {
		t.Errorf("CombineScores(15, 20) = %d, want 18", got)
	}
}

func TestRiskAggregatorCombine(t *testing.T) {
	g := NewRiskAggregator()
	f := &models.DomainFactors{IsHTTPS: true}
	urlResult := &models.RiskAssessment{Score: 20, Confidence: 60, Factors: []models.RiskFactor{{Description: "u", Weight: 20}}}
	content := &models.ContentAnalysis{
		Score:   30,
		Login:   models.LoginFormAnalysis{HasSensitiveFields: true},
		Factors: []models.RiskFactor{{Description: "c", Weight: 30}},
	}

	a := g.Combine(f, urlResult, content)
	// round(8 + 18) = 26
	if a.Score != 26 || a.RiskLevel != models.RiskLevelSafe || a.IsScam {
		t.Errorf("verdict = %d/%s/%v", a.Score, a.RiskLevel, a.IsScam)
	}
	if a.ScamType != models.ScamTypeCredentialHarvesting {
		t.Errorf("ScamType = %q", a.ScamType)
	}
	// round((60 + 70) / 2)
	if a.Confidence != 65 {
		t.Errorf("Confidence = %d, want 65", a.Confidence)
	}
	if len(a.Factors) != 2 || a.Factors[0].Source != models.FactorSourceURL || a.Factors[1].Source != models.FactorSourceContent {
		t.Errorf("factors = %+v", a.Factors)
	}

	// the URL brand outranks credential harvesting
	f.DetectedBrand = "Amazon"
	if got := g.Combine(f, urlResult, content).ScamType; got != models.BrandImpersonationLabel("Amazon") {
		t.Errorf("ScamType = %q", got)
	}
}

func TestUnifiedRiskLevelBoundaries(t *testing.T) {
	tests := map[int]models.RiskLevel{
		0:   models.RiskLevelSafe,
		29:  models.RiskLevelSafe,
		30:  models.RiskLevelSuspicious,
		59:  models.RiskLevelSuspicious,
		60:  models.RiskLevelDangerous,
		100: models.RiskLevelDangerous,
	}
	for score, want := range tests {
		if got := unifiedRiskLevel(score); got != want {
			t.Errorf("unifiedRiskLevel(%d) = %s, want %s", score, got, want)
		}
	}
}

func checkBounds(t *testing.T, what string, a *models.RiskAssessment) {
	t.Helper()
	if a.Score < 0 || a.Score > 100 {
		t.Fatalf("%s: score %d out of bounds", what, a.Score)
	}
	if a.Confidence < 0 || a.Confidence > 100 {
		t.Fatalf("%s: confidence %d out of bounds", what, a.Confidence)
	}
}

func FuzzAnalyzeURL(f *testing.F) {
	for _, seed := range []string{
		"https://www.google.com",
		"http://192.168.1.1/paypal-login/verify.php",
		"paypa1-login.com",
		"://",
		"http://[::1]:80/",
		"",
	} {
		f.Add(seed)
	}
	e := NewEngine(nil)

	f.Fuzz(func(t *testing.T, in string) {
		checkBounds(t, "url", e.AnalyzeURL(in))
	})
}

func FuzzAnalyzeMessage(f *testing.F) {
	f.Add("URGENT! Your account has been suspended. Send $500 via gift card to verify your password now!")
	f.Add("")
	f.Add("hello")
	e := NewEngine(nil)

	f.Fuzz(func(t *testing.T, in string) {
		checkBounds(t, "message", e.AnalyzeMessage(in))
	})
}

func FuzzAnalyzeWebsite(f *testing.F) {
	f.Add("https://secure-login.example-verify.com/signin", "PayPal password", "https://evil.ru/x", "password")
	f.Add("", "", "", "")
	e := NewEngine(nil)

	f.Fuzz(func(t *testing.T, u, text, action, inputType string) {
		snap := &models.PageSnapshot{
			URL:    u,
			Forms:  []models.PageForm{{Action: action}},
			Inputs: []models.PageInput{{Type: inputType}},
			Images: []models.PageImage{{Src: text, Alt: action}},
			Text:   text,
		}
		checkBounds(t, "website", e.AnalyzeWebsite(u, snap))
	})
}
