package models

// RiskLevel is the coarse verdict rendered by the extension badge
type RiskLevel string

const (
	RiskLevelSafe       RiskLevel = "safe"
	RiskLevelSuspicious RiskLevel = "suspicious"
	RiskLevelDangerous  RiskLevel = "dangerous"
)

// FactorSource tells which analysis produced a risk factor
type FactorSource string

const (
	FactorSourceURL     FactorSource = "url"
	FactorSourceContent FactorSource = "content"
)

// Scam type labels
const (
	ScamTypeUnknown              = "Unknown"
	ScamTypeSuspiciousMessage    = "Suspicious Message"
	ScamTypePhishing             = "Phishing"
	ScamTypeCredentialHarvesting = "Credential Harvesting"
	ScamTypeFakeJob              = "Fake Job Scam"
	ScamTypeMLM                  = "MLM/Pyramid Scheme"
	ScamTypeCrypto               = "Crypto Scam"
	ScamTypeLottery              = "Lottery/Prize Scam"
	ScamTypeRomance              = "Romance Scam"
	ScamTypeIntimidation         = "Intimidation Scam"
	ScamTypeAdvanceFee           = "Advance Fee Fraud"
)

// BrandImpersonationLabel returns the scam type label for an impersonated brand
func BrandImpersonationLabel(brand string) string {
	return "Brand Impersonation (" + brand + ")"
}

// RiskFactor is a single weighted reason behind a score
type RiskFactor struct {
	Description string       `json:"description"`
	Weight      int          `json:"weight"`
	Source      FactorSource `json:"source"`
}

// RiskAssessment is the unified verdict returned for a URL, message or page
type RiskAssessment struct {
	Score       int          `json:"score"`
	RiskLevel   RiskLevel    `json:"risk_level"`
	IsScam      bool         `json:"is_scam"`
	ScamType    string       `json:"scam_type"`
	Confidence  int          `json:"confidence"`
	Explanation string       `json:"explanation"`
	Factors     []RiskFactor `json:"factors"`
}

// DomainFactors holds the structural signals extracted from a URL
type DomainFactors struct {
	Hostname           string   `json:"hostname"`
	TLD                string   `json:"tld"`
	IsSuspiciousTLD    bool     `json:"is_suspicious_tld"`
	HasIPAddress       bool     `json:"has_ip_address"`
	HasManySubdomains  bool     `json:"has_many_subdomains"`
	HasLongSubdomain   bool     `json:"has_long_subdomain"`
	ContainsBrandName  bool     `json:"contains_brand_name"`
	DetectedBrand      string   `json:"detected_brand,omitempty"`
	DomainLength       int      `json:"domain_length"`
	HasNumbers         bool     `json:"has_numbers"`
	HasHyphens         bool     `json:"has_hyphens"`
	IsHTTPS            bool     `json:"is_https"`
	IsShortened        bool     `json:"is_shortened"`
	SuspiciousPatterns []string `json:"suspicious_patterns"`

	// BrandNotes are the entries of SuspiciousPatterns already covered by the
	// brand impersonation weight.
	BrandNotes []string `json:"-"`
	// PathSignals is set when the URL path added a keyword note or the brand.
	// Such verdicts are not a property of the host alone.
	PathSignals bool `json:"-"`
}

// PatternCategory is one of the scam indicator families scanned in free text
type PatternCategory string

const (
	PatternUrgency    PatternCategory = "urgency"
	PatternPayment    PatternCategory = "payment"
	PatternCredential PatternCategory = "credential"
	PatternFakeJob    PatternCategory = "fakeJob"
	PatternMLM        PatternCategory = "mlm"
	PatternCrypto     PatternCategory = "crypto"
	PatternLottery    PatternCategory = "lottery"
	PatternRomance    PatternCategory = "romance"
	PatternThreat     PatternCategory = "threat"
)

// PatternCategories lists every category in scoring order
var PatternCategories = []PatternCategory{
	PatternUrgency,
	PatternPayment,
	PatternCredential,
	PatternFakeJob,
	PatternMLM,
	PatternCrypto,
	PatternLottery,
	PatternRomance,
	PatternThreat,
}

// PatternMatchSet maps each category to the substrings that matched it
type PatternMatchSet map[PatternCategory][]string

// Count returns the number of matches recorded for a category
func (s PatternMatchSet) Count(c PatternCategory) int {
	return len(s[c])
}

// Total returns the number of matches across all categories
func (s PatternMatchSet) Total() int {
	total := 0
	for _, m := range s {
		total += len(m)
	}
	return total
}

// Categories returns the matched categories in scoring order
func (s PatternMatchSet) Categories() []PatternCategory {
	var out []PatternCategory
	for _, c := range PatternCategories {
		if len(s[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Brand describes a well-known brand and where it legitimately lives
type Brand struct {
	Name              string   `json:"name"`
	Keywords          []string `json:"keywords"`
	LogoSubstrings    []string `json:"logo_substrings"`
	LegitimateDomains []string `json:"legitimate_domains"`
}
