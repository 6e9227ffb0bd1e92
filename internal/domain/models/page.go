package models

// PageSnapshot is the DOM summary scraped by the extension
type PageSnapshot struct {
	URL    string      `json:"url"`
	Forms  []PageForm  `json:"forms,omitempty"`
	Inputs []PageInput `json:"inputs,omitempty"`
	Images []PageImage `json:"images,omitempty"`
	Text   string      `json:"text,omitempty"`
}

// PageForm is a <form> element
type PageForm struct {
	Action string `json:"action,omitempty"`
	Method string `json:"method,omitempty"`
}

// PageInput is an <input> element
type PageInput struct {
	Type        string `json:"type,omitempty"`
	Name        string `json:"name,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// PageImage is an <img> element
type PageImage struct {
	Src string `json:"src,omitempty"`
	Alt string `json:"alt,omitempty"`
}

// SuspiciousFormAction is a form that posts somewhere other than the page host
type SuspiciousFormAction struct {
	Action      string `json:"action"`
	Destination string `json:"destination"`
}

// LoginFormAnalysis summarizes credential collection on a page
type LoginFormAnalysis struct {
	HasLoginForm          bool                   `json:"has_login_form"`
	HasSensitiveFields    bool                   `json:"has_sensitive_fields"`
	PasswordInputCount    int                    `json:"password_input_count"`
	SuspiciousFormActions []SuspiciousFormAction `json:"suspicious_form_actions,omitempty"`
}

// BrandCandidate is a brand the page appears to impersonate
type BrandCandidate struct {
	Brand      string `json:"brand"`
	Confidence int    `json:"confidence"`
}

// BrandImpersonationAnalysis summarizes brand references on a page
type BrandImpersonationAnalysis struct {
	ImpersonatedBrand string           `json:"impersonated_brand,omitempty"`
	Confidence        int              `json:"confidence"`
	Candidates        []BrandCandidate `json:"candidates,omitempty"`
}

// PhishingLanguageAnalysis summarizes pressure and credential-request language
type PhishingLanguageAnalysis struct {
	Score          int      `json:"score"`
	UrgencyPhrases []string `json:"urgency_phrases,omitempty"`
	TypoPatterns   []string `json:"typo_patterns,omitempty"`
	DirectRequests []string `json:"direct_requests,omitempty"`
}

// ContentAnalysis is the result of inspecting a page snapshot
type ContentAnalysis struct {
	Hostname  string                     `json:"hostname"`
	Login     LoginFormAnalysis          `json:"login"`
	Brand     BrandImpersonationAnalysis `json:"brand"`
	Language  PhishingLanguageAnalysis   `json:"language"`
	Score     int                        `json:"score"`
	RiskLevel RiskLevel                  `json:"risk_level"`
	ScamType  string                     `json:"scam_type"`
	Factors   []RiskFactor               `json:"factors"`
}
