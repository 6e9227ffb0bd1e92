package services

import (
	"regexp"

	"scamshield/internal/domain/models"
)

// CategoryPatterns is a compiled pattern family for one scam category
type CategoryPatterns struct {
	Category    models.PatternCategory
	Description string
	Patterns    []*regexp.Regexp
}

// MessagePatternDetector scans free text against the scam pattern families
type MessagePatternDetector struct {
	families []CategoryPatterns
}

// NewMessagePatternDetector creates a detector with the default families
func NewMessagePatternDetector() *MessagePatternDetector {
	d := &MessagePatternDetector{}
	d.initFamilies()
	return d
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// initFamilies initializes the nine category pattern families
func (d *MessagePatternDetector) initFamilies() {
	d.families = []CategoryPatterns{
		{
			Category:    models.PatternUrgency,
			Description: "Pressures you to act immediately",
			Patterns: compileAll(
				`\burgent\b`,
				`\bact (now|fast|quickly|immediately)\b`,
				`\blimited time\b`,
				`\blast chance\b`,
				`\bexpires? (today|tonight|soon|in \d+ (hours?|minutes?))`,
				`\bimmediate(ly)? (action|response)\b`,
				`\bwithin \d+ hours\b`,
				`\bdon'?t miss (out|this)\b`,
				`\bfinal (notice|warning|reminder)\b`,
				`\brespond (immediately|now|asap|today)\b`,
			),
		},
		{
			Category:    models.PatternPayment,
			Description: "Asks for payment through hard-to-trace channels",
			Patterns: compileAll(
				`\bwire (transfer|the money|funds)\b`,
				`\b(western union|moneygram)\b`,
				`\b(gift ?cards?|itunes cards?|google play cards?|steam cards?)\b`,
				`\b(bitcoin|btc|crypto|usdt|ethereum) (wallet|address)\b`,
				`\bprocessing fee\b`,
				`\b(upfront|advance|release|clearance) (fee|payment)\b`,
				`\b(send|pay) (me |us )?\$\s?\d[\d,]*`,
				`\b(zelle|cash ?app|venmo)\b`,
			),
		},
		{
			Category:    models.PatternCredential,
			Description: "Tries to collect passwords or account details",
			Patterns: compileAll(
				`\b(verify|confirm|validate) (your )?(account|identity|password|login|details)\b`,
				`\breset (your )?password\b`,
				`\benter your (password|pin|ssn|social security( number)?)\b`,
				`\b(login|log-in|sign-in|sign in) (details|credentials|information)\b`,
				`\baccount (has been|was|is|will be) (suspended|locked|compromised|disabled|restricted)\b`,
				`\bupdate (your )?(billing|payment|card) (info|information|details)\b`,
				`\b(one[- ]time|verification) code\b`,
			),
		},
		{
			Category:    models.PatternFakeJob,
			Description: "Too-good-to-be-true job offer",
			Patterns: compileAll(
				`\bwork (from|at) home\b`,
				`\beasy money\b`,
				`\bno experience (needed|required|necessary)\b`,
				`\b(earn|make) \$?\d[\d,]*\+? (a|per|every) (day|week|hour)\b`,
				`\bguaranteed (income|salary|pay|earnings)\b`,
				`\bhiring (immediately|now|urgently)\b`,
				`\bbe your own boss\b`,
				`\b(reshipping|package forwarding|mystery shopper)\b`,
			),
		},
		{
			Category:    models.PatternMLM,
			Description: "Recruitment-driven multi-level marketing language",
			Patterns: compileAll(
				`\bdown-?line\b`,
				`\bup-?line\b`,
				`\bbuild (your|a) team\b`,
				`\bground[- ]floor opportunity\b`,
				`\bpassive income\b`,
				`\bfinancial freedom\b`,
				`\brecruit (your )?(friends|family|others|people)\b`,
				`\bresidual income\b`,
			),
		},
		{
			Category:    models.PatternCrypto,
			Description: "Cryptocurrency investment lure",
			Patterns: compileAll(
				`\bguaranteed (returns?|profits?)\b`,
				`\b\d+x (returns?|profits?|gains?)\b`,
				`\bdouble your (bitcoin|crypto|money|investment|btc|eth)\b`,
				`\bair-?drop\b`,
				`\bpre-?sale\b`,
				`\b(bitcoin|crypto|ethereum|btc|eth) (investment|trading|opportunity|mining)\b`,
				`\bconnect your wallet\b`,
				`\b(seed|recovery) phrase\b`,
			),
		},
		{
			Category:    models.PatternLottery,
			Description: "Unexpected prize or winnings",
			Patterns: compileAll(
				`\byou('ve| have)? (just )?won\b`,
				`\bunclaimed (funds|prize|money|winnings|inheritance)\b`,
				`\b(prize claim|claim your (prize|reward|winnings))\b`,
				`\b(lottery|sweepstakes)\b`,
				`\b(congratulations|congrats)\b.{0,40}\b(winner|selected|chosen)\b`,
				`\blucky (winner|draw)\b`,
			),
		},
		{
			Category:    models.PatternRomance,
			Description: "Emotional appeal for money from an online contact",
			Patterns: compileAll(
				`\bstranded (abroad|overseas|in)\b`,
				`\bsend (me )?(the )?money\b.{0,60}\b(come see you|visit you|be with you|meet you)\b`,
				`\b(my love|my dear|sweetheart)\b.{0,60}\b(money|help|send)\b`,
				`\b(plane|flight) ticket\b`,
				`\bcustoms (fee|charges)\b`,
				`\b(deployed|deployment|oil rig)\b.{0,60}\b(money|help|funds)\b`,
				`\bi('m| am) (a )?widow(ed|er)?\b`,
			),
		},
		{
			Category:    models.PatternThreat,
			Description: "Threats of arrest, legal action or account termination",
			Patterns: compileAll(
				`\barrest warrant\b`,
				`\blegal action\b`,
				`\b(irs|fbi|dea|interpol|social security administration|homeland security)\b`,
				`\blawsuit\b`,
				`\b(will be|you will be|face) (arrested|prosecuted|deported|jailed)\b`,
				`\b(terminated|closed) permanently\b`,
				`\bpay (immediately|now|today) or\b`,
			),
		},
	}
}

// Families returns the compiled pattern families
func (d *MessagePatternDetector) Families() []CategoryPatterns {
	out := make([]CategoryPatterns, len(d.families))
	copy(out, d.families)
	return out
}

// Detect tests every pattern of every family once against text and records
// the first matched substring of each hit
func (d *MessagePatternDetector) Detect(text string) models.PatternMatchSet {
	matches := models.PatternMatchSet{}
	if text == "" {
		return matches
	}

	for _, fam := range d.families {
		for _, p := range fam.Patterns {
			if m := p.FindString(text); m != "" {
				matches[fam.Category] = append(matches[fam.Category], m)
			}
		}
	}

	return matches
}

// categoryDescription returns the explanation line for a category
func (d *MessagePatternDetector) categoryDescription(c models.PatternCategory) string {
	for _, fam := range d.families {
		if fam.Category == c {
			return fam.Description
		}
	}
	return string(c)
}
