package services

import (
	"testing"

	"scamshield/internal/domain/models"
)

func TestRiskLevelThresholds(t *testing.T) {
	tests := []struct {
		name  string
		level func(int) models.RiskLevel
		cases map[int]models.RiskLevel
	}{
		{
			name:  "url",
			level: urlRiskLevel,
			cases: map[int]models.RiskLevel{
				0:   models.RiskLevelSafe,
				29:  models.RiskLevelSafe,
				30:  models.RiskLevelSuspicious,
				59:  models.RiskLevelSuspicious,
				60:  models.RiskLevelDangerous,
				100: models.RiskLevelDangerous,
			},
		},
		{
			name:  "message",
			level: messageRiskLevel,
			cases: map[int]models.RiskLevel{
				0:   models.RiskLevelSafe,
				24:  models.RiskLevelSafe,
				25:  models.RiskLevelSuspicious,
				49:  models.RiskLevelSuspicious,
				50:  models.RiskLevelDangerous,
				100: models.RiskLevelDangerous,
			},
		},
		{
			name:  "content",
			level: contentRiskLevel,
			cases: map[int]models.RiskLevel{
				0:   models.RiskLevelSafe,
				29:  models.RiskLevelSafe,
				30:  models.RiskLevelSuspicious,
				59:  models.RiskLevelSuspicious,
				60:  models.RiskLevelDangerous,
				100: models.RiskLevelDangerous,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for score, want := range tt.cases {
				if got := tt.level(score); got != want {
					t.Errorf("level(%d) = %s, want %s", score, got, want)
				}
			}
		})
	}
}

// URL weights are multiples of 5, so 55 and 60 are the reachable scores
// either side of the scam line.
func TestURLScorerScamLine(t *testing.T) {
	s := NewURLScorer()

	below := s.Score(&models.DomainFactors{HasIPAddress: true, DomainLength: 31})
	if below.Score != 55 || below.IsScam || below.RiskLevel != models.RiskLevelSuspicious {
		t.Errorf("ip + no https + long domain = %d/%s/%v, want 55 suspicious not scam", below.Score, below.RiskLevel, below.IsScam)
	}

	at := s.Score(&models.DomainFactors{HasIPAddress: true, HasManySubdomains: true})
	if at.Score != 60 || !at.IsScam || at.RiskLevel != models.RiskLevelDangerous {
		t.Errorf("ip + no https + subdomains = %d/%s/%v, want 60 dangerous scam", at.Score, at.RiskLevel, at.IsScam)
	}
}

func TestMessageScorerScamLine(t *testing.T) {
	s := NewMessageScorer(NewMessagePatternDetector())

	below := s.Score("x", models.PatternMatchSet{
		models.PatternUrgency: {"urgent", "now"},
		models.PatternPayment: {"gift card"},
	})
	if below.Score != 45 || below.IsScam || below.RiskLevel != models.RiskLevelSuspicious {
		t.Errorf("urgency x2 + payment = %d/%s/%v, want 45 suspicious not scam", below.Score, below.RiskLevel, below.IsScam)
	}

	at := s.Score("x", models.PatternMatchSet{
		models.PatternUrgency:    {"urgent", "now"},
		models.PatternCredential: {"password"},
	})
	if at.Score != 50 || !at.IsScam || at.RiskLevel != models.RiskLevelDangerous {
		t.Errorf("urgency x2 + credential = %d/%s/%v, want 50 dangerous scam", at.Score, at.RiskLevel, at.IsScam)
	}
}
