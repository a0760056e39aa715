package keyword

import (
	"context"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Sushmit94/solana-project/internal/core"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ModelName is reported in ClassificationResult.ModelUsed
const ModelName = "keyword-v1"

// Rule is a weighted phrase that indicates a threat category
type Rule struct {
	Phrase string
	Type   core.EventType
	Weight float64
}

// DefaultRules covers the common phishing, spam, malware and social
// engineering lures.
var DefaultRules = []Rule{
	{"verify your account", core.EventPhishing, 0.45},
	{"confirm your password", core.EventPhishing, 0.5},
	{"account suspended", core.EventPhishing, 0.4},
	{"unusual sign-in activity", core.EventPhishing, 0.35},
	{"click here to login", core.EventPhishing, 0.4},
	{"update your payment", core.EventPhishing, 0.35},
	{"seed phrase", core.EventPhishing, 0.6},
	{"private key", core.EventPhishing, 0.5},
	{"connect your wallet", core.EventPhishing, 0.4},
	{"you have won", core.EventSpam, 0.4},
	{"claim your prize", core.EventSpam, 0.4},
	{"limited time offer", core.EventSpam, 0.25},
	{"act now", core.EventSpam, 0.2},
	{"100% free", core.EventSpam, 0.25},
	{"unsubscribe", core.EventSpam, 0.05},
	{"enable macros", core.EventMalware, 0.55},
	{"open the attached", core.EventMalware, 0.25},
	{"download the invoice", core.EventMalware, 0.3},
	{"wire transfer", core.EventSocialEngineering, 0.35},
	{"gift cards", core.EventSocialEngineering, 0.4},
	{"keep this confidential", core.EventSocialEngineering, 0.35},
	{"urgent request", core.EventSocialEngineering, 0.3},
	{"are you available", core.EventSocialEngineering, 0.15},
}

// dangerousExtensions mark attachments that execute code when opened
var dangerousExtensions = map[string]float64{
	".exe": 0.6, ".scr": 0.6, ".js": 0.5, ".vbs": 0.5, ".bat": 0.5,
	".cmd": 0.5, ".jar": 0.45, ".iso": 0.4, ".docm": 0.45, ".xlsm": 0.45,
	".html": 0.25, ".htm": 0.25, ".zip": 0.15,
}

// Classifier is an offline rule based classifier
type Classifier struct {
	rules  []Rule
	logger *zap.Logger
	now    func() time.Time
}

// NewClassifier creates a classifier over rules. Phrases are normalized the
// same way message text is, so rules may be written in any case.
func NewClassifier(rules []Rule, logger *zap.Logger) *Classifier {
	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		r.Phrase = normalize(r.Phrase)
		normalized[i] = r
	}
	return &Classifier{rules: normalized, logger: logger, now: time.Now}
}

// Classify implements core.Classifier
func (c *Classifier) Classify(_ context.Context, msg *core.Message) (*core.ClassificationResult, error) {
	text := normalize(msg.Subject + "\n" + msg.Body)

	scores := make(map[core.EventType]float64)
	var keywords, reasons []string
	for _, r := range c.rules {
		if strings.Contains(text, r.Phrase) {
			scores[r.Type] += r.Weight
			keywords = append(keywords, r.Phrase)
		}
	}
	for _, a := range msg.Attachments {
		ext := strings.ToLower(path.Ext(a.Filename))
		if w, ok := dangerousExtensions[ext]; ok {
			scores[core.EventMalware] += w
			reasons = append(reasons, "attachment "+a.Filename+" has a risky file type")
		}
	}

	eventType, score := dominant(scores)
	result := &core.ClassificationResult{
		EventType:        eventType,
		Confidence:       confidence(score),
		DetectedKeywords: keywords,
		Reasons:          reasons,
		ModelUsed:        ModelName,
		AnalyzedAt:       c.now(),
	}
	result.ThreatLevel = level(score)
	result.IsMalicious = result.ThreatLevel != core.ThreatSafe
	if len(keywords) > 0 {
		result.Reasons = append(result.Reasons, "matched "+strings.Join(keywords, ", "))
	}

	c.logger.Debug("Keyword classification",
		zap.String("message_id", msg.ID),
		zap.Float64("score", score),
		zap.String("threat_level", string(result.ThreatLevel)))
	return result, nil
}

func normalize(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// dominant picks the highest scoring type. Ties go to the type listed first
// in core.AllEventTypes.
func dominant(scores map[core.EventType]float64) (core.EventType, float64) {
	best := core.EventSpam
	bestScore := 0.0
	total := 0.0
	types := append([]core.EventType(nil), core.AllEventTypes...)
	sort.SliceStable(types, func(i, j int) bool { return scores[types[i]] > scores[types[j]] })
	for _, t := range types {
		total += scores[t]
	}
	if len(types) > 0 && scores[types[0]] > 0 {
		best = types[0]
		bestScore = total
	}
	return best, bestScore
}

func level(score float64) core.ThreatLevel {
	switch {
	case score >= 1.0:
		return core.ThreatCritical
	case score >= 0.7:
		return core.ThreatHigh
	case score >= 0.4:
		return core.ThreatMedium
	case score >= 0.2:
		return core.ThreatLow
	default:
		return core.ThreatSafe
	}
}

func confidence(score float64) float64 {
	if score <= 0 {
		return 0.9
	}
	c := 0.5 + score/2
	if c > 0.99 {
		c = 0.99
	}
	return c
}
