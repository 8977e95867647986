package scoring

import (
	"regexp"
	"strings"
)

// Bonus rule names, reported alongside the total.
const (
	RuleImpact     = "impact"
	RuleLeadership = "leadership"
	RulePrestige   = "prestige"
	RuleScale      = "scale"
)

// Rule point values.
const (
	impactPoints     = 5
	leadershipPoints = 5
	prestigePoints   = 10
	scalePoints      = 5
)

// DefaultPrestige is the institution and company allowlist for the prestige rule.
var DefaultPrestige = []string{
	"IIT", "NIT", "BITS", "STANFORD", "MIT", "HARVARD", "OXFORD", "CAMBRIDGE",
	"GOOGLE", "AMAZON", "META", "MICROSOFT", "NETFLIX", "APPLE", "UBER", "STRIPE",
}

var (
	impactPattern = regexp.MustCompile(`\d+%|\$\d+|REDUCED|INCREASED|IMPROVED|SAVED|OPTIMIZED|BOOSTED`)

	leadershipKeywords = []string{
		"LEAD", "MANAGED", "MENTORED", "ARCHITECTED", "OWNED", "INITIATED", "HEADED", "DIRECTED",
	}
	scaleKeywords = []string{
		"SCALE", "DISTRIBUTED", "MICROSERVICES", "KUBERNETES", "HIGH-TRAFFIC", "LATENCY", "MILLION", "BILLION",
	}
)

// BonusResult is the bonus total and the rules that fired, in evaluation order.
type BonusResult struct {
	Total int
	Fired []string
}

// BonusEngine awards additive points for impact, leadership, prestige and
// scale signals. All checks are plain substring containment on upper-cased
// text, so "LEADERSHIP" fires the leadership rule and "RESCALED" fires scale.
type BonusEngine struct {
	prestige []string
}

// NewBonusEngine creates an engine with the given prestige allowlist.
// A nil list uses DefaultPrestige. Entries are upper-cased.
func NewBonusEngine(prestige []string) *BonusEngine {
	if prestige == nil {
		prestige = DefaultPrestige
	}
	list := make([]string, 0, len(prestige))
	for _, p := range prestige {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			list = append(list, p)
		}
	}
	return &BonusEngine{prestige: list}
}

// Compute scores experienceText for impact, leadership and scale, and the
// combined experience and education sections for prestige. There is no cap.
func (b *BonusEngine) Compute(experienceText string, sections SectionSet) BonusResult {
	text := strings.ToUpper(experienceText)
	var res BonusResult

	fire := func(rule string, points int) {
		res.Total += points
		res.Fired = append(res.Fired, rule)
	}

	if impactPattern.MatchString(text) {
		fire(RuleImpact, impactPoints)
	}
	if containsAny(text, leadershipKeywords) {
		fire(RuleLeadership, leadershipPoints)
	}
	if containsAny(strings.ToUpper(sections.Experience+sections.Education), b.prestige) {
		fire(RulePrestige, prestigePoints)
	}
	if containsAny(text, scaleKeywords) {
		fire(RuleScale, scalePoints)
	}
	return res
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
