// Package guardrail validates incoming queries before they reach the
// verification pipeline. Rules run in a fixed order: length check,
// off-topic rejection, tech/deployment rejection, disaster keyword
// acceptance, then a location+situation fallback.
package guardrail

import (
	"regexp"
	"strings"
)

// Verdict categories.
const (
	CategoryDisaster = "disaster"
	CategoryOffTopic = "off_topic"
	CategoryUnclear  = "unclear"
)

// Verdict is the outcome of validating a query.
type Verdict struct {
	Valid    bool   `json:"valid"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// disasterKeywords is intentionally broad: natural disasters, emergency
// situations, weather events, safety concerns, verification phrasing and
// common location phrases all count as in-scope.
var disasterKeywords = []string{
	"flood", "flooding", "earthquake", "quake", "tsunami", "cyclone", "hurricane",
	"typhoon", "tornado", "storm", "wildfire", "fire", "landslide", "mudslide",
	"avalanche", "drought", "heatwave", "blizzard", "volcanic", "eruption",
	"emergency", "disaster", "crisis", "evacuation", "rescue", "relief",
	"casualty", "casualties", "damage", "destroyed", "collapse", "trapped",
	"heavy rain", "severe weather", "warning", "alert", "red alert", "orange alert",
	"safe", "safety", "danger", "dangerous", "risk", "hazard", "threat",
	"is there", "is it true", "happening", "real", "fake", "rumor", "hoax",
	"verify", "confirm", "true or false", "fact check",
	"in india", "in japan", "in usa", "in california", "in tokyo", "in chennai",
	"in mumbai", "in delhi", "near", "around",
}

var offTopicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\s*[\+\-\*\/]\s*\d+`),
	regexp.MustCompile(`^(what is|define|explain|how to|tutorial)`),
	regexp.MustCompile(`(documentation|docs|api reference|library)`),
	regexp.MustCompile(`(code|programming|python|javascript|java\b)`),
	regexp.MustCompile(`(recipe|cook|food|restaurant)`),
	regexp.MustCompile(`(movie|music|song|game|sport)`),
	regexp.MustCompile(`(stock|crypto|bitcoin|investment)`),
	regexp.MustCompile(`(joke|funny|meme)`),
	regexp.MustCompile(`^(hi|hello|hey|good morning|good evening)`),
	regexp.MustCompile(`(who are you|what are you|your name)`),
	regexp.MustCompile(`(weather forecast|temperature tomorrow)`),
}

// techOrDevPatterns reject development and deployment requests even when
// disaster vocabulary appears ("how to deploy a flood model").
var techOrDevPatterns = []*regexp.Regexp{
	regexp.MustCompile(`how\s+to\s+(deploy|install|build|set\s*up)`),
	regexp.MustCompile(`deploy(ing)?\s+(adk|agent|model|app|application|service)`),
	regexp.MustCompile(`\b(adk|sdk|docker|dockerfile|railway|vercel|cloud\s*run|github|gitlab)\b`),
	regexp.MustCompile(`code\s+(sample|snippet|example)`),
	regexp.MustCompile(`(write|generate)\s+code`),
	regexp.MustCompile(`(api\s+key|api\s+keys)`),
	regexp.MustCompile(`(documentation|docs|tutorial|guide)\s+(for|about)`),
	regexp.MustCompile(`install\s+(the\s+)?dependencies`),
}

// locationIndicators are matched as substrings, mirroring the loose
// matching of the upstream rule set.
var locationIndicators = []string{"in", "at", "near", "around", "happening"}

var situationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\?$`),
	regexp.MustCompile(`^is\s`),
	regexp.MustCompile(`^are\s`),
	regexp.MustCompile(`^what.*happening`),
	regexp.MustCompile(`situation`),
	regexp.MustCompile(`status`),
	regexp.MustCompile(`update`),
	regexp.MustCompile(`news`),
	regexp.MustCompile(`report`),
}

const (
	reasonTooShort = "Query is too short. Please provide more details about the disaster situation you want to verify."
	reasonOffTopic = "I'm InfoShield AI, specialized in disaster information verification. I can help you verify disaster reports, check emergency situations, and provide safety information. Please ask about a specific disaster or emergency situation."
	reasonTech     = "I can't switch to development or deployment support. Please keep the conversation focused on verifying an actual disaster situation."
	reasonUnclear  = "I'm InfoShield AI, designed specifically for disaster information verification. I can help you:\n\n• Verify disaster reports (floods, earthquakes, fires, storms)\n• Check emergency situations in specific locations\n• Assess the credibility of disaster-related news\n• Provide safety information during emergencies\n\nPlease ask about a specific disaster or emergency situation you'd like me to verify."
)

// Validate checks whether a query is disaster-related and appropriate.
func Validate(query string) Verdict {
	q := strings.TrimSpace(strings.ToLower(query))

	if len([]rune(q)) < 5 {
		return Verdict{Valid: false, Category: CategoryUnclear, Reason: reasonTooShort}
	}

	for _, p := range offTopicPatterns {
		if p.MatchString(q) {
			return Verdict{Valid: false, Category: CategoryOffTopic, Reason: reasonOffTopic}
		}
	}

	// Tech/deployment requests share the off_topic category but keep
	// their own reason text.
	for _, p := range techOrDevPatterns {
		if p.MatchString(q) {
			return Verdict{Valid: false, Category: CategoryOffTopic, Reason: reasonTech}
		}
	}

	for _, kw := range disasterKeywords {
		if strings.Contains(q, kw) {
			return Verdict{Valid: true, Category: CategoryDisaster, Reason: "Query is disaster-related"}
		}
	}

	hasLocation := false
	for _, ind := range locationIndicators {
		if strings.Contains(q, ind) {
			hasLocation = true
			break
		}
	}
	isSituation := false
	for _, p := range situationPatterns {
		if p.MatchString(q) {
			isSituation = true
			break
		}
	}
	if hasLocation && isSituation {
		return Verdict{
			Valid:    true,
			Category: CategoryDisaster,
			Reason:   "Query appears to be about a situation at a location",
		}
	}

	return Verdict{Valid: false, Category: CategoryUnclear, Reason: reasonUnclear}
}

// RejectionMessage renders the user-facing rejection for an invalid verdict.
func RejectionMessage(v Verdict) string {
	return "**🛡️ InfoShield AI - Query Outside Scope**\n\n" +
		v.Reason + "\n\n" +
		"**Example queries I can help with:**\n" +
		"- \"Is there flooding in Chennai right now?\"\n" +
		"- \"Earthquake near Tokyo - is this real?\"\n" +
		"- \"What's the status of the California wildfires?\"\n" +
		"- \"Is the tsunami warning in Japan genuine?\"\n\n" +
		"---\n" +
		"*InfoShield AI focuses exclusively on disaster verification to ensure accurate, life-saving information.*\n"
}
