// Package analysis performs rule-based query analysis: urgency scoring,
// sentiment, location extraction and disaster-type detection. No model
// calls happen here; results feed the search and scoring stages.
package analysis

import (
	"regexp"
	"strings"
)

// Analysis is the structured result of analyzing a query.
type Analysis struct {
	Sentiment     string   `json:"sentiment"`
	UrgencyScore  int      `json:"urgency_score"`
	Location      string   `json:"location"`
	DisasterType  string   `json:"disaster_type"`
	IsEmergency   bool     `json:"is_emergency"`
	KeywordsFound []string `json:"keywords_found"`
}

// disasterKeywords is the detection vocabulary. Scan order is the slice
// order, so KeywordsFound is deterministic.
var disasterKeywords = []string{
	"flood", "flooding", "earthquake", "tsunami", "cyclone", "hurricane",
	"tornado", "wildfire", "fire", "landslide", "avalanche", "drought",
	"volcano", "eruption", "storm", "typhoon", "blizzard", "heatwave",
	"rescue", "emergency", "evacuation", "trapped", "help", "sos",
}

var panicIndicators = []string{"help", "sos", "emergency", "trapped", "dying", "drowning"}

var urgentIndicators = []string{"now", "immediately", "urgent", "quickly", "asap", "!"}

// locationPatterns run against the original (case-preserving) query.
// Priority: preposition-led phrases first, then "<Place> area/region/...".
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`in\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	regexp.MustCompile(`at\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	regexp.MustCompile(`near\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	regexp.MustCompile(`from\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:area|region|city|town|district)`),
}

// disasterTypes maps canonical types to their synonyms. Order matters:
// the first type with a matching synonym wins.
var disasterTypes = []struct {
	name     string
	synonyms []string
}{
	{"flood", []string{"flood", "flooding", "water entering"}},
	{"earthquake", []string{"earthquake", "quake", "tremor", "seismic"}},
	{"tsunami", []string{"tsunami", "tidal wave"}},
	{"cyclone", []string{"cyclone", "hurricane", "typhoon", "storm"}},
	{"fire", []string{"fire", "wildfire", "blaze", "burning"}},
	{"landslide", []string{"landslide", "mudslide", "debris"}},
}

// Analyze inspects a query for urgency, sentiment, location and disaster
// type. inferredLocation, when non-empty and not "unknown", takes
// precedence over regex extraction.
func Analyze(query, inferredLocation string) Analysis {
	q := strings.ToLower(query)

	var keywords []string
	for _, kw := range disasterKeywords {
		if strings.Contains(q, kw) {
			keywords = append(keywords, kw)
		}
	}

	urgency := 3
	if containsAny(q, panicIndicators) {
		urgency += 4
	}
	if containsAny(q, urgentIndicators) {
		urgency += 2
	}
	if strings.Count(query, "!") >= 2 {
		urgency++
	}
	urgency += len(keywords)
	if urgency > 10 {
		urgency = 10
	}
	if urgency < 1 {
		urgency = 1
	}

	sentiment := "neutral"
	switch {
	case urgency >= 8:
		sentiment = "panic"
	case urgency >= 6:
		sentiment = "urgent"
	case urgency >= 4:
		sentiment = "concerned"
	case strings.Contains(query, "?") && len(keywords) == 0:
		sentiment = "curious"
	}

	location := "Unknown"
	if inferredLocation != "" && strings.ToLower(inferredLocation) != "unknown" {
		location = inferredLocation
	} else {
		for _, p := range locationPatterns {
			if m := p.FindStringSubmatch(query); m != nil {
				location = m[1]
				break
			}
		}
	}

	disasterType := "unknown"
	for _, dt := range disasterTypes {
		if containsAny(q, dt.synonyms) {
			disasterType = dt.name
			break
		}
	}

	return Analysis{
		Sentiment:     sentiment,
		UrgencyScore:  urgency,
		Location:      location,
		DisasterType:  disasterType,
		IsEmergency:   urgency >= 8 || containsAny(q, panicIndicators),
		KeywordsFound: keywords,
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
