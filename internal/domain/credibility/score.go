// Package credibility scores how trustworthy a disaster report is, based
// on the sources and wording found during search. Scoring is an additive
// rule table over a fixed vocabulary of official and news sources.
package credibility

import (
	"fmt"
	"strings"
)

// Result is the outcome of scoring search evidence.
type Result struct {
	Score         int      `json:"score"`
	Level         string   `json:"level"`
	Reasoning     string   `json:"reasoning"`
	SourcesFound  []string `json:"sources_found"`
	OfficialCount int      `json:"official_sources_count"`
	NewsCount     int      `json:"news_sources_count"`
}

// officialSources is the recognition vocabulary: agencies, news outlets,
// weather services and generic official terms, worldwide.
var officialSources = []string{
	// Global organizations
	"un ocha", "red cross", "red crescent", "world meteorological organization",
	"international federation", "unicef", "who",
	// News agencies
	"reuters", "ap news", "afp", "bbc", "cnn", "al jazeera",
	// Weather services
	"accuweather", "weather.com", "weather underground",
	// India
	"ndrf", "ndma", "imd", "indian meteorological department", "india met",
	"sdma", "ddma", "ndtv", "times of india", "hindustan times",
	// United States
	"fema", "nws", "national weather service", "noaa", "usgs",
	"national hurricane center", "storm prediction center",
	// United Kingdom
	"met office", "environment agency", "bbc weather",
	// Australia
	"bureau of meteorology", "bom", "ses", "emergency victoria",
	// Japan
	"jma", "japan meteorological agency", "data.jma.go.jp", "jma.go.jp",
	"japan earthquake", "japan tsunami warning",
	// China
	"cma", "china meteorological administration",
	// European Union
	"eumetsat", "copernicus", "ecmwf",
	// Philippines
	"pagasa", "ndrrmc", "philvolcs",
	// Bangladesh
	"bmd", "bangladesh meteorological department",
	// Generic official terms
	"government", "official", "ministry", "department",
	"meteorological", "seismological", "emergency management",
	"civil defense", "disaster management authority",
}

// officialSubset names count toward the official bucket; every other
// vocabulary hit counts as a news/reliable source.
var officialSubset = map[string]bool{
	"ndrf":       true,
	"ndma":       true,
	"fema":       true,
	"government": true,
	"ministry":   true,
	"official":   true,
}

var recencyKeywords = []string{"today", "now", "just", "breaking", "latest", "current", "ongoing"}

var doubtKeywords = []string{"unconfirmed", "rumor", "false", "fake", "hoax", "not true", "denied"}

// Score rates the credibility of search evidence from 0 to 100.
// searchText is the collaborator's summary; sources is the list of
// source names it reported.
func Score(searchText string, sources []string, location, disasterType string) Result {
	searchLower := strings.ToLower(searchText)
	sourcesLower := strings.ToLower(strings.Join(sources, ", "))

	score := 0
	var reasons []string
	var found []string
	officialCount := 0
	newsCount := 0

	for _, src := range officialSources {
		if strings.Contains(searchLower, src) || strings.Contains(sourcesLower, src) {
			found = append(found, src)
			if officialSubset[src] {
				officialCount++
			} else {
				newsCount++
			}
		}
	}

	if officialCount > 0 {
		pts := min(40, officialCount*20)
		score += pts
		reasons = append(reasons, fmt.Sprintf("Found %d official source(s) (+%d)", officialCount, pts))
	}
	if newsCount > 0 {
		pts := min(30, newsCount*10)
		score += pts
		reasons = append(reasons, fmt.Sprintf("Found %d news/reliable source(s) (+%d)", newsCount, pts))
	}

	if containsAny(searchLower, recencyKeywords) {
		score += 10
		reasons = append(reasons, "Recent/current event indicators (+10)")
	}

	if location != "" && strings.ToLower(location) != "unknown" {
		if strings.Contains(searchLower, strings.ToLower(location)) {
			score += 10
			reasons = append(reasons, fmt.Sprintf("Location '%s' confirmed in sources (+10)", location))
		}
	}

	if len(found) >= 3 {
		score += 10
		reasons = append(reasons, "Multiple sources corroborate (+10)")
	}

	if disasterType != "" && disasterType != "unknown" &&
		strings.Contains(searchLower, strings.ToLower(disasterType)) {
		score += 5
		reasons = append(reasons, fmt.Sprintf("Disaster type '%s' confirmed (+5)", disasterType))
	}

	if containsAny(searchLower, doubtKeywords) {
		score -= 30
		reasons = append(reasons, "Found doubt/denial indicators (-30)")
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "No confirming sources found in search results")
	}

	return Result{
		Score:         score,
		Level:         level(score),
		Reasoning:     strings.Join(reasons, "; "),
		SourcesFound:  found,
		OfficialCount: officialCount,
		NewsCount:     newsCount,
	}
}

func level(score int) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 40:
		return "medium"
	default:
		return "low"
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
