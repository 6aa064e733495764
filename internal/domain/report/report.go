// Package report post-processes synthesizer output: credibility score
// extraction, review-notice handling and fixed user-safe error messages.
package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/infoshield/infoshield/internal/domain/verification"
)

// scorePatterns is an ordered ladder: the table row format first, then
// progressively looser shapes. The first match wins.
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Credibility Score\s*[|\t]\s*(\d+)/100`),
	regexp.MustCompile(`(?i)Credibility Score\s*\|\s*(\d+)/100`),
	regexp.MustCompile(`(?i)Score[:\s]+(\d+)/100`),
	regexp.MustCompile(`(?i)credibility[:\s]+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)/100.*credibility`),
}

// reviewPlaceholder is the synthesizer's incomplete flag line, replaced
// by the full notice once a queue entry exists. Both template variants
// are covered: the bare flag sentence (optionally with its low-score
// clause) and the "Reference ID will be provided." follow-up.
var reviewPlaceholder = regexp.MustCompile(
	`(?:⚠️\s*)?This query has been flagged for human expert review(?:\s+due to low credibility score)?\.?(?:\s*Reference ID will be provided\.?)?`)

// ExtractScore pulls the credibility score out of a rendered report.
// The second return is false when no pattern matches.
func ExtractScore(text string) (int, bool) {
	for _, p := range scorePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return n, true
		}
	}
	return 0, false
}

// StripReviewPlaceholder removes the synthesizer's incomplete review
// flag so the authoritative notice can be appended instead.
func StripReviewPlaceholder(text string) string {
	return reviewPlaceholder.ReplaceAllString(text, "")
}

// ReviewNotice renders the block appended to a report when a human
// review was queued.
func ReviewNotice(sessionID, reviewTime string, score, threshold int) string {
	return fmt.Sprintf(`

---
**🔍 Human Review Triggered**
- **Reference ID:** %s
- **Estimated Review Time:** %s
- **Reason:** Credibility score (%d/100) below threshold (%d)
`, sessionID, reviewTime, score, threshold)
}

// FallbackLocation extracts a rough location from the raw query when
// analysis produced none: the two words following in/at/near.
func FallbackLocation(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		switch strings.ToLower(w) {
		case "in", "at", "near":
			if i+1 < len(words) {
				end := i + 3
				if end > len(words) {
					end = len(words)
				}
				return strings.Trim(strings.Join(words[i+1:end], " "), "?.,!")
			}
		}
	}
	return "Unknown"
}

// EstimateUrgency gives a coarse urgency for review entries created
// during post-processing, where no full analysis is at hand.
func EstimateUrgency(query string) int {
	q := strings.ToLower(query)
	for _, kw := range []string{"emergency", "help", "urgent", "trapped", "sos"} {
		if strings.Contains(q, kw) {
			return 8
		}
	}
	return 5
}

// User-safe messages for collaborator failures. Each reminds the user
// that emergencies belong with local emergency services.
var errorMessages = map[string]string{
	verification.FailureAPIError:   "I apologize, but I'm experiencing technical difficulties connecting to my verification sources. Please try again in a moment. If this is an emergency, please contact local emergency services directly.",
	verification.FailureTimeout:    "The verification is taking longer than expected. For urgent situations, please contact emergency services (911/112) while I continue processing.",
	verification.FailureNoResponse: "I wasn't able to generate a complete response. Please try rephrasing your query or contact emergency services if this is urgent.",
	verification.FailureRateLimit:  "I'm currently handling many requests. Please wait a moment and try again. For emergencies, contact local emergency services.",
}

// ErrorMessage returns the fixed user-safe message for a failure class,
// falling back to the api_error text for unknown classes.
func ErrorMessage(class string) string {
	if msg, ok := errorMessages[class]; ok {
		return msg
	}
	return errorMessages[verification.FailureAPIError]
}

// DegradedNotice is appended to error responses once the service has
// seen several consecutive failures.
const DegradedNotice = "\n\n*Service health is degraded; responses may be delayed while we recover.*"

// ClassifyFailure maps a collaborator error message to a failure class.
func ClassifyFailure(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate") || strings.Contains(msg, "quota"):
		return verification.FailureRateLimit
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return verification.FailureTimeout
	default:
		return verification.FailureAPIError
	}
}
