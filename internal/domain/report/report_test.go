package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/infoshield/infoshield/internal/domain/verification"
)

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
		ok   bool
	}{
		{
			name: "table row with pipe",
			text: "| Credibility Score | 72/100 |",
			want: 72,
			ok:   true,
		},
		{
			name: "tab separated",
			text: "Credibility Score\t55/100",
			want: 55,
			ok:   true,
		},
		{
			name: "score colon form",
			text: "Score: 40/100 based on available sources",
			want: 40,
			ok:   true,
		},
		{
			name: "loose credibility form",
			text: "overall credibility: 85 given the agencies involved",
			want: 85,
			ok:   true,
		},
		{
			name: "trailing credibility",
			text: "rated 30/100 for credibility by the pipeline",
			want: 30,
			ok:   true,
		},
		{
			name: "no score",
			text: "no numeric rating here",
			want: 0,
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractScore(tt.text)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStripReviewPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "reference id variant",
			text: "Report body.\nThis query has been flagged for human expert review. Reference ID will be provided.\nEnd.",
		},
		{
			name: "low credibility variant",
			text: "Report body.\n⚠️ This query has been flagged for human expert review due to low credibility score.\nEnd.",
		},
		{
			name: "bare flag sentence",
			text: "Report body.\nThis query has been flagged for human expert review.\nEnd.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripReviewPlaceholder(tt.text)
			if strings.Contains(got, "flagged for human expert review") {
				t.Errorf("placeholder not stripped: %s", got)
			}
			if !strings.Contains(got, "Report body.") || !strings.Contains(got, "End.") {
				t.Errorf("surrounding text lost: %s", got)
			}
		})
	}
}

func TestReviewNotice(t *testing.T) {
	n := ReviewNotice("IS-abc12345", "within 1 hour", 35, 60)
	for _, want := range []string{
		"IS-abc12345",
		"within 1 hour",
		"Credibility score (35/100) below threshold (60)",
		"Human Review Triggered",
	} {
		if !strings.Contains(n, want) {
			t.Errorf("notice missing %q:\n%s", want, n)
		}
	}
}

func TestFallbackLocation(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"Is there flooding in Chennai today?", "Chennai today"},
		{"fire near Bandra station!", "Bandra station"},
		{"earthquake at San Francisco?", "San Francisco"},
		{"is this real", "Unknown"},
	}
	for _, tt := range tests {
		if got := FallbackLocation(tt.query); got != tt.want {
			t.Errorf("FallbackLocation(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestEstimateUrgency(t *testing.T) {
	if got := EstimateUrgency("HELP, water rising"); got != 8 {
		t.Errorf("expected 8 for panic wording, got %d", got)
	}
	if got := EstimateUrgency("is this report accurate"); got != 5 {
		t.Errorf("expected 5 for calm wording, got %d", got)
	}
}

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("429 rate limit exceeded"), verification.FailureRateLimit},
		{errors.New("quota exhausted for model"), verification.FailureRateLimit},
		{errors.New("request timeout after 10s"), verification.FailureTimeout},
		{errors.New("context deadline exceeded"), verification.FailureTimeout},
		{errors.New("connection refused"), verification.FailureAPIError},
	}
	for _, tt := range tests {
		if got := ClassifyFailure(tt.err); got != tt.want {
			t.Errorf("ClassifyFailure(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
	if got := ClassifyFailure(nil); got != "" {
		t.Errorf("expected empty class for nil error, got %s", got)
	}
}

func TestErrorMessageFallback(t *testing.T) {
	if ErrorMessage("nonsense") != ErrorMessage(verification.FailureAPIError) {
		t.Error("unknown class should fall back to api_error message")
	}
	if !strings.Contains(ErrorMessage(verification.FailureTimeout), "emergency services") {
		t.Error("timeout message should point at emergency services")
	}
}
