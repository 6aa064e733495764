package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/infoshield/infoshield/internal/port/collaborator"
)

// Synthesizer renders the final verification report through the LiteLLM
// proxy. The system prompt pins the markdown table contract so the
// credibility score stays machine-extractable.
type Synthesizer struct {
	client *Client
	model  string
}

// NewSynthesizer creates the report-synthesis collaborator.
func NewSynthesizer(client *Client, model string) *Synthesizer {
	return &Synthesizer{client: client, model: model}
}

const synthSystemPrompt = `You are the InfoShield AI Report Synthesizer.
You receive the analysis, search and credibility results for a disaster
query and create a comprehensive verification report.

Use this EXACT format:

**📊 INFOSHIELD VERIFICATION REPORT**

| Metric | Value |
|--------|-------|
| Status | [verified / unverified / doubtful, from the credibility level] |
| Credibility Score | [score]/100 |
| Urgency Level | [Low if urgency 1-3, Medium if 4-6, High if 7-8, Critical if 9-10] |
| Location | [from the analysis] |
| Disaster Type | [from the analysis] |
| Query Date | [today's date] |

**📋 Summary:**
[Summarize the search findings in bullet points]

**🛡️ Safety Advice:**
[Appropriate safety advice for the disaster type and urgency, as bullet points]

**📰 Sources:**
[Key sources from the search results as bullet points]

**⚠️ Disclaimer:**
For life-threatening emergencies, contact local emergency services (911, 112) directly.
[If critical_urgency is true, lead the safety advice with immediate evacuation and emergency-contact steps.]
[If the credibility score is below the threshold, add: "⚠️ This query has been flagged for human expert review due to low credibility score."]`

// Synthesize implements collaborator.Synthesizer.
func (s *Synthesizer) Synthesize(ctx context.Context, input collaborator.SynthesisInput) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"query":              input.Query,
		"analysis_result":    input.Analysis,
		"search_result":      input.Search,
		"credibility_result": input.Credibility,
		"threshold":          input.Threshold,
		"critical_urgency":   input.CriticalUrgency,
		"today":              time.Now().Format("January 2, 2006"),
	})
	if err != nil {
		return "", fmt.Errorf("marshal synthesis input: %w", err)
	}

	text, err := s.client.Complete(ctx, s.model, synthSystemPrompt, string(payload))
	if err != nil {
		return "", fmt.Errorf("synthesizer collaborator: %w", err)
	}
	return text, nil
}
