package messagequeue

// ReviewFlaggedPayload is the schema for reviews.flagged messages.
type ReviewFlaggedPayload struct {
	SessionID        string `json:"session_id"`
	Query            string `json:"query"`
	Location         string `json:"location"`
	UrgencyScore     int    `json:"urgency_score"`
	CredibilityScore int    `json:"credibility_score"`
	ReviewTime       string `json:"review_time"`
}

// ReviewUpdatedPayload is the schema for reviews.updated messages.
type ReviewUpdatedPayload struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

// QueryVerifiedPayload is the schema for queries.verified messages.
type QueryVerifiedPayload struct {
	Query            string `json:"query"`
	Location         string `json:"location"`
	DisasterType     string `json:"disaster_type"`
	CredibilityScore int    `json:"credibility_score"`
	UrgencyScore     int    `json:"urgency_score"`
	Emergency        bool   `json:"emergency"`
}

// QueryRejectedPayload is the schema for queries.rejected messages.
type QueryRejectedPayload struct {
	Query    string `json:"query"`
	Category string `json:"category"`
}
