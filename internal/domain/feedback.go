package domain

import "time"

// FeedbackKind distinguishes a quick thumbs-style report from a detailed one.
type FeedbackKind string

const (
	FeedbackQuick    FeedbackKind = "quick"
	FeedbackDetailed FeedbackKind = "detailed"
)

// FeedbackEvent is one user-submitted ground-truth report, as produced on
// the feedback topic. SubmittedAt may be zero, in which case the ledger
// stamps the event at apply time.
type FeedbackEvent struct {
	ID            string       `json:"id"`
	UserID        string       `json:"user_id"`
	DestinationID int          `json:"destination_id"`
	Kind          FeedbackKind `json:"kind"`
	Predicted     CrowdLevel   `json:"predicted_level"`
	Reported      CrowdLevel   `json:"reported_level"`
	Accurate      bool         `json:"accurate"`
	SubmittedAt   time.Time    `json:"submitted_at,omitempty"`
}
