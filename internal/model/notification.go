package model

type NotificationOutcome string

const (
	NotificationSent    NotificationOutcome = "sent"
	NotificationSkipped NotificationOutcome = "skipped"
	NotificationFailed  NotificationOutcome = "failed"
)

// NotificationResult is the outcome of one doctor notification attempt.
type NotificationResult struct {
	Outcome   NotificationOutcome `json:"outcome"`
	Recipient string              `json:"recipient,omitempty"`
	Error     string              `json:"error,omitempty"`
}

func (r NotificationResult) Failed() bool {
	return r.Outcome == NotificationFailed
}
