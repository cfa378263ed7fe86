package model

type IntentStatus string

const (
	IntentPending   IntentStatus = "pending"
	IntentCommitted IntentStatus = "committed"
)

// WriteIntent marks a multi-row write in flight. The intent row is
// appended before the data rows and flipped to committed after both land,
// so a crash or failed append between the two leaves a detectable pending
// marker. There is no rollback; the marker only makes the gap visible.
type WriteIntent struct {
	ID     string       `json:"id"`
	HN     string       `json:"hn"`
	Date   string       `json:"date"`
	Status IntentStatus `json:"status"`
}
