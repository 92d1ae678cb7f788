package models

// Insight slot states. A slot starts idle, becomes pending while a
// generation is in flight and ready once a text (or the fallback apology)
// has been stored.
const (
	InsightIdle    = "idle"
	InsightPending = "pending"
	InsightReady   = "ready"
)

// InsightResult is the per-car slot holding the latest advisory text.
type InsightResult struct {
	CarID   string `json:"car_id"`
	Status  string `json:"status"`
	Insight string `json:"insight,omitempty"`
}
