package types

// AISummary is the externally produced situation summary pushed through the
// realtime store. The backend that consumes it never mutates it; the producer
// overwrites the whole value on every refresh.
type AISummary struct {
	Summary         string   `json:"summary"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	Timestamp       string   `json:"timestamp"`
}

// Anomaly is one detected anomaly record in the realtime store, the raw
// input the summary producer works from.
type Anomaly struct {
	Type      string `json:"type"`
	Zone      string `json:"zone"`
	Severity  string `json:"severity"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}
