package models

// ProgressUpdate is the payload broadcast over the websocket hub while a
// batch dump or a scheduled schedule refresh is running.
type ProgressUpdate struct {
	JobID    string  `json:"jobId"`
	Message  string  `json:"message"`
	Progress float64 `json:"progress"`
	// Unit identifies the (title, episode, dub) tuple the update is about.
	Unit   string `json:"unit,omitempty"`
	Status string `json:"status"` // e.g. "in_progress", "completed", "failed"
	Done   bool   `json:"done"`
}
