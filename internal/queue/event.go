// Package queue defines the message payloads and broker plumbing for
// republishing synchronized entities onto the bus. Snapshots live under
// a hierarchical routing-key namespace on a topic exchange
// (staff.<uuid>.details, jobs.<uuid>.tasks.<uuid>.details, …) and
// change notifications under events.<entity>Updated.
package queue

// Exchange is the topic exchange all snapshots and events are published
// to.
const Exchange = "timekeeper"

// EntityUpdatedEvent notifies consumers that an entity snapshot was
// (re)published. It carries just enough to locate the snapshot topics
// without querying the primary database.
type EntityUpdatedEvent struct {
	EventType string `json:"event_type"` // e.g. "staff_updated"
	UUID      string `json:"uuid"`
	Name      string `json:"name,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339
}

// StatusPayload is the lightweight per-entity status message published
// alongside the details snapshot.
type StatusPayload struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
