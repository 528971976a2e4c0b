package notify

import "time"

const (
	KindAssignmentCreated   = "assignment.created"
	KindAssignmentResponded = "assignment.responded"
	KindExternalPOSubmitted = "external_po.submitted"
	KindExternalPODecided   = "external_po.decided"
	KindSBCResponded        = "external_po.sbc_responded"
	KindExternalPOClosed    = "external_po.closed"
)

// Event is the payload pushed to the configured webhook after a workflow
// transition commits.
type Event struct {
	Kind         string    `json:"event"`
	ExternalPOID string    `json:"external_po_id,omitempty"`
	InternalPoID string    `json:"internal_po_id,omitempty"`
	AssignmentID string    `json:"assignment_id,omitempty"`
	Status       string    `json:"status,omitempty"`
	ActorID      string    `json:"actor_id,omitempty"`
	Message      string    `json:"message"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Notifier delivers events out of band. Implementations must never block the
// caller; delivery failures are logged, not returned.
type Notifier interface {
	Publish(ev Event)
}
