package approval

import "time"

type RespondInput struct {
	Level           string
	Action          string
	Remarks         string
	RejectionReason string
}

type EventDTO struct {
	EventID      string    `json:"event_id"`
	ExternalPOID string    `json:"external_po_id"`
	Stage        string    `json:"stage"`
	Action       string    `json:"action"`
	ActorID      string    `json:"actor_id"`
	Remarks      string    `json:"remarks,omitempty"`
	FromStatus   string    `json:"from_status"`
	ToStatus     string    `json:"to_status"`
	OccurredAt   time.Time `json:"occurred_at"`
}
