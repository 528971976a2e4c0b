package event

import (
	"time"

	"po-workflow-backend/pkg/id"
)

type Stage string

const (
	StageSubmit Stage = "SUBMIT"
	StagePD     Stage = "PD"
	StageAdmin  Stage = "ADMIN"
	StageSBC    Stage = "SBC"
	StageClose  Stage = "CLOSE"
)

// ApprovalEvent is one audit row per workflow transition, written in the
// same transaction as the transition itself.
type ApprovalEvent struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	EventID      string    `gorm:"size:32;uniqueIndex:ux_approval_events_event_id" json:"event_id"`
	ExternalPOID string    `gorm:"size:32;column:external_po_id;index:idx_approval_events_external_po" json:"external_po_id"`
	Stage        Stage     `gorm:"size:16" json:"stage"`
	Action       string    `gorm:"size:16" json:"action"`
	ActorID      string    `gorm:"size:32" json:"actor_id"`
	Remarks      string    `gorm:"type:text" json:"remarks,omitempty"`
	FromStatus   string    `gorm:"size:32" json:"from_status"`
	ToStatus     string    `gorm:"size:32" json:"to_status"`
	OccurredAt   time.Time `json:"occurred_at"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"-"`
}

func (ApprovalEvent) TableName() string { return "approval_events" }

// NewForTransition builds the audit row for one transition.
func NewForTransition(externalPoID string, stage Stage, action, actorID, remarks, fromStatus, toStatus string, at time.Time) *ApprovalEvent {
	return &ApprovalEvent{
		EventID:      id.NewID32(),
		ExternalPOID: externalPoID,
		Stage:        stage,
		Action:       action,
		ActorID:      actorID,
		Remarks:      remarks,
		FromStatus:   fromStatus,
		ToStatus:     toStatus,
		OccurredAt:   at,
	}
}
