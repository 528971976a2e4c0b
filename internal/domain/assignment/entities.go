package assignment

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"po-workflow-backend/internal/domain/fault"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

type Action string

const (
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
)

type Assignment struct {
	ID              uint64                      `gorm:"primaryKey;column:id" json:"-"`
	AssignmentID    string                      `gorm:"size:32;uniqueIndex:ux_assignments_assignment_id" json:"assignment_id"`
	PoIDs           datatypes.JSONSlice[string] `gorm:"column:po_ids" json:"po_ids"`
	AssignedBy      string                      `gorm:"size:32;index:idx_assignments_assigned_by" json:"assigned_by"`
	AssignedTo      string                      `gorm:"size:32;index:idx_assignments_assigned_to" json:"assigned_to"`
	Notes           string                      `gorm:"type:text" json:"notes"`
	Status          Status                      `gorm:"type:enum('PENDING','APPROVED','REJECTED');default:'PENDING'" json:"status"`
	RejectionReason string                      `gorm:"type:text" json:"rejection_reason,omitempty"`
	RespondedAt     *time.Time                  `json:"responded_at,omitempty"`
	CreatedAt       time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt              `gorm:"index" json:"-"`
}

func (Assignment) TableName() string { return "assignments" }

// Respond applies the assignee's one-shot decision. The caller has already
// checked that the actor is the assignee.
func (a *Assignment) Respond(action Action, rejectionReason string, at time.Time) error {
	if a.Status != StatusPending {
		return fault.Statef("assignment %s already %s", a.AssignmentID, a.Status)
	}
	switch action {
	case ActionApprove:
		a.Status = StatusApproved
	case ActionReject:
		if rejectionReason == "" {
			return fault.Validationf("rejection_reason is required to reject")
		}
		a.Status = StatusRejected
		a.RejectionReason = rejectionReason
	default:
		return fault.Validationf("unknown action %q", action)
	}
	a.RespondedAt = &at
	return nil
}
