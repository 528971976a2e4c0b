package assignment

import (
	"time"

	domain "po-workflow-backend/internal/domain/assignment"
)

type CreateAssignmentInput struct {
	PoIDs      []string
	AssignedTo string
	Notes      string
}

type RespondInput struct {
	Action          string
	RejectionReason string
}

type AssignmentDTO struct {
	AssignmentID    string     `json:"assignment_id"`
	PoIDs           []string   `json:"po_ids"`
	AssignedBy      string     `json:"assigned_by"`
	AssignedTo      string     `json:"assigned_to"`
	Notes           string     `json:"notes"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toDTO(a *domain.Assignment) *AssignmentDTO {
	return &AssignmentDTO{
		AssignmentID:    a.AssignmentID,
		PoIDs:           a.PoIDs,
		AssignedBy:      a.AssignedBy,
		AssignedTo:      a.AssignedTo,
		Notes:           a.Notes,
		Status:          string(a.Status),
		RejectionReason: a.RejectionReason,
		RespondedAt:     a.RespondedAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
