package externalpo

import (
	"time"

	"github.com/shopspring/decimal"

	epo "po-workflow-backend/internal/domain/externalpo"
)

type CreateExternalPOInput struct {
	PoIDs           []string
	AssignedToSBC   string
	AssignmentNotes string
	InternalNotes   string
	AsDraft         bool
}

// UpdateDraftInput patches a draft. Nil fields keep their current value;
// a non-nil PoIDs replaces the whole line set.
type UpdateDraftInput struct {
	PoIDs           []string
	AssignedToSBC   *string
	AssignmentNotes *string
	InternalNotes   *string
}

type LineSnapshotDTO struct {
	PoID       string          `json:"po_id"`
	PoNumber   string          `json:"po_number"`
	PoLineNo   string          `json:"po_line_no"`
	LineAmount decimal.Decimal `json:"line_amount"`
}

type ExternalPODTO struct {
	ExternalPOID         string            `json:"external_po_id"`
	InternalPoID         string            `json:"internal_po_id"`
	PoIDs                []string          `json:"po_ids"`
	Lines                []LineSnapshotDTO `json:"lines"`
	AssignedToSBC        string            `json:"assigned_to_sbc"`
	AssignmentNotes      string            `json:"assignment_notes"`
	InternalNotes        string            `json:"internal_notes"`
	EstimatedTotalAmount decimal.Decimal   `json:"estimated_total_amount"`
	Status               string            `json:"status"`

	PdApprovedBy *string    `json:"pd_approved_by,omitempty"`
	PdApprovedAt *time.Time `json:"pd_approved_at,omitempty"`
	PdRemarks    string     `json:"pd_remarks,omitempty"`

	AdminApprovedBy *string    `json:"admin_approved_by,omitempty"`
	AdminApprovedAt *time.Time `json:"admin_approved_at,omitempty"`
	AdminRemarks    string     `json:"admin_remarks,omitempty"`

	RejectionReason string     `json:"rejection_reason,omitempty"`
	RejectedBy      *string    `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`

	SBCResponseStatus  string     `json:"sbc_response_status"`
	SBCAcceptedAt      *time.Time `json:"sbc_accepted_at,omitempty"`
	SBCRejectedAt      *time.Time `json:"sbc_rejected_at,omitempty"`
	SBCRejectionReason string     `json:"sbc_rejection_reason,omitempty"`

	CreatedBy   string     `json:"created_by"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToDTO maps the aggregate to its API shape. Shared with the approval and
// sbc usecases, which return the same resource.
func ToDTO(e *epo.ExternalPO) *ExternalPODTO {
	lines := make([]LineSnapshotDTO, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, LineSnapshotDTO{
			PoID:       l.PoID,
			PoNumber:   l.PoNumber,
			PoLineNo:   l.PoLineNo,
			LineAmount: l.LineAmount,
		})
	}
	return &ExternalPODTO{
		ExternalPOID:         e.ExternalPOID,
		InternalPoID:         e.InternalPoID,
		PoIDs:                e.PoIDs,
		Lines:                lines,
		AssignedToSBC:        e.AssignedToSBC,
		AssignmentNotes:      e.AssignmentNotes,
		InternalNotes:        e.InternalNotes,
		EstimatedTotalAmount: e.EstimatedTotalAmount,
		Status:               string(e.Status),
		PdApprovedBy:         e.PdApprovedBy,
		PdApprovedAt:         e.PdApprovedAt,
		PdRemarks:            e.PdRemarks,
		AdminApprovedBy:      e.AdminApprovedBy,
		AdminApprovedAt:      e.AdminApprovedAt,
		AdminRemarks:         e.AdminRemarks,
		RejectionReason:      e.RejectionReason,
		RejectedBy:           e.RejectedBy,
		RejectedAt:           e.RejectedAt,
		SBCResponseStatus:    string(e.SBCResponseStatus),
		SBCAcceptedAt:        e.SBCAcceptedAt,
		SBCRejectedAt:        e.SBCRejectedAt,
		SBCRejectionReason:   e.SBCRejectionReason,
		CreatedBy:            e.CreatedBy,
		SubmittedAt:          e.SubmittedAt,
		ClosedAt:             e.ClosedAt,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}
