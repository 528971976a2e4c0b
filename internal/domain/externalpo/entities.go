package externalpo

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"po-workflow-backend/internal/domain/fault"
)

type Status string

const (
	StatusDraft        Status = "DRAFT"
	StatusPendingPD    Status = "PENDING_PD_APPROVAL"
	StatusPendingAdmin Status = "PENDING_ADMIN_APPROVAL"
	StatusApproved     Status = "APPROVED"
	StatusRejected     Status = "REJECTED"
	StatusClosed       Status = "CLOSED"
)

type SBCResponse string

const (
	SBCPending  SBCResponse = "PENDING"
	SBCAccepted SBCResponse = "ACCEPTED"
	SBCRejected SBCResponse = "REJECTED"
)

type Level string

const (
	LevelPD    Level = "PD"
	LevelAdmin Level = "ADMIN"
)

type Action string

const (
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
)

type SBCAction string

const (
	SBCActionAccept SBCAction = "ACCEPT"
	SBCActionReject SBCAction = "REJECT"
)

// LineSnapshot is the per-line state captured when the external PO is
// created. Amount changes upstream never flow back into it.
type LineSnapshot struct {
	PoID       string          `json:"po_id"`
	PoNumber   string          `json:"po_number"`
	PoLineNo   string          `json:"po_line_no"`
	LineAmount decimal.Decimal `json:"line_amount"`
}

type ExternalPO struct {
	ID           uint64                            `gorm:"primaryKey;column:id" json:"-"`
	ExternalPOID string                            `gorm:"size:32;column:external_po_id;uniqueIndex:ux_external_pos_external_po_id" json:"external_po_id"`
	InternalPoID string                            `gorm:"size:16;column:internal_po_id;uniqueIndex:ux_external_pos_internal_po_id" json:"internal_po_id"`
	PoIDs        datatypes.JSONSlice[string]       `gorm:"column:po_ids" json:"po_ids"`
	Lines        datatypes.JSONSlice[LineSnapshot] `gorm:"column:lines" json:"lines"`

	AssignedToSBC        string          `gorm:"size:32;column:assigned_to_sbc;index:idx_external_pos_sbc" json:"assigned_to_sbc"`
	AssignmentNotes      string          `gorm:"type:text" json:"assignment_notes"`
	InternalNotes        string          `gorm:"type:text" json:"internal_notes"`
	EstimatedTotalAmount decimal.Decimal `gorm:"type:decimal(18,2)" json:"estimated_total_amount"`

	Status Status `gorm:"type:enum('DRAFT','PENDING_PD_APPROVAL','PENDING_ADMIN_APPROVAL','APPROVED','REJECTED','CLOSED');default:'DRAFT';index:idx_external_pos_status" json:"status"`

	PdApprovedBy *string    `gorm:"size:32" json:"pd_approved_by,omitempty"`
	PdApprovedAt *time.Time `json:"pd_approved_at,omitempty"`
	PdRemarks    string     `gorm:"type:text" json:"pd_remarks,omitempty"`

	AdminApprovedBy *string    `gorm:"size:32" json:"admin_approved_by,omitempty"`
	AdminApprovedAt *time.Time `json:"admin_approved_at,omitempty"`
	AdminRemarks    string     `gorm:"type:text" json:"admin_remarks,omitempty"`

	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	RejectedBy      *string    `gorm:"size:32" json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`

	SBCResponseStatus  SBCResponse `gorm:"type:enum('PENDING','ACCEPTED','REJECTED');default:'PENDING';column:sbc_response_status" json:"sbc_response_status"`
	SBCAcceptedAt      *time.Time  `gorm:"column:sbc_accepted_at" json:"sbc_accepted_at,omitempty"`
	SBCRejectedAt      *time.Time  `gorm:"column:sbc_rejected_at" json:"sbc_rejected_at,omitempty"`
	SBCRejectionReason string      `gorm:"type:text;column:sbc_rejection_reason" json:"sbc_rejection_reason,omitempty"`

	CreatedBy   string         `gorm:"size:32;index:idx_external_pos_created_by" json:"created_by"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
	ClosedAt    *time.Time     `json:"closed_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ExternalPO) TableName() string { return "external_pos" }

// PendingStatusFor maps an approval level to the status it acts on.
func PendingStatusFor(level Level) Status {
	if level == LevelAdmin {
		return StatusPendingAdmin
	}
	return StatusPendingPD
}

// Submit moves a draft into the approval chain.
func (e *ExternalPO) Submit(at time.Time) error {
	if e.Status != StatusDraft {
		return fault.Statef("external po %s is %s, not a draft", e.ExternalPOID, e.Status)
	}
	e.Status = StatusPendingPD
	e.SubmittedAt = &at
	return nil
}

// ApplyApproval applies one level's decision. Approvals are strictly
// sequential: PD acts on PENDING_PD_APPROVAL, Admin on
// PENDING_ADMIN_APPROVAL, and rejection at either level is terminal.
func (e *ExternalPO) ApplyApproval(level Level, action Action, actorID, remarks, rejectionReason string, at time.Time) error {
	if level != LevelPD && level != LevelAdmin {
		return fault.Validationf("unknown approval level %q", level)
	}
	if expected := PendingStatusFor(level); e.Status != expected {
		return fault.Statef("external po %s is %s, %s approval needs %s", e.ExternalPOID, e.Status, level, expected)
	}

	switch action {
	case ActionApprove:
		if level == LevelPD {
			e.PdApprovedBy = &actorID
			e.PdApprovedAt = &at
			e.PdRemarks = remarks
			e.Status = StatusPendingAdmin
		} else {
			e.AdminApprovedBy = &actorID
			e.AdminApprovedAt = &at
			e.AdminRemarks = remarks
			e.Status = StatusApproved
		}
	case ActionReject:
		if rejectionReason == "" {
			return fault.Validationf("rejection_reason is required to reject")
		}
		e.RejectionReason = rejectionReason
		e.RejectedBy = &actorID
		e.RejectedAt = &at
		e.Status = StatusRejected
	default:
		return fault.Validationf("unknown action %q", action)
	}
	return nil
}

// ApplySBCResponse records the subcontractor's terminal accept/reject after
// dual approval. Runs once: a second call fails on the response status.
func (e *ExternalPO) ApplySBCResponse(action SBCAction, rejectionReason string, at time.Time) error {
	if e.Status != StatusApproved {
		return fault.Statef("external po %s is %s, sbc response needs %s", e.ExternalPOID, e.Status, StatusApproved)
	}
	if e.SBCResponseStatus != SBCPending {
		return fault.Statef("external po %s already has sbc response %s", e.ExternalPOID, e.SBCResponseStatus)
	}

	switch action {
	case SBCActionAccept:
		e.SBCResponseStatus = SBCAccepted
		e.SBCAcceptedAt = &at
	case SBCActionReject:
		if rejectionReason == "" {
			return fault.Validationf("rejection_reason is required to reject")
		}
		e.SBCResponseStatus = SBCRejected
		e.SBCRejectedAt = &at
		e.SBCRejectionReason = rejectionReason
	default:
		return fault.Validationf("unknown sbc action %q", action)
	}
	return nil
}

// Close archives an approved external PO once the SBC responded.
func (e *ExternalPO) Close(at time.Time) error {
	if e.Status != StatusApproved {
		return fault.Statef("external po %s is %s, only %s can close", e.ExternalPOID, e.Status, StatusApproved)
	}
	if e.SBCResponseStatus == SBCPending {
		return fault.Statef("external po %s awaits the sbc response", e.ExternalPOID)
	}
	e.Status = StatusClosed
	e.ClosedAt = &at
	return nil
}
