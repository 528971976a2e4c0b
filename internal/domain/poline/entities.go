package poline

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrLinesUnavailable is returned by the compare-and-set flag writers when
// one or more of the requested lines is no longer in the expected state.
var ErrLinesUnavailable = errors.New("po lines unavailable")

// PoLine is one merged purchase-order line. The pool itself is a read model;
// only the assignment ledger and the external PO aggregate write the
// is_assigned / has_external_po flags, and only through the CAS methods on
// Repository.
type PoLine struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	PoID            string          `gorm:"size:64;uniqueIndex:ux_po_lines_po_id" json:"po_id"`
	PoNumber        string          `gorm:"size:32;index:idx_po_lines_po_number" json:"po_number"`
	PoLineNo        string          `gorm:"size:16" json:"po_line_no"`
	ProjectName     string          `gorm:"size:255" json:"project_name"`
	AccountName     string          `gorm:"size:255" json:"account_name"`
	SiteCode        string          `gorm:"size:64" json:"site_code"`
	ItemDescription string          `gorm:"type:text" json:"item_description"`
	Category        string          `gorm:"size:64;index:idx_po_lines_category" json:"category"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2)" json:"unit_price"`
	RequestedQty    decimal.Decimal `gorm:"type:decimal(18,2)" json:"requested_qty"`
	LineAmount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"line_amount"`
	Unit            string          `gorm:"size:16" json:"unit"`
	Currency        string          `gorm:"size:8" json:"currency"`
	Status          string          `gorm:"size:32;index:idx_po_lines_status" json:"status"`
	PoStatus        string          `gorm:"size:32" json:"po_status"`
	IsAssigned      bool            `gorm:"index:idx_po_lines_assigned" json:"is_assigned"`
	AssignedTo      *string         `gorm:"size:32" json:"assigned_to,omitempty"`
	HasExternalPO   bool            `gorm:"column:has_external_po" json:"has_external_po"`
	ExternalPOID    *string         `gorm:"size:32;column:external_po_id" json:"external_po_id,omitempty"`
	BatchID         string          `gorm:"size:36;index:idx_po_lines_batch" json:"batch_id"`
	MergedAt        time.Time       `json:"merged_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PoLine) TableName() string { return "po_lines" }
