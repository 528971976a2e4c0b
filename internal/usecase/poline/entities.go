package poline

import (
	"time"

	"github.com/shopspring/decimal"

	domain "po-workflow-backend/internal/domain/poline"
)

type PoLineDTO struct {
	PoID            string          `json:"po_id"`
	PoNumber        string          `json:"po_number"`
	PoLineNo        string          `json:"po_line_no"`
	ProjectName     string          `json:"project_name"`
	AccountName     string          `json:"account_name"`
	SiteCode        string          `json:"site_code"`
	ItemDescription string          `json:"item_description"`
	Category        string          `json:"category"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	RequestedQty    decimal.Decimal `json:"requested_qty"`
	LineAmount      decimal.Decimal `json:"line_amount"`
	Unit            string          `json:"unit"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	PoStatus        string          `json:"po_status"`
	IsAssigned      bool            `json:"is_assigned"`
	AssignedTo      *string         `json:"assigned_to,omitempty"`
	HasExternalPO   bool            `json:"has_external_po"`
	ExternalPOID    *string         `json:"external_po_id,omitempty"`
	BatchID         string          `json:"batch_id"`
	MergedAt        time.Time       `json:"merged_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toDTO(l *domain.PoLine) *PoLineDTO {
	return &PoLineDTO{
		PoID:            l.PoID,
		PoNumber:        l.PoNumber,
		PoLineNo:        l.PoLineNo,
		ProjectName:     l.ProjectName,
		AccountName:     l.AccountName,
		SiteCode:        l.SiteCode,
		ItemDescription: l.ItemDescription,
		Category:        l.Category,
		UnitPrice:       l.UnitPrice,
		RequestedQty:    l.RequestedQty,
		LineAmount:      l.LineAmount,
		Unit:            l.Unit,
		Currency:        l.Currency,
		Status:          l.Status,
		PoStatus:        l.PoStatus,
		IsAssigned:      l.IsAssigned,
		AssignedTo:      l.AssignedTo,
		HasExternalPO:   l.HasExternalPO,
		ExternalPOID:    l.ExternalPOID,
		BatchID:         l.BatchID,
		MergedAt:        l.MergedAt,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}
