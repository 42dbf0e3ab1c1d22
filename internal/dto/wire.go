package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/openretailbank/corebank/internal/core/domain"
)

// CreateWireRequest opens a cross-bank transfer pending compliance review.
type CreateWireRequest struct {
	SenderAccountID  string          `json:"senderAccountID" binding:"required"`
	RecipientName    string          `json:"recipientName" binding:"required"`
	RecipientBank    string          `json:"recipientBank" binding:"required"`
	RecipientAccount string          `json:"recipientAccount" binding:"required"`
	RecipientSWIFT   string          `json:"recipientSWIFT" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	Reference        string          `json:"reference"`
}

// RejectWireRequest carries the mandatory rejection reason.
type RejectWireRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// WireResponse is the caller-facing view of a wire transfer.
type WireResponse struct {
	WireID           string          `json:"wireID"`
	TransactionID    string          `json:"transactionID"`
	SenderAccountID  string          `json:"senderAccountID"`
	RecipientName    string          `json:"recipientName"`
	RecipientBank    string          `json:"recipientBank"`
	RecipientAccount string          `json:"recipientAccount"`
	RecipientSWIFT   string          `json:"recipientSWIFT"`
	Amount           decimal.Decimal `json:"amount"`
	Fee              decimal.Decimal `json:"fee"`
	ComplianceStatus string          `json:"complianceStatus"`
	ApproverID       string          `json:"approverID,omitempty"`
	DecidedAt        *time.Time      `json:"decidedAt,omitempty"`
	RejectionReason  string          `json:"rejectionReason,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToWireResponse maps a domain wire transfer to its response form.
func ToWireResponse(w *domain.WireTransfer) WireResponse {
	return WireResponse{
		WireID:           w.WireID,
		TransactionID:    w.TransactionID,
		SenderAccountID:  w.SenderAccountID,
		RecipientName:    w.RecipientName,
		RecipientBank:    w.RecipientBank,
		RecipientAccount: w.RecipientAccount,
		RecipientSWIFT:   w.RecipientSWIFT,
		Amount:           w.Amount,
		Fee:              w.Fee,
		ComplianceStatus: string(w.ComplianceStatus),
		ApproverID:       w.ApproverID,
		DecidedAt:        w.DecidedAt,
		RejectionReason:  w.RejectionReason,
		CreatedAt:        w.CreatedAt,
	}
}
