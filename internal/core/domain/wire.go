package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComplianceStatus is the approval state of a wire transfer.
// Transitions are PENDING -> {APPROVED, REJECTED, CANCELLED}; once
// non-PENDING the record is immutable.
type ComplianceStatus string

const (
	CompliancePending   ComplianceStatus = "PENDING"
	ComplianceApproved  ComplianceStatus = "APPROVED"
	ComplianceRejected  ComplianceStatus = "REJECTED"
	ComplianceCancelled ComplianceStatus = "CANCELLED"
)

// WireTransfer is a cross-bank transfer held for manual compliance review.
// The sender account is debited amount+fee at creation.
type WireTransfer struct {
	WireID           string           `json:"wireID"`
	TransactionID    string           `json:"transactionID"` // linked PENDING debit
	SenderAccountID  string           `json:"senderAccountID"`
	RecipientName    string           `json:"recipientName"`
	RecipientBank    string           `json:"recipientBank"`
	RecipientAccount string           `json:"recipientAccount"`
	RecipientSWIFT   string           `json:"recipientSWIFT"`
	Amount           decimal.Decimal  `json:"amount"`
	Fee              decimal.Decimal  `json:"fee"`
	ComplianceStatus ComplianceStatus `json:"complianceStatus"`
	ApproverID       string           `json:"approverID,omitempty"`
	DecidedAt        *time.Time       `json:"decidedAt,omitempty"`
	RejectionReason  string           `json:"rejectionReason,omitempty"`
	AuditFields
}

// IsFinal reports whether the wire has reached a terminal compliance state.
func (w WireTransfer) IsFinal() bool {
	return w.ComplianceStatus != CompliancePending
}

// Total is the full amount reserved from the sender: amount plus fee.
func (w WireTransfer) Total() decimal.Decimal {
	return w.Amount.Add(w.Fee)
}
