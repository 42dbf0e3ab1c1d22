package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WireTransfer represents a wire transfer row held for compliance review.
type WireTransfer struct {
	WireID           string          `db:"wire_id"`
	TransactionID    string          `db:"transaction_id"`
	SenderAccountID  string          `db:"sender_account_id"`
	RecipientName    string          `db:"recipient_name"`
	RecipientBank    string          `db:"recipient_bank"`
	RecipientAccount string          `db:"recipient_account"`
	RecipientSWIFT   string          `db:"recipient_swift"`
	Amount           decimal.Decimal `db:"amount"`
	Fee              decimal.Decimal `db:"fee"`
	ComplianceStatus string          `db:"compliance_status"`
	ApproverID       *string         `db:"approver_id"`
	DecidedAt        *time.Time      `db:"decided_at"`
	RejectionReason  *string         `db:"rejection_reason"`
	AuditFields
}
