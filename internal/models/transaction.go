package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a transaction row. Amount is the signed net effect
// on the owning account: credits positive, debits negative.
type Transaction struct {
	TransactionID string            `db:"transaction_id"`
	AccountID     string            `db:"account_id"`
	Type          string            `db:"txn_type"`
	Amount        decimal.Decimal   `db:"amount"`
	CurrencyCode  string            `db:"currency_code"`
	Status        string            `db:"status"`
	Reference     string            `db:"reference"`
	Metadata      map[string]string `db:"metadata"` // jsonb
	CreatedAt     time.Time         `db:"created_at"`
	ProcessedAt   *time.Time        `db:"processed_at"`
}
