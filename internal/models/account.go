package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account row.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountClosed    AccountStatus = "CLOSED"
)

// Account represents an account row in the ledger store.
// DailyLimit/MonthlyLimit are nullable overrides of the type defaults.
type Account struct {
	AccountID         string           `db:"account_id"`
	OwnerID           string           `db:"owner_id"`
	Balance           decimal.Decimal  `db:"balance"`
	CurrencyCode      string           `db:"currency_code"`
	Status            AccountStatus    `db:"status"`
	AccountType       string           `db:"account_type"`
	DailyLimit        *decimal.Decimal `db:"daily_limit"`
	MonthlyLimit      *decimal.Decimal `db:"monthly_limit"`
	LastTransactionAt *time.Time       `db:"last_transaction_at"`
	AuditFields
}

// AuditFields holds standard audit columns shared by mutable tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
