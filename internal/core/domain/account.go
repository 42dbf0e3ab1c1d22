package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
	AccountClosed    AccountStatus = "CLOSED"
)

// AccountType determines the default daily/monthly limits when an account
// carries no per-account override.
type AccountType string

const (
	Checking AccountType = "CHECKING"
	Savings  AccountType = "SAVINGS"
	Business AccountType = "BUSINESS"
)

// Account represents a customer account within the core domain.
// Balance is only ever mutated by a committed Transaction.
type Account struct {
	AccountID         string           `json:"accountID"`
	OwnerID           string           `json:"ownerID"` // user directory reference
	Balance           decimal.Decimal  `json:"balance"`
	CurrencyCode      string           `json:"currencyCode"`
	Status            AccountStatus    `json:"status"`
	AccountType       AccountType      `json:"accountType"`
	DailyLimit        *decimal.Decimal `json:"dailyLimit,omitempty"`   // nil falls back to the type default
	MonthlyLimit      *decimal.Decimal `json:"monthlyLimit,omitempty"` // nil falls back to the type default
	LastTransactionAt *time.Time       `json:"lastTransactionAt,omitempty"`
	AuditFields
}

// IsActive reports whether debits and credits may apply to the account.
func (a Account) IsActive() bool {
	return a.Status == AccountActive
}
