package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a money movement.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
	Transfer   TransactionType = "TRANSFER"
	Wire       TransactionType = "WIRE"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TxnPending   TransactionStatus = "PENDING"
	TxnCompleted TransactionStatus = "COMPLETED"
	TxnFailed    TransactionStatus = "FAILED"
)

// Transaction represents one signed balance movement on a single account.
//
// Amount is the net effect on the owning account: credits are positive,
// debits are negative. The convention is uniform across every path,
// including wire debits and their refunds.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	AccountID     string            `json:"accountID"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	CurrencyCode  string            `json:"currencyCode"`
	Status        TransactionStatus `json:"status"`
	Reference     string            `json:"reference"` // unique; the two legs of a transfer share one
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	ProcessedAt   *time.Time        `json:"processedAt,omitempty"`
}

// IsDebit reports whether the transaction removes money from its account.
func (t Transaction) IsDebit() bool {
	return t.Amount.IsNegative()
}

// LimitWindow selects the rolling aggregation period for limit checks.
type LimitWindow string

const (
	WindowDay   LimitWindow = "DAY"
	WindowMonth LimitWindow = "MONTH"
)

// WindowStart returns the inclusive lower bound of the window containing now:
// local midnight for DAY, first of the month for MONTH.
func (w LimitWindow) Start(now time.Time) time.Time {
	switch w {
	case WindowMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
}

// LimitGuard re-states a limit check so the ledger store can re-validate it
// inside the same atomic unit that writes the new transaction rows.
type LimitGuard struct {
	AccountID string
	Window    LimitWindow
	From      time.Time
	Candidate decimal.Decimal // absolute value of the debit being attempted
	Limit     decimal.Decimal
}
