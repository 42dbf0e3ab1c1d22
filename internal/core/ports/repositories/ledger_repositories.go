package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openretailbank/corebank/internal/core/domain"
)

// LedgerRepository is the durable transaction store. CommitTransactions is the
// single write path for balance-mutating operations outside the wire workflow.
type LedgerRepository interface {
	// CommitTransactions persists the given transaction rows, applies the
	// balance deltas and re-validates the limit guards, all inside one
	// database transaction with the touched account rows locked. Either
	// everything commits or nothing does.
	//
	// Inside the transaction it verifies that every account in balanceChanges
	// exists and is ACTIVE, and that no debited account goes below zero.
	CommitTransactions(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal, guards []domain.LimitGuard) error

	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error)

	// SumDebits returns the sum of absolute values of COMPLETED
	// WITHDRAWAL/TRANSFER debits for the account in [from, to).
	SumDebits(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error)

	// CountDebitsSince counts COMPLETED WITHDRAWAL/TRANSFER debits for the
	// account created at or after since.
	CountDebitsSince(ctx context.Context, accountID string, since time.Time) (int, error)

	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}
