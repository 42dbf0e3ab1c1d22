package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/openretailbank/corebank/internal/core/domain"
)

// LimitSvcFacade evaluates rolling-window debit limits.
type LimitSvcFacade interface {
	// CheckLimit rejects with apperrors.ErrLimitExceeded when adding amount
	// to the window total would strictly exceed the account's effective limit.
	CheckLimit(ctx context.Context, account domain.Account, amount decimal.Decimal, window domain.LimitWindow) error

	// Guards restates the day and month checks so the ledger store can
	// re-validate them inside the commit transaction.
	Guards(account domain.Account, amount decimal.Decimal, now time.Time) []domain.LimitGuard
}

// FraudSvcFacade applies velocity and magnitude heuristics.
type FraudSvcFacade interface {
	Screen(ctx context.Context, userID, accountID string, amount decimal.Decimal, txnType domain.TransactionType) (domain.FraudVerdict, error)
}
