package services

import (
	"context"

	"github.com/openretailbank/corebank/internal/core/domain"
	"github.com/openretailbank/corebank/internal/dto"
)

// TransferSvcFacade orchestrates deposits, withdrawals and internal transfers.
type TransferSvcFacade interface {
	Deposit(ctx context.Context, req dto.DepositRequest, actorID string) (*domain.Transaction, error)
	Withdraw(ctx context.Context, req dto.WithdrawRequest, actorID string) (*domain.Transaction, error)
	// Transfer returns the debit and credit legs, in that order.
	Transfer(ctx context.Context, req dto.TransferRequest, actorID string) ([]domain.Transaction, error)
}
