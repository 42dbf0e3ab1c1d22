package services

import (
	"context"

	"github.com/openretailbank/corebank/internal/core/domain"
	"github.com/openretailbank/corebank/internal/dto"
)

// AccountSvcFacade exposes account reads and the status-update operation.
type AccountSvcFacade interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus, actorID string) (*domain.Account, error)
}

// BulkSvcFacade applies a bounded batch of administrative actions.
type BulkSvcFacade interface {
	Execute(ctx context.Context, req dto.BulkRequest, actorID string) (*dto.BatchResult, error)
}

// AuditSvcFacade records audit entries after commit, best-effort.
type AuditSvcFacade interface {
	Record(ctx context.Context, entry domain.AuditEntry)
	Close()
}
