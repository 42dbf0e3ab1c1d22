package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/openretailbank/corebank/internal/core/domain"
	portsrepo "github.com/openretailbank/corebank/internal/core/ports/repositories"
	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
	"github.com/openretailbank/corebank/internal/dto"
)

// --- fixed clock ---

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, now)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, status, userID, now)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepository = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) CommitTransactions(ctx context.Context, txns []domain.Transaction, balanceChanges map[string]decimal.Decimal, guards []domain.LimitGuard) error {
	args := m.Called(ctx, txns, balanceChanges, guards)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindTransactionByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) SumDebits(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) CountDebitsSince(ctx context.Context, accountID string, since time.Time) (int, error) {
	args := m.Called(ctx, accountID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

// --- Mock WireRepository ---

type MockWireRepository struct {
	mock.Mock
}

var _ portsrepo.WireRepository = (*MockWireRepository)(nil)

func (m *MockWireRepository) CreateWire(ctx context.Context, wire domain.WireTransfer, debit domain.Transaction) error {
	args := m.Called(ctx, wire, debit)
	return args.Error(0)
}

func (m *MockWireRepository) FindWireByID(ctx context.Context, wireID string) (*domain.WireTransfer, error) {
	args := m.Called(ctx, wireID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WireTransfer), args.Error(1)
}

func (m *MockWireRepository) ApproveWire(ctx context.Context, wireID, approverID string, now time.Time) (*domain.WireTransfer, error) {
	args := m.Called(ctx, wireID, approverID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WireTransfer), args.Error(1)
}

func (m *MockWireRepository) RejectWire(ctx context.Context, wireID, approverID, reason string, refund domain.Transaction, now time.Time) (*domain.WireTransfer, error) {
	args := m.Called(ctx, wireID, approverID, reason, refund, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WireTransfer), args.Error(1)
}

// --- Mock AuditRepository ---

type MockAuditRepository struct {
	mock.Mock
}

var _ portsrepo.AuditRepository = (*MockAuditRepository)(nil)

func (m *MockAuditRepository) SaveEntry(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// --- Mock LimitSvcFacade ---

type MockLimitService struct {
	mock.Mock
}

var _ portssvc.LimitSvcFacade = (*MockLimitService)(nil)

func (m *MockLimitService) CheckLimit(ctx context.Context, account domain.Account, amount decimal.Decimal, window domain.LimitWindow) error {
	args := m.Called(ctx, account, amount, window)
	return args.Error(0)
}

func (m *MockLimitService) Guards(account domain.Account, amount decimal.Decimal, now time.Time) []domain.LimitGuard {
	args := m.Called(account, amount, now)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.LimitGuard)
}

// --- Mock FraudSvcFacade ---

type MockFraudService struct {
	mock.Mock
}

var _ portssvc.FraudSvcFacade = (*MockFraudService)(nil)

func (m *MockFraudService) Screen(ctx context.Context, userID, accountID string, amount decimal.Decimal, txnType domain.TransactionType) (domain.FraudVerdict, error) {
	args := m.Called(ctx, userID, accountID, amount, txnType)
	return args.Get(0).(domain.FraudVerdict), args.Error(1)
}

// --- Mock AccountSvcFacade ---

type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockAccountService) UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, status, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock WireSvcFacade ---

type MockWireService struct {
	mock.Mock
}

var _ portssvc.WireSvcFacade = (*MockWireService)(nil)

func (m *MockWireService) CreateWireTransfer(ctx context.Context, req dto.CreateWireRequest, actorID string) (*domain.WireTransfer, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WireTransfer), args.Error(1)
}

func (m *MockWireService) ApproveWire(ctx context.Context, wireID, approverID string) (*domain.WireTransfer, error) {
	args := m.Called(ctx, wireID, approverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WireTransfer), args.Error(1)
}

func (m *MockWireService) RejectWire(ctx context.Context, wireID, approverID, reason string) (*domain.WireTransfer, error) {
	args := m.Called(ctx, wireID, approverID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WireTransfer), args.Error(1)
}

func (m *MockWireService) GetWireByID(ctx context.Context, wireID string) (*domain.WireTransfer, error) {
	args := m.Called(ctx, wireID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WireTransfer), args.Error(1)
}

// --- capturing audit recorder ---

// capturingAuditSvc records entries in memory so tests can assert what was
// emitted without a background worker.
type capturingAuditSvc struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

var _ portssvc.AuditSvcFacade = (*capturingAuditSvc)(nil)

func (s *capturingAuditSvc) Record(_ context.Context, entry domain.AuditEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func (s *capturingAuditSvc) Close() {}

func (s *capturingAuditSvc) recorded() []domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
