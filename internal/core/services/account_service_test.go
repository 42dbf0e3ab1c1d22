package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openretailbank/corebank/internal/apperrors"
	"github.com/openretailbank/corebank/internal/core/domain"
	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
	"github.com/openretailbank/corebank/internal/core/services"
	"github.com/openretailbank/corebank/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	auditSvc        *capturingAuditSvc
	service         portssvc.AccountSvcFacade
	now             time.Time
	account         *domain.Account
	actorID         string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.auditSvc = &capturingAuditSvc{}
	suite.now = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	suite.service = services.NewAccountService(
		suite.mockAccountRepo,
		suite.mockLedgerRepo,
		suite.auditSvc,
		fixedClock{now: suite.now},
	)
	suite.account = &domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      uuid.NewString(),
		Balance:      decimal.RequireFromString("250.00"),
		CurrencyCode: "USD",
		Status:       domain.AccountActive,
		AccountType:  domain.Checking,
	}
	suite.actorID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.GetAccountByID(context.Background(), "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListTransactions_DefaultsLimit() {
	txns := []domain.Transaction{
		{TransactionID: uuid.NewString(), AccountID: suite.account.AccountID, Amount: decimal.RequireFromString("10.00")},
	}
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.account.AccountID).Return(suite.account, nil)
	suite.mockLedgerRepo.On("ListTransactionsByAccountID", mock.Anything, suite.account.AccountID, 20, (*string)(nil)).
		Return(txns, nil, nil)

	resp, err := suite.service.ListTransactions(context.Background(), suite.account.AccountID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Nil(resp.NextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListTransactions_ClampsLimit() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.account.AccountID).Return(suite.account, nil)
	suite.mockLedgerRepo.On("ListTransactionsByAccountID", mock.Anything, suite.account.AccountID, 100, (*string)(nil)).
		Return([]domain.Transaction{}, "next-page", nil)

	resp, err := suite.service.ListTransactions(context.Background(), suite.account.AccountID, dto.ListTransactionsParams{Limit: 5000})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListTransactions_AccountMissing() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound)

	_, err := suite.service.ListTransactions(context.Background(), "missing", dto.ListTransactionsParams{})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ListTransactionsByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateStatus_Success() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.account.AccountID).Return(suite.account, nil)
	suite.mockAccountRepo.On("UpdateAccountStatus", mock.Anything, suite.account.AccountID, domain.AccountSuspended, suite.actorID, suite.now).
		Return(nil)

	updated, err := suite.service.UpdateStatus(context.Background(), suite.account.AccountID, domain.AccountSuspended, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountSuspended, updated.Status)
	suite.Equal(suite.now, updated.LastUpdatedAt)
	suite.Equal(suite.actorID, updated.LastUpdatedBy)

	entries := suite.auditSvc.recorded()
	suite.Require().Len(entries, 1)
	suite.Equal("ACCOUNT_STATUS_UPDATED", entries[0].Action)
	suite.Equal("ACTIVE", entries[0].Details["from"])
	suite.Equal("SUSPENDED", entries[0].Details["to"])
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateStatus_ClosedIsTerminal() {
	suite.account.Status = domain.AccountClosed
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.account.AccountID).Return(suite.account, nil)

	_, err := suite.service.UpdateStatus(context.Background(), suite.account.AccountID, domain.AccountActive, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.auditSvc.recorded())
}

func (suite *AccountServiceTestSuite) TestUpdateStatus_SameStatusIsNoOp() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.account.AccountID).Return(suite.account, nil)

	updated, err := suite.service.UpdateStatus(context.Background(), suite.account.AccountID, domain.AccountActive, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.AccountActive, updated.Status)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.Empty(suite.auditSvc.recorded())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
