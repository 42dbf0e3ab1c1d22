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

type TransferServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	mockLimitSvc    *MockLimitService
	mockFraudSvc    *MockFraudService
	auditSvc        *capturingAuditSvc
	service         portssvc.TransferSvcFacade
	now             time.Time
	source          domain.Account
	dest            domain.Account
	actorID         string
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockLimitSvc = new(MockLimitService)
	suite.mockFraudSvc = new(MockFraudService)
	suite.auditSvc = &capturingAuditSvc{}
	suite.now = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	suite.actorID = uuid.NewString()

	suite.service = services.NewTransferService(
		suite.mockAccountRepo,
		suite.mockLedgerRepo,
		suite.mockLimitSvc,
		suite.mockFraudSvc,
		suite.auditSvc,
		services.TransferBounds{
			Min: decimal.RequireFromString("0.01"),
			Max: decimal.RequireFromString("1000000.00"),
		},
		fixedClock{now: suite.now},
	)

	suite.source = domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      suite.actorID,
		Balance:      decimal.RequireFromString("1000.00"),
		CurrencyCode: "USD",
		Status:       domain.AccountActive,
		AccountType:  domain.Checking,
	}
	suite.dest = domain.Account{
		AccountID:    uuid.NewString(),
		OwnerID:      uuid.NewString(),
		Balance:      decimal.RequireFromString("50.00"),
		CurrencyCode: "USD",
		Status:       domain.AccountActive,
		AccountType:  domain.Savings,
	}
}

func (suite *TransferServiceTestSuite) allowScreening() {
	suite.mockLimitSvc.On("CheckLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	suite.mockFraudSvc.On("Screen", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.FraudVerdict{}, nil)
	suite.mockLimitSvc.On("Guards", mock.Anything, mock.Anything, mock.Anything).Return([]domain.LimitGuard{})
}

func (suite *TransferServiceTestSuite) TestDeposit_Success() {
	amount := decimal.RequireFromString("200.00")
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.source.AccountID).Return(&suite.source, nil)
	suite.mockLedgerRepo.On("CommitTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	txn, err := suite.service.Deposit(context.Background(), dto.DepositRequest{
		AccountID: suite.source.AccountID,
		Amount:    amount,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.Deposit, txn.Type)
	suite.Equal(domain.TxnCompleted, txn.Status)
	suite.True(txn.Amount.Equal(amount), "deposit amount must be positive")
	suite.NotEmpty(txn.Reference)
	suite.Require().NotNil(txn.ProcessedAt)
	suite.Equal(suite.now, *txn.ProcessedAt)

	commitArgs := suite.mockLedgerRepo.Calls[0].Arguments
	changes := commitArgs.Get(2).(map[string]decimal.Decimal)
	suite.True(changes[suite.source.AccountID].Equal(amount))
	suite.Nil(commitArgs.Get(3), "deposits carry no limit guards")

	entries := suite.auditSvc.recorded()
	suite.Require().Len(entries, 1)
	suite.Equal("DEPOSIT", entries[0].Action)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestDeposit_InactiveAccount() {
	suite.source.Status = domain.AccountSuspended
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.source.AccountID).Return(&suite.source, nil)

	_, err := suite.service.Deposit(context.Background(), dto.DepositRequest{
		AccountID: suite.source.AccountID,
		Amount:    decimal.RequireFromString("10.00"),
	}, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrAccountInactive)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CommitTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestDeposit_TooManyFractionDigits() {
	_, err := suite.service.Deposit(context.Background(), dto.DepositRequest{
		AccountID: suite.source.AccountID,
		Amount:    decimal.RequireFromString("10.001"),
	}, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (suite *TransferServiceTestSuite) TestDeposit_OutOfBounds() {
	for _, raw := range []string{"0.00", "1000000.01", "-5.00"} {
		_, err := suite.service.Deposit(context.Background(), dto.DepositRequest{
			AccountID: suite.source.AccountID,
			Amount:    decimal.RequireFromString(raw),
		}, suite.actorID)
		suite.ErrorIs(err, apperrors.ErrInvalidAmount, "amount %s", raw)
	}
}

func (suite *TransferServiceTestSuite) TestWithdraw_Success() {
	amount := decimal.RequireFromString("300.00")
	guards := []domain.LimitGuard{{AccountID: suite.source.AccountID, Window: domain.WindowDay}}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.source.AccountID).Return(&suite.source, nil)
	suite.mockLimitSvc.On("CheckLimit", mock.Anything, mock.Anything, mock.Anything, domain.WindowDay).Return(nil)
	suite.mockLimitSvc.On("CheckLimit", mock.Anything, mock.Anything, mock.Anything, domain.WindowMonth).Return(nil)
	suite.mockFraudSvc.On("Screen", mock.Anything, suite.actorID, suite.source.AccountID, amount, domain.Withdrawal).
		Return(domain.FraudVerdict{}, nil)
	suite.mockLimitSvc.On("Guards", mock.Anything, amount, suite.now).Return(guards)
	suite.mockLedgerRepo.On("CommitTransactions", mock.Anything, mock.Anything, mock.Anything, guards).Return(nil)

	txn, err := suite.service.Withdraw(context.Background(), dto.WithdrawRequest{
		AccountID: suite.source.AccountID,
		Amount:    amount,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.Withdrawal, txn.Type)
	suite.True(txn.Amount.Equal(amount.Neg()), "withdrawal amount must be negative")
	suite.True(txn.IsDebit())

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockLimitSvc.AssertExpectations(suite.T())
	suite.mockFraudSvc.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestWithdraw_InsufficientFunds() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.source.AccountID).Return(&suite.source, nil)

	_, err := suite.service.Withdraw(context.Background(), dto.WithdrawRequest{
		AccountID: suite.source.AccountID,
		Amount:    decimal.RequireFromString("1000.01"),
	}, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CommitTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestWithdraw_ExactBalanceAllowed() {
	suite.allowScreening()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.source.AccountID).Return(&suite.source, nil)
	suite.mockLedgerRepo.On("CommitTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := suite.service.Withdraw(context.Background(), dto.WithdrawRequest{
		AccountID: suite.source.AccountID,
		Amount:    suite.source.Balance,
	}, suite.actorID)

	suite.NoError(err, "withdrawing to exactly zero is allowed")
}

func (suite *TransferServiceTestSuite) TestWithdraw_LimitExceeded() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.source.AccountID).Return(&suite.source, nil)
	suite.mockLimitSvc.On("CheckLimit", mock.Anything, mock.Anything, mock.Anything, domain.WindowDay).
		Return(apperrors.ErrLimitExceeded)

	_, err := suite.service.Withdraw(context.Background(), dto.WithdrawRequest{
		AccountID: suite.source.AccountID,
		Amount:    decimal.RequireFromString("500.00"),
	}, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrLimitExceeded)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CommitTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestWithdraw_VelocityBlocked() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.source.AccountID).Return(&suite.source, nil)
	suite.mockLimitSvc.On("CheckLimit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	suite.mockFraudSvc.On("Screen", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.FraudVerdict{Blocked: true}, nil)

	_, err := suite.service.Withdraw(context.Background(), dto.WithdrawRequest{
		AccountID: suite.source.AccountID,
		Amount:    decimal.RequireFromString("100.00"),
	}, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrVelocityExceeded)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "CommitTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestTransfer_Success() {
	amount := decimal.RequireFromString("250.00")
	suite.allowScreening()
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, []string{suite.source.AccountID, suite.dest.AccountID}).
		Return(map[string]domain.Account{
			suite.source.AccountID: suite.source,
			suite.dest.AccountID:   suite.dest,
		}, nil)
	suite.mockLedgerRepo.On("CommitTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	legs, err := suite.service.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountID:      suite.source.AccountID,
		DestinationAccountID: suite.dest.AccountID,
		Amount:               amount,
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Require().Len(legs, 2)

	debit, credit := legs[0], legs[1]
	suite.Equal(suite.source.AccountID, debit.AccountID)
	suite.Equal(suite.dest.AccountID, credit.AccountID)
	suite.True(debit.Amount.Equal(amount.Neg()))
	suite.True(credit.Amount.Equal(amount))
	suite.True(debit.Amount.Add(credit.Amount).IsZero(), "the two legs must conserve money")
	suite.Equal(debit.Reference, credit.Reference, "both legs share one reference")
	suite.NotEqual(debit.TransactionID, credit.TransactionID)

	commitArgs := suite.mockLedgerRepo.Calls[0].Arguments
	changes := commitArgs.Get(2).(map[string]decimal.Decimal)
	suite.True(changes[suite.source.AccountID].Equal(amount.Neg()))
	suite.True(changes[suite.dest.AccountID].Equal(amount))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestTransfer_SameAccount() {
	_, err := suite.service.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountID:      suite.source.AccountID,
		DestinationAccountID: suite.source.AccountID,
		Amount:               decimal.RequireFromString("10.00"),
	}, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrInvalidTransfer)
}

func (suite *TransferServiceTestSuite) TestTransfer_DestinationMissing() {
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(map[string]domain.Account{suite.source.AccountID: suite.source}, nil)

	_, err := suite.service.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountID:      suite.source.AccountID,
		DestinationAccountID: suite.dest.AccountID,
		Amount:               decimal.RequireFromString("10.00"),
	}, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrDestinationInvalid)
}

func (suite *TransferServiceTestSuite) TestTransfer_DestinationInactive() {
	suite.dest.Status = domain.AccountClosed
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(map[string]domain.Account{
			suite.source.AccountID: suite.source,
			suite.dest.AccountID:   suite.dest,
		}, nil)

	_, err := suite.service.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountID:      suite.source.AccountID,
		DestinationAccountID: suite.dest.AccountID,
		Amount:               decimal.RequireFromString("10.00"),
	}, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrDestinationInvalid)
}

func (suite *TransferServiceTestSuite) TestTransfer_CurrencyMismatch() {
	suite.dest.CurrencyCode = "EUR"
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(map[string]domain.Account{
			suite.source.AccountID: suite.source,
			suite.dest.AccountID:   suite.dest,
		}, nil)

	_, err := suite.service.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountID:      suite.source.AccountID,
		DestinationAccountID: suite.dest.AccountID,
		Amount:               decimal.RequireFromString("10.00"),
	}, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestTransfer_CommitFailureReturnsError() {
	suite.allowScreening()
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.Anything).
		Return(map[string]domain.Account{
			suite.source.AccountID: suite.source,
			suite.dest.AccountID:   suite.dest,
		}, nil)
	suite.mockLedgerRepo.On("CommitTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.ErrLimitExceeded)

	_, err := suite.service.Transfer(context.Background(), dto.TransferRequest{
		SourceAccountID:      suite.source.AccountID,
		DestinationAccountID: suite.dest.AccountID,
		Amount:               decimal.RequireFromString("10.00"),
	}, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrLimitExceeded)
	suite.Empty(suite.auditSvc.recorded(), "failed commits must not be audited as success")
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
