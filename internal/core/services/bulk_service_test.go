package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openretailbank/corebank/internal/apperrors"
	"github.com/openretailbank/corebank/internal/core/domain"
	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
	"github.com/openretailbank/corebank/internal/core/services"
	"github.com/openretailbank/corebank/internal/dto"
)

type BulkServiceTestSuite struct {
	suite.Suite
	mockAccountSvc *MockAccountService
	mockWireSvc    *MockWireService
	service        portssvc.BulkSvcFacade
	actorID        string
}

func (suite *BulkServiceTestSuite) SetupTest() {
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockWireSvc = new(MockWireService)
	suite.service = services.NewBulkService(suite.mockAccountSvc, suite.mockWireSvc, 3)
	suite.actorID = uuid.NewString()
}

func (suite *BulkServiceTestSuite) TestExecute_BatchCeilingIsBatchLevel() {
	req := dto.BulkRequest{
		EntityType: dto.BulkEntityWires,
		Action:     dto.BulkActionApprove,
		IDs:        []string{"a", "b", "c", "d"},
	}

	_, err := suite.service.Execute(context.Background(), req, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWireSvc.AssertNotCalled(suite.T(), "ApproveWire", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BulkServiceTestSuite) TestExecute_UnsupportedComboIsBatchLevel() {
	req := dto.BulkRequest{
		EntityType: "transactions",
		Action:     "delete",
		IDs:        []string{"t1"},
	}

	_, err := suite.service.Execute(context.Background(), req, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BulkServiceTestSuite) TestExecute_MalformedParamsIsBatchLevel() {
	req := dto.BulkRequest{
		EntityType: dto.BulkEntityAccounts,
		Action:     dto.BulkActionUpdateStatus,
		IDs:        []string{"a1"},
		Params:     json.RawMessage(`{"status": "FROZEN"}`),
	}

	_, err := suite.service.Execute(context.Background(), req, suite.actorID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BulkServiceTestSuite) TestExecute_PerItemIsolation() {
	good1, bad, good2 := uuid.NewString(), uuid.NewString(), uuid.NewString()
	wire := &domain.WireTransfer{ComplianceStatus: domain.ComplianceApproved}

	suite.mockWireSvc.On("ApproveWire", mock.Anything, good1, suite.actorID).Return(wire, nil)
	suite.mockWireSvc.On("ApproveWire", mock.Anything, bad, suite.actorID).Return(nil, apperrors.ErrAlreadyFinalized)
	suite.mockWireSvc.On("ApproveWire", mock.Anything, good2, suite.actorID).Return(wire, nil)

	result, err := suite.service.Execute(context.Background(), dto.BulkRequest{
		EntityType: dto.BulkEntityWires,
		Action:     dto.BulkActionApprove,
		IDs:        []string{good1, bad, good2},
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(2, result.Processed)
	suite.Equal(1, result.Failed)
	suite.Require().Len(result.Results, 3)
	suite.True(result.Results[0].OK)
	suite.False(result.Results[1].OK)
	suite.Contains(result.Results[1].Error, "finalized")
	suite.True(result.Results[2].OK, "a failed item must not stop later items")

	suite.mockWireSvc.AssertExpectations(suite.T())
}

func (suite *BulkServiceTestSuite) TestExecute_AccountStatusUpdateDispatch() {
	id := uuid.NewString()
	account := &domain.Account{AccountID: id, Status: domain.AccountSuspended}

	suite.mockAccountSvc.On("UpdateStatus", mock.Anything, id, domain.AccountSuspended, suite.actorID).
		Return(account, nil)

	result, err := suite.service.Execute(context.Background(), dto.BulkRequest{
		EntityType: dto.BulkEntityAccounts,
		Action:     dto.BulkActionUpdateStatus,
		IDs:        []string{id},
		Params:     json.RawMessage(`{"status": "SUSPENDED"}`),
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(1, result.Processed)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *BulkServiceTestSuite) TestExecute_WireRejectDispatchPassesReason() {
	id := uuid.NewString()
	wire := &domain.WireTransfer{WireID: id, ComplianceStatus: domain.ComplianceRejected}

	suite.mockWireSvc.On("RejectWire", mock.Anything, id, suite.actorID, "kyc failure").Return(wire, nil)

	result, err := suite.service.Execute(context.Background(), dto.BulkRequest{
		EntityType: dto.BulkEntityWires,
		Action:     dto.BulkActionReject,
		IDs:        []string{id},
		Params:     json.RawMessage(`{"reason": "kyc failure"}`),
	}, suite.actorID)

	suite.Require().NoError(err)
	suite.Equal(1, result.Processed)
	suite.mockWireSvc.AssertExpectations(suite.T())
}

func TestBulkServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BulkServiceTestSuite))
}
