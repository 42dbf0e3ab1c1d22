package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openretailbank/corebank/internal/apperrors"
	"github.com/openretailbank/corebank/internal/core/domain"
	"github.com/openretailbank/corebank/internal/dto"
)

func TestDecodeBulkParamsAccountStatus(t *testing.T) {
	params, err := dto.DecodeBulkParams(dto.BulkRequest{
		EntityType: dto.BulkEntityAccounts,
		Action:     dto.BulkActionUpdateStatus,
		IDs:        []string{"a1"},
		Params:     json.RawMessage(`{"status": "SUSPENDED"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, dto.AccountStatusParams{Status: domain.AccountSuspended}, params)
}

func TestDecodeBulkParamsWireApproveCarriesNoPayload(t *testing.T) {
	params, err := dto.DecodeBulkParams(dto.BulkRequest{
		EntityType: dto.BulkEntityWires,
		Action:     dto.BulkActionApprove,
		IDs:        []string{"w1"},
	})

	require.NoError(t, err)
	assert.Nil(t, params)
}

func TestDecodeBulkParamsWireReject(t *testing.T) {
	params, err := dto.DecodeBulkParams(dto.BulkRequest{
		EntityType: dto.BulkEntityWires,
		Action:     dto.BulkActionReject,
		IDs:        []string{"w1"},
		Params:     json.RawMessage(`{"reason": "sanctions hit"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, dto.WireRejectParams{Reason: "sanctions hit"}, params)
}

func TestDecodeBulkParamsRejectsUnknownCombo(t *testing.T) {
	_, err := dto.DecodeBulkParams(dto.BulkRequest{
		EntityType: "transactions",
		Action:     dto.BulkActionUpdateStatus,
		IDs:        []string{"t1"},
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDecodeBulkParamsRejectsInvalidStatusValue(t *testing.T) {
	_, err := dto.DecodeBulkParams(dto.BulkRequest{
		EntityType: dto.BulkEntityAccounts,
		Action:     dto.BulkActionUpdateStatus,
		IDs:        []string{"a1"},
		Params:     json.RawMessage(`{"status": "FROZEN"}`),
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDecodeBulkParamsRejectsMissingParams(t *testing.T) {
	_, err := dto.DecodeBulkParams(dto.BulkRequest{
		EntityType: dto.BulkEntityWires,
		Action:     dto.BulkActionReject,
		IDs:        []string{"w1"},
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
