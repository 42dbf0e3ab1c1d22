package dto

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/openretailbank/corebank/internal/apperrors"
	"github.com/openretailbank/corebank/internal/core/domain"
)

// Bulk entity/action identifiers. The valid combinations are:
//
//	accounts + update_status  -> AccountStatusParams
//	wires    + approve        -> no params
//	wires    + reject         -> WireRejectParams
//
// Settled transactions are immutable, so no action on "transactions" exists.
const (
	BulkEntityAccounts = "accounts"
	BulkEntityWires    = "wires"

	BulkActionUpdateStatus = "update_status"
	BulkActionApprove      = "approve"
	BulkActionReject       = "reject"
)

// BulkRequest applies one administrative action to a bounded batch of ids.
// Params decodes per (entityType, action) pair; the raw form is rejected at
// the boundary when it does not match the pair's schema.
type BulkRequest struct {
	EntityType string          `json:"entityType" binding:"required"`
	Action     string          `json:"action" binding:"required"`
	IDs        []string        `json:"ids" binding:"required,min=1"`
	Params     json.RawMessage `json:"params,omitempty"`
}

// AccountStatusParams is the payload for accounts/update_status.
type AccountStatusParams struct {
	Status domain.AccountStatus `json:"status" validate:"required,oneof=ACTIVE SUSPENDED CLOSED"`
}

// WireRejectParams is the payload for wires/reject.
type WireRejectParams struct {
	Reason string `json:"reason" validate:"required"`
}

var bulkValidator = validator.New()

// DecodeBulkParams parses and validates the raw params for the given
// (entityType, action) pair. It returns one of the typed params structs, or
// nil for pairs that carry no payload.
func DecodeBulkParams(req BulkRequest) (any, error) {
	switch {
	case req.EntityType == BulkEntityAccounts && req.Action == BulkActionUpdateStatus:
		var p AccountStatusParams
		if err := decodeStrict(req.Params, &p); err != nil {
			return nil, err
		}
		return p, nil
	case req.EntityType == BulkEntityWires && req.Action == BulkActionApprove:
		return nil, nil
	case req.EntityType == BulkEntityWires && req.Action == BulkActionReject:
		var p WireRejectParams
		if err := decodeStrict(req.Params, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unsupported bulk operation %s/%s", apperrors.ErrValidation, req.EntityType, req.Action)
	}
}

func decodeStrict(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: params are required for this action", apperrors.ErrValidation)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: malformed params: %v", apperrors.ErrValidation, err)
	}
	if err := bulkValidator.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

// BulkItemResult reports the outcome of a single batch item.
type BulkItemResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// BatchResult is the per-item outcome report for a bulk operation.
type BatchResult struct {
	Processed int              `json:"processed"`
	Failed    int              `json:"failed"`
	Results   []BulkItemResult `json:"results"`
}
