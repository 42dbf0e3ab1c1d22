package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openretailbank/corebank/internal/apperrors"
	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
	"github.com/openretailbank/corebank/internal/dto"
	"github.com/openretailbank/corebank/internal/middleware"
)

// bulkService fans one administrative action out over a bounded batch of ids.
// Items are isolated from each other; one failure never rolls back the rest.
type bulkService struct {
	accountSvc portssvc.AccountSvcFacade
	wireSvc    portssvc.WireSvcFacade
	maxBatch   int
}

// NewBulkService creates the bulk coordinator.
func NewBulkService(accountSvc portssvc.AccountSvcFacade, wireSvc portssvc.WireSvcFacade, maxBatch int) portssvc.BulkSvcFacade {
	return &bulkService{
		accountSvc: accountSvc,
		wireSvc:    wireSvc,
		maxBatch:   maxBatch,
	}
}

var _ portssvc.BulkSvcFacade = (*bulkService)(nil)

// Execute validates the batch as a whole, then applies the action item by
// item sequentially in request order. Oversized batches and unsupported
// entity/action pairs fail before any item runs.
func (s *bulkService) Execute(ctx context.Context, req dto.BulkRequest, actorID string) (*dto.BatchResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.IDs) > s.maxBatch {
		return nil, fmt.Errorf("%w: batch of %d exceeds ceiling of %d", apperrors.ErrValidation, len(req.IDs), s.maxBatch)
	}

	params, err := dto.DecodeBulkParams(req)
	if err != nil {
		return nil, err
	}

	result := &dto.BatchResult{Results: make([]dto.BulkItemResult, 0, len(req.IDs))}
	for _, id := range req.IDs {
		if err := s.applyItem(ctx, req, params, id, actorID); err != nil {
			result.Failed++
			result.Results = append(result.Results, dto.BulkItemResult{ID: id, OK: false, Error: err.Error()})
			continue
		}
		result.Processed++
		result.Results = append(result.Results, dto.BulkItemResult{ID: id, OK: true})
	}

	logger.Info("Bulk operation finished",
		slog.String("entity_type", req.EntityType),
		slog.String("action", req.Action),
		slog.Int("processed", result.Processed),
		slog.Int("failed", result.Failed),
	)
	return result, nil
}

func (s *bulkService) applyItem(ctx context.Context, req dto.BulkRequest, params any, id, actorID string) error {
	switch {
	case req.EntityType == dto.BulkEntityAccounts && req.Action == dto.BulkActionUpdateStatus:
		p := params.(dto.AccountStatusParams)
		_, err := s.accountSvc.UpdateStatus(ctx, id, p.Status, actorID)
		return err
	case req.EntityType == dto.BulkEntityWires && req.Action == dto.BulkActionApprove:
		_, err := s.wireSvc.ApproveWire(ctx, id, actorID)
		return err
	case req.EntityType == dto.BulkEntityWires && req.Action == dto.BulkActionReject:
		p := params.(dto.WireRejectParams)
		_, err := s.wireSvc.RejectWire(ctx, id, actorID, p.Reason)
		return err
	default:
		return fmt.Errorf("%w: unsupported bulk operation %s/%s", apperrors.ErrValidation, req.EntityType, req.Action)
	}
}
