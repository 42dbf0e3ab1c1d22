package services

import (
	"context"

	"github.com/openretailbank/corebank/internal/core/domain"
	"github.com/openretailbank/corebank/internal/dto"
)

// WireSvcFacade runs the wire transfer compliance workflow.
type WireSvcFacade interface {
	CreateWireTransfer(ctx context.Context, req dto.CreateWireRequest, actorID string) (*domain.WireTransfer, error)
	ApproveWire(ctx context.Context, wireID, approverID string) (*domain.WireTransfer, error)
	RejectWire(ctx context.Context, wireID, approverID, reason string) (*domain.WireTransfer, error)
	GetWireByID(ctx context.Context, wireID string) (*domain.WireTransfer, error)
}
