package repositories

import (
	"context"

	"github.com/openretailbank/corebank/internal/core/domain"
)

// AuditRepository is the append-only audit sink.
type AuditRepository interface {
	SaveEntry(ctx context.Context, entry domain.AuditEntry) error
}
