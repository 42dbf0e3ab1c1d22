package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/openretailbank/corebank/internal/core/domain"
	portsrepo "github.com/openretailbank/corebank/internal/core/ports/repositories"
	portssvc "github.com/openretailbank/corebank/internal/core/ports/services"
)

// auditService records audit entries through a buffered channel drained by a
// background worker, so a slow or failing audit sink can never be mistaken
// for a financial failure. Failed writes are logged, never retried into the
// caller's path.
type auditService struct {
	auditRepo portsrepo.AuditRepository
	logger    *slog.Logger

	entries   chan domain.AuditEntry
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewAuditService starts the background recorder with the given queue depth.
func NewAuditService(auditRepo portsrepo.AuditRepository, logger *slog.Logger, buffer int) portssvc.AuditSvcFacade {
	if buffer <= 0 {
		buffer = 256
	}
	s := &auditService{
		auditRepo: auditRepo,
		logger:    logger,
		entries:   make(chan domain.AuditEntry, buffer),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) run() {
	defer s.wg.Done()
	for entry := range s.entries {
		// The request context is gone by the time the worker runs.
		if err := s.auditRepo.SaveEntry(context.Background(), entry); err != nil {
			s.logger.Error("Failed to write audit entry",
				slog.String("entry_id", entry.EntryID),
				slog.String("action", entry.Action),
				slog.String("entity_id", entry.EntityID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// Record enqueues an entry for the background writer. A full queue is logged
// loudly rather than blocking money movement.
func (s *auditService) Record(ctx context.Context, entry domain.AuditEntry) {
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	select {
	case s.entries <- entry:
	default:
		s.logger.Error("Audit queue full, entry not recorded",
			slog.String("action", entry.Action),
			slog.String("entity_id", entry.EntityID),
		)
	}
}

// Close stops accepting entries and drains the queue.
func (s *auditService) Close() {
	s.closeOnce.Do(func() {
		close(s.entries)
	})
	s.wg.Wait()
}
