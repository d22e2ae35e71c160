package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/samsalem6/hospital-records/pkg/metrics"
)

type AuditEntry struct {
	ID           uuid.UUID
	Actor        string
	Action       string
	ResourceType string
	ResourceID   string
	OccurredAt   time.Time
}

// AuditService writes an audit trail of every mutating operation to
// the structured log sink.
type AuditService struct {
	log     *zap.Logger
	metrics *metrics.Collector
	actor   string
	entries chan AuditEntry
	done    chan struct{}
}

const auditBufferSize = 1024

func NewAuditService(m *metrics.Collector, log *zap.Logger) *AuditService {
	svc := &AuditService{
		log:     log,
		metrics: m,
		entries: make(chan AuditEntry, auditBufferSize),
		done:    make(chan struct{}),
	}
	go svc.worker()
	return svc
}

// SetActor attributes subsequent entries to the logged-in operator.
func (s *AuditService) SetActor(actor string) {
	s.actor = actor
}

// Record enqueues an audit entry. If the buffer is full, the entry is
// dropped and a warning is emitted.
func (s *AuditService) Record(entry AuditEntry) {
	entry.ID = uuid.New()
	entry.OccurredAt = time.Now()
	if entry.Actor == "" {
		entry.Actor = s.actor
	}

	select {
	case s.entries <- entry:
	default:
		s.metrics.AuditBufferDropped.Inc()
		s.log.Warn("audit buffer full, dropping entry",
			zap.String("action", entry.Action),
			zap.String("resource", entry.ResourceType),
		)
	}
}

func (s *AuditService) Shutdown() {
	close(s.entries)
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		s.log.Warn("audit service shutdown timed out; some entries may be lost")
	}
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		s.metrics.AuditEntriesTotal.Inc()
		s.log.Info("audit",
			zap.String("id", entry.ID.String()),
			zap.String("actor", entry.Actor),
			zap.String("action", entry.Action),
			zap.String("resource_type", entry.ResourceType),
			zap.String("resource_id", entry.ResourceID),
			zap.Time("occurred_at", entry.OccurredAt),
		)
	}
}
