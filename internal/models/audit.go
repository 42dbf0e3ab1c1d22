package models

import "time"

// AuditEntry represents a row in the append-only audit log.
type AuditEntry struct {
	EntryID    string            `db:"entry_id"`
	ActorID    string            `db:"actor_id"`
	Action     string            `db:"action"`
	EntityType string            `db:"entity_type"`
	EntityID   string            `db:"entity_id"`
	Severity   string            `db:"severity"`
	Details    map[string]string `db:"details"` // jsonb
	CreatedAt  time.Time         `db:"created_at"`
}
