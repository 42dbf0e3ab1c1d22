package domain

import "time"

// AuditSeverity grades an audit entry.
type AuditSeverity string

const (
	SeverityInfo     AuditSeverity = "INFO"
	SeverityWarning  AuditSeverity = "WARNING"
	SeverityCritical AuditSeverity = "CRITICAL"
)

// AuditEntry is an append-only record of a committed mutation or a blocked
// fraud/compliance decision. Entries are never updated or deleted.
type AuditEntry struct {
	EntryID    string            `json:"entryID"`
	ActorID    string            `json:"actorID"`
	Action     string            `json:"action"`
	EntityType string            `json:"entityType"`
	EntityID   string            `json:"entityID"`
	Severity   AuditSeverity     `json:"severity"`
	Details    map[string]string `json:"details,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}
