package repositories

// RepositoryProvider bundles the concrete repositories for injection into the
// service container.
type RepositoryProvider struct {
	AccountRepo AccountRepository
	LedgerRepo  LedgerRepository
	WireRepo    WireRepository
	AuditRepo   AuditRepository
}
