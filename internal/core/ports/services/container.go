package services

// ServiceContainer bundles the service facades for injection into handlers.
type ServiceContainer struct {
	Account  AccountSvcFacade
	Transfer TransferSvcFacade
	Wire     WireSvcFacade
	Limit    LimitSvcFacade
	Fraud    FraudSvcFacade
	Bulk     BulkSvcFacade
	Audit    AuditSvcFacade
}
