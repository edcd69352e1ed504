package services

// ServiceContainer holds instances of all the application services.
type ServiceContainer struct {
	Quote QuoteSvcFacade
}
