package services

import (
	"github.com/SscSPs/fxdesk/internal/core/engine"
	portsrepo "github.com/SscSPs/fxdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fxdesk/internal/core/ports/services"
	"github.com/SscSPs/fxdesk/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	rateEngine := engine.New(engine.WithReferenceDenominations(cfg.ReferenceDenominations))

	return &portssvc.ServiceContainer{
		Quote: NewQuoteService(repos.RateCatalog, repos.CashStock, WithEngine(rateEngine)),
	}
}
