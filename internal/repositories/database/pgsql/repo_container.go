package pgsql

import (
	portsrepo "github.com/SscSPs/fxdesk/internal/core/ports/repositories"
)

func NewRepositoryProvider(pool Pool) portsrepo.RepositoryProvider {
	catalogRepo := NewRateCatalogRepository(pool)

	return portsrepo.RepositoryProvider{
		RateCatalog: catalogRepo,
		CashStock:   catalogRepo,
	}
}
