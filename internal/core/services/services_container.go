package services

import (
	portsrepo "github.com/mocustoms/store_transfer_app/internal/core/ports/repositories"
	portssvc "github.com/mocustoms/store_transfer_app/internal/core/ports/services"
	"github.com/mocustoms/store_transfer_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Reference data services first since the workflow depends on them
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Store = NewStoreService(repos.StoreRepo)
	container.Authorization = NewAuthorizationService()

	container.Transfer = NewTransferService(
		repos.TransferRepo,
		container.Store,
		container.ExchangeRate,
		container.Authorization,
		cfg.DefaultCurrencyCode,
	)

	return container
}
