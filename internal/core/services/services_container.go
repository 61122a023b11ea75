package services

import (
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
	"github.com/CrokNoks/account-sub000/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. classifier and dispatcher may be nil when no classification
// pipeline is deployed.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	classifier portssvc.ClassifierSvc,
	dispatcher portssvc.ClassificationDispatcher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Budget = NewBudgetService(repos.BudgetRepo, repos.PeriodRepo)
	container.Report = NewReportService(
		repos.AccountRepo,
		repos.CategoryRepo,
		repos.TransactionRepo,
		repos.PeriodRepo,
		repos.BudgetRepo,
	)
	container.Period = NewPeriodService(repos, container.Budget, container.Report)
	container.Archive = NewArchiveService(repos.ArchiveRepo, container.Report)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.CategoryRepo,
		classifier,
		dispatcher,
		cfg.ClassifierMinConfidence,
	)
	container.Classifier = classifier

	return container
}
