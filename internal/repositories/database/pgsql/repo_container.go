package pgsql

import (
	portsrepo "github.com/CrokNoks/account-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	archiveRepo := newPgxArchiveRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		CategoryRepo:    categoryRepo,
		TransactionRepo: transactionRepo,
		PeriodRepo:      periodRepo,
		BudgetRepo:      budgetRepo,
		ArchiveRepo:     archiveRepo,
	}
}
