package mapping

import (
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/CrokNoks/account-sub000/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Name:           m.Name,
		InitialBalance: m.InitialBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		AccountID:   m.AccountID,
		Name:        m.Name,
		Color:       m.Color,
		Type:        domain.CategoryType(m.Type),
		Budget:      m.Budget,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategorySlice converts a slice of model Categories.
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		CategoryID:    m.CategoryID,
		Amount:        m.Amount,
		Date:          m.Date,
		Reconciled:    m.Reconciled,
		Description:   m.Description,
		Notes:         m.Notes,
		PaymentMethod: m.PaymentMethod,
		TransferID:    m.TransferID,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		CategoryID:    d.CategoryID,
		Amount:        d.Amount,
		Date:          d.Date,
		Reconciled:    d.Reconciled,
		Description:   d.Description,
		Notes:         d.Notes,
		PaymentMethod: d.PaymentMethod,
		TransferID:    d.TransferID,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
