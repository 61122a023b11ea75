package mapping

import (
	"encoding/json"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/CrokNoks/account-sub000/internal/models"
)

// ToModelPeriod converts a domain Period to a model Period.
func ToModelPeriod(d domain.Period) models.Period {
	return models.Period{
		PeriodID:         d.PeriodID,
		AccountID:        d.AccountID,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		EstimatedEndDate: d.EstimatedEndDate,
		IsActive:         d.IsActive,
		BudgetsConfirmed: d.BudgetsConfirmed,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model Period to a domain Period.
func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		PeriodID:         m.PeriodID,
		AccountID:        m.AccountID,
		StartDate:        m.StartDate,
		EndDate:          m.EndDate,
		EstimatedEndDate: m.EstimatedEndDate,
		IsActive:         m.IsActive,
		BudgetsConfirmed: m.BudgetsConfirmed,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPeriodSlice converts a slice of model Periods.
func ToDomainPeriodSlice(ms []models.Period) []domain.Period {
	ds := make([]domain.Period, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPeriod(m)
	}
	return ds
}

// ToDomainBudgetTemplate converts a model BudgetTemplate to its domain form.
func ToDomainBudgetTemplate(m models.BudgetTemplate) domain.BudgetTemplate {
	return domain.BudgetTemplate{
		TemplateID:  m.TemplateID,
		AccountID:   m.AccountID,
		CategoryID:  m.CategoryID,
		AmountBase:  m.AmountBase,
		IsFixed:     m.IsFixed,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBudgetInstance converts a domain BudgetInstance to its model form.
func ToModelBudgetInstance(d domain.BudgetInstance) models.BudgetInstance {
	return models.BudgetInstance{
		InstanceID:      d.InstanceID,
		PeriodID:        d.PeriodID,
		CategoryID:      d.CategoryID,
		AmountAllocated: d.AmountAllocated,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudgetInstance converts a model BudgetInstance to its domain form.
func ToDomainBudgetInstance(m models.BudgetInstance) domain.BudgetInstance {
	return domain.BudgetInstance{
		InstanceID:      m.InstanceID,
		PeriodID:        m.PeriodID,
		CategoryID:      m.CategoryID,
		AmountAllocated: m.AmountAllocated,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetInstanceSlice converts a slice of model BudgetInstances.
func ToDomainBudgetInstanceSlice(ms []models.BudgetInstance) []domain.BudgetInstance {
	ds := make([]domain.BudgetInstance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudgetInstance(m)
	}
	return ds
}

// ToModelArchivedReport converts a domain ArchivedReport to its model form,
// serializing the closing-time snapshot to jsonb bytes.
func ToModelArchivedReport(d domain.ArchivedReport) (models.ArchivedReport, error) {
	snapshot, err := json.Marshal(d.Snapshot)
	if err != nil {
		return models.ArchivedReport{}, err
	}
	return models.ArchivedReport{
		ReportID:       d.ReportID,
		AccountID:      d.AccountID,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		InitialBalance: d.InitialBalance,
		Snapshot:       snapshot,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainArchivedReport converts a model ArchivedReport to its domain form.
// An unreadable snapshot is tolerated: the snapshot is forensic only, and every
// served figure except the initial balance is recomputed from the live ledger.
func ToDomainArchivedReport(m models.ArchivedReport) domain.ArchivedReport {
	var snapshot domain.ReportTotals
	_ = json.Unmarshal(m.Snapshot, &snapshot)
	return domain.ArchivedReport{
		ReportID:       m.ReportID,
		AccountID:      m.AccountID,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		InitialBalance: m.InitialBalance,
		Snapshot:       snapshot,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
