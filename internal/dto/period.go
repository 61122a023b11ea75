package dto

import (
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetDraftPayload is one budget allocation inside a period preview or a
// period creation request.
type BudgetDraftPayload struct {
	CategoryID      string          `json:"categoryID" binding:"required"`
	AmountAllocated decimal.Decimal `json:"amountAllocated" binding:"required"`
}

// PeriodPreviewRequest asks for a draft of the next period.
type PeriodPreviewRequest struct {
	AccountID string `json:"account_id" binding:"required"`
}

// PeriodPreviewResponse is the non-persisted draft of the next period.
type PeriodPreviewResponse struct {
	StartDate      string               `json:"startDate"` // YYYY-MM-DD
	EndDate        string               `json:"endDate"`   // Predicted
	InitialBalance decimal.Decimal      `json:"initialBalance"`
	Budgets        []BudgetDraftPayload `json:"budgets"`
}

// CreatePeriodRequest creates a period together with its budget instances.
type CreatePeriodRequest struct {
	AccountID        string               `json:"account_id" binding:"required"`
	StartDate        string               `json:"start_date" binding:"required,dateonly"`
	EndDate          *string              `json:"end_date" binding:"omitempty,dateonly"`
	EstimatedEndDate *string              `json:"estimated_end_date" binding:"omitempty,dateonly"`
	Budgets          []BudgetDraftPayload `json:"budgets" binding:"dive"`
}

// PeriodResponse is the wire form of a period.
type PeriodResponse struct {
	PeriodID         string  `json:"periodID"`
	AccountID        string  `json:"accountID"`
	StartDate        string  `json:"startDate"`
	EndDate          *string `json:"endDate"`
	EstimatedEndDate string  `json:"estimatedEndDate"`
	IsActive         bool    `json:"isActive"`
}

// ToPeriodResponse converts a domain.Period to its wire form.
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		PeriodID:         p.PeriodID,
		AccountID:        p.AccountID,
		StartDate:        FormatDate(p.StartDate),
		EndDate:          FormatDatePtr(p.EndDate),
		EstimatedEndDate: FormatDate(p.EstimatedEndDate),
		IsActive:         p.IsActive,
	}
}

// ToPeriodResponseSlice converts a slice of domain periods.
func ToPeriodResponseSlice(ps []domain.Period) []PeriodResponse {
	out := make([]PeriodResponse, len(ps))
	for i := range ps {
		out[i] = ToPeriodResponse(&ps[i])
	}
	return out
}

// PeriodReportResponse bundles a period with its computed report figures.
type PeriodReportResponse struct {
	Period PeriodResponse      `json:"period"`
	Report domain.ReportTotals `json:"report"`
}

// DeleteResponse is the conventional success body for deletions.
type DeleteResponse struct {
	Success bool `json:"success"`
}
