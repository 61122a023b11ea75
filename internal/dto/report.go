package dto

import (
	"github.com/CrokNoks/account-sub000/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ArchivedReportResponse is the wire form of an archived report read: the
// frozen inputs plus figures recomputed from the live ledger.
type ArchivedReportResponse struct {
	ReportID       string              `json:"reportID"`
	AccountID      string              `json:"accountID"`
	StartDate      string              `json:"startDate"`
	EndDate        string              `json:"endDate"`
	InitialBalance decimal.Decimal     `json:"initialBalance"`
	Report         domain.ReportTotals `json:"report"`
}

// ToArchivedReportResponse combines an archive row with recomputed figures.
func ToArchivedReportResponse(a *domain.ArchivedReport, totals *domain.ReportTotals) ArchivedReportResponse {
	return ArchivedReportResponse{
		ReportID:       a.ReportID,
		AccountID:      a.AccountID,
		StartDate:      FormatDate(a.StartDate),
		EndDate:        FormatDate(a.EndDate),
		InitialBalance: a.InitialBalance,
		Report:         *totals,
	}
}

// ArchivedReportSummary is the listing form: frozen inputs only, no recompute.
type ArchivedReportSummary struct {
	ReportID       string          `json:"reportID"`
	AccountID      string          `json:"accountID"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// ToArchivedReportSummarySlice converts archive rows to listing summaries.
func ToArchivedReportSummarySlice(as []domain.ArchivedReport) []ArchivedReportSummary {
	out := make([]ArchivedReportSummary, len(as))
	for i, a := range as {
		out[i] = ArchivedReportSummary{
			ReportID:       a.ReportID,
			AccountID:      a.AccountID,
			StartDate:      FormatDate(a.StartDate),
			EndDate:        FormatDate(a.EndDate),
			InitialBalance: a.InitialBalance,
		}
	}
	return out
}

// EvolutionResponse is the archive evolution series.
type EvolutionResponse struct {
	Points []EvolutionPointPayload `json:"points"`
}

// EvolutionPointPayload is one entry of the evolution series.
type EvolutionPointPayload struct {
	ReportID          string          `json:"reportID"`
	StartDate         string          `json:"startDate"`
	EndDate           string          `json:"endDate"`
	InitialBalance    decimal.Decimal `json:"initialBalance"`
	OperationsBalance decimal.Decimal `json:"operationsBalance"`
}

// ToEvolutionResponse converts domain evolution points.
func ToEvolutionResponse(points []domain.EvolutionPoint) EvolutionResponse {
	out := make([]EvolutionPointPayload, len(points))
	for i, p := range points {
		out[i] = EvolutionPointPayload{
			ReportID:          p.ReportID,
			StartDate:         FormatDate(p.StartDate),
			EndDate:           FormatDate(p.EndDate),
			InitialBalance:    p.InitialBalance,
			OperationsBalance: p.OperationsBalance,
		}
	}
	return EvolutionResponse{Points: out}
}
