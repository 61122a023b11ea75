package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArchivedReport mirrors the archived_reports table. Snapshot is the jsonb
// column holding the figures frozen at closing time; only initial_balance and
// the date bounds are authoritative on read.
type ArchivedReport struct {
	ReportID       string          `json:"reportID"`
	AccountID      string          `json:"accountID"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Snapshot       []byte          `json:"snapshot"`
	AuditFields
}
