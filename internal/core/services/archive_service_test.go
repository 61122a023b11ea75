package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
	"github.com/CrokNoks/account-sub000/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ArchiveServiceTestSuite struct {
	suite.Suite
	mockArchiveRepo *MockArchiveRepository
	mockReportSvc   *MockReportSvc
	service         portssvc.ArchiveSvc
}

func (suite *ArchiveServiceTestSuite) SetupTest() {
	suite.mockArchiveRepo = new(MockArchiveRepository)
	suite.mockReportSvc = new(MockReportSvc)
	suite.service = services.NewArchiveService(suite.mockArchiveRepo, suite.mockReportSvc)
}

// GetReport must anchor the recomputation on the frozen initial balance and
// window bounds, never on a fresh derivation from history.
func (suite *ArchiveServiceTestSuite) TestGetReport_RecomputesFromFrozenWindow() {
	ctx := context.Background()
	reportID := uuid.NewString()
	accountID := uuid.NewString()
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	frozen := decimal.NewFromInt(1200)
	archived := &domain.ArchivedReport{
		ReportID:       reportID,
		AccountID:      accountID,
		StartDate:      start,
		EndDate:        end,
		InitialBalance: frozen,
	}
	totals := &domain.ReportTotals{
		InitialBalance:    frozen,
		OperationsBalance: decimal.NewFromInt(1350),
	}

	suite.mockArchiveRepo.On("FindArchivedReportByID", ctx, reportID).Return(archived, nil).Once()
	suite.mockReportSvc.On("ComputeArchivedReport", ctx, mock.MatchedBy(func(r *domain.ArchivedReport) bool {
		return r.ReportID == reportID && r.InitialBalance.Equal(frozen) && r.StartDate.Equal(start) && r.EndDate.Equal(end)
	})).Return(totals, nil).Once()

	report, got, err := suite.service.GetReport(ctx, reportID)

	suite.Require().NoError(err)
	suite.Equal(reportID, report.ReportID)
	suite.True(got.OperationsBalance.Equal(decimal.NewFromInt(1350)))
	suite.mockReportSvc.AssertExpectations(suite.T())
	suite.mockReportSvc.AssertNotCalled(suite.T(), "DeriveInitialBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ArchiveServiceTestSuite) TestEvolution_OnePointPerArchive() {
	ctx := context.Background()
	accountID := uuid.NewString()
	jan := domain.ArchivedReport{
		ReportID:       uuid.NewString(),
		AccountID:      accountID,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		InitialBalance: decimal.NewFromInt(1000),
	}
	feb := domain.ArchivedReport{
		ReportID:       uuid.NewString(),
		AccountID:      accountID,
		StartDate:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		InitialBalance: decimal.NewFromInt(1100),
	}

	suite.mockArchiveRepo.On("ListArchivedReportsByAccount", ctx, accountID).
		Return([]domain.ArchivedReport{jan, feb}, nil).Once()
	suite.mockReportSvc.On("ComputeArchivedReport", ctx, mock.MatchedBy(func(r *domain.ArchivedReport) bool {
		return r.ReportID == jan.ReportID
	})).Return(&domain.ReportTotals{OperationsBalance: decimal.NewFromInt(1100)}, nil).Once()
	suite.mockReportSvc.On("ComputeArchivedReport", ctx, mock.MatchedBy(func(r *domain.ArchivedReport) bool {
		return r.ReportID == feb.ReportID
	})).Return(&domain.ReportTotals{OperationsBalance: decimal.NewFromInt(1250)}, nil).Once()

	points, err := suite.service.Evolution(ctx, accountID)

	suite.Require().NoError(err)
	suite.Require().Len(points, 2)
	suite.Equal(jan.ReportID, points[0].ReportID)
	suite.True(points[0].OperationsBalance.Equal(decimal.NewFromInt(1100)))
	suite.Equal(feb.ReportID, points[1].ReportID)
	suite.True(points[1].OperationsBalance.Equal(decimal.NewFromInt(1250)))
	suite.mockReportSvc.AssertExpectations(suite.T())
}

func (suite *ArchiveServiceTestSuite) TestEvolution_NoArchives() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockArchiveRepo.On("ListArchivedReportsByAccount", ctx, accountID).
		Return([]domain.ArchivedReport{}, nil).Once()

	points, err := suite.service.Evolution(ctx, accountID)

	suite.Require().NoError(err)
	suite.Empty(points)
}

func (suite *ArchiveServiceTestSuite) TestDeleteReport_RemovesArchiveRowOnly() {
	ctx := context.Background()
	reportID := uuid.NewString()

	suite.mockArchiveRepo.On("DeleteArchivedReport", ctx, reportID).Return(nil).Once()

	err := suite.service.DeleteReport(ctx, reportID)

	suite.Require().NoError(err)
	suite.mockArchiveRepo.AssertExpectations(suite.T())
}

func TestArchiveServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ArchiveServiceTestSuite))
}
