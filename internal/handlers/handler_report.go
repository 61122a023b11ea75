package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
	"github.com/CrokNoks/account-sub000/internal/dto"
	"github.com/CrokNoks/account-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler handles HTTP requests related to archived reports.
type reportHandler struct {
	archiveService portssvc.ArchiveSvc
}

// newReportHandler creates a new reportHandler.
func newReportHandler(as portssvc.ArchiveSvc) *reportHandler {
	return &reportHandler{archiveService: as}
}

// registerReportRoutes registers routes related to archived reports.
func registerReportRoutes(rg *gin.RouterGroup, archiveService portssvc.ArchiveSvc) {
	h := newReportHandler(archiveService)

	reports := rg.Group("/reports")
	{
		reports.GET("", h.listReports)
		reports.GET("/evolution", h.getEvolution)
		reports.GET("/:id", h.getReport)
		reports.DELETE("/:id", h.deleteReport)
	}
}

// listReports godoc
// @Summary List archived reports for an account
// @Tags reports
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {array} dto.ArchivedReportSummary
// @Failure 400 {object} map[string]string "Missing account_id"
// @Failure 500 {object} map[string]string "Failed to list reports"
// @Security BearerAuth
// @Router /reports [get]
func (h *reportHandler) listReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id query parameter is required"})
		return
	}

	reports, err := h.archiveService.ListReports(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to list archived reports", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, dto.ToArchivedReportSummarySlice(reports))
}

// getEvolution godoc
// @Summary Balance evolution across archived reports
// @Description One recomputed operations balance per archive, ordered by start date
// @Tags reports
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} dto.EvolutionResponse
// @Failure 400 {object} map[string]string "Missing account_id"
// @Failure 500 {object} map[string]string "Failed to compute evolution"
// @Security BearerAuth
// @Router /reports/evolution [get]
func (h *reportHandler) getEvolution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id query parameter is required"})
		return
	}

	points, err := h.archiveService.Evolution(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to compute evolution", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute evolution"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEvolutionResponse(points))
}

// getReport godoc
// @Summary Get an archived report
// @Description Returns the frozen archive inputs with figures recomputed from the live ledger
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.ArchivedReportResponse
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Failed to get report"
// @Security BearerAuth
// @Router /reports/{id} [get]
func (h *reportHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reportID := c.Param("id")

	report, totals, err := h.archiveService.GetReport(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			logger.Error("Failed to get archived report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToArchivedReportResponse(report, totals))
}

// deleteReport godoc
// @Summary Delete an archived report
// @Description Removes the archive row only; transactions stay in place
// @Tags reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} map[string]string "Report not found"
// @Failure 500 {object} map[string]string "Failed to delete report"
// @Security BearerAuth
// @Router /reports/{id} [delete]
func (h *reportHandler) deleteReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reportID := c.Param("id")

	if err := h.archiveService.DeleteReport(c.Request.Context(), reportID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			logger.Error("Failed to delete archived report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}
