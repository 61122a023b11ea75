package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/CrokNoks/account-sub000/internal/apperrors"
	portssvc "github.com/CrokNoks/account-sub000/internal/core/ports/services"
	"github.com/CrokNoks/account-sub000/internal/dto"
	"github.com/CrokNoks/account-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests related to reporting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvc
	reportService portssvc.ReportSvc
}

// newPeriodHandler creates a new periodHandler.
func newPeriodHandler(ps portssvc.PeriodSvc, rs portssvc.ReportSvc) *periodHandler {
	return &periodHandler{
		periodService: ps,
		reportService: rs,
	}
}

// RegisterPeriodRoutes registers routes related to periods.
func RegisterPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvc, reportService portssvc.ReportSvc) {
	h := newPeriodHandler(periodService, reportService)

	periods := rg.Group("/periods")
	{
		periods.GET("", h.listPeriods)
		periods.GET("/active", h.getActivePeriod)
		periods.GET("/:id", h.getPeriodByID)
		periods.GET("/:id/report", h.getPeriodReport)
		periods.POST("/preview", h.previewNextPeriod)
		periods.POST("", h.createPeriod)
		periods.POST("/:id/close", h.closePeriod)
		periods.DELETE("/:id", h.deletePeriod)
	}
}

// listPeriods godoc
// @Summary List periods for an account
// @Description Retrieves the account's reporting periods, optionally filtered by active state
// @Tags periods
// @Produce json
// @Param account_id query string true "Account ID"
// @Param is_active query bool false "Filter by active state"
// @Success 200 {array} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Missing account_id or invalid is_active"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id query parameter is required"})
		return
	}

	var isActive *bool
	if raw, ok := c.GetQuery("is_active"); ok {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "is_active must be true or false"})
			return
		}
		isActive = &parsed
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), accountID, isActive)
	if err != nil {
		logger.Error("Failed to list periods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponseSlice(periods))
}

// getActivePeriod godoc
// @Summary Get the active period
// @Description Retrieves the account's active period, or null when none exists
// @Tags periods
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Missing account_id"
// @Failure 500 {object} map[string]string "Failed to get active period"
// @Security BearerAuth
// @Router /periods/active [get]
func (h *periodHandler) getActivePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id query parameter is required"})
		return
	}

	period, err := h.periodService.GetActivePeriod(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to get active period", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get active period"})
		return
	}
	if period == nil {
		// No active period is a normal state, not an error.
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// getPeriodByID godoc
// @Summary Get a period by ID
// @Tags periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to get period"
// @Security BearerAuth
// @Router /periods/{id} [get]
func (h *periodHandler) getPeriodByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to get period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// getPeriodReport godoc
// @Summary Compute the report for a period
// @Description Derives the initial balance from the full prior history and computes all balance figures for the period window
// @Tags periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.PeriodReportResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to compute report"
// @Security BearerAuth
// @Router /periods/{id}/report [get]
func (h *periodHandler) getPeriodReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	totals, period, err := h.reportService.ComputePeriodReport(c.Request.Context(), periodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to compute period report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PeriodReportResponse{
		Period: dto.ToPeriodResponse(period),
		Report: *totals,
	})
}

// previewNextPeriod godoc
// @Summary Preview the next period
// @Description Drafts the next period (start, predicted end, initial balance, expanded budgets) without persisting anything
// @Tags periods
// @Accept json
// @Produce json
// @Param request body dto.PeriodPreviewRequest true "Account"
// @Success 200 {object} dto.PeriodPreviewResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to preview period"
// @Security BearerAuth
// @Router /periods/preview [post]
func (h *periodHandler) previewNextPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PeriodPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	preview, err := h.periodService.PreviewNextPeriod(c.Request.Context(), req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to preview period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to preview period"})
		}
		return
	}

	c.JSON(http.StatusOK, preview)
}

// createPeriod godoc
// @Summary Create a period with its budgets
// @Description Persists a new active period and its budget instances
// @Tags periods
// @Accept json
// @Produce json
// @Param request body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "An active period already exists"
// @Failure 500 {object} map[string]string "Failed to create period"
// @Security BearerAuth
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.CreatePeriodWithBudgets(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrActivePeriodExists):
			c.JSON(http.StatusConflict, gin.H{"error": "An active period already exists for this account"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create period"})
		}
		return
	}

	logger.Info("Period created", slog.String("period_id", period.PeriodID))
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close a period
// @Description Archives the closing report and deactivates the period; refused while unreconciled transactions remain in the window
// @Tags periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Period already closed"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 409 {object} map[string]string "Unreconciled transactions block the close"
// @Failure 500 {object} map[string]string "Failed to close period"
// @Security BearerAuth
// @Router /periods/{id}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	period, err := h.periodService.ClosePeriod(c.Request.Context(), periodID, userID)
	if err != nil {
		var gateErr *apperrors.UnreconciledTransactionsError
		switch {
		case errors.As(err, &gateErr):
			c.JSON(http.StatusConflict, gin.H{
				"error":              gateErr.Error(),
				"unreconciled_count": gateErr.Count,
			})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close period"})
		}
		return
	}

	logger.Info("Period closed", slog.String("period_id", periodID))
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// deletePeriod godoc
// @Summary Delete a period
// @Description Removes the period and its budget instances; transactions and archives stay untouched
// @Tags periods
// @Produce json
// @Param id path string true "Period ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to delete period"
// @Security BearerAuth
// @Router /periods/{id} [delete]
func (h *periodHandler) deletePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("id")

	if err := h.periodService.DeletePeriod(c.Request.Context(), periodID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Period not found"})
		} else {
			logger.Error("Failed to delete period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete period"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResponse{Success: true})
}
