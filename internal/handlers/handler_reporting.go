package handlers

import (
	"net/http"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger/internal/dto"
	"github.com/SscSPs/farm_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for ledger reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// RegisterReportingRoutes registers the routes for reports
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	registerValidators()
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/expenses/monthly", h.monthlyExpenses)
		reports.GET("/movements/monthly", h.monthlyMovements)
	}
}

// monthlyExpenses godoc
// @Summary Monthly spending of a project
// @Tags reports
// @Produce  json
// @Param   project query string true "Project ID"
// @Success 200 {array} dto.MonthlyExpenseRow
// @Failure 400 {object} map[string]string "Missing project"
// @Failure 404 {object} map[string]string "Project not found"
// @Router /reports/expenses/monthly [get]
func (h *reportingHandler) monthlyExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.MonthlyExpenseReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	rows, err := h.reportingService.MonthlyExpenseSummary(c.Request.Context(), params.ProjectID)
	if err != nil {
		respondError(c, logger, err, "Failed to generate monthly expense report")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyExpenseRows(rows))
}

// monthlyMovements godoc
// @Summary Monthly stock increases and decreases
// @Tags reports
// @Produce  json
// @Param   material query string false "Material ID"
// @Param   category query string false "CONSTRUCTION or FARM"
// @Success 200 {array} dto.MonthlyMovementRow
// @Router /reports/movements/monthly [get]
func (h *reportingHandler) monthlyMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.MonthlyMovementReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	filter := domain.MovementReportFilter{
		MaterialID: params.MaterialID,
		Category:   domain.MaterialCategory(params.Category),
	}
	rows, err := h.reportingService.MonthlyMovementSummary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to generate monthly movement report")
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlyMovementRows(rows))
}
