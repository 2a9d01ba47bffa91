package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger/internal/dto"
	"github.com/SscSPs/farm_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// projectHandler handles HTTP requests related to projects, their budget and expenses.
type projectHandler struct {
	budgetService      portssvc.BudgetSvcFacade
	procurementService portssvc.ProcurementSvc
}

// newProjectHandler creates a new projectHandler.
func newProjectHandler(bs portssvc.BudgetSvcFacade, ps portssvc.ProcurementSvc) *projectHandler {
	return &projectHandler{
		budgetService:      bs,
		procurementService: ps,
	}
}

// RegisterProjectRoutes registers routes related to projects and expenses.
func RegisterProjectRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade, procurementService portssvc.ProcurementSvc) {
	registerValidators()
	h := newProjectHandler(budgetService, procurementService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("/:id", h.getProject)
		projects.DELETE("/:id", h.deactivateProject)
		projects.GET("/:id/budget", h.getBudgetSummary)
		projects.POST("/:id/expenses", h.registerExpense)
		projects.GET("/:id/expenses", h.listExpenses)
		projects.POST("/:id/purchases", h.recordPurchase)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.DELETE("/:id", h.deactivateExpense)
	}
}

// createProject godoc
// @Summary Create a project with a budget allocation
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	project, err := h.budgetService.CreateProject(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// getProject godoc
// @Summary Get a project by ID
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Router /projects/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	project, err := h.budgetService.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// deactivateProject godoc
// @Summary Deactivate a project
// @Tags projects
// @Param   id path string true "Project ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Project not found"
// @Router /projects/{id} [delete]
func (h *projectHandler) deactivateProject(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, _ := middleware.GetUserIDFromContext(c)
	if err := h.budgetService.DeactivateProject(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondError(c, logger, err, "Failed to deactivate project")
		return
	}
	c.Status(http.StatusNoContent)
}

// getBudgetSummary godoc
// @Summary Get a project's budget consumption
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Success 200 {object} dto.BudgetSummaryResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Router /projects/{id}/budget [get]
func (h *projectHandler) getBudgetSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	summary, err := h.budgetService.GetBudgetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve budget summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetSummaryResponse(summary))
}

// registerExpense godoc
// @Summary Register an expense against a project's budget
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   expense body dto.RegisterExpenseRequest true "Expense"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 422 {object} map[string]interface{} "Budget exceeded"
// @Failure 503 {object} map[string]interface{} "Budget lock not acquired in time"
// @Router /projects/{id}/expenses [post]
func (h *projectHandler) registerExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	projectID := c.Param("id")
	var req dto.RegisterExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	logger.Info("Received expense",
		slog.String("project_id", projectID),
		slog.String("amount", req.Amount.String()))

	expense, err := h.budgetService.RegisterExpense(c.Request.Context(), projectID, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to register expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List a project's active expenses, newest first
// @Tags expenses
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Router /projects/{id}/expenses [get]
func (h *projectHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	expenses, next, err := h.budgetService.ListExpenses(c.Request.Context(), c.Param("id"), params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToListExpensesResponse(expenses, next))
}

// deactivateExpense godoc
// @Summary Deactivate an expense, releasing its amount back to the budget
// @Tags expenses
// @Param   id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Expense already inactive"
// @Failure 404 {object} map[string]string "Expense not found"
// @Router /expenses/{id} [delete]
func (h *projectHandler) deactivateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, _ := middleware.GetUserIDFromContext(c)
	if err := h.budgetService.DeactivateExpense(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondError(c, logger, err, "Failed to deactivate expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordPurchase godoc
// @Summary Record a material purchase
// @Description Registers the expense and the linked stock increase in one transaction.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   purchase body dto.RecordPurchaseRequest true "Purchase"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]interface{} "Validation or linkage error"
// @Failure 404 {object} map[string]interface{} "Project or material not found"
// @Failure 422 {object} map[string]interface{} "Budget exceeded"
// @Router /projects/{id}/purchases [post]
func (h *projectHandler) recordPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	expense, movement, err := h.procurementService.RecordMaterialPurchase(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to record purchase")
		return
	}
	c.JSON(http.StatusCreated, dto.PurchaseResponse{
		Expense:  dto.ToExpenseResponse(expense),
		Movement: dto.ToMovementResponse(movement),
	})
}
