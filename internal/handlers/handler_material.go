package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger/internal/dto"
	"github.com/SscSPs/farm_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// materialHandler handles HTTP requests related to materials and their stock.
type materialHandler struct {
	materialService portssvc.MaterialSvcFacade
}

// newMaterialHandler creates a new materialHandler.
func newMaterialHandler(ms portssvc.MaterialSvcFacade) *materialHandler {
	return &materialHandler{
		materialService: ms,
	}
}

// RegisterMaterialRoutes registers routes related to materials.
func RegisterMaterialRoutes(rg *gin.RouterGroup, materialService portssvc.MaterialSvcFacade) {
	registerValidators()
	h := newMaterialHandler(materialService)

	materials := rg.Group("/materials")
	{
		materials.POST("", h.createMaterial)
		materials.GET("/low-stock", h.listLowStock)
		materials.GET("/:id", h.getMaterial)
		materials.DELETE("/:id", h.deactivateMaterial)
		materials.GET("/:id/balance", h.getBalance)
		materials.GET("/:id/audit", h.verifyBalance)
		materials.POST("/:id/movements", h.applyMovement)
		materials.GET("/:id/movements", h.listMovements)
	}
}

// createMaterial godoc
// @Summary Register a material
// @Tags materials
// @Accept  json
// @Produce  json
// @Param   material body dto.CreateMaterialRequest true "Material details"
// @Success 201 {object} dto.MaterialResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Material name already exists"
// @Router /materials [post]
func (h *materialHandler) createMaterial(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	material, err := h.materialService.CreateMaterial(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create material")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMaterialResponse(material))
}

// getMaterial godoc
// @Summary Get a material by ID
// @Tags materials
// @Produce  json
// @Param   id path string true "Material ID"
// @Success 200 {object} dto.MaterialResponse
// @Failure 404 {object} map[string]string "Material not found"
// @Router /materials/{id} [get]
func (h *materialHandler) getMaterial(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	material, err := h.materialService.GetMaterial(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve material")
		return
	}
	c.JSON(http.StatusOK, dto.ToMaterialResponse(material))
}

// deactivateMaterial godoc
// @Summary Deactivate a material
// @Description Materials are never deleted; they are flagged inactive and stop accepting movements.
// @Tags materials
// @Param   id path string true "Material ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Material already inactive"
// @Failure 404 {object} map[string]string "Material not found"
// @Router /materials/{id} [delete]
func (h *materialHandler) deactivateMaterial(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, _ := middleware.GetUserIDFromContext(c)
	if err := h.materialService.DeactivateMaterial(c.Request.Context(), c.Param("id"), actorID); err != nil {
		respondError(c, logger, err, "Failed to deactivate material")
		return
	}
	c.Status(http.StatusNoContent)
}

// getBalance godoc
// @Summary Get the latest committed stock of a material
// @Tags materials
// @Produce  json
// @Param   id path string true "Material ID"
// @Success 200 {object} dto.MaterialBalanceResponse
// @Failure 404 {object} map[string]string "Material not found"
// @Router /materials/{id}/balance [get]
func (h *materialHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	materialID := c.Param("id")
	balance, err := h.materialService.GetBalance(c.Request.Context(), materialID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.MaterialBalanceResponse{MaterialID: materialID, Balance: balance})
}

// verifyBalance godoc
// @Summary Replay a material's movement log and compare it with the stored stock
// @Tags materials
// @Produce  json
// @Param   id path string true "Material ID"
// @Success 200 {object} dto.BalanceAuditResponse
// @Failure 404 {object} map[string]string "Material not found"
// @Router /materials/{id}/audit [get]
func (h *materialHandler) verifyBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	audit, err := h.materialService.VerifyBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to verify balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceAuditResponse(audit))
}

// listLowStock godoc
// @Summary List materials at or below their alert threshold
// @Tags materials
// @Produce  json
// @Param   category query string false "CONSTRUCTION or FARM"
// @Success 200 {array} dto.MaterialResponse
// @Router /materials/low-stock [get]
func (h *materialHandler) listLowStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListLowStockParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	materials, err := h.materialService.ListLowStock(c.Request.Context(), domain.MaterialCategory(params.Category))
	if err != nil {
		respondError(c, logger, err, "Failed to list low stock materials")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMaterialResponse(materials))
}

// applyMovement godoc
// @Summary Apply a stock movement
// @Description INCREASE adds, DECREASE subtracts and RESET sets the stock. A decrease below zero is rejected.
// @Tags materials
// @Accept  json
// @Produce  json
// @Param   id path string true "Material ID"
// @Param   movement body dto.ApplyMovementRequest true "Movement"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} map[string]interface{} "Validation or linkage error"
// @Failure 404 {object} map[string]interface{} "Material or linked expense not found"
// @Failure 422 {object} map[string]interface{} "Insufficient stock"
// @Failure 503 {object} map[string]interface{} "Balance lock not acquired in time"
// @Router /materials/{id}/movements [post]
func (h *materialHandler) applyMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	materialID := c.Param("id")
	var req dto.ApplyMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	logger.Info("Received movement",
		slog.String("material_id", materialID),
		slog.String("type", string(req.Type)),
		slog.String("quantity", req.Quantity.String()))

	record, err := h.materialService.ApplyMovement(c.Request.Context(), materialID, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to apply movement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponse(record))
}

// listMovements godoc
// @Summary List a material's movements, newest first
// @Tags materials
// @Produce  json
// @Param   id path string true "Material ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 404 {object} map[string]string "Material not found"
// @Router /materials/{id}/movements [get]
func (h *materialHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}

	movements, next, err := h.materialService.ListMovements(c.Request.Context(), c.Param("id"), params.Limit, params.NextToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMovementsResponse(movements, next))
}
