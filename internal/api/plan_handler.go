package api

import (
	"errors"
	"fmt"
	"net/http"

	"alcyxob/fitness-coach/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanHandler manages the workout plans a user saved from chat turns.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type SavePlanRequest struct {
	TurnID string `json:"turnId" binding:"required"`
	Name   string `json:"name"`
}

// SavePlan godoc
// @Summary Save the workout plan extracted from one of the caller's chat turns
// @Tags Plans
// @Security BearerAuth
// @Param request body SavePlanRequest true "Turn to save"
// @Success 201 {object} domain.SavedPlan
// @Failure 404 {object} gin.H "Turn not found"
// @Failure 422 {object} gin.H "Turn has no workout plan"
// @Router /api/v1/plans [post]
func (h *PlanHandler) SavePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Failed to get user ID from token")
		return
	}

	var req SavePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	turnID, err := primitive.ObjectIDFromHex(req.TurnID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid turn ID format")
		return
	}

	plan, err := h.planService.SaveFromTurn(c.Request.Context(), userID, turnID, req.Name)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// ListPlans godoc
// @Summary List the caller's saved plans, newest first
// @Tags Plans
// @Security BearerAuth
// @Router /api/v1/plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Failed to get user ID from token")
		return
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan godoc
// @Summary Get one saved plan
// @Tags Plans
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Router /api/v1/plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, planID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	plan, err := h.planService.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ExportPlan godoc
// @Summary Export a plan as JSON to object storage and get a download link
// @Tags Plans
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} service.ExportResult
// @Router /api/v1/plans/{planId}/export [post]
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	userID, planID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	res, err := h.planService.ExportPlan(c.Request.Context(), userID, planID)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DeletePlan godoc
// @Summary Delete a saved plan and its export
// @Tags Plans
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 204
// @Router /api/v1/plans/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, planID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		h.handlePlanError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PlanHandler) pathIDs(c *gin.Context) (userID, planID primitive.ObjectID, ok bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Failed to get user ID from token")
		return
	}
	planID, err = primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}
	return userID, planID, true
}

func (h *PlanHandler) handlePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound), errors.Is(err, service.ErrTurnNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNoPlanInTurn):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		log.WithError(err).Error("plan request failed")
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
