package handler

import (
	"net/http"
	"strings"

	"fsstock/internal/apierror"
	"fsstock/internal/dto"
	"fsstock/internal/service"

	"github.com/gin-gonic/gin"
)

type PlansHandler struct{ svc service.PlanService }

func NewPlansHandler(svc service.PlanService) *PlansHandler { return &PlansHandler{svc: svc} }

// Compute godoc
// @Summary      Compute a trip plan
// @Description  Runs the optimizer against the farm's current stock and stores the result as the farm's last plan. An infeasible target still returns 200 with feasible=false and the maximum attainable revenue.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        farm_id path string                 true "Farm UUID"
// @Param        body    body dto.ComputePlanRequest true "Revenue target in EUR"
// @Success      200  {object} dto.PlanResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/farms/{farm_id}/plan [post]
func (h *PlansHandler) Compute(c *gin.Context) {
	farmID, ok := farmIDParam(c)
	if !ok {
		return
	}
	var req dto.ComputePlanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Compute(c.Request.Context(), farmID, req)
	if err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "not found") {
			status = http.StatusNotFound
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Last godoc
// @Summary      Get the last computed plan
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        farm_id path string true "Farm UUID"
// @Success      200 {object} dto.PlanResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/farms/{farm_id}/plan [get]
func (h *PlansHandler) Last(c *gin.Context) {
	farmID, ok := farmIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Last(c.Request.Context(), farmID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Apply godoc
// @Summary      Apply the last computed plan
// @Description  Subtracts each planned line from the farm's stock in one transaction, removes entries that reach zero and clears the stored plan. Fails if the registry changed since the plan was computed.
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Param        farm_id path string true "Farm UUID"
// @Success      200 {object} dto.ApplyPlanResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/farms/{farm_id}/plan/apply [post]
func (h *PlansHandler) Apply(c *gin.Context) {
	farmID, ok := farmIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Apply(c.Request.Context(), farmID)
	if err != nil {
		status := http.StatusConflict
		if strings.Contains(err.Error(), "no plan") {
			status = http.StatusNotFound
		}
		c.JSON(status, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
