package handler

import (
	"net/http"

	"fsstock/internal/apierror"
	"fsstock/internal/dto"
	"fsstock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FarmsHandler struct{ svc service.FarmService }

func NewFarmsHandler(svc service.FarmService) *FarmsHandler { return &FarmsHandler{svc: svc} }

// Create godoc
// @Summary      Create a farm
// @Tags         farms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateFarmRequest true "Farm data"
// @Success      201  {object} dto.FarmResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/farms [post]
func (h *FarmsHandler) Create(c *gin.Context) {
	var req dto.CreateFarmRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List farms
// @Tags         farms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.FarmResponse
// @Router       /v1/farms [get]
func (h *FarmsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list farms"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get a farm
// @Tags         farms
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Farm UUID"
// @Success      200 {object} dto.FarmResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/farms/{id} [get]
func (h *FarmsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid farm id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Rename godoc
// @Summary      Rename a farm
// @Tags         farms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                true "Farm UUID"
// @Param        body body dto.RenameFarmRequest true "New name"
// @Success      200  {object} dto.FarmResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/farms/{id} [put]
func (h *FarmsHandler) Rename(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid farm id"))
		return
	}
	var req dto.RenameFarmRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Rename(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a farm
// @Description  Removes the farm together with its stock entries, custom products and stored plan.
// @Tags         farms
// @Security     BearerAuth
// @Param        id path string true "Farm UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/farms/{id} [delete]
func (h *FarmsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid farm id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
