package handler

import (
	"net/http"
	"strings"

	"fsstock/internal/apierror"
	"fsstock/internal/dto"
	"fsstock/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// List godoc
// @Summary      List stock entries
// @Description  Returns the farm's full stock registry, eligible or not.
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        farm_id path string true "Farm UUID"
// @Success      200 {object} dto.StockListResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/farms/{farm_id}/stock [get]
func (h *StockHandler) List(c *gin.Context) {
	farmID, ok := farmIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), farmID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Upsert godoc
// @Summary      Create or replace a stock entry
// @Description  One entry per (farm, product). The product must exist in the built-in catalog or among the farm's custom products.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        farm_id    path string                 true "Farm UUID"
// @Param        product_id path string                 true "Product identifier"
// @Param        body       body dto.UpsertStockRequest true "Entry data"
// @Success      200  {object} dto.StockEntryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/farms/{farm_id}/stock/{product_id} [put]
func (h *StockHandler) Upsert(c *gin.Context) {
	farmID, ok := farmIDParam(c)
	if !ok {
		return
	}
	productID := strings.TrimSpace(c.Param("product_id"))
	if productID == "" {
		c.JSON(http.StatusBadRequest, apierror.New("product id required"))
		return
	}
	var req dto.UpsertStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), farmID, productID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Remove a stock entry
// @Tags         stock
// @Security     BearerAuth
// @Param        farm_id    path string true "Farm UUID"
// @Param        product_id path string true "Product identifier"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/farms/{farm_id}/stock/{product_id} [delete]
func (h *StockHandler) Delete(c *gin.Context) {
	farmID, ok := farmIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), farmID, c.Param("product_id")); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
