package handler

import (
	"net/http"

	"fsstock/internal/apierror"
	"fsstock/internal/dto"
	"fsstock/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// List godoc
// @Summary      List known products
// @Description  Returns the built-in catalog, optionally merged with one farm's custom products.
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        farm_id query string false "Farm UUID to merge custom products for"
// @Success      200 {array} dto.CatalogProductResponse
// @Router       /v1/catalog [get]
func (h *CatalogHandler) List(c *gin.Context) {
	var farmID *uuid.UUID
	if raw := c.Query("farm_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("invalid farm id"))
			return
		}
		farmID = &id
	}
	resp, err := h.svc.List(c.Request.Context(), farmID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("could not list catalog"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateUserProduct godoc
// @Summary      Register a custom product for a farm
// @Description  Custom products extend the built-in catalog for one farm only. The product id must not collide with a built-in one.
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        farm_id path string                       true "Farm UUID"
// @Param        body    body dto.CreateUserProductRequest true "Product data"
// @Success      201  {object} dto.CatalogProductResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/farms/{farm_id}/products [post]
func (h *CatalogHandler) CreateUserProduct(c *gin.Context) {
	farmID, ok := farmIDParam(c)
	if !ok {
		return
	}
	var req dto.CreateUserProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateUserProduct(c.Request.Context(), farmID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
