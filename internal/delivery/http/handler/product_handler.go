package handler

import (
	"net/http"

	"dailypay-backend/internal/usecase/product"
	"dailypay-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service *product.Service
}

func NewProductHandler(service *product.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/search", h.Search)
		products.GET("/:id", h.Get)
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *ProductHandler) Search(c *gin.Context) {
	resp, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := paramUUID(c, "id", "Product not found")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), productID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
