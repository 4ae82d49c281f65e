package handler

import (
	"net/http"

	"dailypay-backend/internal/middleware"
	"dailypay-backend/internal/usecase/order"
	"dailypay-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service *order.Service
}

func NewOrderHandler(service *order.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes mounts order routes; the group must carry a shopper session.
func (h *OrderHandler) RegisterRoutes(session *gin.RouterGroup) {
	orders := session.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.ListMine)
		orders.GET("/:id", h.Get)
	}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req order.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), middleware.MustIdentity(c).AccountID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Order placed", resp)
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	resp, err := h.service.ListMine(c.Request.Context(), middleware.MustIdentity(c).AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := paramUUID(c, "id", "Order not found")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), middleware.MustIdentity(c), orderID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
