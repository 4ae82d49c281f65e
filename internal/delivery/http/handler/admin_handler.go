package handler

import (
	"net/http"

	"dailypay-backend/internal/usecase/admin"
	"dailypay-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service *admin.Service
}

func NewAdminHandler(service *admin.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes mounts the moderation routes; the group must carry the admin secret gate.
func (h *AdminHandler) RegisterRoutes(gated *gin.RouterGroup) {
	group := gated.Group("/admin")
	{
		group.GET("/users", h.ListUsers)
		group.PUT("/users/:id/role", h.SetUserRole)
		group.PUT("/users/:id/ban", h.BanUser)
		group.PUT("/users/:id/suspend", h.SuspendUser)

		group.GET("/sellers", h.ListSellers)
		group.PUT("/sellers/:id/approve", h.ApproveSeller)
		group.PUT("/sellers/:id/ban", h.BanSeller)
		group.PUT("/sellers/:id/suspend", h.SuspendSeller)

		group.GET("/payouts", h.ListPayouts)
		group.PUT("/payouts/:id/status", h.UpdatePayoutStatus)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	resp, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *AdminHandler) SetUserRole(c *gin.Context) {
	userID, ok := paramUUID(c, "id", "User not found")
	if !ok {
		return
	}
	var req admin.SetRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.SetUserRole(c.Request.Context(), userID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Role updated", resp)
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	userID, ok := paramUUID(c, "id", "User not found")
	if !ok {
		return
	}
	var req admin.FlagRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	resp, err := h.service.BanUser(c.Request.Context(), userID, req.Enabled())
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "User ban updated", resp)
}

func (h *AdminHandler) SuspendUser(c *gin.Context) {
	userID, ok := paramUUID(c, "id", "User not found")
	if !ok {
		return
	}
	var req admin.FlagRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	resp, err := h.service.SuspendUser(c.Request.Context(), userID, req.Enabled())
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "User suspension updated", resp)
}

func (h *AdminHandler) ListSellers(c *gin.Context) {
	resp, err := h.service.ListSellers(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *AdminHandler) ApproveSeller(c *gin.Context) {
	sellerID, ok := paramUUID(c, "id", "Seller not found")
	if !ok {
		return
	}

	resp, err := h.service.ApproveSeller(c.Request.Context(), sellerID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Seller approved", resp)
}

func (h *AdminHandler) BanSeller(c *gin.Context) {
	sellerID, ok := paramUUID(c, "id", "Seller not found")
	if !ok {
		return
	}
	var req admin.FlagRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	resp, err := h.service.BanSeller(c.Request.Context(), sellerID, req.Enabled())
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Seller ban updated", resp)
}

func (h *AdminHandler) SuspendSeller(c *gin.Context) {
	sellerID, ok := paramUUID(c, "id", "Seller not found")
	if !ok {
		return
	}
	var req admin.FlagRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	resp, err := h.service.SuspendSeller(c.Request.Context(), sellerID, req.Enabled())
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Seller suspension updated", resp)
}

func (h *AdminHandler) ListPayouts(c *gin.Context) {
	resp, err := h.service.ListPayouts(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *AdminHandler) UpdatePayoutStatus(c *gin.Context) {
	txID, ok := paramUUID(c, "id", "Transaction not found")
	if !ok {
		return
	}
	var req admin.PayoutStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdatePayoutStatus(c.Request.Context(), txID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Payout status updated", resp)
}
