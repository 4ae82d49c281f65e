package handler

import (
	"net/http"

	"dailypay-backend/internal/middleware"
	"dailypay-backend/internal/usecase/seller"
	appErrors "dailypay-backend/pkg/errors"
	"dailypay-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const importFormField = "file"

type SellerHandler struct {
	service        *seller.Service
	maxImportBytes int64
}

func NewSellerHandler(service *seller.Service, maxImportBytes int64) *SellerHandler {
	return &SellerHandler{service: service, maxImportBytes: maxImportBytes}
}

func (h *SellerHandler) RegisterRoutes(router *gin.RouterGroup) {
	sellers := router.Group("/sellers")
	{
		sellers.POST("/register", h.Register)
		sellers.POST("/login", h.Login)
		sellers.POST("/forgot-password", h.ForgotPassword)
		sellers.POST("/reset-password", h.ResetPassword)
	}
}

// RegisterAccountRoutes mounts the /me routes; the group must carry a seller session.
func (h *SellerHandler) RegisterAccountRoutes(session *gin.RouterGroup) {
	me := session.Group("/sellers/me")
	{
		me.GET("", h.Me)

		me.GET("/products", h.ListProducts)
		me.POST("/products", h.CreateProduct)
		me.POST("/products/import", h.ImportProducts)
		me.PUT("/products/:id", h.UpdateProduct)
		me.DELETE("/products/:id", h.DeleteProduct)

		me.GET("/orders", h.ListOrders)
		me.GET("/orders/:id", h.GetOrder)
		me.GET("/transactions", h.ListTransactions)
		me.GET("/dashboard", h.Dashboard)

		me.GET("/bank-info", h.GetBankInfo)
		me.PUT("/bank-info", h.UpdateBankInfo)
		me.POST("/payout-request", h.RequestPayout)
		me.GET("/history", h.History)
	}
}

// RegisterAdminRoutes mounts the legacy admin routes; the group must carry the admin secret gate.
func (h *SellerHandler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	group := admin.Group("/sellers/admin")
	{
		group.GET("/list", h.AdminList)
		group.PUT("/:id/approve", h.Approve)
	}
}

func (h *SellerHandler) Register(c *gin.Context) {
	var req seller.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Seller registered successfully", resp)
}

func (h *SellerHandler) Login(c *gin.Context) {
	var req seller.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Login successful", resp)
}

func (h *SellerHandler) ForgotPassword(c *gin.Context) {
	var req seller.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "If that email exists, a reset link was sent.", nil)
}

func (h *SellerHandler) ResetPassword(c *gin.Context) {
	var req seller.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Password updated successfully", nil)
}

func (h *SellerHandler) Me(c *gin.Context) {
	resp, err := h.service.Me(c.Request.Context(), middleware.MustIdentity(c).AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *SellerHandler) ListProducts(c *gin.Context) {
	resp, err := h.service.ListProducts(c.Request.Context(), middleware.MustIdentity(c).AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *SellerHandler) CreateProduct(c *gin.Context) {
	var req seller.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.CreateProduct(c.Request.Context(), middleware.MustIdentity(c).AccountID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Product created", resp)
}

func (h *SellerHandler) UpdateProduct(c *gin.Context) {
	productID, ok := paramUUID(c, "id", "Product not found")
	if !ok {
		return
	}
	var req seller.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateProduct(c.Request.Context(), middleware.MustIdentity(c), productID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Product updated", resp)
}

func (h *SellerHandler) DeleteProduct(c *gin.Context) {
	productID, ok := paramUUID(c, "id", "Product not found")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), middleware.MustIdentity(c), productID); err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Product deleted", nil)
}

func (h *SellerHandler) ImportProducts(c *gin.Context) {
	header, err := c.FormFile(importFormField)
	if err != nil {
		respondWithError(c, appErrors.Validation("No file uploaded", err))
		return
	}
	if h.maxImportBytes > 0 && header.Size > h.maxImportBytes {
		respondWithError(c, appErrors.ErrPayloadTooLarge)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.service.ImportProducts(c.Request.Context(), middleware.MustIdentity(c).AccountID, file)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Products imported", resp)
}

func (h *SellerHandler) ListOrders(c *gin.Context) {
	resp, err := h.service.ListOrders(c.Request.Context(), middleware.MustIdentity(c).AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *SellerHandler) GetOrder(c *gin.Context) {
	orderID, ok := paramUUID(c, "id", "Order not found")
	if !ok {
		return
	}

	resp, err := h.service.GetOrder(c.Request.Context(), middleware.MustIdentity(c), orderID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *SellerHandler) ListTransactions(c *gin.Context) {
	resp, err := h.service.ListTransactions(c.Request.Context(), middleware.MustIdentity(c).AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *SellerHandler) Dashboard(c *gin.Context) {
	resp, err := h.service.Dashboard(c.Request.Context(), middleware.MustIdentity(c).AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *SellerHandler) GetBankInfo(c *gin.Context) {
	resp, err := h.service.GetBankInfo(c.Request.Context(), middleware.MustIdentity(c).AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *SellerHandler) UpdateBankInfo(c *gin.Context) {
	var req seller.BankInfoRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.UpdateBankInfo(c.Request.Context(), middleware.MustIdentity(c).AccountID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Bank info updated", resp)
}

func (h *SellerHandler) RequestPayout(c *gin.Context) {
	var req seller.PayoutRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.service.RequestPayout(c.Request.Context(), middleware.MustIdentity(c).AccountID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "Payout requested", resp)
}

func (h *SellerHandler) History(c *gin.Context) {
	resp, err := h.service.History(c.Request.Context(), middleware.MustIdentity(c).AccountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *SellerHandler) AdminList(c *gin.Context) {
	resp, err := h.service.AdminList(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

func (h *SellerHandler) Approve(c *gin.Context) {
	sellerID, ok := paramUUID(c, "id", "Seller not found")
	if !ok {
		return
	}

	if err := h.service.Approve(c.Request.Context(), sellerID); err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Seller approved", nil)
}
