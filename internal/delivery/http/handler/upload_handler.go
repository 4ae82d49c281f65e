package handler

import (
	"net/http"

	"dailypay-backend/internal/middleware"
	"dailypay-backend/internal/usecase/upload"
	"dailypay-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const uploadFormField = "file"

type UploadHandler struct {
	service *upload.Service
}

func NewUploadHandler(service *upload.Service) *UploadHandler {
	return &UploadHandler{service: service}
}

// RegisterRoutes mounts the upload route; the group must carry a session.
func (h *UploadHandler) RegisterRoutes(session *gin.RouterGroup) {
	session.POST("/upload", h.Upload)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile(uploadFormField)
	if err != nil {
		respondWithError(c, upload.ErrNoFile)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer file.Close()

	resp, err := h.service.Save(c.Request.Context(), middleware.MustIdentity(c).AccountID, &upload.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "File uploaded", resp)
}
