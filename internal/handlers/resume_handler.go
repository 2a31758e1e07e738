package handlers

import (
	"net/http"

	"talento_backend/internal/metrics"
	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"
	"talento_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	*BaseHandler
	resumeService services.ResumeService
}

func NewResumeHandler(base *BaseHandler, resumeService services.ResumeService) *ResumeHandler {
	return &ResumeHandler{
		BaseHandler:   base,
		resumeService: resumeService,
	}
}

func (h *ResumeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	resume := rg.Group("/resume")
	{
		resume.POST("/upload", h.Upload)
		resume.POST("/signed-url", h.SignedURL)
		resume.GET("", h.List)
		resume.GET("/active", h.Active)
	}
}

func (h *ResumeHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.ResumeUploads.WithLabelValues("no_file").Inc()
		apperrors.HandleError(c, apperrors.NewBadRequestError("No file uploaded"))
		return
	}

	resp, err := h.resumeService.Upload(c.Request.Context(), userID, fileHeader)
	if err != nil {
		metrics.ResumeUploads.WithLabelValues("error").Inc()
		h.HandleServiceError(c, err)
		return
	}

	metrics.ResumeUploads.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, resp)
}

func (h *ResumeHandler) SignedURL(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SignedURLRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.resumeService.SignedURL(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resumes, err := h.resumeService.List(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumes": resumes})
}

func (h *ResumeHandler) Active(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resume, err := h.resumeService.Active(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}
