package handlers

import (
	"mime/multipart"
	"net/http"

	"talento_backend/internal/services"
	"talento_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	*BaseHandler
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(base *BaseHandler, assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       base,
		assessmentService: assessmentService,
	}
}

func (h *AssessmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	assessment := rg.Group("/assessment")
	{
		assessment.POST("/:kind", h.Run)
	}

	linkedin := rg.Group("/linkedin")
	{
		linkedin.GET("/auth-url", h.LinkedInAuthURL)
		linkedin.POST("/exchange-code", h.LinkedInExchangeCode)
	}
}

// Run relays an assessment request to the AI backend, preserving its
// status code and JSON body.
func (h *AssessmentHandler) Run(c *gin.Context) {
	kind := c.Param("kind")

	form := h.requestForm(c)
	result, err := h.assessmentService.Run(c.Request.Context(), kind, form)
	if err != nil {
		h.relayError(c, err)
		return
	}
	c.Data(result.Status, "application/json", result.Body)
}

func (h *AssessmentHandler) LinkedInAuthURL(c *gin.Context) {
	result, err := h.assessmentService.LinkedInAuthURL(c.Request.Context())
	if err != nil {
		h.relayError(c, err)
		return
	}
	c.Data(result.Status, "application/json", result.Body)
}

func (h *AssessmentHandler) LinkedInExchangeCode(c *gin.Context) {
	code := c.PostForm("authorization_code")
	result, err := h.assessmentService.LinkedInExchangeCode(c.Request.Context(), code)
	if err != nil {
		h.relayError(c, err)
		return
	}
	c.Data(result.Status, "application/json", result.Body)
}

// requestForm parses whichever form encoding the client sent. A missing
// or empty form is fine; the service fills defaults per assessment kind.
func (h *AssessmentHandler) requestForm(c *gin.Context) *multipart.Form {
	if form, err := c.MultipartForm(); err == nil {
		return form
	}
	if err := c.Request.ParseForm(); err != nil {
		return nil
	}
	form := &multipart.Form{Value: map[string][]string{}}
	for name, vals := range c.Request.PostForm {
		form.Value[name] = vals
	}
	return form
}

// relayError keeps the original proxy contract: local failures surface
// as {"error": <message>}.
func (h *AssessmentHandler) relayError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Failed to process request"
	if appErr, ok := apperrors.AsAppError(err); ok {
		status = appErr.HTTPCode
		message = appErr.Message
	}
	c.JSON(status, gin.H{"error": message})
}
