package handlers

import (
	"net/http"

	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobsHandler struct {
	*BaseHandler
	jobsService     services.JobsService
	savedJobService services.SavedJobService
}

func NewJobsHandler(base *BaseHandler, jobsService services.JobsService, savedJobService services.SavedJobService) *JobsHandler {
	return &JobsHandler{
		BaseHandler:     base,
		jobsService:     jobsService,
		savedJobService: savedJobService,
	}
}

func (h *JobsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.Search)
}

func (h *JobsHandler) RegisterSavedRoutes(rg *gin.RouterGroup) {
	saved := rg.Group("/saved-jobs")
	{
		saved.POST("", h.SaveJob)
		saved.GET("", h.ListSaved)
		saved.DELETE("", h.DeleteSaved)
	}
}

func (h *JobsHandler) Search(c *gin.Context) {
	params := services.JobSearchParams{
		Query:      c.Query("query"),
		Location:   c.Query("location"),
		Limit:      ParseQueryInt(c, "limit", 20),
		Categories: c.QueryArray("category"),
	}

	resp, err := h.jobsService.Search(c.Request.Context(), params)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *JobsHandler) SaveJob(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SaveJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	saved, err := h.savedJobService.Save(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": saved})
}

func (h *JobsHandler) ListSaved(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.savedJobService.List(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": jobs})
}

func (h *JobsHandler) DeleteSaved(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var body struct {
		JobURL string `json:"jobUrl"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.JobURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job URL is required"})
		return
	}

	if err := h.savedJobService.DeleteByURL(userID, body.JobURL); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
