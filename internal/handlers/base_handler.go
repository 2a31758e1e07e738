package handlers

import (
	"fmt"
	"strconv"

	"talento_backend/internal/logger"
	"talento_backend/internal/validator"
	"talento_backend/pkg/apperrors"
	"talento_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// GetDB pulls the *gorm.DB that DBMiddleware placed in the gin context.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed (query)", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error (query)", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	ctx := c.Request.Context()

	userIDVal, exists := c.Get("userID")
	if !exists {
		logger.CtxWarn(ctx, "Unauthorized access: userID not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return "", false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok || userIDStr == "" {
		logger.CtxWarn(ctx, "Unauthorized access: invalid userID in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid user ID in context"))
		return "", false
	}

	return userIDStr, true
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
