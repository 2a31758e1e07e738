package handlers

import (
	"net/http"

	"talento_backend/internal/middleware"
	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookies     middleware.CookieConfig
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookies middleware.CookieConfig) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookies:     cookies,
	}
}

// RegisterRoutes mounts the auth endpoints under /auth. Onboarding and
// /me live behind the auth middleware and are mounted separately.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}
}

func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.GET("/me", h.Me)
		auth.POST("/onboarding", h.CompleteOnboarding)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.authService.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	middleware.SetSessionCookies(c, h.cookies, session)
	c.JSON(http.StatusCreated, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	middleware.SetSessionCookies(c, h.cookies, session)
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := h.refreshTokenFrom(c)
	if refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token missing"})
		return
	}

	session, err := h.authService.Refresh(refreshToken)
	if err != nil {
		middleware.ClearSessionCookies(c, h.cookies)
		h.HandleServiceError(c, err)
		return
	}

	middleware.SetSessionCookies(c, h.cookies, session)
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken := h.refreshTokenFrom(c)
	if err := h.authService.Logout(refreshToken); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	middleware.ClearSessionCookies(c, h.cookies)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) CompleteOnboarding(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.OnboardingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	session, err := h.authService.CompleteOnboarding(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	middleware.SetSessionCookies(c, h.cookies, session)
	c.JSON(http.StatusOK, session)
}

// refreshTokenFrom reads the refresh token from the cookie, falling back
// to a JSON body for non-browser clients.
func (h *AuthHandler) refreshTokenFrom(c *gin.Context) string {
	if token, err := c.Cookie(middleware.CookieRefreshToken); err == nil && token != "" {
		return token
	}
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}
