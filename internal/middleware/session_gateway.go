package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"talento_backend/internal/auth"
	"talento_backend/internal/logger"
	"talento_backend/internal/services"
	"talento_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// CookieConfig controls how session cookies are written.
type CookieConfig struct {
	Domain        string
	Secure        bool
	AccessMaxAge  int // seconds
	RefreshMaxAge int // seconds
}

func SetSessionCookies(c *gin.Context, cfg CookieConfig, session *dto.LoginResponse) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieAccessToken, session.AccessToken, cfg.AccessMaxAge, "/", cfg.Domain, cfg.Secure, true)
	c.SetCookie(CookieRefreshToken, session.RefreshToken, cfg.RefreshMaxAge, "/", cfg.Domain, cfg.Secure, true)
}

func ClearSessionCookies(c *gin.Context, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieAccessToken, "", -1, "/", cfg.Domain, cfg.Secure, true)
	c.SetCookie(CookieRefreshToken, "", -1, "/", cfg.Domain, cfg.Secure, true)
}

// Infra and auth-flow paths pass through with no session check. Keeps
// redirect loops off the auth pages themselves.
var gatewaySkipPrefixes = []string{
	"/auth/",
	"/api/",
	"/static/",
	"/_next/",
	"/assets/",
}

var gatewaySkipExact = map[string]bool{
	"/favicon.ico": true,
	"/healthz":     true,
	"/metrics":     true,
}

var protectedRoutes = map[string]bool{
	"/dashboard":  true,
	"/admin":      true,
	"/profile":    true,
	"/assessment": true,
	"/practice":   true,
	"/career":     true,
	"/onboarding": true,
}

var publicAuthRoutes = map[string]bool{
	"/":                true,
	"/login":           true,
	"/signup":          true,
	"/forgot-password": true,
	"/reset":           true,
}

// SessionGateway routes page requests based on session state: protected
// pages require a user, un-onboarded users land on /onboarding, and
// signed-in users are bounced off the public auth pages. An expired
// access token is refreshed transparently and the rotated cookies ride
// out on whatever response is returned. Any failure resolving the user
// counts as no user.
func SessionGateway(authService services.AuthService, cookies CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if gatewaySkipExact[path] {
			c.Next()
			return
		}
		for _, prefix := range gatewaySkipPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		claims := resolveUser(c, authService, cookies)

		isProtected := protectedRoutes[path] || hasProtectedPrefix(path)

		if isProtected && claims == nil {
			loginURL := "/login?next=" + url.QueryEscape(path)
			c.Redirect(http.StatusFound, loginURL)
			c.Abort()
			return
		}

		if claims != nil {
			if !claims.Onboarded && isProtected && path != "/onboarding" {
				c.Redirect(http.StatusFound, "/onboarding")
				c.Abort()
				return
			}
			if publicAuthRoutes[path] {
				target := "/dashboard"
				if !claims.Onboarded {
					target = "/onboarding"
				}
				c.Redirect(http.StatusFound, target)
				c.Abort()
				return
			}

			c.Set("userID", claims.UserID)
			c.Set("role", claims.Role)
			c.Set("onboarded", claims.Onboarded)
		}

		c.Next()
	}
}

// resolveUser validates the session cookies, rotating them when the
// access token has expired but the refresh token is still good.
func resolveUser(c *gin.Context, authService services.AuthService, cookies CookieConfig) *auth.Claims {
	accessToken, _ := c.Cookie(CookieAccessToken)
	refreshToken, _ := c.Cookie(CookieRefreshToken)
	if accessToken == "" && refreshToken == "" {
		return nil
	}

	claims, refreshed, err := authService.ResolveSession(accessToken, refreshToken)
	if err != nil {
		logger.CtxDebug(c.Request.Context(), "Session resolution failed", "error", err)
		return nil
	}
	if refreshed != nil {
		SetSessionCookies(c, cookies, refreshed)
	}
	return claims
}

func hasProtectedPrefix(path string) bool {
	for route := range protectedRoutes {
		if route != "/" && strings.HasPrefix(path, route+"/") {
			return true
		}
	}
	return false
}
