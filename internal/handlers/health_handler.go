package handlers

import (
	"net/http"
	"time"

	"talento_backend/internal/cache"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
	redis *cache.RedisClient // nil when the cache is disabled
}

func NewHealthHandler(base *BaseHandler, redis *cache.RedisClient) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		redis:       redis,
	}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.Healthz)
}

// Healthz reports liveness plus dependency reachability. A failing DB
// ping returns 503 so the load balancer drains the instance.
func (h *HealthHandler) Healthz(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{}

	db := h.GetDB(c)
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		checks["database"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "up"
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()); err != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
