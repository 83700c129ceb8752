package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lloydngcobo/PCO/internal/core/ports"
)

// CacheAdminHandler exposes runtime control over the cache layer.
// All routes sit behind the admin JWT.
type CacheAdminHandler struct {
	cache       ports.CachePort
	backendType string
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type cacheStatus struct {
	Enabled bool   `json:"enabled" example:"true"`
	Backend string `json:"backend" example:"redis"`
}

func NewCacheAdminHandler(
	cachePort ports.CachePort,
	backendType string,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *CacheAdminHandler {
	return &CacheAdminHandler{
		cache:       cachePort,
		backendType: backendType,
		logger:      logger,
		metrics:     metrics,
	}
}

// @Summary Cache status
// @Tags cache
// @Produce json
// @Success 200 {object} successResponse "Cache status"
// @Security BearerAuth
// @Router /admin/cache [get]
func (h *CacheAdminHandler) Status(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	newSuccessResponse(c, http.StatusOK, "", cacheStatus{
		Enabled: h.cache.Enabled(),
		Backend: h.backendType,
	})
}

// @Summary Clear all cached data
// @Tags cache
// @Produce json
// @Success 200 {object} successResponse "Cache cleared"
// @Security BearerAuth
// @Router /admin/cache/clear [post]
func (h *CacheAdminHandler) Clear(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	if !h.cache.Clear(c.Request.Context()) {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to clear cache")
		return
	}

	h.logger.Info("Cache cleared by admin", nil)
	newSuccessResponse(c, http.StatusOK, "Cache cleared", nil)
}

func (h *CacheAdminHandler) Enable(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	h.cache.Enable()
	h.logger.Info("Cache enabled by admin", nil)
	newSuccessResponse(c, http.StatusOK, "Cache enabled", nil)
}

func (h *CacheAdminHandler) Disable(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	h.cache.Disable()
	h.logger.Info("Cache disabled by admin", nil)
	newSuccessResponse(c, http.StatusOK, "Cache disabled", nil)
}
