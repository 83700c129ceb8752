package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/lloydngcobo/PCO/internal/config"
	"github.com/lloydngcobo/PCO/internal/core/ports"
)

type AuthHandler struct {
	cfg          *config.Token
	tokenService ports.TokenService
	logger       ports.LoggerPort
	metrics      ports.MetricsPort
}

type TokenRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
}

func NewAuthHandler(
	cfg *config.Token,
	tokenService ports.TokenService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		tokenService: tokenService,
		logger:       logger,
		metrics:      metrics,
	}
}

// @Summary Issue an admin token
// @Description Exchanges the admin credentials for a JWT used by the cache admin endpoints
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Admin credentials"
// @Success 200 {object} successResponse "Token issued"
// @Failure 401 {object} errorResponse "Invalid credentials"
// @Router /auth/token [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	if req.Username != h.cfg.AdminUser {
		h.logger.Warn("Token request for unknown user", map[string]interface{}{
			"username": req.Username,
		})
		newErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		h.logger.Warn("Token request with wrong password", map[string]interface{}{
			"username": req.Username,
		})
		newErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokenService.CreateToken(req.Username)
	if err != nil {
		newErrorResponse(c, http.StatusInternalServerError, "Failed to create token")
		return
	}

	newSuccessResponse(c, http.StatusOK, "Token issued", TokenResponse{Token: token})
}
