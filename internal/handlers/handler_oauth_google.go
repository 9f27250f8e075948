package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/platform/events"
)

const googleProviderName = "google"

// GoogleOAuthHandler handles the Google sign-in handshake.
type GoogleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthHandlerSvcFacade
	userService  portssvc.UserSvcFacade
	authHandler  *AuthHandler
	bus          *events.Bus
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	oauthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	authHandler *AuthHandler,
	bus *events.Bus,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		oauthService: oauthService,
		userService:  userService,
		authHandler:  authHandler,
		bus:          bus,
	}
}

// registerGoogleOAuthRoutes sets up the Google OAuth routes. These are public;
// the handshake itself is the authentication.
func registerGoogleOAuthRoutes(rg *gin.Engine, services *portssvc.ServiceContainer, authHandler *AuthHandler, bus *events.Bus) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, authHandler, bus)

	google := rg.Group("/api/v1/auth/google")
	{
		google.GET("/login-url", h.LoginURL)
		google.POST("/exchange-code", h.ExchangeCode)
	}
}

// LoginURL godoc
// @Summary Get Google login URL
// @Description Returns the URL to redirect the user to for Google login, with a fresh CSRF state.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login-url [get]
func (h *GoogleOAuthHandler) LoginURL(c *gin.Context) {
	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start login flow"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":   h.oauthService.GetGoogleLoginURL(c.Request.Context(), state),
		"state": state,
	})
}

// ExchangeCode godoc
// @Summary Exchange a Google credential for a session
// @Description Validates an ID token or exchanges an authorization code, then finds or creates the matching account and issues tokens. Sign-in establishes identity only; it grants no data access by itself.
// @Tags auth
// @Accept json
// @Produce json
// @Param credential body dto.GoogleCodeExchangeRequest true "Authorization code or ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	var req dto.GoogleCodeExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	var info *domain.GoogleUserInfo
	switch {
	case req.IDToken != "":
		payload, err := h.oauthService.ValidateGoogleIDToken(ctx, req.IDToken)
		if err != nil {
			logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google credential"})
			return
		}
		info = &domain.GoogleUserInfo{
			ID:    payload.Subject,
			Email: stringClaim(payload.Claims, "email"),
			Name:  stringClaim(payload.Claims, "name"),
		}
	case req.Code != "":
		token, err := h.oauthService.ExchangeCodeForToken(ctx, req.Code)
		if err != nil {
			logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google credential"})
			return
		}
		info, err = h.oauthService.GetUserInfo(ctx, token)
		if err != nil {
			logger.Error("Failed to fetch Google user info", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to complete sign-in"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Either code or idToken is required"})
		return
	}

	user, err := h.userService.UpsertProviderUser(ctx, googleProviderName, info)
	if err != nil {
		logger.Error("Failed to upsert provider user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to complete sign-in"})
		return
	}

	h.bus.Publish(events.UserSignedIn{UserID: user.UserID})
	h.authHandler.respondWithTokens(c, user.UserID)
}

func stringClaim(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
