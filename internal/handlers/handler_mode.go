package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// modeHandler exposes the store mode controller over HTTP.
type modeHandler struct {
	storeMode portssvc.StoreModeSvcFacade
}

func newModeHandler(sm portssvc.StoreModeSvcFacade) *modeHandler {
	return &modeHandler{storeMode: sm}
}

// registerModeRoutes registers the store-mode routes.
func registerModeRoutes(rg *gin.RouterGroup, storeMode portssvc.StoreModeSvcFacade) {
	h := newModeHandler(storeMode)

	mode := rg.Group("/mode")
	{
		mode.GET("", h.getMode)
		mode.PUT("", h.switchMode)
	}
}

// getMode godoc
// @Summary Get the active store mode
// @Description Reports the active backend, the combined sync state for the acting user, and the last switch time.
// @Tags mode
// @Produce json
// @Success 200 {object} dto.ModeStateResponse
// @Security BearerAuth
// @Router /mode [get]
func (h *modeHandler) getMode(c *gin.Context) {
	actorUserID, _ := middleware.GetUserIDFromContext(c)
	state := h.storeMode.ModeState()

	c.JSON(http.StatusOK, dto.ModeStateResponse{
		Active:       state.Active,
		State:        h.storeMode.State(actorUserID),
		LastSwitchAt: state.LastSwitchAt,
	})
}

// switchMode godoc
// @Summary Switch the active store mode
// @Description Swaps the active backend between local and shared. Switching to shared requires authentication but no permission row. Switching to the already-active mode is a harmless no-op.
// @Tags mode
// @Accept json
// @Produce json
// @Param target body dto.SwitchModeRequest true "Target mode"
// @Success 200 {object} dto.ModeStateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Switch already in progress"
// @Security BearerAuth
// @Router /mode [put]
func (h *modeHandler) switchMode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SwitchModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, _ := middleware.GetUserIDFromContext(c)

	if err := h.storeMode.SwitchMode(c.Request.Context(), req.Target, actorUserID); err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Mode switch requested", slog.String("target", string(req.Target)))
	state := h.storeMode.ModeState()
	c.JSON(http.StatusOK, dto.ModeStateResponse{
		Active:       state.Active,
		State:        h.storeMode.State(actorUserID),
		LastSwitchAt: state.LastSwitchAt,
	})
}
