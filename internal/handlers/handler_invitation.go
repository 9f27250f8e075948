package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// invitationHandler handles invitation and access-control requests.
type invitationHandler struct {
	accessControl portssvc.AccessControlSvcFacade
}

func newInvitationHandler(ac portssvc.AccessControlSvcFacade) *invitationHandler {
	return &invitationHandler{accessControl: ac}
}

// registerInvitationRoutes registers all invitation-related routes.
func registerInvitationRoutes(rg *gin.RouterGroup, accessControl portssvc.AccessControlSvcFacade) {
	h := newInvitationHandler(accessControl)

	invitations := rg.Group("/invitations")
	{
		invitations.POST("", h.createInvitation)
		invitations.GET("", h.listInvitations)
		invitations.POST("/accept", h.acceptInvitation)
		invitations.POST("/:id/revoke", h.revokeInvitation)
	}

	rg.POST("/access/bootstrap", h.bootstrapAdmin)
}

// createInvitation godoc
// @Summary Issue an invitation code
// @Description Issues a pending single-use code bound to a role. Admin only.
// @Tags invitations
// @Accept json
// @Produce json
// @Param invitation body dto.CreateInvitationRequest true "Invitee email and role"
// @Success 201 {object} dto.InvitationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /invitations [post]
func (h *invitationHandler) createInvitation(c *gin.Context) {
	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	issuerUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	invitation, err := h.accessControl.CreateInvitation(c.Request.Context(), req, issuerUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvitationResponse(invitation))
}

// listInvitations godoc
// @Summary List invitations
// @Description Lists all invitations, newest first. Admin only.
// @Tags invitations
// @Produce json
// @Success 200 {object} dto.ListInvitationsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /invitations [get]
func (h *invitationHandler) listInvitations(c *gin.Context) {
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	invitations, err := h.accessControl.ListInvitations(c.Request.Context(), actorUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListInvitationsResponse(invitations))
}

// acceptInvitation godoc
// @Summary Redeem an invitation code
// @Description Validates a code (case-insensitive) and grants the acting user the invitation's role. A code can be redeemed exactly once.
// @Tags invitations
// @Accept json
// @Produce json
// @Param code body dto.AcceptInvitationRequest true "Invitation code"
// @Success 200 {object} dto.AcceptInvitationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Unknown code"
// @Failure 409 {object} ErrorResponse "Code already accepted or revoked"
// @Security BearerAuth
// @Router /invitations/accept [post]
func (h *invitationHandler) acceptInvitation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AcceptInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	role, err := h.accessControl.ValidateAndAccept(c.Request.Context(), req.Code, actorUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Invitation accepted", slog.String("user_id", actorUserID), slog.String("role", string(role)))
	c.JSON(http.StatusOK, dto.AcceptInvitationResponse{Role: role})
}

// revokeInvitation godoc
// @Summary Revoke a pending invitation
// @Description Marks a pending invitation revoked, making its code inert. Admin only. Revoking an already-revoked invitation is a no-op.
// @Tags invitations
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Invitation already accepted"
// @Security BearerAuth
// @Router /invitations/{id}/revoke [post]
func (h *invitationHandler) revokeInvitation(c *gin.Context) {
	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.accessControl.Revoke(c.Request.Context(), c.Param("id"), actorUserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bootstrapAdmin godoc
// @Summary Bootstrap the first admin
// @Description Elevates the acting user to admin using the out-of-band setup secret, bypassing the invitation system. The secret is compared verbatim.
// @Tags invitations
// @Accept json
// @Produce json
// @Param secret body dto.BootstrapAdminRequest true "Setup secret"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Secret mismatch"
// @Security BearerAuth
// @Router /access/bootstrap [post]
func (h *invitationHandler) bootstrapAdmin(c *gin.Context) {
	var req dto.BootstrapAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.accessControl.BootstrapAdmin(c.Request.Context(), req.Secret, actorUserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
