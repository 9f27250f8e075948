package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// businessHandler handles HTTP requests related to businesses.
type businessHandler struct {
	businessService portssvc.BusinessSvcFacade
}

func newBusinessHandler(bs portssvc.BusinessSvcFacade) *businessHandler {
	return &businessHandler{businessService: bs}
}

// registerBusinessRoutes registers all business-related routes.
func registerBusinessRoutes(rg *gin.RouterGroup, businessService portssvc.BusinessSvcFacade) {
	h := newBusinessHandler(businessService)

	businesses := rg.Group("/businesses")
	{
		businesses.POST("", h.createBusiness)
		businesses.GET("", h.listBusinesses)
		businesses.GET("/:id", h.getBusiness)
		businesses.DELETE("/:id", h.deactivateBusiness)
	}
}

// createBusiness godoc
// @Summary Create a business
// @Description Creates a new business on the active backend. Names are unique case-insensitively.
// @Tags businesses
// @Accept json
// @Produce json
// @Param business body dto.CreateBusinessRequest true "Business details"
// @Success 201 {object} dto.BusinessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Name already in use"
// @Security BearerAuth
// @Router /businesses [post]
func (h *businessHandler) createBusiness(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, _ := middleware.GetUserIDFromContext(c)

	business, err := h.businessService.CreateBusiness(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Business created", slog.String("business_id", business.BusinessID))
	c.JSON(http.StatusCreated, dto.ToBusinessResponse(business))
}

// listBusinesses godoc
// @Summary List businesses
// @Description Lists businesses on the active backend. Pass includeInactive=true to include deactivated ones.
// @Tags businesses
// @Produce json
// @Param includeInactive query bool false "Include deactivated businesses"
// @Success 200 {object} dto.ListBusinessesResponse
// @Security BearerAuth
// @Router /businesses [get]
func (h *businessHandler) listBusinesses(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	businesses, err := h.businessService.ListBusinesses(c.Request.Context(), includeInactive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListBusinessesResponse(businesses))
}

// getBusiness godoc
// @Summary Get a business
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} dto.BusinessResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{id} [get]
func (h *businessHandler) getBusiness(c *gin.Context) {
	business, err := h.businessService.GetBusinessByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// deactivateBusiness godoc
// @Summary Deactivate a business
// @Description Marks a business inactive. Its records remain readable.
// @Tags businesses
// @Produce json
// @Param id path string true "Business ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /businesses/{id} [delete]
func (h *businessHandler) deactivateBusiness(c *gin.Context) {
	actorUserID, _ := middleware.GetUserIDFromContext(c)

	if err := h.businessService.DeactivateBusiness(c.Request.Context(), c.Param("id"), actorUserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
