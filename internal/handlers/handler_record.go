package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
)

// recordHandler handles HTTP requests related to financial records.
type recordHandler struct {
	recordService portssvc.RecordSvcFacade
	auditService  portssvc.AuditSvcFacade
}

func newRecordHandler(rs portssvc.RecordSvcFacade, as portssvc.AuditSvcFacade) *recordHandler {
	return &recordHandler{recordService: rs, auditService: as}
}

// registerRecordRoutes registers all record-related routes.
func registerRecordRoutes(rg *gin.RouterGroup, recordService portssvc.RecordSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := newRecordHandler(recordService, auditService)

	records := rg.Group("/records")
	{
		records.POST("", h.createRecord)
		records.GET("", h.listRecords)
		records.GET("/:id", h.getRecord)
		records.PATCH("/:id", h.updateRecord)
		records.DELETE("/:id", h.deleteRecord)
		records.GET("/:id/history", h.getRecordHistory)
	}
}

// createRecord godoc
// @Summary Create a record
// @Description Creates a financial record on the active backend. In shared mode the acting user must hold at least the editor role.
// @Tags records
// @Accept json
// @Produce json
// @Param record body dto.CreateRecordRequest true "Record details"
// @Success 201 {object} dto.RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /records [post]
func (h *recordHandler) createRecord(c *gin.Context) {
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, _ := middleware.GetUserIDFromContext(c)

	record, err := h.recordService.CreateRecord(c.Request.Context(), req, actorUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToRecordResponse(record))
}

// listRecords godoc
// @Summary List records
// @Description Lists a business's records newest first, with keyset pagination.
// @Tags records
// @Produce json
// @Param businessID query string true "Business ID"
// @Param limit query int false "Page size (default 50)"
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListRecordsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /records [get]
func (h *recordHandler) listRecords(c *gin.Context) {
	businessID := c.Query("businessID")
	if businessID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "businessID query parameter is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, nextToken, err := h.recordService.ListRecords(c.Request.Context(), businessID, limit, c.Query("nextToken"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListRecordsResponse(records, nextToken))
}

// getRecord godoc
// @Summary Get a record
// @Tags records
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.RecordResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{id} [get]
func (h *recordHandler) getRecord(c *gin.Context) {
	record, err := h.recordService.GetRecordByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// updateRecord godoc
// @Summary Update a record
// @Description Applies a partial update. Only fields that actually change are written to the audit trail; a no-op update logs nothing.
// @Tags records
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param record body dto.UpdateRecordRequest true "Fields to change"
// @Success 200 {object} dto.RecordResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{id} [patch]
func (h *recordHandler) updateRecord(c *gin.Context) {
	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, _ := middleware.GetUserIDFromContext(c)

	record, err := h.recordService.UpdateRecord(c.Request.Context(), c.Param("id"), req, actorUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// deleteRecord godoc
// @Summary Delete a record
// @Tags records
// @Produce json
// @Param id path string true "Record ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /records/{id} [delete]
func (h *recordHandler) deleteRecord(c *gin.Context) {
	actorUserID, _ := middleware.GetUserIDFromContext(c)

	if err := h.recordService.DeleteRecord(c.Request.Context(), c.Param("id"), actorUserID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getRecordHistory godoc
// @Summary Get a record's audit history
// @Description Returns the record's ChangeSets newest first. Fields changed by the same actor within one grouping window appear as a single logical edit.
// @Tags records
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} dto.RecordHistoryResponse
// @Security BearerAuth
// @Router /records/{id}/history [get]
func (h *recordHandler) getRecordHistory(c *gin.Context) {
	recordID := c.Param("id")

	changeSets, err := h.auditService.FetchHistory(c.Request.Context(), recordID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordHistoryResponse(recordID, changeSets))
}
