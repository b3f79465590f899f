package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"starterkit/src/app/http/response"
	"starterkit/src/app/middleware"
	"starterkit/src/core/usecase"
)

// DiagnosticsHandler handles the database and environment debug endpoints.
type DiagnosticsHandler struct {
	diagService *usecase.DiagnosticsService
}

// NewDiagnosticsHandler creates a new DiagnosticsHandler.
func NewDiagnosticsHandler(diagService *usecase.DiagnosticsService) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		diagService: diagService,
	}
}

// DBCheck reports database connectivity, table names, and pool state.
// GET /db-check
//
// Always answers 200; a broken database shows up as connected=false with
// the error string in the payload.
func (h *DiagnosticsHandler) DBCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.diagService.DBCheck(c.Request.Context()))
}

// EnvCheck reports which configured environment variables are set.
// GET /env-check
func (h *DiagnosticsHandler) EnvCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.diagService.EnvCheck())
}

// TableInfo returns schema details of one table.
// GET /table-info/:table
func (h *DiagnosticsHandler) TableInfo(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	table := c.Param("table")
	if table == "" {
		response.BadRequest(c, "table name is required", requestID)
		return
	}

	report, err := h.diagService.TableInfo(c.Request.Context(), table)
	if err != nil {
		response.FromDomainError(c, err, requestID)
		return
	}
	c.JSON(http.StatusOK, report)
}

// SequenceCheck compares a table's id sequence against its max id.
// GET /sequence-check/:table
func (h *DiagnosticsHandler) SequenceCheck(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	table := c.Param("table")
	if table == "" {
		response.BadRequest(c, "table name is required", requestID)
		return
	}

	report, err := h.diagService.SequenceCheck(c.Request.Context(), table)
	if err != nil {
		response.FromDomainError(c, err, requestID)
		return
	}
	c.JSON(http.StatusOK, report)
}

// SequenceFix restarts a table's id sequence at max id + 1.
// POST /sequence-fix/:table (token protected)
func (h *DiagnosticsHandler) SequenceFix(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	table := c.Param("table")
	if table == "" {
		response.BadRequest(c, "table name is required", requestID)
		return
	}

	report, err := h.diagService.FixSequence(c.Request.Context(), table)
	if err != nil {
		response.FromDomainError(c, err, requestID)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Version returns deployment version information.
// GET /version
func (h *DiagnosticsHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, h.diagService.Version())
}
