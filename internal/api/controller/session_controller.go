package controller

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minwoo-jeong/asreco/internal/api/response"
	"github.com/minwoo-jeong/asreco/internal/export"
	"github.com/minwoo-jeong/asreco/internal/ingest"
	"github.com/minwoo-jeong/asreco/internal/service"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

const defaultRecordLimit = 500

// SessionController handles uploads and serves the reconciled tables.
type SessionController struct {
	service *service.AnalysisService
}

func NewSessionController(s *service.AnalysisService) *SessionController {
	return &SessionController{service: s}
}

// readUpload turns one multipart file into a table, dispatching on the
// uploaded filename's extension.
func readUpload(fh *multipart.FileHeader) (*tabular.Table, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".xlsx", ".xlsm":
		return ingest.ReadWorkbook(f)
	default:
		return ingest.ReadCSV(f)
	}
}

// Analyze accepts the maintenance-log upload (field "maintenance", required)
// and the parts-issuance upload (field "parts", optional), runs the
// reconciliation pipeline and returns the session summary.
func (ctrl *SessionController) Analyze(c *gin.Context) {
	maintFile, err := c.FormFile("maintenance")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "maintenance file is required")
		return
	}
	maint, err := readUpload(maintFile)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "maintenance file unreadable: "+err.Error())
		return
	}

	var parts *tabular.Table
	if partsFile, err := c.FormFile("parts"); err == nil {
		parts, err = readUpload(partsFile)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "parts file unreadable: "+err.Error())
			return
		}
	}

	session, err := ctrl.service.Analyze(c.Request.Context(), maint, parts)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "analysis failed: "+err.Error())
		return
	}
	response.Success(c, session.Summary())
}

// Get returns the session summary.
func (ctrl *SessionController) Get(c *gin.Context) {
	session, err := ctrl.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}
	response.Success(c, session.Summary())
}

// Records pages through the enriched maintenance table.
func (ctrl *SessionController) Records(c *gin.Context) {
	session, err := ctrl.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}
	offset, limit := pagination(c)
	response.Success(c, tablePayload(session.Enriched, offset, limit))
}

// AffiliationStats returns the per-affiliation cost statistics table.
func (ctrl *SessionController) AffiliationStats(c *gin.Context) {
	session, err := ctrl.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}
	response.Success(c, tablePayload(session.AffiliationStats, 0, -1))
}

// Parts returns the normalized parts-issuance table.
func (ctrl *SessionController) Parts(c *gin.Context) {
	session, err := ctrl.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}
	offset, limit := pagination(c)
	response.Success(c, tablePayload(session.Parts, offset, limit))
}

// Export streams the enriched table as a CSV attachment.
func (ctrl *SessionController) Export(c *gin.Context) {
	session, err := ctrl.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}
	if session.Enriched == nil {
		response.Error(c, http.StatusNotFound, "session has no enriched table")
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="enriched_`+session.ID+`.csv"`)
	if err := export.WriteCSV(c.Writer, session.Enriched); err != nil {
		// Headers are gone by now; all we can do is log through gin's error
		// sink and cut the stream.
		_ = c.Error(err)
	}
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRecordLimit)))
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// tablePayload projects a table window into the JSON shape the dashboard
// consumes. A negative limit means "everything".
func tablePayload(t *tabular.Table, offset, limit int) gin.H {
	if t == nil {
		return gin.H{"columns": []string{}, "rows": []map[string]tabular.Value{}, "total": 0}
	}
	records := t.Records()
	total := len(records)
	if offset > total {
		offset = total
	}
	end := total
	if limit >= 0 && offset+limit < total {
		end = offset + limit
	}
	return gin.H{
		"columns": t.Columns(),
		"rows":    records[offset:end],
		"total":   total,
	}
}
