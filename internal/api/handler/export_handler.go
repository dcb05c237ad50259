package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/service"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the timetable export endpoints.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// degreeIDQuery parses the optional ?degree_id= filter.
func degreeIDQuery(c *gin.Context) (*uint, bool) {
	raw := c.Query("degree_id")
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		response.BadRequest(c, 10001, "invalid degree_id")
		return nil, false
	}
	id := uint(n)
	return &id, true
}

// ExportTimetableXLSX downloads the weekly timetable as a spreadsheet.
// GET /api/v1/export/timetable?degree_id=3
func (h *ExportHandler) ExportTimetableXLSX(c *gin.Context) {
	degreeID, ok := degreeIDQuery(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportTimetableXLSX(c.Request.Context(), degreeID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportTimetableICS serves the weekly timetable as a calendar feed.
// GET /api/v1/export/timetable.ics?degree_id=3
func (h *ExportHandler) ExportTimetableICS(c *gin.Context) {
	degreeID, ok := degreeIDQuery(c)
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.ExportTimetableICS(c.Request.Context(), degreeID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoSlots):
		response.NotFound(c, 14001, "no weekly slots to export")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
