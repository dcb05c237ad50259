package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/dto"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/service"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/response"
)

// TimetableHandler is the weekly-slot HTTP handler.
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler creates a TimetableHandler.
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// ListWeeklySlots returns the canonical weekly grid, paginated.
// GET /api/v1/timetables
func (h *TimetableHandler) ListWeeklySlots(c *gin.Context) {
	var req dto.WeeklySlotListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	slots, total, err := h.timetableSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	response.OKPage(c, slots, total, page, pageSize)
}

// CreateWeeklySlot creates a weekly slot.
// POST /api/v1/timetables
func (h *TimetableHandler) CreateWeeklySlot(c *gin.Context) {
	var req dto.CreateWeeklySlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	slot, err := h.timetableSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.Created(c, slot)
}

// UpdateWeeklySlot patches a weekly slot.
// PUT /api/v1/timetables/:id
func (h *TimetableHandler) UpdateWeeklySlot(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateWeeklySlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	slot, err := h.timetableSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, slot)
}

// DeleteWeeklySlot removes a weekly slot.
// DELETE /api/v1/timetables/:id
func (h *TimetableHandler) DeleteWeeklySlot(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.timetableSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *TimetableHandler) handleTimetableError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationFailed(c, 12001, "validation failed", toResponseFields(verr.Fields))
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 12002, "weekly slot not found")
	default:
		response.InternalError(c)
	}
}
