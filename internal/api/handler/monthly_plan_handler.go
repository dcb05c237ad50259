package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/dto"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/service"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/response"
)

// MonthlyPlanHandler is the curriculum-plan HTTP handler.
type MonthlyPlanHandler struct {
	planSvc service.MonthlyPlanService
}

// NewMonthlyPlanHandler creates a MonthlyPlanHandler.
func NewMonthlyPlanHandler(planSvc service.MonthlyPlanService) *MonthlyPlanHandler {
	return &MonthlyPlanHandler{planSvc: planSvc}
}

// UpsertMonthlyPlan creates or merges a plan entry on its natural key.
// POST /api/v1/monthly-plans
// 201 when a new row was created, 200 when an existing one was merged.
func (h *MonthlyPlanHandler) UpsertMonthlyPlan(c *gin.Context) {
	var req dto.UpsertMonthlyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	entry, err := h.planSvc.Upsert(c.Request.Context(), &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	if entry.Created {
		response.Created(c, entry)
		return
	}
	response.OK(c, entry)
}

// UpdateMonthlyPlan patches a plan entry by id.
// PATCH /api/v1/monthly-plans/:id
func (h *MonthlyPlanHandler) UpdateMonthlyPlan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateMonthlyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	entry, err := h.planSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, entry)
}

// DeleteMonthlyPlan removes a plan entry.
// DELETE /api/v1/monthly-plans/:id
func (h *MonthlyPlanHandler) DeleteMonthlyPlan(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.planSvc.Delete(c.Request.Context(), id); err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.NoContent(c)
}

// ListMonthlyPlans lists one month of entries.
// GET /api/v1/monthly-plans?month=2025-09&degree_id=3
func (h *MonthlyPlanHandler) ListMonthlyPlans(c *gin.Context) {
	var req dto.MonthlyPlanListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "month is required as YYYY-MM")
		return
	}

	entries, err := h.planSvc.ListMonth(c.Request.Context(), &req)
	if err != nil {
		h.handlePlanError(c, err)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

func (h *MonthlyPlanHandler) handlePlanError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationFailed(c, 13001, "validation failed", toResponseFields(verr.Fields))
	case errors.Is(err, service.ErrPlanNotFound):
		response.NotFound(c, 13002, "monthly plan entry not found")
	case errors.Is(err, service.ErrPlanConflict):
		response.Conflict(c, 13003, "monthly plan conflict", "an entry already holds this date, degree, subject, teacher and sequence")
	default:
		response.InternalError(c)
	}
}
