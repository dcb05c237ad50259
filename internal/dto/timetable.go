package dto

import "encoding/json"

// ── weekly slot DTOs ──

// CreateWeeklySlotRequest creates a recurring weekly lesson slot.
// Temporal identity: at least one of period / (start_time, end_time) must be
// present; the service validates that, not the binding tags, so the error
// can name the exact fields.
type CreateWeeklySlotRequest struct {
	Degree    DegreeRef `json:"degree_id"   binding:"required"`
	SubjectID uint      `json:"subject_id"  binding:"required"`
	TeacherID uint      `json:"teacher_id"  binding:"required"`
	RoomID    *uint     `json:"room_id"`
	DayOfWeek int       `json:"day_of_week" binding:"required,min=1,max=7"`
	Period    *string   `json:"period"`
	StartTime *string   `json:"start_time"` // "08:00"
	EndTime   *string   `json:"end_time"`   // "09:00"
	Title     *string   `json:"title"`
}

// UnmarshalJSON also accepts the legacy "enseignant_id" spelling of
// teacher_id, normalized here once instead of in every handler.
func (r *CreateWeeklySlotRequest) UnmarshalJSON(data []byte) error {
	type plain CreateWeeklySlotRequest
	aux := struct {
		*plain
		EnseignantID *uint `json:"enseignant_id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.TeacherID == 0 && aux.EnseignantID != nil {
		r.TeacherID = *aux.EnseignantID
	}
	return nil
}

// UpdateWeeklySlotRequest is a partial patch of a weekly slot. Absent fields
// keep their stored values; the time invariant is re-validated on the merged
// row.
type UpdateWeeklySlotRequest struct {
	Degree    *DegreeRef `json:"degree_id"`
	SubjectID *uint      `json:"subject_id"`
	TeacherID *uint      `json:"teacher_id"`
	RoomID    *uint      `json:"room_id"`
	DayOfWeek *int       `json:"day_of_week" binding:"omitempty,min=1,max=7"`
	Period    *string    `json:"period"`
	StartTime *string    `json:"start_time"`
	EndTime   *string    `json:"end_time"`
	Title     *string    `json:"title"`
}

// UnmarshalJSON accepts the legacy "enseignant_id" spelling.
func (r *UpdateWeeklySlotRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateWeeklySlotRequest
	aux := struct {
		*plain
		EnseignantID *uint `json:"enseignant_id"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.TeacherID == nil && aux.EnseignantID != nil {
		r.TeacherID = aux.EnseignantID
	}
	return nil
}

// WeeklySlotListRequest holds the listing query parameters.
type WeeklySlotListRequest struct {
	DegreeID  *uint `form:"degree_id"`
	TeacherID *uint `form:"teacher_id"`
	DayOfWeek *int  `form:"day_of_week" binding:"omitempty,min=1,max=7"`
	Page      int   `form:"page"`
	PageSize  int   `form:"page_size" binding:"omitempty,max=200"`
}

// WeeklySlotResponse is the weekly slot view returned to the frontend.
type WeeklySlotResponse struct {
	ID        uint          `json:"id"`
	DegreeID  uint          `json:"degree_id"`
	SubjectID uint          `json:"subject_id"`
	TeacherID uint          `json:"teacher_id"`
	RoomID    *uint         `json:"room_id,omitempty"`
	DayOfWeek int           `json:"day_of_week"`
	Period    *string       `json:"period,omitempty"`
	StartTime *string       `json:"start_time,omitempty"`
	EndTime   *string       `json:"end_time,omitempty"`
	Title     string        `json:"title"`
	Degree    *DegreeBrief  `json:"degree,omitempty"`
	Subject   *SubjectBrief `json:"subject,omitempty"`
	Teacher   *UserBrief    `json:"teacher,omitempty"`
	Room      *RoomBrief    `json:"room,omitempty"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}
