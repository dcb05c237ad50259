package dto

import "encoding/json"

// ── monthly plan DTOs ──

// UpsertMonthlyPlanRequest submits a plan entry without knowing whether one
// already exists for the same natural key. Sequence is optional: when the
// sequence discriminator is enabled and it is omitted, the next free value
// is assigned server-side.
type UpsertMonthlyPlanRequest struct {
	PlanDate  string    `json:"plan_date"  binding:"required,datetime=2006-01-02"`
	Degree    DegreeRef `json:"degree_id"  binding:"required"`
	SubjectID uint      `json:"subject_id" binding:"required"`
	TeacherID *uint     `json:"teacher_id"`
	Title     *string   `json:"title"      binding:"omitempty,max=200"`
	Notes     *string   `json:"notes"`
	Sequence  *int      `json:"sequence"   binding:"omitempty,min=1"`
}

// UnmarshalJSON accepts the legacy "enseignant_id" spelling of teacher_id.
func (r *UpsertMonthlyPlanRequest) UnmarshalJSON(data []byte) error {
	type plain UpsertMonthlyPlanRequest
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

// UpdateMonthlyPlanRequest patches an entry directly by id. Key fields may
// move the entry onto a different natural key; colliding with another row
// is a conflict, not a merge.
type UpdateMonthlyPlanRequest struct {
	PlanDate     *string    `json:"plan_date"  binding:"omitempty,datetime=2006-01-02"`
	Degree       *DegreeRef `json:"degree_id"`
	SubjectID    *uint      `json:"subject_id"`
	TeacherID    *uint      `json:"teacher_id"`
	ClearTeacher bool       `json:"clear_teacher,omitempty"`
	Title        *string    `json:"title"      binding:"omitempty,max=200"`
	Notes        *string    `json:"notes"`
	Sequence     *int       `json:"sequence"   binding:"omitempty,min=1"`
}

// UnmarshalJSON accepts the legacy "enseignant_id" spelling.
func (r *UpdateMonthlyPlanRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateMonthlyPlanRequest
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

// MonthlyPlanListRequest holds the listing query parameters.
type MonthlyPlanListRequest struct {
	Month    string `form:"month"     binding:"required,datetime=2006-01"` // "2025-09"
	DegreeID *uint  `form:"degree_id"`
}

// MonthlyPlanResponse is the plan entry view returned to the frontend.
type MonthlyPlanResponse struct {
	ID        uint          `json:"id"`
	PlanDate  string        `json:"plan_date"`
	DegreeID  uint          `json:"degree_id"`
	SubjectID uint          `json:"subject_id"`
	TeacherID *uint         `json:"teacher_id,omitempty"`
	Title     *string       `json:"title,omitempty"`
	Notes     *string       `json:"notes,omitempty"`
	Sequence  int           `json:"sequence"`
	Degree    *DegreeBrief  `json:"degree,omitempty"`
	Subject   *SubjectBrief `json:"subject,omitempty"`
	Teacher   *UserBrief    `json:"teacher,omitempty"`
	Created   bool          `json:"created"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}
