package model

import "time"

// MonthlyPlanEntry is a dated curriculum-planning note — maps to
// monthly_plan_entries.
//
// The natural key is (plan_date, degree_id, subject_id, teacher_id,
// sequence), with a NULL teacher participating as one stable key value. The
// unique index uq_monthly_plan_natural_key enforces it over
// COALESCE(teacher_id, 0).
type MonthlyPlanEntry struct {
	ID        uint      `gorm:"primaryKey"          json:"id"`
	PlanDate  time.Time `gorm:"type:date;not null"  json:"plan_date"`
	DegreeID  uint      `gorm:"not null"            json:"degree_id"`
	SubjectID uint      `gorm:"not null"            json:"subject_id"`
	TeacherID *uint     `json:"teacher_id,omitempty"`
	Title     *string   `gorm:"type:varchar(200)"   json:"title,omitempty"`
	Notes     *string   `gorm:"type:text"           json:"notes,omitempty"`
	Sequence  int       `gorm:"not null;default:1"  json:"sequence"`
	BaseModel

	// associations
	Degree  *Degree  `gorm:"foreignKey:DegreeID"  json:"degree,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Teacher *User    `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

// TableName sets the table name.
func (MonthlyPlanEntry) TableName() string { return "monthly_plan_entries" }
