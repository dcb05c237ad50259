package model

// WeeklySlot is a recurring weekly lesson occurrence — maps to weekly_slots.
//
// Temporal identity is heterogeneous: a slot carries either a free-form
// period label ("P3", "08h00-09h00"), an explicit start/end pair, or both.
// At least one of the two forms must be present (CHECK constraint mirrors
// the service-level validation). The weekly-grid ordering key is derived
// from these fields at read time and never persisted.
type WeeklySlot struct {
	ID        uint    `gorm:"primaryKey"                 json:"id"`
	DegreeID  uint    `gorm:"not null;index"             json:"degree_id"`
	SubjectID uint    `gorm:"not null"                   json:"subject_id"`
	TeacherID uint    `gorm:"not null;index"             json:"teacher_id"`
	RoomID    *uint   `json:"room_id,omitempty"`
	DayOfWeek int     `gorm:"type:smallint;not null"     json:"day_of_week"` // ISO, Monday=1
	Period    *string `gorm:"type:varchar(50)"           json:"period,omitempty"`
	StartTime *string `gorm:"type:varchar(5)"            json:"start_time,omitempty"` // "HH:MM"
	EndTime   *string `gorm:"type:varchar(5)"            json:"end_time,omitempty"`   // "HH:MM"
	Title     string  `gorm:"type:varchar(200);not null" json:"title"`
	BaseModel

	// associations
	Degree  *Degree  `gorm:"foreignKey:DegreeID"  json:"degree,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Teacher *User    `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Room    *Room    `gorm:"foreignKey:RoomID"    json:"room,omitempty"`
}

// TableName sets the table name.
func (WeeklySlot) TableName() string { return "weekly_slots" }
