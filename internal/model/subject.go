package model

// Subject maps to table subjects (read-only reference data).
type Subject struct {
	ID   uint   `gorm:"primaryKey"                 json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	BaseModel
}

// TableName sets the table name.
func (Subject) TableName() string { return "subjects" }
