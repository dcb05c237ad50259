package model

// Room maps to table rooms (read-only reference data).
type Room struct {
	ID   uint   `gorm:"primaryKey"                 json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
	BaseModel
}

// TableName sets the table name.
func (Room) TableName() string { return "rooms" }
