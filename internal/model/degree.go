package model

// Degree is one of the five canonical degrees of the installation — maps to
// table degrees. Rows are reference data seeded by migration; the alias
// resolver is built from them at startup.
type Degree struct {
	ID   uint   `gorm:"primaryKey"                       json:"id"`
	Name string `gorm:"type:varchar(100);not null"       json:"name"`
	Slug string `gorm:"type:varchar(50);not null;unique" json:"slug"`
	BaseModel
}

// TableName sets the table name.
func (Degree) TableName() string { return "degrees" }
