package dto

// Catalog responses back the frontend pickers; the entities themselves are
// owned by external collaborators and only read here.

// DegreeResponse is a degree catalog row.
type DegreeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SubjectResponse is a subject catalog row.
type SubjectResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RoomResponse is a room catalog row.
type RoomResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
