package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// DegreeRef is a degree reference as supplied by the client: either the
// numeric canonical id or a free-text alias ("3eme", "tronc commun"). The
// legacy API accepted both under the same field, so decoding keeps both
// shapes and the service decides which path validates it.
type DegreeRef struct {
	ID    uint
	Alias string
}

// UnmarshalJSON accepts a JSON number, a numeric string, or an alias string.
func (d *DegreeRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if n, err := strconv.ParseUint(s, 10, 32); err == nil {
			d.ID = uint(n)
			return nil
		}
		d.Alias = s
		return nil
	}

	var n uint
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	d.ID = n
	return nil
}

// IsZero reports whether no reference was supplied.
func (d DegreeRef) IsZero() bool { return d.ID == 0 && d.Alias == "" }

// ── brief views embedded in responses ──

// DegreeBrief is the degree summary attached to responses.
type DegreeBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SubjectBrief is the subject summary attached to responses.
type SubjectBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// UserBrief is the user summary attached to responses.
type UserBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RoomBrief is the room summary attached to responses.
type RoomBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
