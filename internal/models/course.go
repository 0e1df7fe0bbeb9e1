package models

import "database/sql"

// Course is returned without timestamps.
type Course struct {
	ID              int     `json:"id"`
	UserID          int     `json:"userId"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	EstimatedTime   *string `json:"estimatedTime"`
	MaterialsNeeded *string `json:"materialsNeeded"`
}

type NewCourse struct {
	UserID          int
	Title           string
	Description     string
	EstimatedTime   *string
	MaterialsNeeded *string
}

// CoursePatch holds the attributes of a partial update. Nil members are left
// unchanged; a non-nil invalid NullString clears the optional column.
type CoursePatch struct {
	UserID          *int
	Title           *string
	Description     *string
	EstimatedTime   *sql.NullString
	MaterialsNeeded *sql.NullString
}

// Empty reports whether the patch would change nothing.
func (p CoursePatch) Empty() bool {
	return p.UserID == nil && p.Title == nil && p.Description == nil &&
		p.EstimatedTime == nil && p.MaterialsNeeded == nil
}
