package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/crucial707/course-api/internal/metrics"
	"github.com/crucial707/course-api/internal/middleware"
	"github.com/crucial707/course-api/internal/models"
	"github.com/go-chi/chi/v5"
)

type CourseStore interface {
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id int) (*models.Course, error)
	Create(ctx context.Context, c models.NewCourse) (int, error)
	Update(ctx context.Context, id int, patch models.CoursePatch) error
	Delete(ctx context.Context, id int) error
}

// CourseAttributes are the body keys a partial update may carry.
var CourseAttributes = map[string]bool{
	"userId":          true,
	"title":           true,
	"description":     true,
	"estimatedTime":   true,
	"materialsNeeded": true,
}

// ErrNoCourseAttributes is returned by UpdateCourse when no body key is a course attribute.
var ErrNoCourseAttributes = &HTTPError{Status: http.StatusBadRequest, Message: "Attributes weren't named correctly"}

type CourseHandler struct {
	Repo CourseStore
}

type courseInput struct {
	UserID          int     `json:"userId" validate:"required"`
	Title           string  `json:"title" validate:"required,max=255"`
	Description     string  `json:"description" validate:"required"`
	EstimatedTime   *string `json:"estimatedTime" validate:"omitempty,max=255"`
	MaterialsNeeded *string `json:"materialsNeeded" validate:"omitempty,max=255"`
}

// courseIDParam parses the {id} path segment. A non-numeric id names no course.
func courseIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, middleware.CourseIDParam))
	if err != nil {
		return 0, ErrNotFound
	}
	return id, nil
}

//
// ==========================
// List Courses
// ==========================
//

func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) error {
	courses, err := h.Repo.List(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, courses)
	return nil
}

//
// ==========================
// Get Course By ID
// ==========================
//

func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) error {
	id, err := courseIDParam(r)
	if err != nil {
		return err
	}
	course, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, course)
	return nil
}

//
// ==========================
// Create Course
// ==========================
//

func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) error {
	var input courseInput
	if err := decodeJSON(r, &input); err != nil {
		return err
	}
	if err := validateStruct("Course", input); err != nil {
		return err
	}

	if _, err := h.Repo.Create(r.Context(), models.NewCourse{
		UserID:          input.UserID,
		Title:           input.Title,
		Description:     input.Description,
		EstimatedTime:   input.EstimatedTime,
		MaterialsNeeded: input.MaterialsNeeded,
	}); err != nil {
		return err
	}
	metrics.RecordCourseMutation("create")

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
	return nil
}

//
// ==========================
// Update Course
// ==========================
//

func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) error {
	id, err := courseIDParam(r)
	if err != nil {
		return err
	}

	var body map[string]json.RawMessage
	if err := decodeJSON(r, &body); err != nil {
		return err
	}
	patch, err := coursePatch(body)
	if err != nil {
		return err
	}

	if err := h.Repo.Update(r.Context(), id, patch); err != nil {
		return err
	}
	metrics.RecordCourseMutation("update")

	w.WriteHeader(http.StatusNoContent)
	return nil
}

var jsonNull = []byte("null")

// coursePatch builds a typed patch from the known attributes in body; unknown keys are ignored.
func coursePatch(body map[string]json.RawMessage) (models.CoursePatch, error) {
	var (
		patch models.CoursePatch
		msgs  []string
		known int
	)
	for k := range body {
		if CourseAttributes[k] {
			known++
		}
	}
	if known == 0 {
		return patch, ErrNoCourseAttributes
	}

	required := func(name string, dst any) bool {
		raw, ok := body[name]
		if !ok {
			return false
		}
		if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
			msgs = append(msgs, fmt.Sprintf("Course.%s cannot be null", name))
			return false
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			msgs = append(msgs, fmt.Sprintf("Validation type on %s failed", name))
			return false
		}
		return true
	}
	optional := func(name string) *sql.NullString {
		raw, ok := body[name]
		if !ok {
			return nil
		}
		if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
			return &sql.NullString{}
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			msgs = append(msgs, fmt.Sprintf("Validation type on %s failed", name))
			return nil
		}
		return &sql.NullString{String: s, Valid: true}
	}

	var (
		userID             int
		title, description string
	)
	if required("userId", &userID) {
		if userID == 0 {
			msgs = append(msgs, "Course.userId cannot be null")
		}
		patch.UserID = &userID
	}
	if required("title", &title) {
		if title == "" {
			msgs = append(msgs, "Course.title cannot be null")
		}
		patch.Title = &title
	}
	if required("description", &description) {
		if description == "" {
			msgs = append(msgs, "Course.description cannot be null")
		}
		patch.Description = &description
	}
	patch.EstimatedTime = optional("estimatedTime")
	patch.MaterialsNeeded = optional("materialsNeeded")

	if len(msgs) > 0 {
		return models.CoursePatch{}, &ValidationError{Messages: msgs}
	}
	return patch, nil
}

//
// ==========================
// Delete Course
// ==========================
//

func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) error {
	id, err := courseIDParam(r)
	if err != nil {
		return err
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		return err
	}
	metrics.RecordCourseMutation("delete")

	w.WriteHeader(http.StatusNoContent)
	return nil
}
