package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/course-api/internal/repo"
	"github.com/lib/pq"
)

var courseCols = []string{"id", "user_id", "title", "description", "estimated_time", "materials_needed"}

func newCourseHandler(t *testing.T) (*CourseHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &CourseHandler{Repo: repo.NewCourseRepo(db)}, mock
}

func assertRouteNotFound(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "Route Not Found" {
		t.Errorf("message: got %q, want Route Not Found", body["message"])
	}
}

func TestCourseHandler_ListCourses(t *testing.T) {
	h, mock := newCourseHandler(t)

	mock.ExpectQuery(`SELECT id, user_id, title, description, estimated_time, materials_needed FROM courses ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(courseCols).
			AddRow(1, 1, "T", "D", nil, nil).
			AddRow(2, 1, "Go", "Basics", "3 hours", "laptop"))

	rr := httptest.NewRecorder()
	Wrap(h.ListCourses)(rr, httptest.NewRequest("GET", "/api/courses", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("ListCourses status: got %d, want 200", rr.Code)
	}
	var list []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(list) != 2 || list[0]["title"] != "T" || list[1]["estimatedTime"] != "3 hours" {
		t.Errorf("unexpected list: %+v", list)
	}
	for _, c := range list {
		if _, ok := c["createdAt"]; ok {
			t.Errorf("course leaked createdAt: %v", c)
		}
		if _, ok := c["updatedAt"]; ok {
			t.Errorf("course leaked updatedAt: %v", c)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCourseHandler_GetCourse(t *testing.T) {
	h, mock := newCourseHandler(t)

	mock.ExpectQuery(`SELECT .* FROM courses WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(courseCols).AddRow(1, 1, "T", "D", nil, nil))

	req := requestWithChiURLParams("GET", "/api/courses/1", nil, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	Wrap(h.GetCourse)(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("GetCourse status: got %d, want 200", rr.Code)
	}
	var course struct {
		ID            int     `json:"id"`
		UserID        int     `json:"userId"`
		Title         string  `json:"title"`
		EstimatedTime *string `json:"estimatedTime"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&course); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if course.ID != 1 || course.UserID != 1 || course.Title != "T" || course.EstimatedTime != nil {
		t.Errorf("unexpected course: %+v", course)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCourseHandler_GetCourse_NotFound(t *testing.T) {
	h, mock := newCourseHandler(t)

	mock.ExpectQuery(`SELECT .* FROM courses WHERE id = \$1`).
		WithArgs(999).
		WillReturnRows(sqlmock.NewRows(courseCols))

	req := requestWithChiURLParams("GET", "/api/courses/999", nil, map[string]string{"id": "999"})
	rr := httptest.NewRecorder()
	Wrap(h.GetCourse)(rr, req)

	assertRouteNotFound(t, rr)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCourseHandler_GetCourse_InvalidID(t *testing.T) {
	h, mock := newCourseHandler(t)

	req := requestWithChiURLParams("GET", "/api/courses/abc", nil, map[string]string{"id": "abc"})
	rr := httptest.NewRecorder()
	Wrap(h.GetCourse)(rr, req)

	assertRouteNotFound(t, rr)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCourseHandler_CreateCourse(t *testing.T) {
	h, mock := newCourseHandler(t)

	mock.ExpectQuery(`INSERT INTO courses`).
		WithArgs(1, "T", "D", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	body := []byte(`{"userId":1,"title":"T","description":"D","createdAt":"ignored"}`)
	req := requestWithChiURLParams("POST", "/api/courses", body, nil)
	rr := httptest.NewRecorder()
	Wrap(h.CreateCourse)(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("CreateCourse status: got %d, want 201 (body %s)", rr.Code, rr.Body.String())
	}
	if loc := rr.Header().Get("Location"); loc != "/" {
		t.Errorf("Location: got %q, want /", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCourseHandler_CreateCourse_Validation(t *testing.T) {
	h, mock := newCourseHandler(t)

	req := requestWithChiURLParams("POST", "/api/courses", []byte(`{"userId":1}`), nil)
	rr := httptest.NewRecorder()
	Wrap(h.CreateCourse)(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("CreateCourse status: got %d, want 400", rr.Code)
	}
	var msgs []string
	if err := json.NewDecoder(rr.Body).Decode(&msgs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(msgs) != 2 || msgs[0] != "Course.title cannot be null" || msgs[1] != "Course.description cannot be null" {
		t.Errorf("unexpected messages: %v", msgs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCourseHandler_CreateCourse_UnknownUser(t *testing.T) {
	h, mock := newCourseHandler(t)

	mock.ExpectQuery(`INSERT INTO courses`).
		WithArgs(42, "T", "D", nil, nil).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "courses_user_id_fkey"})

	req := requestWithChiURLParams("POST", "/api/courses", []byte(`{"userId":42,"title":"T","description":"D"}`), nil)
	rr := httptest.NewRecorder()
	Wrap(h.CreateCourse)(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("CreateCourse status: got %d, want 400", rr.Code)
	}
	var msgs []string
	if err := json.NewDecoder(rr.Body).Decode(&msgs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(msgs) != 1 || msgs[0] != "userId must reference an existing user" {
		t.Errorf("unexpected messages: %v", msgs)
	}
}

func TestCourseHandler_UpdateCourse(t *testing.T) {
	h, mock := newCourseHandler(t)

	mock.ExpectExec(`UPDATE courses SET title = \$1, estimated_time = \$2, updated_at = now\(\) WHERE id = \$3`).
		WithArgs("New", nil, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := []byte(`{"title":"New","estimatedTime":null,"bogus":true}`)
	req := requestWithChiURLParams("PUT", "/api/courses/1", body, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	Wrap(h.UpdateCourse)(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("UpdateCourse status: got %d, want 204 (body %s)", rr.Code, rr.Body.String())
	}
	if rr.Body.Len() != 0 {
		t.Errorf("UpdateCourse body: want empty, got %q", rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCourseHandler_UpdateCourse_NoKnownAttributes(t *testing.T) {
	h, mock := newCourseHandler(t)

	body := []byte(`{"name":"x","createdAt":"2020-01-01"}`)
	req := requestWithChiURLParams("PUT", "/api/courses/1", body, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	Wrap(h.UpdateCourse)(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("UpdateCourse status: got %d, want 400", rr.Code)
	}
	var out map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["message"] != "Attributes weren't named correctly" {
		t.Errorf("message: got %v", out["message"])
	}
	// no UPDATE must have been issued
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCourseHandler_UpdateCourse_NullRequired(t *testing.T) {
	h, mock := newCourseHandler(t)

	body := []byte(`{"title":null,"description":""}`)
	req := requestWithChiURLParams("PUT", "/api/courses/1", body, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	Wrap(h.UpdateCourse)(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("UpdateCourse status: got %d, want 400", rr.Code)
	}
	var msgs []string
	if err := json.NewDecoder(rr.Body).Decode(&msgs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(msgs) != 2 || msgs[0] != "Course.title cannot be null" || msgs[1] != "Course.description cannot be null" {
		t.Errorf("unexpected messages: %v", msgs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCourseHandler_UpdateCourse_NotFound(t *testing.T) {
	h, mock := newCourseHandler(t)

	mock.ExpectExec(`UPDATE courses SET description = \$1`).
		WithArgs("D2", 77).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := requestWithChiURLParams("PUT", "/api/courses/77", []byte(`{"description":"D2"}`), map[string]string{"id": "77"})
	rr := httptest.NewRecorder()
	Wrap(h.UpdateCourse)(rr, req)

	assertRouteNotFound(t, rr)
}

func TestCourseHandler_DeleteCourse(t *testing.T) {
	h, mock := newCourseHandler(t)

	mock.ExpectExec(`DELETE FROM courses WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := requestWithChiURLParams("DELETE", "/api/courses/1", nil, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	Wrap(h.DeleteCourse)(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("DeleteCourse status: got %d, want 204", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCourseHandler_DeleteCourse_AlreadyDeleted(t *testing.T) {
	h, mock := newCourseHandler(t)

	mock.ExpectExec(`DELETE FROM courses WHERE id = \$1`).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req := requestWithChiURLParams("DELETE", "/api/courses/1", nil, map[string]string{"id": "1"})
	rr := httptest.NewRecorder()
	Wrap(h.DeleteCourse)(rr, req)

	assertRouteNotFound(t, rr)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWrap_UnclassifiedError(t *testing.T) {
	rr := httptest.NewRecorder()
	Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("disk on fire")
	})(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	var out map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["message"] != "disk on fire" {
		t.Errorf("message: got %v", out["message"])
	}
	if e, ok := out["error"].(map[string]any); !ok || len(e) != 0 {
		t.Errorf("error: want {}, got %v", out["error"])
	}
}

func TestWrap_ConnectionErrorIsNotValidation(t *testing.T) {
	rr := httptest.NewRecorder()
	Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return &pq.Error{Code: "08006", Message: "connection failure"}
	})(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rr.Code)
	}
}
