package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/crucial707/course-api/internal/models"
)

const courseColumns = `id, user_id, title, description, estimated_time, materials_needed`

// ========================
// REPOSITORY STRUCT
// ========================

type CourseRepo struct {
	DB *sql.DB
}

func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(s rowScanner) (models.Course, error) {
	var (
		c         models.Course
		estimated sql.NullString
		materials sql.NullString
	)
	if err := s.Scan(&c.ID, &c.UserID, &c.Title, &c.Description, &estimated, &materials); err != nil {
		return models.Course{}, err
	}
	if estimated.Valid {
		c.EstimatedTime = &estimated.String
	}
	if materials.Valid {
		c.MaterialsNeeded = &materials.String
	}
	return c, nil
}

// ========================
// LIST ALL COURSES
// ========================

func (r *CourseRepo) List(ctx context.Context) ([]models.Course, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ========================
// GET COURSE BY ID
// ========================

func (r *CourseRepo) GetByID(ctx context.Context, id int) (*models.Course, error) {
	c, err := scanCourse(r.DB.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ========================
// CREATE COURSE
// ========================

func (r *CourseRepo) Create(ctx context.Context, c models.NewCourse) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO courses (user_id, title, description, estimated_time, materials_needed)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		c.UserID, c.Title, c.Description, c.EstimatedTime, c.MaterialsNeeded,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ========================
// UPDATE COURSE BY ID
// ========================

// Update writes the non-nil members of patch. Columns are set in a fixed order.
func (r *CourseRepo) Update(ctx context.Context, id int, patch models.CoursePatch) error {
	if patch.Empty() {
		return fmt.Errorf("update course %d: empty patch", id)
	}

	var (
		sets []string
		args []any
	)
	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.UserID != nil {
		add("user_id", *patch.UserID)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.EstimatedTime != nil {
		add("estimated_time", *patch.EstimatedTime)
	}
	if patch.MaterialsNeeded != nil {
		add("materials_needed", *patch.MaterialsNeeded)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE courses SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// ========================
// DELETE COURSE BY ID
// ========================

func (r *CourseRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
