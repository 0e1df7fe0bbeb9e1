package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crucial707/course-api/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, u models.NewUser) (int, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO users (first_name, last_name, email_address, password)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		u.FirstName, u.LastName, u.EmailAddress, u.PasswordHash,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, email_address, password, created_at, updated_at
		FROM users
		WHERE email_address = $1
	`

	user := &models.User{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.EmailAddress,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
