package handlers

import (
	"context"
	"net/http"

	"github.com/crucial707/course-api/internal/middleware"
	"github.com/crucial707/course-api/internal/models"
)

type UserStore interface {
	Create(ctx context.Context, u models.NewUser) (int, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Repo   UserStore
	Hasher PasswordHasher
}

type userInput struct {
	FirstName    string `json:"firstName" validate:"required,max=255"`
	LastName     string `json:"lastName" validate:"required,max=255"`
	EmailAddress string `json:"emailAddress" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,bcryptlen"`
}

// ==========================
// Current User
// ==========================
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) error {
	user, ok := middleware.GetCurrentUser(r.Context())
	if !ok {
		return &HTTPError{Status: http.StatusUnauthorized, Message: "Auth header not found"}
	}
	writeJSON(w, http.StatusOK, user)
	return nil
}

// ==========================
// Create User (password stored as bcrypt hash)
// ==========================
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) error {
	var input userInput
	if err := decodeJSON(r, &input); err != nil {
		return err
	}
	if err := validateStruct("User", input); err != nil {
		return err
	}

	hash, err := h.Hasher.Hash(input.Password)
	if err != nil {
		return err
	}

	if _, err := h.Repo.Create(r.Context(), models.NewUser{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		EmailAddress: input.EmailAddress,
		PasswordHash: hash,
	}); err != nil {
		return err
	}

	w.Header().Set("Location", "/")
	w.WriteHeader(http.StatusCreated)
	return nil
}
