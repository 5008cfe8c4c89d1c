package http

import (
	"github.com/weddingmoments/studio-backend/internal/auth"
	"github.com/weddingmoments/studio-backend/internal/users/domain"
	"github.com/weddingmoments/studio-backend/internal/users/service"
)

type Handler struct {
	directory *service.Directory
}

func New(directory *service.Directory) *Handler {
	return &Handler{directory: directory}
}

type createUserRequest struct {
	Name            string    `json:"name"`
	Email           string    `json:"email" binding:"omitempty,email"`
	Phone           string    `json:"phone"`
	Role            auth.Role `json:"role"`
	Password        string    `json:"password"`
	ConfirmPassword string    `json:"confirmPassword"`
}

func (r createUserRequest) toDomain() domain.NewUser {
	return domain.NewUser{
		Name:            r.Name,
		Email:           r.Email,
		Phone:           r.Phone,
		Role:            r.Role,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}
