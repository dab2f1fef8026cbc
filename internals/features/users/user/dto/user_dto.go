// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "schoolku_backend/internals/features/users/user/model"
)

type UserResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	UserSchoolID uuid.UUID `json:"user_school_id"`
	UserName     string    `json:"user_name"`
	UserEmail    *string   `json:"user_email,omitempty"`
	UserRole     string    `json:"user_role"`
	UserIsActive bool      `json:"user_is_active"`
	UserCreated  time.Time `json:"user_created_at"`
}

func FromUserModel(u m.UserModel) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		UserSchoolID: u.UserSchoolID,
		UserName:     u.UserName,
		UserEmail:    u.UserEmail,
		UserRole:     u.UserRole,
		UserIsActive: u.UserIsActive,
		UserCreated:  u.UserCreatedAt,
	}
}

func FromUserModels(rows []m.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, FromUserModel(u))
	}
	return out
}
