package dto

import (
	"strings"

	"github.com/legit-games/catalog-service/models"
)

// RoleRef grants a role by id.
type RoleRef struct {
	ID int64 `json:"id" binding:"required,gt=0"`
}

// UserUpdateRequest is the body of PUT /users/:id.
type UserUpdateRequest struct {
	FirstName string    `json:"firstName" binding:"required"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email" binding:"required,email"`
	Roles     []RoleRef `json:"roles" binding:"dive"`
}

// UserInsertRequest is the body of POST /users.
type UserInsertRequest struct {
	UserUpdateRequest
	Password string `json:"password" binding:"required,min=6"`
}

func (r UserUpdateRequest) ToModel() *models.User {
	return &models.User{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.TrimSpace(r.Email),
	}
}

func (r UserUpdateRequest) RoleIDs() []int64 {
	ids := make([]int64, len(r.Roles))
	for i, role := range r.Roles {
		ids[i] = role.ID
	}
	return ids
}

type RoleResponse struct {
	ID        int64  `json:"id"`
	Authority string `json:"authority"`
}

// UserResponse represents a user in API responses. The password hash is never included.
type UserResponse struct {
	ID        int64          `json:"id"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Email     string         `json:"email"`
	Roles     []RoleResponse `json:"roles"`
}

// FromUser converts a models.User to UserResponse.
func FromUser(u models.User) UserResponse {
	roles := make([]RoleResponse, len(u.Roles))
	for i, r := range u.Roles {
		roles[i] = RoleResponse{ID: r.ID, Authority: r.Authority}
	}
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Roles:     roles,
	}
}
