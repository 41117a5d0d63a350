package models

import (
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/roles"
)

// User is the persisted account record. Password holds a bcrypt hash.
type User struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Role       roles.Role        `json:"role"`
	Department string            `json:"department"`
	Password   string            `json:"password"`
	Provider   metadata.Provider `json:"provider,omitempty"`
	ProviderID string            `json:"providerId,omitempty"`
}

// UserView is the user as exposed over the API.
type UserView struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Role       roles.Role        `json:"role"`
	Department string            `json:"department"`
	Provider   metadata.Provider `json:"provider,omitempty"`
}

func (u *User) View() UserView {
	return UserView{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		Provider:   u.Provider,
	}
}

type SignupRequest struct {
	Name       string     `json:"name" binding:"required"`
	Email      string     `json:"email" binding:"required,email"`
	Password   string     `json:"password" binding:"required"`
	Role       roles.Role `json:"role" binding:"omitempty,oneof=admin manager staff"`
	Department string     `json:"department"`
}

// RegistrationRequest is the public signup payload. It has no role field.
type RegistrationRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	Department string `json:"department"`
}

func (r RegistrationRequest) SignupRequest() SignupRequest {
	return SignupRequest{
		Name:       r.Name,
		Email:      r.Email,
		Password:   r.Password,
		Department: r.Department,
	}
}

type RoleRequest struct {
	Role roles.Role `json:"role" binding:"required,oneof=admin manager staff"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ExternalUser is the profile a federated identity provider returns.
type ExternalUser struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email string `json:"email"`
}

type CompleteResetRequest struct {
	Token       string `json:"token" binding:"required"`
	Email       string `json:"email" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
