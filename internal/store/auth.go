package store

import (
	"context"
	"net/url"
	"strings"

	"assetdesk/internal/mailer"
	"assetdesk/internal/storage"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/metadata"
	"assetdesk/pkg/models"
	"assetdesk/pkg/roles"
	"assetdesk/pkg/security"

	"github.com/google/uuid"
)

const (
	defaultDepartment = "General"
	resetFailure      = "Failed to send reset link"
)

// Login authenticates the session when a stored user has exactly this email and password.
// A failed attempt leaves the current session user untouched.
func (s *Store) Login(ctx context.Context, email, password string) (models.User, error) {
	var result models.User

	err := s.run("Login failed", func() error {
		users, err := storage.Load[models.User](ctx, s.adapter, storage.Users)
		if err != nil {
			return err
		}

		for _, u := range users {
			if u.Email == email && security.CheckPassword(u.Password, password) {
				result = u
				s.session.authenticate(u)
				return nil
			}
		}

		return custom_error.ErrInvalidCredentials
	})

	return result, err
}

// Signup registers a new email account. Registering the very first account
// also seeds demo assets and stock items into whichever collections are empty.
func (s *Store) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	var result models.User

	err := s.run("Signup failed", func() error {
		if err := models.Validate(req); err != nil {
			return err
		}

		users, err := storage.Load[models.User](ctx, s.adapter, storage.Users)
		if err != nil {
			return err
		}

		if emailTaken(users, req.Email) {
			return custom_error.ErrDuplicateAccount
		}

		hash, err := security.HashPassword(req.Password)
		if err != nil {
			return custom_error.OperationFailed("hash password", err)
		}

		user := models.User{
			ID:         s.uniqueID(func(id string) bool { return indexOfUser(users, id) >= 0 }),
			Name:       req.Name,
			Email:      req.Email,
			Role:       req.Role,
			Department: req.Department,
			Password:   hash,
			Provider:   metadata.ProviderEmail,
		}
		if len(users) == 0 && s.firstUserRole != "" {
			user.Role = s.firstUserRole
		}
		if user.Role == "" {
			user.Role = roles.Staff
		}
		if user.Department == "" {
			user.Department = defaultDepartment
		}

		users = append(users, user)
		if err := storage.Save(ctx, s.adapter, storage.Users, users); err != nil {
			return err
		}

		if len(users) == 1 {
			if err := s.bootstrap(ctx); err != nil {
				return err
			}
		}

		result = user
		s.session.authenticate(user)
		return nil
	})

	return result, err
}

func (s *Store) bootstrap(ctx context.Context) error {
	if _, err := s.loadAssets(ctx, s.signupAssetSeed); err != nil {
		return err
	}
	if _, err := s.loadStockItems(ctx, s.stockSeed); err != nil {
		return err
	}
	return nil
}

// SocialLogin signs in a federated identity, creating a staff account on first sight.
func (s *Store) SocialLogin(ctx context.Context, provider string, external models.ExternalUser) (models.User, error) {
	var result models.User

	err := s.run("Social login failed", func() error {
		p, err := metadata.NewProvider(provider)
		if err != nil || !p.IsFederated() {
			return custom_error.NewValidationError("provider", "oneof")
		}
		if err := models.Validate(external); err != nil {
			return err
		}

		users, err := storage.Load[models.User](ctx, s.adapter, storage.Users)
		if err != nil {
			return err
		}

		for _, u := range users {
			if u.Provider == p && u.ProviderID == external.ID {
				result = u
				s.session.authenticate(u)
				return nil
			}
		}

		if external.Email != "" && emailTaken(users, external.Email) {
			return custom_error.ErrDuplicateAccount
		}

		hash, err := security.HashPassword(uuid.NewString())
		if err != nil {
			return custom_error.OperationFailed("hash password", err)
		}

		user := models.User{
			ID:         s.uniqueID(func(id string) bool { return indexOfUser(users, id) >= 0 }),
			Name:       external.Name,
			Email:      external.Email,
			Role:       roles.Staff,
			Department: defaultDepartment,
			Password:   hash,
			Provider:   p,
			ProviderID: external.ID,
		}

		users = append(users, user)
		if err := storage.Save(ctx, s.adapter, storage.Users, users); err != nil {
			return err
		}

		result = user
		s.session.authenticate(user)
		return nil
	})

	return result, err
}

// ResetPassword issues a reset token for email and mails a link built on origin.
func (s *Store) ResetPassword(ctx context.Context, email, origin string) error {
	return s.run(resetFailure, func() error {
		if email == "" || !strings.Contains(email, "@") {
			return custom_error.ErrInvalidEmail
		}

		users, err := storage.Load[models.User](ctx, s.adapter, storage.Users)
		if err != nil {
			return err
		}
		if indexOfUserByEmail(users, email) < 0 {
			return custom_error.ErrUnknownAccount
		}

		token, err := s.tokens.Generate(ctx, email)
		if err != nil {
			return err
		}

		return mailer.SendPasswordResetEmail(ctx, s.mailer, email, ResetLink(origin, token.Token, email))
	})
}

func ResetLink(origin, token, email string) string {
	return strings.TrimSuffix(origin, "/") +
		"/reset-password?token=" + url.QueryEscape(token) +
		"&email=" + url.QueryEscape(email)
}

// CompletePasswordReset replaces the password of email's account and consumes the token.
func (s *Store) CompletePasswordReset(ctx context.Context, token, email, newPassword string) error {
	return s.run("Password reset failed", func() error {
		req := models.CompleteResetRequest{Token: token, Email: email, NewPassword: newPassword}
		if err := models.Validate(req); err != nil {
			return err
		}

		ok, err := s.tokens.Validate(ctx, token, email)
		if err != nil {
			return err
		}
		if !ok {
			return custom_error.ErrInvalidOrExpiredToken
		}

		users, err := storage.Load[models.User](ctx, s.adapter, storage.Users)
		if err != nil {
			return err
		}

		i := indexOfUserByEmail(users, email)
		if i < 0 {
			return custom_error.ErrUnknownAccount
		}

		hash, err := security.HashPassword(newPassword)
		if err != nil {
			return custom_error.OperationFailed("hash password", err)
		}
		users[i].Password = hash

		if err := storage.Save(ctx, s.adapter, storage.Users, users); err != nil {
			return err
		}

		return s.tokens.Remove(ctx, token)
	})
}

func (s *Store) Users(ctx context.Context) ([]models.User, error) {
	var result []models.User

	err := s.run("Failed to fetch users", func() error {
		users, err := storage.Load[models.User](ctx, s.adapter, storage.Users)
		result = users
		return err
	})

	return result, err
}

func (s *Store) User(ctx context.Context, id string) (models.User, error) {
	var result models.User

	err := s.run("Failed to fetch user", func() error {
		users, err := storage.Load[models.User](ctx, s.adapter, storage.Users)
		if err != nil {
			return err
		}
		i := indexOfUser(users, id)
		if i < 0 {
			return custom_error.ErrNotFound
		}
		result = users[i]
		return nil
	})

	return result, err
}

// UpdateUserRole changes the role of an existing account.
func (s *Store) UpdateUserRole(ctx context.Context, id string, role roles.Role) (models.User, error) {
	var result models.User

	err := s.run("Failed to update user", func() error {
		if err := models.Validate(models.RoleRequest{Role: role}); err != nil {
			return err
		}

		users, err := storage.Load[models.User](ctx, s.adapter, storage.Users)
		if err != nil {
			return err
		}

		i := indexOfUser(users, id)
		if i < 0 {
			return custom_error.ErrNotFound
		}
		users[i].Role = role

		if err := storage.Save(ctx, s.adapter, storage.Users, users); err != nil {
			return err
		}

		result = users[i]
		return nil
	})

	return result, err
}

// emailTaken compares case-insensitively; one address never backs two accounts.
func emailTaken(users []models.User, email string) bool {
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func indexOfUser(users []models.User, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func indexOfUserByEmail(users []models.User, email string) int {
	for i, u := range users {
		if u.Email == email {
			return i
		}
	}
	return -1
}
