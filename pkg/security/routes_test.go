package security

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"assetdesk/internal/rate_limiter"
	custom_error "assetdesk/pkg/errors"
	"assetdesk/pkg/models"
	"assetdesk/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockAuthService) Signup(ctx context.Context, req models.SignupRequest) (models.User, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockAuthService) SocialLogin(ctx context.Context, provider string, external models.ExternalUser) (models.User, error) {
	args := m.Called(ctx, provider, external)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, origin string) error {
	return m.Called(ctx, email, origin).Error(0)
}

func (m *MockAuthService) CompletePasswordReset(ctx context.Context, token, email, newPassword string) error {
	return m.Called(ctx, token, email, newPassword).Error(0)
}

func (m *MockAuthService) Logout() {
	m.Called()
}

func (m *MockAuthService) Session() models.Session {
	return m.Called().Get(0).(models.Session)
}

type MockOAuth struct {
	mock.Mock
}

func (m *MockOAuth) AuthURL(name, state string) (string, error) {
	args := m.Called(name, state)
	return args.String(0), args.Error(1)
}

func (m *MockOAuth) Exchange(ctx context.Context, name, code string) (models.ExternalUser, error) {
	args := m.Called(ctx, name, code)
	return args.Get(0).(models.ExternalUser), args.Error(1)
}

type fixture struct {
	auth   *MockAuthService
	oauth  *MockOAuth
	tokens *TokenIssuer
	router *gin.Engine
}

func newFixture(t *testing.T, attempts int) *fixture {
	gin.SetMode(gin.TestMode)

	tokens, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	limiter := rate_limiter.NewRateLimiter(attempts, time.Minute)
	t.Cleanup(limiter.Stop)

	f := &fixture{
		auth:   new(MockAuthService),
		oauth:  new(MockOAuth),
		tokens: tokens,
		router: gin.New(),
	}

	handler := NewAuthHandler(f.auth, f.oauth, tokens, limiter, "https://app.example.com")
	handler.RegisterRoutes(f.router)
	protected := f.router.Group("")
	protected.Use(tokens.JWTMiddleware())
	handler.RegisterProtectedRoutes(protected)

	return f
}

func (f *fixture) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

var testUser = models.User{
	ID:         "u-1",
	Name:       "Ada",
	Email:      "ada@example.com",
	Role:       roles.Manager,
	Department: "IT",
	Password:   "$2a$10$hash",
}

type tokenResponse struct {
	Token string          `json:"token"`
	User  models.UserView `json:"user"`
}

func TestLogin(t *testing.T) {
	f := newFixture(t, 10)

	t.Run("issues a token carrying the user's claims", func(t *testing.T) {
		f.auth.ExpectedCalls = nil
		f.auth.On("Login", mock.Anything, "ada@example.com", "secret").Return(testUser, nil)

		w := f.post("/auth/login", `{"email":"ada@example.com","password":"secret"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "password")

		var resp tokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, testUser.View(), resp.User)

		claims, err := f.tokens.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims["userID"])
		assert.Equal(t, "manager", claims["role"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		f.auth.ExpectedCalls = nil
		f.auth.On("Login", mock.Anything, "ada@example.com", "wrong").Return(models.User{}, custom_error.ErrInvalidCredentials)

		w := f.post("/auth/login", `{"email":"ada@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Login failed")
	})

	t.Run("missing password", func(t *testing.T) {
		f.auth.ExpectedCalls = nil

		w := f.post("/auth/login", `{"email":"ada@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginIsRateLimited(t *testing.T) {
	f := newFixture(t, 2)
	f.auth.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(models.User{}, custom_error.ErrInvalidCredentials)

	body := `{"email":"ada@example.com","password":"wrong"}`
	assert.Equal(t, http.StatusUnauthorized, f.post("/auth/login", body).Code)
	assert.Equal(t, http.StatusUnauthorized, f.post("/auth/login", body).Code)

	w := f.post("/auth/login", body)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	f.auth.AssertNumberOfCalls(t, "Login", 2)
}

func TestSignup(t *testing.T) {
	f := newFixture(t, 10)

	t.Run("created", func(t *testing.T) {
		f.auth.ExpectedCalls = nil
		req := models.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret"}
		f.auth.On("Signup", mock.Anything, req).Return(testUser, nil)

		w := f.post("/auth/signup", `{"name":"Ada","email":"ada@example.com","password":"secret"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"token"`)
	})

	t.Run("role in the payload is ignored", func(t *testing.T) {
		f.auth.ExpectedCalls = nil
		req := models.SignupRequest{Name: "Eve", Email: "eve@example.com", Password: "secret"}
		staff := models.User{ID: "u-2", Name: "Eve", Email: "eve@example.com", Role: roles.Staff}
		f.auth.On("Signup", mock.Anything, req).Return(staff, nil)

		w := f.post("/auth/signup", `{"name":"Eve","email":"eve@example.com","password":"secret","role":"admin"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp tokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		claims, err := f.tokens.ParseToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "staff", claims["role"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		f.auth.ExpectedCalls = nil
		f.auth.On("Signup", mock.Anything, mock.Anything).Return(models.User{}, custom_error.ErrDuplicateAccount)

		w := f.post("/auth/signup", `{"name":"Ada","email":"ada@example.com","password":"secret"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestSocialLoginOnlyThroughOAuthCallback(t *testing.T) {
	f := newFixture(t, 10)

	w := f.post("/auth/social/github", `{"id":"4242","name":"Victim","email":"victim@example.com"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), `"token"`)
	f.auth.AssertNotCalled(t, "SocialLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestOAuthFlow(t *testing.T) {
	f := newFixture(t, 10)
	f.oauth.On("AuthURL", "github", mock.AnythingOfType("string")).
		Return("https://github.com/login/oauth/authorize?state=x", nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/oauth/github", nil))

	require.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "https://github.com/login/oauth/authorize?state=x", w.Header().Get("Location"))

	var state *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == stateCookie {
			state = cookie
		}
	}
	require.NotNil(t, state)
	assert.True(t, state.HttpOnly)

	external := models.ExternalUser{ID: "gh-42", Name: "Ada", Email: "ada@example.com"}
	f.oauth.On("Exchange", mock.Anything, "github", "auth-code").Return(external, nil)
	f.auth.On("SocialLogin", mock.Anything, "github", external).Return(testUser, nil)

	t.Run("state mismatch", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/oauth/github/callback?state=other&code=auth-code", nil)
		req.AddCookie(state)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("callback signs in", func(t *testing.T) {
		query := url.Values{"state": {state.Value}, "code": {"auth-code"}}
		req := httptest.NewRequest(http.MethodGet, "/auth/oauth/github/callback?"+query.Encode(), nil)
		req.AddCookie(state)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token"`)
	})
}

func TestStartOAuthUnknownProvider(t *testing.T) {
	f := newFixture(t, 10)
	f.oauth.On("AuthURL", "myspace", mock.Anything).Return("", errors.New("unknown or unconfigured provider: myspace"))

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/oauth/myspace", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t, 10)

	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"sent", nil, http.StatusOK},
		{"invalid email", custom_error.ErrInvalidEmail, http.StatusBadRequest},
		{"unknown account", custom_error.ErrUnknownAccount, http.StatusNotFound},
		{"mailer failure", errors.New("failed to send email: timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.auth.ExpectedCalls = nil
			f.auth.On("ResetPassword", mock.Anything, "ada@example.com", "https://app.example.com").Return(tt.err)

			w := f.post("/auth/reset-password", `{"email":"ada@example.com"}`)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestCompletePasswordReset(t *testing.T) {
	f := newFixture(t, 10)

	f.auth.On("CompletePasswordReset", mock.Anything, "tok", "ada@example.com", "new-secret").Return(nil).Once()
	w := f.post("/auth/reset-password/complete", `{"token":"tok","email":"ada@example.com","newPassword":"new-secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	f.auth.On("CompletePasswordReset", mock.Anything, "old", "ada@example.com", "new-secret").Return(custom_error.ErrInvalidOrExpiredToken)
	w = f.post("/auth/reset-password/complete", `{"token":"old","email":"ada@example.com","newPassword":"new-secret"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedSessionRoutes(t *testing.T) {
	f := newFixture(t, 10)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/session", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := f.tokens.GenerateJWT(&testUser)
	require.NoError(t, err)
	view := testUser.View()
	f.auth.On("Session").Return(models.Session{IsAuthenticated: true, CurrentUser: &view})
	f.auth.On("Logout").Return()

	req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isAuthenticated":true`)

	req = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.auth.AssertCalled(t, "Logout")
}

func TestIsPrivateIP(t *testing.T) {
	assert.True(t, isPrivateIP("10.1.2.3"))
	assert.True(t, isPrivateIP("192.168.0.10"))
	assert.True(t, isPrivateIP("127.0.0.1"))
	assert.True(t, isPrivateIP("::1"))
	assert.False(t, isPrivateIP("8.8.8.8"))
	assert.False(t, isPrivateIP("not-an-ip"))
}
