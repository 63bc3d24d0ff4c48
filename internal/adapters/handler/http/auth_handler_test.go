package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerPayload(email, password string) map[string]any {
	return map[string]any{
		"email":            email,
		"password":         password,
		"confirm_password": password,
		"full_name":        "Ada Sleeper",
		"age":              34,
		"sleep_goal":       8,
	}
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success: Should return 201 and created user (No Password)", func(t *testing.T) {
		app := newTestApp(t, nil)

		w := app.do(http.MethodPost, "/api/v1/auth/register", "", registerPayload("api_test@kanso.app", "secret-pass"))

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		user := decode[userResponse](t, w)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "api_test@kanso.app", user.Email)
		assert.Equal(t, "Ada Sleeper", user.FullName)
		assert.Equal(t, 8.0, user.SleepGoal)
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("Fail: Auth errors carry their code and message", func(t *testing.T) {
		app := newTestApp(t, nil)
		require.Equal(t, http.StatusCreated,
			app.do(http.MethodPost, "/api/v1/auth/register", "", registerPayload("taken@kanso.app", "secret-pass")).Code)

		mismatch := registerPayload("new@kanso.app", "secret-pass")
		mismatch["confirm_password"] = "other-pass"

		tests := []struct {
			name    string
			payload map[string]any
			status  int
			code    string
			message string
		}{
			{"passwords differ", mismatch, http.StatusBadRequest, "passwords-mismatch", "Passwords do not match."},
			{"short password", registerPayload("new@kanso.app", "abc"), http.StatusBadRequest, "weak-password", "Password should be at least 6 characters long."},
			{"bad email", registerPayload("not-an-email", "secret-pass"), http.StatusBadRequest, "invalid-email", "Invalid email address."},
			{"email in use", registerPayload("TAKEN@kanso.app", "secret-pass"), http.StatusConflict, "email-already-in-use", "Email is already in use."},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := app.do(http.MethodPost, "/api/v1/auth/register", "", tt.payload)

				assert.Equal(t, tt.status, w.Code)
				body := decode[errorResponse](t, w)
				assert.Equal(t, tt.code, body.Error)
				assert.Equal(t, tt.message, body.Message)
			})
		}
	})

	t.Run("Fail: Should return 400 for malformed JSON", func(t *testing.T) {
		app := newTestApp(t, nil)

		w := app.do(http.MethodPost, "/api/v1/auth/register", "", `{"email": "x@y.z",`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})

	t.Run("Fail: Should return 400 when confirm_password is missing", func(t *testing.T) {
		app := newTestApp(t, nil)

		w := app.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"email":    "x@kanso.app",
			"password": "secret-pass",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	app := newTestApp(t, nil)
	require.Equal(t, http.StatusCreated,
		app.do(http.MethodPost, "/api/v1/auth/register", "", registerPayload("login@kanso.app", "secret-pass")).Code)

	t.Run("Success: Token opens protected routes", func(t *testing.T) {
		w := app.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    " Login@Kanso.app ",
			"password": "secret-pass",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[loginResponse](t, w)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "login@kanso.app", resp.User.Email)

		list := app.do(http.MethodGet, "/api/v1/sleep/entries", resp.Token, nil)
		assert.Equal(t, http.StatusOK, list.Code)
	})

	t.Run("Fail: Wrong password", func(t *testing.T) {
		w := app.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "login@kanso.app",
			"password": "not-the-pass",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decode[errorResponse](t, w)
		assert.Equal(t, "wrong-password", body.Error)
		assert.Equal(t, "Incorrect password. Please try again.", body.Message)
	})

	t.Run("Fail: Unknown user", func(t *testing.T) {
		w := app.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "nobody@kanso.app",
			"password": "secret-pass",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "user-not-found", decode[errorResponse](t, w).Error)
	})
}

func TestAuthHandler_PasswordReset(t *testing.T) {
	app := newTestApp(t, nil)
	require.Equal(t, http.StatusCreated,
		app.do(http.MethodPost, "/api/v1/auth/register", "", registerPayload("forgot@kanso.app", "old-secret")).Code)

	t.Run("Fail: Unknown email", func(t *testing.T) {
		w := app.do(http.MethodPost, "/api/v1/auth/password/forgot", "", map[string]string{"email": "ghost@kanso.app"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "No user found with that email address.", decode[errorResponse](t, w).Message)
	})

	t.Run("Success: Token resets the password once", func(t *testing.T) {
		w := app.do(http.MethodPost, "/api/v1/auth/password/forgot", "", map[string]string{"email": "forgot@kanso.app"})
		require.Equal(t, http.StatusAccepted, w.Code)

		token := app.notifier.last()
		require.NotEmpty(t, token)

		reset := map[string]string{
			"token":            token,
			"password":         "new-secret",
			"confirm_password": "new-secret",
		}
		require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/v1/auth/password/reset", "", reset).Code)

		login := app.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "forgot@kanso.app",
			"password": "new-secret",
		})
		assert.Equal(t, http.StatusOK, login.Code)

		again := app.do(http.MethodPost, "/api/v1/auth/password/reset", "", reset)
		assert.Equal(t, http.StatusBadRequest, again.Code)
		assert.Equal(t, "invalid-reset-token", decode[errorResponse](t, again).Error)
	})

	t.Run("Fail: Mismatched confirmation", func(t *testing.T) {
		w := app.do(http.MethodPost, "/api/v1/auth/password/reset", "", map[string]string{
			"token":            "whatever",
			"password":         "new-secret",
			"confirm_password": "new-secreT",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "passwords-mismatch", decode[errorResponse](t, w).Error)
	})
}
