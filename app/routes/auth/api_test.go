package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store/memory"
)

func setupApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	st := memory.New()
	app := fiber.New()
	SetupAuthRoutes(app, st)
	return app, st
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLogin(t *testing.T) {
	app, st := setupApp(t)

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	st.AddTeacher(&models.Teacher{
		TeacherID: "T-100", Name: "Asha Verma", Email: "asha@school.test",
		Password: hash, IsActive: true,
	})

	t.Run("valid credentials return a token", func(t *testing.T) {
		req := jsonRequest("POST", "/auth/login", LoginRequest{
			Role: "teacher", Identifier: "T-100", Password: "s3cret-pass",
		})
		resp, err := app.Test(req, 10000)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		raw, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		require.NotEmpty(t, body.Token)

		claims, err := ValidateJWT(body.Token)
		require.NoError(t, err)
		assert.Equal(t, "teacher", claims.Role)
		assert.Equal(t, "Asha Verma", claims.Name)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		req := jsonRequest("POST", "/auth/login", LoginRequest{
			Role: "teacher", Identifier: "T-100", Password: "wrong",
		})
		resp, err := app.Test(req, 10000)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("wrong role lookup is rejected", func(t *testing.T) {
		// The teacher's ID is not a valid admission ID.
		req := jsonRequest("POST", "/auth/login", LoginRequest{
			Role: "student", Identifier: "T-100", Password: "s3cret-pass",
		})
		resp, err := app.Test(req, 10000)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("unknown role fails validation", func(t *testing.T) {
		req := jsonRequest("POST", "/auth/login", LoginRequest{
			Role: "superuser", Identifier: "x", Password: "y",
		})
		resp, err := app.Test(req, 10000)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestAuthMiddleware(t *testing.T) {
	app, _ := setupApp(t)

	t.Run("no token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/auth/me", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("bearer token accepted", func(t *testing.T) {
		token, err := GenerateJWT(models.Identity{
			Role: models.RoleAdmin, UserID: "a1", Name: "Principal",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})
}

func TestRequireRoles(t *testing.T) {
	app, _ := setupApp(t)
	app.Get("/admin-only", AuthMiddleware, RequireRoles(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	teacherToken, err := GenerateJWT(models.Identity{Role: models.RoleTeacher, UserID: "t1", Name: "T"})
	require.NoError(t, err)
	adminToken, err := GenerateJWT(models.Identity{Role: models.RoleAdmin, UserID: "a1", Name: "A"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+teacherToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
