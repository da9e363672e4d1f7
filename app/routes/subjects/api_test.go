package subjects

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahamanand-svg/School/app/curriculum"
	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/routes/auth"
	"github.com/yahamanand-svg/School/app/store/memory"
)

func setupApp(t *testing.T) (*fiber.App, *memory.Store, string) {
	t.Helper()
	st := memory.New()
	app := fiber.New()
	SetupSubjectsRoutes(app, st)

	token, err := auth.GenerateJWT(models.Identity{Role: models.RoleAdmin, UserID: "a1", Name: "Principal"})
	require.NoError(t, err)
	return app, st, token
}

func TestSyncIsIdempotent(t *testing.T) {
	app, st, token := setupApp(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/subjects/sync", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}

	// One row per mapping regardless of how often the sync runs.
	all, err := st.SubjectsForClassNumber(1)
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, sub := range all {
		names[sub.Name] = true
	}
	assert.Len(t, all, len(names))
	assert.True(t, names["Hindi"])
	assert.True(t, names["EVS"])
}

func TestSyncRequiresAdmin(t *testing.T) {
	app, _, _ := setupApp(t)

	teacherToken, err := auth.GenerateJWT(models.Identity{Role: models.RoleTeacher, UserID: "t1", Name: "T"})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/subjects/sync", nil)
	req.Header.Set("Authorization", "Bearer "+teacherToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestListByClass(t *testing.T) {
	app, _, token := setupApp(t)

	req := httptest.NewRequest("POST", "/api/subjects/sync", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, err := app.Test(req)
	require.NoError(t, err)

	cases := []struct {
		class   string
		want    int
		present string
		absent  string
	}{
		{"5", 5, "EVS", "Science"},
		{"V", 5, "EVS", "Science"},
		{"7", 6, "Science", "EVS"},
		{"10", 6, "AI", "Computer"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/api/subjects/?class="+tc.class, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode, "class %s", tc.class)

		var body struct {
			Subjects []models.Subject `json:"subjects"`
		}
		raw, _ := io.ReadAll(resp.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Len(t, body.Subjects, tc.want, "class %s", tc.class)

		names := make(map[string]bool)
		for _, sub := range body.Subjects {
			names[sub.Name] = true
		}
		assert.True(t, names[tc.present], "class %s should have %s", tc.class, tc.present)
		assert.False(t, names[tc.absent], "class %s should not have %s", tc.class, tc.absent)
	}
}

func TestListRejectsBadClass(t *testing.T) {
	app, _, token := setupApp(t)

	for _, class := range []string{"", "Nursery"} {
		req := httptest.NewRequest("GET", "/api/subjects/?class="+class, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	}
}

// Mapping table count guard for the list expectations above.
func TestMappingTableSize(t *testing.T) {
	assert.Len(t, curriculum.SubjectMappings, 8)
}
