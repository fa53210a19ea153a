package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/db"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
)

func newSchemeTestApp(gdb *gorm.DB) *fiber.App {
	app := fiber.New()
	h := NewSchemeHandler(gdb)
	app.Get("/schemes", h.List)
	app.Get("/schemes/:id", h.Get)
	return app
}

func getSchemes(t *testing.T, app *fiber.App, path string) (*http.Response, []models.Scheme) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}

	var body struct {
		Success bool            `json:"success"`
		Data    []models.Scheme `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return resp, body.Data
}

func TestListSchemesReturnsSeededCatalogSorted(t *testing.T) {
	gdb := openTestDB(t, schemesDDL)
	assert.NoError(t, db.SeedSchemes(gdb))

	app := newSchemeTestApp(gdb)

	resp, schemes := getSchemes(t, app, "/schemes")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	titles := make([]string, 0, len(schemes))
	for _, s := range schemes {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{
		"Mahila Shakti Kendra",
		"Mudra Loan for Women Entrepreneurs",
		"Pradhan Mantri Suraksha Bima Yojana",
	}, titles)
}

func TestListSchemesCategoryFilter(t *testing.T) {
	gdb := openTestDB(t, schemesDDL)
	assert.NoError(t, db.SeedSchemes(gdb))

	app := newSchemeTestApp(gdb)

	// filter is case-insensitive
	resp, schemes := getSchemes(t, app, "/schemes?category=INSURANCE")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	if assert.Len(t, schemes, 1) {
		assert.Equal(t, "Pradhan Mantri Suraksha Bima Yojana", schemes[0].Title)
	}

	// "all" means no filter
	resp, schemes = getSchemes(t, app, "/schemes?category=all")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, schemes, 3)
}

func TestGetScheme(t *testing.T) {
	gdb := openTestDB(t, schemesDDL)
	assert.NoError(t, db.SeedSchemes(gdb))

	app := newSchemeTestApp(gdb)

	var seeded models.Scheme
	assert.NoError(t, gdb.First(&seeded, "title = ?", "Mahila Shakti Kendra").Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/schemes/"+seeded.ID.String(), nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/schemes/not-a-uuid", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/schemes/"+uuid.NewString(), nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
