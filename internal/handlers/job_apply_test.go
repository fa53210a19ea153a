package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/services/safety"
)

// newJobTestApp mounts the apply route with the locals the JWT middleware
// chain would set, so tests pick the acting worker via a header.
func newJobTestApp(gdb *gorm.DB) *fiber.App {
	app := fiber.New()
	h := NewJobHandler(gdb, safety.NewSafetyService(gdb))
	app.Post("/jobs/:id/apply", func(c *fiber.Ctx) error {
		c.Locals("userId", c.Get("X-User-Id"))
		c.Locals("role", "worker")
		return h.Apply(c)
	})
	return app
}

func seedWorker(t *testing.T, gdb *gorm.DB, name string) models.User {
	t.Helper()
	u := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    strings.ToLower(name) + "@example.com",
		Phone:    uuid.NewString()[:12],
		Password: "x",
		Role:     models.RoleWorker,
		IsActive: true,
	}
	assert.NoError(t, gdb.Create(&u).Error)
	return u
}

func applyAs(t *testing.T, app *fiber.App, jobID, workerID uuid.UUID) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/jobs/"+jobID.String()+"/apply", nil)
	req.Header.Set("X-User-Id", workerID.String())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("apply request: %v", err)
	}
	return resp
}

func TestApplyAssignsJobToFirstWorkerOnly(t *testing.T) {
	gdb := openTestDB(t, usersDDL, jobsDDL, policiesDDL)

	employer := models.User{
		ID: uuid.New(), Name: "Asha", Email: "asha@example.com",
		Phone: "9000000001", Password: "x", Role: models.RoleEmployer, IsActive: true,
	}
	assert.NoError(t, gdb.Create(&employer).Error)
	priya := seedWorker(t, gdb, "Priya")
	meena := seedWorker(t, gdb, "Meena")

	job := models.Job{
		ID: uuid.New(), Title: "House cleaning", Category: "Cleaning",
		Description: "Deep clean, 2BHK", Location: "Delhi", Duration: "2 hours",
		Payment: 500, SafetyFee: models.DefaultSafetyFee,
		EmployerID: employer.ID, EmployerName: employer.Name,
		Status: models.JobStatusOpen,
	}
	assert.NoError(t, gdb.Create(&job).Error)

	app := newJobTestApp(gdb)

	// two workers race for the same job: exactly one wins
	first := applyAs(t, app, job.ID, priya.ID)
	assert.Equal(t, fiber.StatusOK, first.StatusCode)

	var win struct {
		Success bool `json:"success"`
		Data    struct {
			PolicyID     uuid.UUID `json:"policy_id"`
			PolicyNumber string    `json:"policy_number"`
			FeePaid      int64     `json:"fee_paid"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(first.Body).Decode(&win))
	assert.True(t, strings.HasPrefix(win.Data.PolicyNumber, "SP-"))
	assert.Equal(t, models.DefaultSafetyFee, win.Data.FeePaid)

	second := applyAs(t, app, job.ID, meena.ID)
	assert.Equal(t, fiber.StatusConflict, second.StatusCode)

	var lose struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	assert.NoError(t, json.NewDecoder(second.Body).Decode(&lose))
	assert.False(t, lose.Success)
	assert.Equal(t, "Job already taken", lose.Message)

	var updated models.Job
	assert.NoError(t, gdb.First(&updated, "id = ?", job.ID).Error)
	assert.Equal(t, models.JobStatusAssigned, updated.Status)
	if assert.NotNil(t, updated.WorkerID) {
		assert.Equal(t, priya.ID, *updated.WorkerID)
	}
	assert.Equal(t, priya.Name, updated.WorkerName)

	// assigned implies exactly one active policy, held by the winner
	var policies []models.SafetyPolicy
	assert.NoError(t, gdb.Where("job_id = ?", job.ID).Find(&policies).Error)
	if assert.Len(t, policies, 1) {
		assert.Equal(t, priya.ID, policies[0].WorkerID)
		assert.Equal(t, win.Data.PolicyID, policies[0].ID)
		assert.Equal(t, job.SafetyFee, policies[0].FeePaid)
		assert.Equal(t, models.PolicyStatusActive, policies[0].Status)
	}

	// even the winner cannot apply again
	third := applyAs(t, app, job.ID, priya.ID)
	assert.Equal(t, fiber.StatusConflict, third.StatusCode)

	var count int64
	gdb.Model(&models.SafetyPolicy{}).Where("job_id = ?", job.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestApplyMissingJob(t *testing.T) {
	gdb := openTestDB(t, usersDDL, jobsDDL, policiesDDL)
	worker := seedWorker(t, gdb, "Priya")

	app := newJobTestApp(gdb)

	resp := applyAs(t, app, uuid.New(), worker.ID)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var count int64
	gdb.Model(&models.SafetyPolicy{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
