package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/services/trust"
)

type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// resolveWorker loads the worker addressed by the :email param and checks the
// caller may read her data (self or admin).
func (h *DashboardHandler) resolveWorker(c *fiber.Ctx) (*models.User, error) {
	userID, err := getAuth(c)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	if email == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	var worker models.User
	if err := h.DB.Where("email = ? AND role = ?", email, models.RoleWorker).
		First(&worker).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Worker not found")
	}

	if worker.ID != userID && authRole(c) != string(models.RoleAdmin) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Access denied")
	}

	return &worker, nil
}

func (h *DashboardHandler) jobCounts(workerID interface{}) (total, completed, active int64) {
	h.DB.Model(&models.Job{}).
		Where("worker_id = ?", workerID).
		Count(&total)

	h.DB.Model(&models.Job{}).
		Where("worker_id = ? AND status = ?", workerID, models.JobStatusCompleted).
		Count(&completed)

	h.DB.Model(&models.Job{}).
		Where("worker_id = ? AND status = ?", workerID, models.JobStatusAssigned).
		Count(&active)

	return
}

// WorkerDashboard returns the aggregate card data for a worker's home screen.
func (h *DashboardHandler) WorkerDashboard(c *fiber.Ctx) error {
	worker, err := h.resolveWorker(c)
	if err != nil {
		return err
	}

	total, completed, active := h.jobCounts(worker.ID)

	var policies int64
	h.DB.Model(&models.SafetyPolicy{}).
		Where("worker_id = ?", worker.ID).
		Count(&policies)

	var earnings int64
	h.DB.Model(&models.Job{}).
		Where("worker_id = ? AND status = ?", worker.ID, models.JobStatusCompleted).
		Select("COALESCE(SUM(payment), 0)").
		Scan(&earnings)

	rate := trust.CompletionRate(int(completed), int(total))

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"worker": fiber.Map{
				"id":             worker.ID,
				"name":           worker.Name,
				"email":          worker.Email,
				"average_rating": worker.AverageRating,
				"total_ratings":  worker.TotalRatings,
			},
			"total_jobs":        total,
			"completed_jobs":    completed,
			"active_jobs":       active,
			"total_earnings":    earnings,
			"policies_active":   policies,
			"trust_score":       trust.Score(int(completed)),
			"completion_rate":   rate,
			"reliability":       trust.Reliability(rate),
			"experience_level":  trust.ExperienceLevel(int(completed)),
		},
	})
}

// TrustScore exposes just the compliance metrics, recomputed on every read so
// they always reflect the latest completed-job count.
func (h *DashboardHandler) TrustScore(c *fiber.Ctx) error {
	worker, err := h.resolveWorker(c)
	if err != nil {
		return err
	}

	total, completed, _ := h.jobCounts(worker.ID)
	rate := trust.CompletionRate(int(completed), int(total))

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"trust_score":      trust.Score(int(completed)),
			"completed_jobs":   completed,
			"total_jobs":       total,
			"completion_rate":  rate,
			"reliability":      trust.Reliability(rate),
			"experience_level": trust.ExperienceLevel(int(completed)),
		},
	})
}

// EmployerDashboard aggregates an employer's posting activity.
func (h *DashboardHandler) EmployerDashboard(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	employerUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid employer ID")
	}

	if employerUUID != userID && authRole(c) != string(models.RoleAdmin) {
		return fail(c, fiber.StatusForbidden, "Access denied")
	}

	var (
		total     int64
		open      int64
		assigned  int64
		completed int64
		spent     int64
	)

	base := h.DB.Model(&models.Job{}).Where("employer_id = ?", employerUUID)
	base.Session(&gorm.Session{}).Count(&total)
	base.Session(&gorm.Session{}).Where("status = ?", models.JobStatusOpen).Count(&open)
	base.Session(&gorm.Session{}).Where("status = ?", models.JobStatusAssigned).Count(&assigned)
	base.Session(&gorm.Session{}).Where("status = ?", models.JobStatusCompleted).Count(&completed)
	base.Session(&gorm.Session{}).Where("status = ?", models.JobStatusCompleted).
		Select("COALESCE(SUM(payment), 0)").Scan(&spent)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_jobs":     total,
			"open_jobs":      open,
			"assigned_jobs":  assigned,
			"completed_jobs": completed,
			"total_spent":    spent,
		},
	})
}

// WeeklyJobs returns per-day assigned-job counts for the last 7 days, oldest
// day first, for the dashboard chart.
func (h *DashboardHandler) WeeklyJobs(c *fiber.Ctx) error {
	worker, err := h.resolveWorker(c)
	if err != nil {
		return err
	}

	since := time.Now().AddDate(0, 0, -6).Truncate(24 * time.Hour)

	var jobs []models.Job
	if err := h.DB.Where("worker_id = ? AND updated_at >= ?", worker.ID, since).
		Find(&jobs).Error; err != nil {
		return fail500(c, "Failed to load jobs")
	}

	counts := map[string]int{}
	for _, j := range jobs {
		counts[j.UpdatedAt.Format("2006-01-02")]++
	}

	series := make([]fiber.Map, 0, 7)
	for d := 0; d < 7; d++ {
		day := since.AddDate(0, 0, d)
		key := day.Format("2006-01-02")
		series = append(series, fiber.Map{
			"date":  key,
			"label": day.Format("Mon"),
			"jobs":  counts[key],
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": series})
}
