package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/services/safety"
)

type JobHandler struct {
	DB     *gorm.DB
	Safety *safety.SafetyService
}

func NewJobHandler(db *gorm.DB, safetyService *safety.SafetyService) *JobHandler {
	return &JobHandler{DB: db, Safety: safetyService}
}

type CreateJobReq struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Duration    string `json:"duration"`
	Payment     int64  `json:"payment"`
}

// PostJob creates a job in state open. Employer identity comes from the
// session, never from the body.
func (h *JobHandler) PostJob(c *fiber.Ctx) error {
	employerID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req CreateJobReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	title := strings.TrimSpace(req.Title)
	category := strings.TrimSpace(req.Category)
	description := strings.TrimSpace(req.Description)
	location := strings.TrimSpace(req.Location)
	duration := strings.TrimSpace(req.Duration)

	errs := FieldErrors{}
	if title == "" {
		errs.Add("title", "Title is required")
	}
	if category == "" {
		errs.Add("category", "Category is required")
	}
	if description == "" {
		errs.Add("description", "Description is required")
	}
	if location == "" {
		errs.Add("location", "Location is required")
	}
	if req.Payment <= 0 {
		errs.Add("payment", "Payment must be a positive amount")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var employer models.User
	if err := h.DB.First(&employer, "id = ?", employerID).Error; err != nil {
		return fail(c, fiber.StatusUnauthorized, "Employer not found")
	}

	if duration == "" {
		duration = "Not specified"
	}

	job := models.Job{
		Title:        title,
		Category:     category,
		Description:  description,
		Location:     location,
		Duration:     duration,
		Payment:      req.Payment,
		SafetyFee:    models.DefaultSafetyFee,
		EmployerID:   employer.ID,
		EmployerName: employer.Name,
		Status:       models.JobStatusOpen,
	}

	if err := h.DB.Create(&job).Error; err != nil {
		log.Println("Error creating job:", err)
		return fail500(c, "Failed to post job")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Job posted successfully",
		"data":    job,
	})
}

// ListOpen returns open jobs, optionally filtered by category.
// "all" (or no filter) means every category; matching is case-insensitive.
func (h *JobHandler) ListOpen(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))

	q := h.DB.Model(&models.Job{}).Where("status = ?", models.JobStatusOpen)
	if category != "" && !strings.EqualFold(category, "all") {
		q = q.Where("LOWER(category) = LOWER(?)", category)
	}

	var jobs []models.Job
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return fail500(c, "Failed to load jobs")
	}

	return c.JSON(fiber.Map{"success": true, "data": jobs})
}

func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	jobUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid job ID")
	}

	var job models.Job
	if err := h.DB.First(&job, "id = ?", jobUUID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Job not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": job})
}

// Apply accepts an open job for the authenticated worker. The status check,
// the assignment and the safety policy creation happen in one transaction
// behind a row lock: when two workers race, the first commit wins and the
// second request sees the job as no longer open.
func (h *JobHandler) Apply(c *fiber.Ctx) error {
	workerID, err := getAuth(c)
	if err != nil {
		return err
	}

	jobUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid job ID")
	}

	var worker models.User
	if err := h.DB.First(&worker, "id = ?", workerID).Error; err != nil {
		return fail(c, fiber.StatusUnauthorized, "Worker not found")
	}

	var policy *models.SafetyPolicy
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&job, "id = ?", jobUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Job not found")
			}
			return err
		}

		if job.Status != models.JobStatusOpen {
			return fiber.NewError(fiber.StatusConflict, "Job already taken")
		}

		job.Status = models.JobStatusAssigned
		job.WorkerID = &worker.ID
		job.WorkerName = worker.Name
		job.UpdatedAt = time.Now()

		if err := tx.Save(&job).Error; err != nil {
			return err
		}

		p, err := h.Safety.ActivatePolicy(tx, &job, worker.ID, worker.Name)
		if err != nil {
			return err
		}
		policy = p

		return nil
	})

	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return fail(c, e.Code, e.Message)
		}
		log.Println("Error applying to job:", err)
		return fail500(c, "Failed to accept job")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job accepted successfully",
		"data": fiber.Map{
			"policy_id":     policy.ID,
			"policy_number": policy.PolicyNumber,
			"fee_paid":      policy.FeePaid,
		},
	})
}

// Complete transitions assigned -> completed. Either side of the job (or an
// admin) may mark it complete; payment settlement is out of scope.
func (h *JobHandler) Complete(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}
	role := authRole(c)

	jobUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid job ID")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&job, "id = ?", jobUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Job not found")
			}
			return err
		}

		isEmployer := job.EmployerID == userID
		isWorker := job.WorkerID != nil && *job.WorkerID == userID
		if !isEmployer && !isWorker && role != string(models.RoleAdmin) {
			return fiber.NewError(fiber.StatusForbidden, "Access denied")
		}

		// idempotency: completing twice is a no-op
		if job.Status == models.JobStatusCompleted {
			return nil
		}

		if !job.Status.CanTransitionTo(models.JobStatusCompleted) {
			return fiber.NewError(fiber.StatusBadRequest, "Only assigned jobs can be completed")
		}

		job.Status = models.JobStatusCompleted
		job.UpdatedAt = time.Now()
		return tx.Save(&job).Error
	})

	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return fail(c, e.Code, e.Message)
		}
		log.Println("Error completing job:", err)
		return fail500(c, "Failed to complete job")
	}

	var job models.Job
	h.DB.First(&job, "id = ?", jobUUID)

	return c.JSON(fiber.Map{"success": true, "data": job})
}

// EmployerJobs lists every job an employer posted, any status.
func (h *JobHandler) EmployerJobs(c *fiber.Ctx) error {
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

	var jobs []models.Job
	if err := h.DB.Where("employer_id = ?", employerUUID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return fail500(c, "Failed to load jobs")
	}

	return c.JSON(fiber.Map{"success": true, "data": jobs})
}

// WorkerJobs lists every job assigned to (or completed by) a worker.
func (h *JobHandler) WorkerJobs(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	workerUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid worker ID")
	}

	if workerUUID != userID && authRole(c) != string(models.RoleAdmin) {
		return fail(c, fiber.StatusForbidden, "Access denied")
	}

	var jobs []models.Job
	if err := h.DB.Where("worker_id = ?", workerUUID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return fail500(c, "Failed to load jobs")
	}

	return c.JSON(fiber.Map{"success": true, "data": jobs})
}
