package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
)

type RatingHandler struct {
	DB *gorm.DB
}

func NewRatingHandler(db *gorm.DB) *RatingHandler {
	return &RatingHandler{DB: db}
}

type createRatingReq struct {
	JobID  string `json:"job_id"`
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// Create stores a rating for a completed job. The rater must be one side of
// the job; the counterpart is the ratee. One rating per rater per job, and the
// ratee's running average moves in the same transaction.
func (h *RatingHandler) Create(c *fiber.Ctx) error {
	raterID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req createRatingReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	errs := FieldErrors{}
	jobUUID, jerr := uuid.Parse(strings.TrimSpace(req.JobID))
	if jerr != nil {
		errs.Add("job_id", "A valid job ID is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		errs.Add("rating", "Rating must be between 1 and 5")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var rating models.Rating
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, "id = ?", jobUUID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Job not found")
			}
			return err
		}

		if job.Status != models.JobStatusCompleted {
			return fiber.NewError(fiber.StatusBadRequest, "Only completed jobs can be rated")
		}

		var rateeID uuid.UUID
		switch {
		case job.EmployerID == raterID:
			if job.WorkerID == nil {
				return fiber.NewError(fiber.StatusBadRequest, "Job has no worker to rate")
			}
			rateeID = *job.WorkerID
		case job.WorkerID != nil && *job.WorkerID == raterID:
			rateeID = job.EmployerID
		default:
			return fiber.NewError(fiber.StatusForbidden, "Only job participants can rate")
		}

		rating = models.Rating{
			JobID:   job.ID,
			RaterID: raterID,
			RateeID: rateeID,
			Rating:  req.Rating,
			Review:  strings.TrimSpace(req.Review),
		}

		if err := tx.Create(&rating).Error; err != nil {
			if isUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, "You already rated this job")
			}
			return err
		}

		// recompute the ratee's running average under a row lock
		var ratee models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ratee, "id = ?", rateeID).Error; err != nil {
			return err
		}

		total := ratee.TotalRatings + 1
		avg := (ratee.AverageRating*float64(ratee.TotalRatings) + float64(req.Rating)) / float64(total)

		return tx.Model(&ratee).Updates(map[string]interface{}{
			"average_rating": avg,
			"total_ratings":  total,
		}).Error
	})

	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			return fail(c, e.Code, e.Message)
		}
		log.Println("Error creating rating:", err)
		return fail500(c, "Failed to submit rating")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Rating submitted",
		"data":    rating,
	})
}

// ListForUser returns the ratings received by a user, newest first.
func (h *RatingHandler) ListForUser(c *fiber.Ctx) error {
	userUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var ratings []models.Rating
	if err := h.DB.Where("ratee_id = ?", userUUID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return fail500(c, "Failed to load ratings")
	}

	return c.JSON(fiber.Map{"success": true, "data": ratings})
}

// JobRated tells the client whether a rater already rated a job, so the UI
// can hide the rating form.
func (h *RatingHandler) JobRated(c *fiber.Ctx) error {
	raterID, err := getAuth(c)
	if err != nil {
		return err
	}

	jobUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid job ID")
	}

	var count int64
	h.DB.Model(&models.Rating{}).
		Where("job_id = ? AND rater_id = ?", jobUUID, raterID).
		Count(&count)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"rated": count > 0},
	})
}
