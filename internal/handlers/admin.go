package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
)

type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// ListUsers returns every account, optionally filtered by role, newest first.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	q := h.DB.Model(&models.User{}).Preload("WorkerProfile")

	role := strings.ToLower(strings.TrimSpace(c.Query("role")))
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var users []models.User
	if err := q.Order("created_at DESC").Find(&users).Error; err != nil {
		return fail500(c, "Failed to load users")
	}

	return c.JSON(fiber.Map{"success": true, "data": users})
}

// VerifyUser flips the platform-verified badge on an account.
func (h *AdminHandler) VerifyUser(c *fiber.Ctx) error {
	userUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}

	user.Verified = true
	if err := h.DB.Save(&user).Error; err != nil {
		return fail500(c, "Failed to verify user")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User verified",
		"data":    user,
	})
}

// DeactivateUser soft-disables an account; login and protected routes reject
// inactive users. Admin accounts cannot deactivate themselves.
func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	adminID, err := getAuth(c)
	if err != nil {
		return err
	}

	userUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if userUUID == adminID {
		return fail(c, fiber.StatusBadRequest, "Cannot deactivate your own account")
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}

	user.IsActive = false
	if err := h.DB.Save(&user).Error; err != nil {
		return fail500(c, "Failed to deactivate user")
	}

	return c.JSON(fiber.Map{"success": true, "message": "User deactivated"})
}

// DeleteUser removes an account outright. Kept separate from deactivation;
// moderation normally deactivates, delete is for spam registrations.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	adminID, err := getAuth(c)
	if err != nil {
		return err
	}

	userUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if userUUID == adminID {
		return fail(c, fiber.StatusBadRequest, "Cannot delete your own account")
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}

	if err := h.DB.Delete(&user).Error; err != nil {
		log.Println("Error deleting user:", err)
		return fail500(c, "Failed to delete user")
	}

	return c.JSON(fiber.Map{"success": true, "message": "User deleted"})
}

// Stats is the admin console overview.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	var (
		workers   int64
		employers int64
		jobs      int64
		openJobs  int64
		policies  int64
		openSOS   int64
	)

	h.DB.Model(&models.User{}).Where("role = ?", models.RoleWorker).Count(&workers)
	h.DB.Model(&models.User{}).Where("role = ?", models.RoleEmployer).Count(&employers)
	h.DB.Model(&models.Job{}).Count(&jobs)
	h.DB.Model(&models.Job{}).Where("status = ?", models.JobStatusOpen).Count(&openJobs)
	h.DB.Model(&models.SafetyPolicy{}).Count(&policies)
	h.DB.Model(&models.SOSAlert{}).Where("status = ?", models.SOSStatusOpen).Count(&openSOS)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_workers":      workers,
			"total_employers":    employers,
			"total_jobs":         jobs,
			"open_jobs":          openJobs,
			"policies_activated": policies,
			"open_sos_alerts":    openSOS,
		},
	})
}

// ImpactStats backs the public landing page counters, so it carries no
// per-user data and needs no auth.
func (h *AdminHandler) ImpactStats(c *fiber.Ctx) error {
	var (
		workers   int64
		completed int64
		policies  int64
		responded int64
	)

	h.DB.Model(&models.User{}).Where("role = ?", models.RoleWorker).Count(&workers)
	h.DB.Model(&models.Job{}).Where("status = ?", models.JobStatusCompleted).Count(&completed)
	h.DB.Model(&models.SafetyPolicy{}).Count(&policies)
	h.DB.Model(&models.SOSAlert{}).Where("status = ?", models.SOSStatusAcknowledged).Count(&responded)

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"women_empowered":    workers,
			"jobs_completed":     completed,
			"policies_activated": policies,
			"sos_responded":      responded,
		},
	})
}
