package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
)

// RequireOnboardingComplete blocks workers who have not reached the final
// onboarding step from worker-only routes. The response carries the current
// step so the frontend can send them back into the onboarding flow.
// Non-worker roles pass through untouched.
func RequireOnboardingComplete(gdb *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != string(models.RoleWorker) {
			return c.Next()
		}

		rawID, _ := c.Locals("userId").(string)
		uid, err := uuid.Parse(rawID)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		var profile models.WorkerProfile
		err = gdb.Where("user_id = ?", uid).First(&profile).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load onboarding status")
		}

		// no profile row yet means the worker never started onboarding
		if errors.Is(err, gorm.ErrRecordNotFound) || !profile.OnboardingComplete() {
			step := 1
			if profile.OnboardingStep > 0 {
				step = profile.OnboardingStep
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success":         false,
				"message":         "Complete onboarding to access this feature",
				"onboarding_step": step,
			})
		}

		return c.Next()
	}
}
