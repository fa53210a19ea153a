package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/services/safety"
)

type SafetyHandler struct {
	Service *safety.SafetyService
}

func NewSafetyHandler(service *safety.SafetyService) *SafetyHandler {
	return &SafetyHandler{Service: service}
}

// WorkerPolicies lists a worker's safety policies. Workers only see their
// own; admins can read anyone's.
func (h *SafetyHandler) WorkerPolicies(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	workerUUID, err := uuid.Parse(c.Params("worker_id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid worker ID")
	}

	if workerUUID != userID && authRole(c) != string(models.RoleAdmin) {
		return fail(c, fiber.StatusForbidden, "Access denied")
	}

	policies, err := h.Service.PoliciesForWorker(workerUUID)
	if err != nil {
		return fail500(c, "Failed to load policies")
	}

	return c.JSON(fiber.Map{"success": true, "data": policies})
}
