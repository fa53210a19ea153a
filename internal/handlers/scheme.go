package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
)

type SchemeHandler struct {
	DB *gorm.DB
}

func NewSchemeHandler(db *gorm.DB) *SchemeHandler {
	return &SchemeHandler{DB: db}
}

// List returns government schemes, optionally filtered by category.
// Schemes are public reference data, no auth required.
func (h *SchemeHandler) List(c *fiber.Ctx) error {
	q := h.DB.Model(&models.Scheme{})

	category := strings.TrimSpace(c.Query("category"))
	if category != "" && !strings.EqualFold(category, "all") {
		q = q.Where("LOWER(category) = LOWER(?)", category)
	}

	var schemes []models.Scheme
	if err := q.Order("title ASC").Find(&schemes).Error; err != nil {
		return fail500(c, "Failed to load schemes")
	}

	return c.JSON(fiber.Map{"success": true, "data": schemes})
}

func (h *SchemeHandler) Get(c *fiber.Ctx) error {
	schemeUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid scheme ID")
	}

	var scheme models.Scheme
	if err := h.DB.First(&scheme, "id = ?", schemeUUID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Scheme not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": scheme})
}
