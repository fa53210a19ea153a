package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
)

type OnboardingHandler struct {
	DB            *gorm.DB
	UploadDir     string
	PublicBaseURL string
}

func NewOnboardingHandler(db *gorm.DB, uploadDir, publicBaseURL string) *OnboardingHandler {
	return &OnboardingHandler{
		DB:            db,
		UploadDir:     uploadDir,
		PublicBaseURL: publicBaseURL,
	}
}

// ========= Helpers =========

func bumpStep(current int, to int) int {
	if to > current {
		return to
	}
	return current
}

func (h *OnboardingHandler) findOrCreateProfile(tx *gorm.DB, userID uuid.UUID) (*models.WorkerProfile, error) {
	var p models.WorkerProfile
	err := tx.Where("user_id = ?", userID).First(&p).Error
	if err == nil {
		return &p, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p = models.WorkerProfile{
		UserID:         userID,
		OnboardingStep: 1,
	}

	if err := tx.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ========= Handlers =========

func (h *OnboardingHandler) Status(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	p, err := h.findOrCreateProfile(h.DB, userID)
	if err != nil {
		return fail500(c, "failed to load onboarding status")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"onboarding_step": p.OnboardingStep,
			"work_mode":       p.WorkMode,
			"resume_url":      p.ResumeURL,
			"experience":      p.Experience,
			"verifications": fiber.Map{
				"phone_verified":   p.PhoneVerified,
				"id_verified":      p.IDVerified,
				"safety_agreement": p.SafetyAgreement,
			},
		},
	})
}

// Step 2: upload resume (multipart field: resume) plus optional experience text
func (h *OnboardingHandler) UploadResume(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "resume is required (multipart field: resume)")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" && ext != ".doc" && ext != ".docx" {
		return fail(c, fiber.StatusBadRequest, "resume must be pdf/doc/docx")
	}

	if file.Size > 5*1024*1024 {
		return fail(c, fiber.StatusBadRequest, "resume max size is 5MB")
	}

	dir := filepath.Join(h.UploadDir, "resumes", userID.String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fail500(c, "failed to create upload dir")
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dst := filepath.Join(dir, filename)

	if err := c.SaveFile(file, dst); err != nil {
		return fail500(c, "failed to save file")
	}

	base := strings.TrimRight(h.PublicBaseURL, "/")
	publicURL := fmt.Sprintf("%s/uploads/resumes/%s/%s", base, userID.String(), filename)
	if base == "" {
		publicURL = fmt.Sprintf("/uploads/resumes/%s/%s", userID.String(), filename)
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	p, err := h.findOrCreateProfile(tx, userID)
	if err != nil {
		tx.Rollback()
		return fail500(c, "failed to load onboarding status")
	}

	p.ResumeURL = publicURL
	p.Experience = strings.TrimSpace(c.FormValue("experience"))
	p.OnboardingStep = bumpStep(p.OnboardingStep, 2)
	p.UpdatedAt = time.Now()

	if err := tx.Save(p).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to update onboarding status")
	}

	tx.Commit()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "resume uploaded",
		"data":    p,
	})
}

// Step 3: work mode selection
type workModeReq struct {
	WorkMode string `json:"work_mode"` // static / dynamic
}

func (h *OnboardingHandler) SetWorkMode(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req workModeReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	mode := models.WorkMode(strings.ToLower(strings.TrimSpace(req.WorkMode)))
	if !models.ValidWorkMode(mode) {
		return fail(c, fiber.StatusBadRequest, "work_mode must be static or dynamic")
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	p, err := h.findOrCreateProfile(tx, userID)
	if err != nil {
		tx.Rollback()
		return fail500(c, "failed to load onboarding status")
	}

	p.WorkMode = mode
	p.OnboardingStep = bumpStep(p.OnboardingStep, 3)
	p.UpdatedAt = time.Now()

	if err := tx.Save(p).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to update onboarding status")
	}

	tx.Commit()

	return c.JSON(fiber.Map{"success": true, "data": p})
}

// Step 4: verification flags, each settable on its own. The actual check is
// an external verifier; here a successful call marks the flag true.
type verifyReq struct {
	VerificationType string `json:"verification_type"` // phone_verified / id_verified / safety_agreement
}

func (h *OnboardingHandler) Verify(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req verifyReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	kind := strings.TrimSpace(req.VerificationType)

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	p, err := h.findOrCreateProfile(tx, userID)
	if err != nil {
		tx.Rollback()
		return fail500(c, "failed to load onboarding status")
	}

	switch kind {
	case "phone_verified":
		p.PhoneVerified = true
	case "id_verified":
		p.IDVerified = true
	case "safety_agreement":
		p.SafetyAgreement = true
	default:
		tx.Rollback()
		return fail(c, fiber.StatusBadRequest, "verification_type must be phone_verified, id_verified or safety_agreement")
	}

	if p.AllVerified() {
		p.OnboardingStep = bumpStep(p.OnboardingStep, 4)
	}
	p.UpdatedAt = time.Now()

	if err := tx.Save(p).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to update onboarding status")
	}

	tx.Commit()

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"onboarding_step": p.OnboardingStep,
			"verifications": fiber.Map{
				"phone_verified":   p.PhoneVerified,
				"id_verified":      p.IDVerified,
				"safety_agreement": p.SafetyAgreement,
			},
		},
	})
}

// AdvanceStep moves the persisted step forward. The step only ever increases;
// each gate checks the data of the step being left behind, so a crash between
// persist and advance never loses progress.
type advanceStepReq struct {
	Step int `json:"step"`
}

func (h *OnboardingHandler) AdvanceStep(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req advanceStepReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	if req.Step < 1 || req.Step > models.OnboardingStepComplete {
		return fail(c, fiber.StatusBadRequest, "step must be between 1 and 5")
	}

	tx := h.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	p, err := h.findOrCreateProfile(tx, userID)
	if err != nil {
		tx.Rollback()
		return fail500(c, "failed to load onboarding status")
	}

	// backward "steps" are in-session navigation only, never persisted
	if req.Step <= p.OnboardingStep {
		tx.Commit()
		return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"onboarding_step": p.OnboardingStep}})
	}

	if req.Step > p.OnboardingStep+1 {
		tx.Rollback()
		return fail(c, fiber.StatusBadRequest, "cannot skip onboarding steps")
	}

	// leaving step 3 requires a chosen work mode
	if req.Step >= 4 && !models.ValidWorkMode(p.WorkMode) {
		tx.Rollback()
		return fail(c, fiber.StatusBadRequest, "select a work mode first")
	}

	// leaving step 4 requires all three verifications
	if req.Step >= models.OnboardingStepComplete && !p.AllVerified() {
		tx.Rollback()
		return fail(c, fiber.StatusBadRequest, "complete all verifications first")
	}

	p.OnboardingStep = bumpStep(p.OnboardingStep, req.Step)
	p.UpdatedAt = time.Now()

	if err := tx.Save(p).Error; err != nil {
		tx.Rollback()
		return fail500(c, "failed to update onboarding status")
	}

	tx.Commit()

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"onboarding_step": p.OnboardingStep},
	})
}
