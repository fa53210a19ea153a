package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/middleware"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/utils"
)

type AuthHandler struct {
	DB        *gorm.DB
	RDB       *redis.Client
	JWTSecret string
	Expires   int
}

type RegisterReq struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Phone    string   `json:"phone"`
	Role     string   `json:"role"`             // worker / employer (admin is never self-registered)
	Skills   []string `json:"skills,omitempty"` // workers only
}

func userPayload(u *models.User) fiber.Map {
	payload := fiber.Map{
		"id":             u.ID,
		"name":           u.Name,
		"email":          u.Email,
		"phone":          u.Phone,
		"role":           u.Role,
		"verified":       u.Verified,
		"average_rating": u.AverageRating,
		"total_ratings":  u.TotalRatings,
	}
	if u.Role == models.RoleWorker {
		skills := []string{}
		if len(u.Skills) > 0 {
			_ = json.Unmarshal(u.Skills, &skills)
		}
		payload["skills"] = skills
		step := 1
		if u.WorkerProfile != nil {
			step = u.WorkerProfile.OnboardingStep
		}
		payload["onboarding_step"] = step
	}
	return payload
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "sw_token",
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   h.Expires * 60,
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	password := strings.TrimSpace(req.Password)
	role := models.Role(strings.ToLower(strings.TrimSpace(req.Role)))

	errs := FieldErrors{}

	if name == "" {
		errs.Add("name", "Name is required")
	}
	if email == "" {
		errs.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		errs.Add("email", "Invalid email format")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}
	if phone == "" {
		errs.Add("phone", "Phone is required")
	} else if len(phone) < 8 {
		errs.Add("phone", "Invalid phone number")
	}
	if role != models.RoleWorker && role != models.RoleEmployer {
		errs.Add("role", "Role must be worker or employer")
	}

	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var existing models.User
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		errs := FieldErrors{}
		errs.Add("email", "Email already registered")
		return validationFail(c, errs)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fail500(c, "Something went wrong")
	}

	var byPhone models.User
	if err := h.DB.Where("phone = ?", phone).First(&byPhone).Error; err == nil {
		errs := FieldErrors{}
		errs.Add("phone", "Phone already registered")
		return validationFail(c, errs)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fail500(c, "Something went wrong")
	}

	pw, err := utils.HashPassword(password)
	if err != nil {
		return fail500(c, "Failed to process password")
	}

	u := models.User{
		Name:     name,
		Email:    email,
		Password: pw,
		Phone:    phone,
		Role:     role,
		IsActive: true,
	}

	if role == models.RoleWorker && len(req.Skills) > 0 {
		b, _ := json.Marshal(req.Skills)
		u.Skills = datatypes.JSON(b)
	}

	if err := h.DB.Create(&u).Error; err != nil {
		if isUniqueViolation(err) {
			errs := FieldErrors{}
			errs.Add("email", "Email already registered")
			return validationFail(c, errs)
		}
		log.Println("Error creating user:", err)
		return fail500(c, "Failed to register")
	}

	// workers start onboarding at step 1 right away
	if role == models.RoleWorker {
		profile := models.WorkerProfile{UserID: u.ID, OnboardingStep: 1}
		if err := h.DB.Create(&profile).Error; err != nil {
			log.Println("Error creating worker profile:", err)
		}
		u.WorkerProfile = &profile
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		return fail500(c, "Failed to create token")
	}

	h.setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registered successfully",
		"data": fiber.Map{
			"user":  userPayload(&u),
			"token": token,
		},
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	errs := FieldErrors{}
	if email == "" {
		errs.Add("email", "Email is required")
	}
	if password == "" {
		errs.Add("password", "Password is required")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	var u models.User
	if err := h.DB.Preload("WorkerProfile").Where("email = ?", email).First(&u).Error; err != nil {
		// same message for unknown email and wrong password
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	if !u.IsActive {
		return fail(c, fiber.StatusForbidden, "Account is inactive")
	}

	if !utils.CheckPassword(u.Password, password) {
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := utils.SignJWT(h.JWTSecret, u.ID.String(), string(u.Role), h.Expires)
	if err != nil {
		return fail500(c, "Failed to create token")
	}

	h.setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged in successfully",
		"data": fiber.Map{
			"user":  userPayload(&u),
			"token": token,
		},
	})
}

// Logout denylists the token's jti until its natural expiry, then clears the
// session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("tokenId").(string)
	if jti != "" {
		ttl := time.Hour
		if exp, ok := c.Locals("tokenExp").(time.Time); ok {
			if remaining := time.Until(exp); remaining > 0 {
				ttl = remaining
			}
		}
		if err := h.RDB.Set(c.Context(), middleware.RevokedKeyPrefix+jti, "1", ttl).Err(); err != nil {
			log.Println("Error revoking token:", err)
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     "sw_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Me re-validates the session against the database so clients never trust a
// stale cached role or onboarding step.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := getAuth(c)
	if err != nil {
		return err
	}

	var u models.User
	if err := h.DB.Preload("WorkerProfile").First(&u, "id = ?", userID).Error; err != nil {
		return fail(c, fiber.StatusUnauthorized, "User not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    userPayload(&u),
	})
}
