package handlers

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/realtime"
	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/utils"
)

type SOSHandler struct {
	DB        *gorm.DB
	Hub       *realtime.Hub
	RDB       *redis.Client
	JWTSecret string
}

func NewSOSHandler(db *gorm.DB, hub *realtime.Hub, rdb *redis.Client, jwtSecret string) *SOSHandler {
	return &SOSHandler{DB: db, Hub: hub, RDB: rdb, JWTSecret: jwtSecret}
}

type triggerSOSReq struct {
	Location      string `json:"location"`
	EmergencyType string `json:"emergency_type"` // harassment / accident / threat / other
}

// Trigger creates an SOS alert for the authenticated worker. The write is the
// one thing that matters; the live broadcast is best-effort and a failed
// publish never fails the request.
func (h *SOSHandler) Trigger(c *fiber.Ctx) error {
	workerID, err := getAuth(c)
	if err != nil {
		return err
	}

	var req triggerSOSReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}

	emergencyType := models.EmergencyType(strings.ToLower(strings.TrimSpace(req.EmergencyType)))
	if emergencyType == "" {
		emergencyType = models.EmergencyOther
	}
	if !models.ValidEmergencyType(emergencyType) {
		return fail(c, fiber.StatusBadRequest, "emergency_type must be harassment, accident, threat or other")
	}

	var worker models.User
	if err := h.DB.First(&worker, "id = ?", workerID).Error; err != nil {
		return fail(c, fiber.StatusUnauthorized, "Worker not found")
	}

	alert := models.SOSAlert{
		WorkerID:      worker.ID,
		WorkerName:    worker.Name,
		Location:      strings.TrimSpace(req.Location),
		EmergencyType: emergencyType,
		Status:        models.SOSStatusOpen,
		TriggeredAt:   time.Now(),
	}

	if err := h.DB.Create(&alert).Error; err != nil {
		log.Println("Error creating SOS alert:", err)
		return fail500(c, "Failed to trigger SOS")
	}

	h.broadcastAlert(&alert)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "SOS alert triggered",
		"data":    alert,
	})
}

func (h *SOSHandler) broadcastAlert(alert *models.SOSAlert) {
	payload, err := json.Marshal(fiber.Map{
		"type":  "sos_alert",
		"alert": alert,
	})
	if err != nil {
		log.Println("Error marshaling SOS payload:", err)
		return
	}

	// redis fans out to every instance's hub; if redis is down, at least the
	// local admins still get it
	if err := h.RDB.Publish(context.Background(), realtime.SOSChannel, payload).Err(); err != nil {
		log.Println("Error publishing SOS alert:", err)
		h.Hub.BroadcastJSON(fiber.Map{
			"type":  "sos_alert",
			"alert": alert,
		})
	}
}

// sendOpenAlerts replays unacknowledged alerts to a newly connected admin so
// the console starts current instead of waiting for the next trigger.
func (h *SOSHandler) sendOpenAlerts(adminID uuid.UUID) {
	var open []models.SOSAlert
	if err := h.DB.Where("status = ?", models.SOSStatusOpen).
		Order("triggered_at ASC").
		Find(&open).Error; err != nil {
		log.Println("Error loading open SOS alerts:", err)
		return
	}
	if len(open) == 0 {
		return
	}
	h.Hub.SendToUser(adminID, fiber.Map{
		"type":   "sos_backlog",
		"alerts": open,
	})
}

// List returns alerts for the admin console, newest first, optionally
// filtered by status.
func (h *SOSHandler) List(c *fiber.Ctx) error {
	q := h.DB.Model(&models.SOSAlert{})

	status := strings.TrimSpace(c.Query("status"))
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var alerts []models.SOSAlert
	if err := q.Order("triggered_at DESC").Find(&alerts).Error; err != nil {
		return fail500(c, "Failed to load alerts")
	}

	return c.JSON(fiber.Map{"success": true, "data": alerts})
}

// Acknowledge marks an alert handled. Status is the only mutable field on an
// alert.
func (h *SOSHandler) Acknowledge(c *fiber.Ctx) error {
	alertUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid alert ID")
	}

	var alert models.SOSAlert
	if err := h.DB.First(&alert, "id = ?", alertUUID).Error; err != nil {
		return fail(c, fiber.StatusNotFound, "Alert not found")
	}

	if alert.Status == models.SOSStatusAcknowledged {
		return c.JSON(fiber.Map{"success": true, "data": alert})
	}

	now := time.Now()
	alert.Status = models.SOSStatusAcknowledged
	alert.AcknowledgedAt = &now

	if err := h.DB.Save(&alert).Error; err != nil {
		return fail500(c, "Failed to acknowledge alert")
	}

	return c.JSON(fiber.Map{"success": true, "data": alert})
}

// WebSocketHandler serves the admin live feed. The upgrade request cannot
// carry an Authorization header from a browser, so the token rides a query
// param.
func (h *SOSHandler) WebSocketHandler(c *websocket.Conn) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		log.Println("SOS WebSocket: token parameter missing")
		c.Close()
		return
	}

	claims, err := utils.ParseJWT(h.JWTSecret, tokenStr)
	if err != nil {
		log.Println("SOS WebSocket: invalid token:", err)
		c.Close()
		return
	}

	if claims.Role != string(models.RoleAdmin) {
		log.Println("SOS WebSocket: non-admin connection rejected")
		c.Close()
		return
	}

	userUUID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.Close()
		return
	}

	log.Printf("SOS WebSocket: admin %s connected\n", claims.UserID)

	client := &realtime.Client{
		ID:     uuid.New().String(),
		UserID: userUUID,
		Conn:   realtime.NewWebSocketConn(c),
		Send:   make(chan []byte, 256),
	}

	h.Hub.RegisterClient(client)
	h.sendOpenAlerts(userUUID)
	defer func() {
		h.Hub.UnregisterClient(client)
		log.Printf("SOS WebSocket: admin %s disconnected\n", claims.UserID)
	}()

	// hub -> socket
	go func() {
		for msg := range client.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("SOS WebSocket write error:", err)
				return
			}
		}
	}()

	// read loop keeps the connection alive
	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			break
		}
		if msgType, ok := payload["type"].(string); ok && msgType == "pong" {
			continue
		}
	}
}
