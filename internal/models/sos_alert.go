package models

import (
	"time"

	"github.com/google/uuid"
)

type EmergencyType string

const (
	EmergencyHarassment EmergencyType = "harassment"
	EmergencyAccident   EmergencyType = "accident"
	EmergencyThreat     EmergencyType = "threat"
	EmergencyOther      EmergencyType = "other"
)

type SOSStatus string

const (
	SOSStatusOpen         SOSStatus = "open"
	SOSStatusAcknowledged SOSStatus = "acknowledged"
)

// SOSAlert is immutable once created except for its status.
type SOSAlert struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	WorkerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"worker_id"`
	WorkerName string    `json:"worker_name"`

	Location      string        `gorm:"type:text" json:"location"`
	EmergencyType EmergencyType `gorm:"type:varchar(20);not null" json:"emergency_type"`

	Status         SOSStatus  `gorm:"type:varchar(20);default:'open';index" json:"status"`
	TriggeredAt    time.Time  `json:"triggered_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func ValidEmergencyType(t EmergencyType) bool {
	switch t {
	case EmergencyHarassment, EmergencyAccident, EmergencyThreat, EmergencyOther:
		return true
	}
	return false
}
