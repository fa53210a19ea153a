package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusOpen      JobStatus = "open"      // posted, accepting one worker
	JobStatusAssigned  JobStatus = "assigned"  // worker accepted, policy active
	JobStatusCompleted JobStatus = "completed" // terminal
)

// DefaultSafetyFee is the flat surcharge (in rupees) every job carries to fund
// the worker's safety policy.
const DefaultSafetyFee int64 = 2

type Job struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Title       string `gorm:"not null" json:"title"`
	Category    string `gorm:"type:varchar(60);index" json:"category"`
	Description string `gorm:"type:text" json:"description"`
	Location    string `gorm:"type:varchar(120)" json:"location"`
	Duration    string `gorm:"type:varchar(60);default:'Not specified'" json:"duration"`

	Payment   int64 `gorm:"not null" json:"payment"`
	SafetyFee int64 `gorm:"not null;default:2" json:"safety_fee"`

	EmployerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"employer_id"`
	EmployerName string    `json:"employer_name"`

	Status JobStatus `gorm:"type:varchar(20);default:'open';index" json:"status"`

	WorkerID   *uuid.UUID `gorm:"type:uuid;index" json:"worker_id,omitempty"`
	WorkerName string     `json:"worker_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Employer *User `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`
}

// CanTransitionTo enforces the one-directional job lifecycle. There is no
// cancellation and no reopening path.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusOpen:
		return next == JobStatusAssigned
	case JobStatusAssigned:
		return next == JobStatusCompleted
	default:
		return false
	}
}
