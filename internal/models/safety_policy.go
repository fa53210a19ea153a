package models

import (
	"encoding/json"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PolicyStatus string

const (
	PolicyStatusActive  PolicyStatus = "active"
	PolicyStatusExpired PolicyStatus = "expired"
)

// DefaultCoverage is the benefit map every policy starts with.
func DefaultCoverage() datatypes.JSON {
	b, _ := json.Marshal(map[string]string{
		"Medical Emergency":   "Up to ₹50,000",
		"Legal Aid":           "Free consultation + ₹25,000 support",
		"Accident Protection": "Up to ₹1,00,000",
		"Harassment Support":  "24/7 hotline + legal aid",
	})
	return datatypes.JSON(b)
}

// SafetyPolicy is created exactly once per (job, worker) pair, in the same
// transaction that assigns the job.
type SafetyPolicy struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PolicyNumber string    `gorm:"unique;size:12" json:"policy_number"` // e.g., SP-L9POKTVJ

	JobID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_policy_job_worker" json:"job_id"`
	JobTitle string    `json:"job_title"`

	WorkerID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_policy_job_worker;index" json:"worker_id"`
	WorkerName string    `json:"worker_name"`

	FeePaid  int64          `gorm:"not null" json:"fee_paid"`
	Coverage datatypes.JSON `json:"coverage"`

	Status      PolicyStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	ActivatedAt time.Time    `json:"activated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

// GeneratePolicyNumber generates a random alphanumeric policy number
func GeneratePolicyNumber() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 8)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return "SP-" + string(b)
}
