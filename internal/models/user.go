package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleWorker   Role = "worker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone string    `gorm:"type:varchar(30);uniqueIndex" json:"phone"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"role"`
	Verified bool   `gorm:"default:false" json:"verified"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// workers only
	Skills datatypes.JSON `json:"skills,omitempty"` // ["Cleaning", "Cooking", ...]

	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	TotalRatings  int     `gorm:"default:0" json:"total_ratings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// HAS ONE worker_profile (worker_profiles.user_id -> users.id)
	WorkerProfile *WorkerProfile `gorm:"foreignKey:UserID;references:ID" json:"worker_profile,omitempty"`
}
