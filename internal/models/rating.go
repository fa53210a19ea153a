package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Rating struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	JobID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_rating_job_rater" json:"job_id"`

	RaterID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_rating_job_rater" json:"rater_id"`
	RateeID uuid.UUID `gorm:"type:uuid;index" json:"ratee_id"`

	Rating int    `gorm:"not null" json:"rating"` // 1-5
	Review string `gorm:"type:text" json:"review"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Job   *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Rater *User `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	Ratee *User `gorm:"foreignKey:RateeID" json:"ratee,omitempty"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
