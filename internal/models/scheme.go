package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scheme is a read-only government welfare scheme entry shown to workers.
type Scheme struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(60);index" json:"category"`
	Eligibility string `gorm:"type:text" json:"eligibility"`
	Benefits    string `gorm:"type:text" json:"benefits"`
	HowToApply  string `gorm:"type:text" json:"how_to_apply"`

	ExternalLink string `gorm:"type:text" json:"external_link,omitempty"`
	State        string `gorm:"type:varchar(60)" json:"state,omitempty"`
	Icon         string `gorm:"type:varchar(30);default:'shield'" json:"icon"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *Scheme) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
