package models

import (
	"time"

	"github.com/google/uuid"
)

type WorkMode string

const (
	WorkModeStatic  WorkMode = "static"
	WorkModeDynamic WorkMode = "dynamic"
)

// OnboardingStepComplete is the terminal onboarding step. A worker below it
// cannot reach worker-only routes.
const OnboardingStepComplete = 5

type WorkerProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	// Step tracking: 1 welcome, 2 resume, 3 work mode, 4 verification, 5 complete.
	// Only ever increases.
	OnboardingStep int `gorm:"not null;default:1" json:"onboarding_step"`

	// Step 2 - resume upload
	ResumeURL  string `gorm:"type:text" json:"resume_url"`
	Experience string `gorm:"type:text" json:"experience"`

	// Step 3 - work mode
	WorkMode WorkMode `gorm:"type:varchar(20)" json:"work_mode"`

	// Step 4 - verification flags
	PhoneVerified   bool `gorm:"default:false" json:"phone_verified"`
	IDVerified      bool `gorm:"default:false" json:"id_verified"`
	SafetyAgreement bool `gorm:"default:false" json:"safety_agreement"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *WorkerProfile) AllVerified() bool {
	return p.PhoneVerified && p.IDVerified && p.SafetyAgreement
}

func (p *WorkerProfile) OnboardingComplete() bool {
	return p.OnboardingStep >= OnboardingStepComplete
}

func ValidWorkMode(m WorkMode) bool {
	return m == WorkModeStatic || m == WorkModeDynamic
}
