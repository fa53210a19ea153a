package safety

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
)

type SafetyService struct {
	DB *gorm.DB
}

func NewSafetyService(db *gorm.DB) *SafetyService {
	return &SafetyService{DB: db}
}

// ActivatePolicy creates the safety policy for a job acceptance.
// This must be called within the same DB transaction that assigns the job, so
// a job can never end up assigned without an active policy.
func (s *SafetyService) ActivatePolicy(tx *gorm.DB, job *models.Job, workerID uuid.UUID, workerName string) (*models.SafetyPolicy, error) {
	if job == nil {
		return nil, errors.New("job is required")
	}

	policy := models.SafetyPolicy{
		ID:           uuid.New(),
		PolicyNumber: models.GeneratePolicyNumber(),
		JobID:        job.ID,
		JobTitle:     job.Title,
		WorkerID:     workerID,
		WorkerName:   workerName,
		FeePaid:      job.SafetyFee,
		Coverage:     models.DefaultCoverage(),
		Status:       models.PolicyStatusActive,
		ActivatedAt:  time.Now(),
	}

	if err := tx.Create(&policy).Error; err != nil {
		return nil, err
	}

	return &policy, nil
}

// PoliciesForWorker lists a worker's policies, newest first. Policies stored
// without a coverage map get the default one filled in on read.
func (s *SafetyService) PoliciesForWorker(workerID uuid.UUID) ([]models.SafetyPolicy, error) {
	var policies []models.SafetyPolicy
	if err := s.DB.Where("worker_id = ?", workerID).
		Order("activated_at DESC").
		Find(&policies).Error; err != nil {
		return nil, err
	}

	for i := range policies {
		if len(policies[i].Coverage) == 0 {
			policies[i].Coverage = models.DefaultCoverage()
		}
	}

	return policies, nil
}
