package db

import (
	"log"

	"gorm.io/gorm"

	"github.com/Sanskritiiiiiiiii/SAWAYAM/internal/models"
)

// SeedSchemes inserts the government scheme catalog on first boot. Idempotent:
// skips when any scheme rows already exist.
func SeedSchemes(gdb *gorm.DB) error {
	var count int64
	if err := gdb.Model(&models.Scheme{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	schemes := []models.Scheme{
		{
			Title:        "Mudra Loan for Women Entrepreneurs",
			Description:  "Loan scheme for women starting small businesses with no collateral required.",
			Category:     "Loan",
			Eligibility:  "Women entrepreneurs, self-employed, small business owners.",
			Benefits:     "Loans up to ₹10 lakh under Shishu, Kishore, and Tarun categories.",
			HowToApply:   "Apply through any bank branch or the Mudra portal with business plan and ID proof.",
			ExternalLink: "https://www.mudra.org.in/",
			Icon:         "banknote",
		},
		{
			Title:        "Mahila Shakti Kendra",
			Description:  "Women empowerment centers providing support services and guidance.",
			Category:     "Welfare",
			Eligibility:  "All women, especially from rural and vulnerable backgrounds.",
			Benefits:     "Skill training, employment linkage, counseling, legal aid support.",
			HowToApply:   "Visit the nearest Mahila Shakti Kendra or district women and child development office.",
			ExternalLink: "https://wcd.nic.in/",
			Icon:         "shield",
		},
		{
			Title:        "Pradhan Mantri Suraksha Bima Yojana",
			Description:  "Accident insurance cover for enrolled bank account holders.",
			Category:     "Insurance",
			Eligibility:  "Bank account holders aged 18-70 years.",
			Benefits:     "₹2 lakh accidental death and disability cover at ₹20 per year.",
			HowToApply:   "Enroll through your bank branch or net banking.",
			ExternalLink: "https://www.jansuraksha.gov.in/",
			Icon:         "heart-pulse",
		},
	}

	if err := gdb.Create(&schemes).Error; err != nil {
		return err
	}
	log.Printf("[Seed] Inserted %d government schemes", len(schemes))
	return nil
}
