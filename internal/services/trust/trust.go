// Package trust derives a worker's trust score and reliability classification
// from her job history. Every dashboard surface reads these functions instead
// of re-deriving the numbers inline.
package trust

import "math"

// Score maps completed jobs to a 0-100 trust score. Everyone starts at 40;
// each completed job adds 10, capped at 100.
func Score(completedJobs int) int {
	if completedJobs <= 0 {
		return 40
	}
	s := 40 + completedJobs*10
	if s > 100 {
		return 100
	}
	return s
}

// CompletionRate is the percentage of total jobs completed, rounded to the
// nearest integer. Zero total jobs means zero, not a division error.
func CompletionRate(completedJobs, totalJobs int) int {
	if totalJobs <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completedJobs) / float64(totalJobs)))
}

func Reliability(completionRate int) string {
	switch {
	case completionRate > 80:
		return "High"
	case completionRate > 50:
		return "Moderate"
	default:
		return "Low"
	}
}

func ExperienceLevel(completedJobs int) string {
	switch {
	case completedJobs > 20:
		return "Expert"
	case completedJobs > 10:
		return "Intermediate"
	default:
		return "Beginner"
	}
}
