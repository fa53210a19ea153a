package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_BaselineAndCap(t *testing.T) {
	assert.Equal(t, 40, Score(0))
	assert.Equal(t, 50, Score(1))
	assert.Equal(t, 90, Score(5))
	assert.Equal(t, 100, Score(6))
	assert.Equal(t, 100, Score(1000))
}

func TestScore_MonotonicNonDecreasing(t *testing.T) {
	prev := Score(0)
	for n := 1; n <= 200; n++ {
		s := Score(n)
		assert.GreaterOrEqual(t, s, prev, "score dropped at %d completed jobs", n)
		assert.LessOrEqual(t, s, 100)
		prev = s
	}
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(0, 0))
	assert.Equal(t, 0, CompletionRate(0, 10))
	assert.Equal(t, 100, CompletionRate(10, 10))
	assert.Equal(t, 50, CompletionRate(1, 2))
	assert.Equal(t, 33, CompletionRate(1, 3))
	assert.Equal(t, 67, CompletionRate(2, 3))
	assert.Equal(t, 92, CompletionRate(11, 12))
}

func TestCompletionRate_Bounds(t *testing.T) {
	for total := 1; total <= 50; total++ {
		for completed := 0; completed <= total; completed++ {
			rate := CompletionRate(completed, total)
			assert.GreaterOrEqual(t, rate, 0)
			assert.LessOrEqual(t, rate, 100)
		}
	}
}

func TestReliability(t *testing.T) {
	assert.Equal(t, "Low", Reliability(0))
	assert.Equal(t, "Low", Reliability(50))
	assert.Equal(t, "Moderate", Reliability(51))
	assert.Equal(t, "Moderate", Reliability(80))
	assert.Equal(t, "High", Reliability(81))
	assert.Equal(t, "High", Reliability(100))
}

func TestExperienceLevel(t *testing.T) {
	assert.Equal(t, "Beginner", ExperienceLevel(0))
	assert.Equal(t, "Beginner", ExperienceLevel(10))
	assert.Equal(t, "Intermediate", ExperienceLevel(11))
	assert.Equal(t, "Intermediate", ExperienceLevel(20))
	assert.Equal(t, "Expert", ExperienceLevel(21))
}

// A new worker and a seasoned one, end to end.
func TestWorkerJourney(t *testing.T) {
	assert.Equal(t, 40, Score(0))
	assert.Equal(t, "Low", Reliability(CompletionRate(0, 0)))
	assert.Equal(t, "Beginner", ExperienceLevel(0))

	// 11 completed out of 12 total
	assert.Equal(t, 100, Score(11))
	assert.Equal(t, 92, CompletionRate(11, 12))
	assert.Equal(t, "High", Reliability(92))
	assert.Equal(t, "Intermediate", ExperienceLevel(11))
}
