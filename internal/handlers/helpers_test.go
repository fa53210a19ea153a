package handlers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldErrorsAdd(t *testing.T) {
	errs := FieldErrors{}
	assert.Empty(t, errs)

	errs.Add("email", "Email is required")
	errs.Add("email", "Invalid email format")
	errs.Add("phone", "Phone is required")

	assert.Len(t, errs, 2)
	assert.Equal(t, []string{"Email is required", "Invalid email format"}, errs["email"])
	assert.Equal(t, []string{"Phone is required"}, errs["phone"])
}

func TestBumpStep(t *testing.T) {
	assert.Equal(t, 3, bumpStep(2, 3))
	assert.Equal(t, 3, bumpStep(3, 3))
	// the step never moves backwards
	assert.Equal(t, 4, bumpStep(4, 2))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
	assert.True(t, isUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "idx_rating_job_rater" (SQLSTATE 23505)`)))
}
