package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusTransitions(t *testing.T) {
	cases := []struct {
		from JobStatus
		to   JobStatus
		ok   bool
	}{
		{JobStatusOpen, JobStatusAssigned, true},
		{JobStatusAssigned, JobStatusCompleted, true},
		{JobStatusOpen, JobStatusCompleted, false},
		{JobStatusAssigned, JobStatusOpen, false},
		{JobStatusCompleted, JobStatusOpen, false},
		{JobStatusCompleted, JobStatusAssigned, false},
		{JobStatusOpen, JobStatusOpen, false},
		{JobStatusCompleted, JobStatusCompleted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestGeneratePolicyNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := GeneratePolicyNumber()
		assert.True(t, strings.HasPrefix(n, "SP-"), "got %q", n)
		assert.Len(t, n, 11)
		seen[n] = true
	}
	// 100 draws from a 36^8 space should never collide
	assert.Greater(t, len(seen), 95)
}

func TestDefaultCoverage(t *testing.T) {
	var cov map[string]string
	assert.NoError(t, json.Unmarshal(DefaultCoverage(), &cov))

	for _, key := range []string{
		"Medical Emergency",
		"Legal Aid",
		"Accident Protection",
		"Harassment Support",
	} {
		assert.Contains(t, cov, key)
		assert.NotEmpty(t, cov[key])
	}
}

func TestWorkerProfileVerification(t *testing.T) {
	p := WorkerProfile{OnboardingStep: 4}
	assert.False(t, p.AllVerified())
	assert.False(t, p.OnboardingComplete())

	p.PhoneVerified = true
	p.IDVerified = true
	assert.False(t, p.AllVerified())

	p.SafetyAgreement = true
	assert.True(t, p.AllVerified())

	p.OnboardingStep = OnboardingStepComplete
	assert.True(t, p.OnboardingComplete())
}

func TestValidWorkMode(t *testing.T) {
	assert.True(t, ValidWorkMode(WorkModeStatic))
	assert.True(t, ValidWorkMode(WorkModeDynamic))
	assert.False(t, ValidWorkMode(""))
	assert.False(t, ValidWorkMode("hybrid"))
}

func TestValidEmergencyType(t *testing.T) {
	for _, et := range []EmergencyType{
		EmergencyHarassment,
		EmergencyAccident,
		EmergencyThreat,
		EmergencyOther,
	} {
		assert.True(t, ValidEmergencyType(et))
	}
	assert.False(t, ValidEmergencyType(""))
	assert.False(t, ValidEmergencyType("fire"))
}
