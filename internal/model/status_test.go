package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityTransitions(t *testing.T) {
	assert.True(t, CanTransitActivity(ActivityDraft, ActivityPublished))
	assert.True(t, CanTransitActivity(ActivityPublished, ActivityCancelled))
	assert.True(t, CanTransitActivity(ActivityCompleted, ActivityDeleted))

	assert.False(t, CanTransitActivity(ActivityPublished, ActivityPublished))
	assert.False(t, CanTransitActivity(ActivityCancelled, ActivityPublished))
	assert.False(t, CanTransitActivity(ActivityDeleted, ActivityDraft))
	assert.False(t, CanTransitActivity(ActivityDraft, ActivityCompleted))
}

func TestRegistrationTransitions(t *testing.T) {
	assert.True(t, CanTransitRegistration(RegistrationPending, RegistrationWaitlist))
	assert.True(t, CanTransitRegistration(RegistrationWaitlist, RegistrationApproved))
	assert.True(t, CanTransitRegistration(RegistrationApproved, RegistrationAttended))

	assert.False(t, CanTransitRegistration(RegistrationCancelled, RegistrationPending))
	assert.False(t, CanTransitRegistration(RegistrationRejected, RegistrationApproved))
	assert.False(t, CanTransitRegistration(RegistrationAttended, RegistrationAbsent))
}

func TestSeatAndActiveRules(t *testing.T) {
	assert.True(t, HoldsSeat(RegistrationPending))
	assert.True(t, HoldsSeat(RegistrationAbsent))
	assert.False(t, HoldsSeat(RegistrationWaitlist))
	assert.False(t, HoldsSeat(RegistrationCancelled))

	assert.True(t, IsActiveRegistration(RegistrationWaitlist))
	assert.False(t, IsActiveRegistration(RegistrationRejected))
}

func TestRoleAtLeast(t *testing.T) {
	assert.True(t, RoleAtLeast(RoleAdmin, RoleTeacher))
	assert.True(t, RoleAtLeast(RoleTeacher, RoleTeacher))
	assert.False(t, RoleAtLeast(RoleStudent, RoleTeacher))
	assert.False(t, RoleAtLeast("", RoleStudent))
	assert.False(t, ValidRole("root"))
}

func TestAvailable(t *testing.T) {
	assert.Equal(t, 3, (&Activity{Capacity: 5, Enrolled: 2}).Available())
	assert.Equal(t, 0, (&Activity{Capacity: 1, Enrolled: 1}).Available())
}
