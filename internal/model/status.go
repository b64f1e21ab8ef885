package model

import "slices"

const (
	ActivityDraft     = "draft"
	ActivityPublished = "published"
	ActivityCancelled = "cancelled"
	ActivityCompleted = "completed"
	ActivityDeleted   = "deleted"

	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"

	RegistrationPending   = "pending"
	RegistrationApproved  = "approved"
	RegistrationRejected  = "rejected"
	RegistrationWaitlist  = "waitlist"
	RegistrationAttended  = "attended"
	RegistrationAbsent    = "absent"
	RegistrationCancelled = "cancelled"
)

// 状态迁移表，未列出的迁移一律非法
var (
	activityTransitions = map[string][]string{
		ActivityDraft:     {ActivityPublished, ActivityDeleted},
		ActivityPublished: {ActivityCancelled, ActivityCompleted, ActivityDeleted},
		ActivityCancelled: {ActivityDeleted},
		ActivityCompleted: {ActivityDeleted},
	}
	registrationTransitions = map[string][]string{
		RegistrationPending:  {RegistrationApproved, RegistrationRejected, RegistrationWaitlist, RegistrationCancelled},
		RegistrationApproved: {RegistrationAttended, RegistrationAbsent, RegistrationCancelled},
		RegistrationWaitlist: {RegistrationApproved, RegistrationCancelled},
	}
)

var ActivityStatuses = []string{ActivityDraft, ActivityPublished, ActivityCancelled, ActivityCompleted, ActivityDeleted}

var RegistrationStatuses = []string{
	RegistrationPending, RegistrationApproved, RegistrationRejected, RegistrationWaitlist,
	RegistrationAttended, RegistrationAbsent, RegistrationCancelled,
}

func CanTransitActivity(from, to string) bool {
	return slices.Contains(activityTransitions[from], to)
}

func CanTransitRegistration(from, to string) bool {
	return slices.Contains(registrationTransitions[from], to)
}

func ValidActivityStatus(s string) bool {
	return slices.Contains(ActivityStatuses, s)
}

func ValidRegistrationStatus(s string) bool {
	return slices.Contains(RegistrationStatuses, s)
}

// HoldsSeat 处于这些状态的报名占用活动名额
func HoldsSeat(status string) bool {
	switch status {
	case RegistrationPending, RegistrationApproved, RegistrationAttended, RegistrationAbsent:
		return true
	}
	return false
}

// IsActiveRegistration 有效报名，存在时不能重复报名
func IsActiveRegistration(status string) bool {
	return status != RegistrationCancelled && status != RegistrationRejected
}
