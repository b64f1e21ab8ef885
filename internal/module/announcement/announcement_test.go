package announcement_test

import (
	"fmt"
	"net/http"
	"testing"

	"campus-activity/internal/global/response"
	"campus-activity/internal/model"
	"campus-activity/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type page struct {
	List  []model.Announcement `json:"list"`
	Total int64                `json:"total"`
}

func TestAnnouncements(t *testing.T) {
	s := test.NewServer(t)
	admin := test.CreateUser(t, s.App.DB, "admin@x.com", model.RoleAdmin)
	teacher := test.CreateUser(t, s.App.DB, "teacher@x.com", model.RoleTeacher)
	student := test.CreateUser(t, s.App.DB, "student@x.com", model.RoleStudent)
	adminToken, teacherToken, studentToken := test.Token(t, s.App, admin), test.Token(t, s.App, teacher), test.Token(t, s.App, student)

	test.ErrorEqual(t, response.ErrForbidden,
		s.Do(t, http.MethodPost, "/announcements", studentToken, map[string]any{"title": "x", "content": "y"}))

	var draft model.Announcement
	resp := s.Do(t, http.MethodPost, "/announcements", teacherToken, map[string]any{"title": "Exam week", "content": "quiet please"})
	test.NoError(t, resp)
	resp.Decode(t, &draft)
	assert.False(t, draft.Published)
	assert.Equal(t, teacher.ID, draft.AuthorID)

	test.NoError(t, s.Do(t, http.MethodPost, "/announcements", adminToken,
		map[string]any{"title": "Welcome", "content": "hello", "published": true}))

	var p page
	resp = s.Do(t, http.MethodGet, "/announcements", "", nil)
	test.NoError(t, resp)
	resp.Decode(t, &p)
	assert.Equal(t, int64(1), p.Total)

	resp = s.Do(t, http.MethodGet, "/announcements?published=false", adminToken, nil)
	test.NoError(t, resp)
	resp.Decode(t, &p)
	require.Equal(t, int64(1), p.Total)
	assert.Equal(t, draft.ID, p.List[0].ID)

	// 学生即使带 published=false 也只能看到已发布的
	resp = s.Do(t, http.MethodGet, "/announcements?published=false", studentToken, nil)
	resp.Decode(t, &p)
	assert.Equal(t, int64(1), p.Total)
	assert.True(t, p.List[0].Published)

	draftPath := fmt.Sprintf("/announcements/%d", draft.ID)
	test.ErrorEqual(t, response.ErrNotFound, s.Do(t, http.MethodGet, draftPath, studentToken, nil))
	test.NoError(t, s.Do(t, http.MethodGet, draftPath, teacherToken, nil))

	publishPath := draftPath + "/publish"
	test.ErrorEqual(t, response.ErrInvalidRequest, s.Do(t, http.MethodPatch, publishPath, teacherToken, map[string]any{}))
	resp = s.Do(t, http.MethodPatch, publishPath, teacherToken, map[string]any{"published": true})
	test.NoError(t, resp)
	resp.Decode(t, &draft)
	assert.True(t, draft.Published)
	assert.NotNil(t, draft.PublishedAt)
	test.NoError(t, s.Do(t, http.MethodGet, draftPath, "", nil))

	other := test.CreateUser(t, s.App.DB, "other@x.com", model.RoleTeacher)
	otherToken := test.Token(t, s.App, other)
	test.ErrorEqual(t, response.ErrForbidden, s.Do(t, http.MethodPatch, publishPath, otherToken, map[string]any{"published": false}))
	test.ErrorEqual(t, response.ErrForbidden, s.Do(t, http.MethodDelete, draftPath, otherToken, nil))

	test.NoError(t, s.Do(t, http.MethodDelete, draftPath, adminToken, nil))
	test.ErrorEqual(t, response.ErrNotFound, s.Do(t, http.MethodGet, draftPath, adminToken, nil))
}

func TestActivityAnnouncementNotifiesRegistrants(t *testing.T) {
	s := test.NewServer(t)
	teacher := test.CreateUser(t, s.App.DB, "teacher@x.com", model.RoleTeacher)
	alice := test.CreateUser(t, s.App.DB, "alice@x.com", model.RoleStudent)
	bob := test.CreateUser(t, s.App.DB, "bob@x.com", model.RoleStudent)
	a := test.CreateActivity(t, s.App.DB, teacher.ID, 10)
	require.NoError(t, s.App.DB.Create(&[]model.Registration{
		{UserID: alice.ID, ActivityID: a.ID, Status: model.RegistrationApproved},
		{UserID: bob.ID, ActivityID: a.ID, Status: model.RegistrationCancelled},
	}).Error)
	teacherToken := test.Token(t, s.App, teacher)

	test.ErrorEqual(t, response.ErrActivityNotFound, s.Do(t, http.MethodPost, "/announcements", teacherToken,
		map[string]any{"title": "t", "content": "c", "activity_id": 999}))

	var ann model.Announcement
	resp := s.Do(t, http.MethodPost, "/announcements", teacherToken,
		map[string]any{"title": "Venue moved", "content": "Gym B", "activity_id": a.ID})
	test.NoError(t, resp)
	resp.Decode(t, &ann)

	publishPath := fmt.Sprintf("/announcements/%d/publish", ann.ID)
	test.NoError(t, s.Do(t, http.MethodPatch, publishPath, teacherToken, map[string]any{"published": true}))
	// 重复发布、撤回后再发布都不重复通知
	test.NoError(t, s.Do(t, http.MethodPatch, publishPath, teacherToken, map[string]any{"published": true}))
	for range 2 {
		test.NoError(t, s.Do(t, http.MethodPatch, publishPath, teacherToken, map[string]any{"published": false}))
		resp = s.Do(t, http.MethodPatch, publishPath, teacherToken, map[string]any{"published": true})
		test.NoError(t, resp)
	}
	resp.Decode(t, &ann)
	assert.True(t, ann.Published)
	assert.NotNil(t, ann.NotifiedAt)

	var notices []model.Notification
	require.NoError(t, s.App.DB.Find(&notices).Error)
	require.Len(t, notices, 1)
	assert.Equal(t, alice.ID, notices[0].UserID)
	assert.Equal(t, model.NotifyAnnouncement, notices[0].Type)
	assert.Equal(t, "Venue moved", notices[0].Title)
}

func TestActivityAnnouncementRequiresOrganizer(t *testing.T) {
	s := test.NewServer(t)
	owner := test.CreateUser(t, s.App.DB, "owner@x.com", model.RoleTeacher)
	other := test.CreateUser(t, s.App.DB, "other@x.com", model.RoleTeacher)
	admin := test.CreateUser(t, s.App.DB, "admin@x.com", model.RoleAdmin)
	alice := test.CreateUser(t, s.App.DB, "alice@x.com", model.RoleStudent)
	a := test.CreateActivity(t, s.App.DB, owner.ID, 10)
	require.NoError(t, s.App.DB.Create(&model.Registration{
		UserID: alice.ID, ActivityID: a.ID, Status: model.RegistrationPending,
	}).Error)

	body := map[string]any{"title": "Free pizza", "content": "x", "activity_id": a.ID, "published": true}
	test.ErrorEqual(t, response.ErrForbidden, s.Do(t, http.MethodPost, "/announcements", test.Token(t, s.App, other), body))

	var n int64
	require.NoError(t, s.App.DB.Model(&model.Notification{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, s.App.DB.Model(&model.Announcement{}).Count(&n).Error)
	assert.Zero(t, n)

	test.NoError(t, s.Do(t, http.MethodPost, "/announcements", test.Token(t, s.App, admin), body))
	require.NoError(t, s.App.DB.Model(&model.Notification{}).Where("user_id = ?", alice.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
