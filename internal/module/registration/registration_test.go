package registration_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"campus-activity/internal/global/response"
	"campus-activity/internal/model"
	"campus-activity/internal/module/registration"
	"campus-activity/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	s        *test.Server
	admin    model.User
	teacher  model.User
	students []model.User
	tokens   map[uint]string
}

func newFixture(t *testing.T, students int) *fixture {
	s := test.NewServer(t)
	f := &fixture{
		s:       s,
		admin:   test.CreateUser(t, s.App.DB, "admin@x.com", model.RoleAdmin),
		teacher: test.CreateUser(t, s.App.DB, "teacher@x.com", model.RoleTeacher),
		tokens:  map[uint]string{},
	}
	for i := 0; i < students; i++ {
		f.students = append(f.students, test.CreateUser(t, s.App.DB, fmt.Sprintf("s%d@x.com", i), model.RoleStudent))
	}
	for _, u := range append([]model.User{f.admin, f.teacher}, f.students...) {
		f.tokens[u.ID] = test.Token(t, s.App, u)
	}
	return f
}

func (f *fixture) token(u model.User) string {
	return f.tokens[u.ID]
}

func (f *fixture) register(t *testing.T, u model.User, activityID uint) test.Response {
	return f.s.Do(t, http.MethodPost, fmt.Sprintf("/activities/%d/register", activityID), f.token(u), nil)
}

func (f *fixture) setStatus(t *testing.T, u model.User, regID uint, body map[string]any) test.Response {
	return f.s.Do(t, http.MethodPut, fmt.Sprintf("/registrations/%d/status", regID), f.token(u), body)
}

func enrolled(t *testing.T, f *fixture, id uint) int {
	var a model.Activity
	require.NoError(t, f.s.App.DB.First(&a, id).Error)
	return a.Enrolled
}

func TestRegisterAndCapacity(t *testing.T) {
	f := newFixture(t, 3)
	a := test.CreateActivity(t, f.s.App.DB, f.teacher.ID, 2)

	resp := f.register(t, f.students[0], a.ID)
	test.NoError(t, resp)
	var reg model.Registration
	resp.Decode(t, &reg)
	assert.Equal(t, model.RegistrationPending, reg.Status)
	assert.Equal(t, f.students[0].ID, reg.UserID)

	test.ErrorEqual(t, response.ErrDuplicateRegistration, f.register(t, f.students[0], a.ID))
	test.NoError(t, f.register(t, f.students[1], a.ID))
	test.ErrorEqual(t, response.ErrCapacityExceeded, f.register(t, f.students[2], a.ID))
	assert.Equal(t, 2, enrolled(t, f, a.ID))

	test.ErrorEqual(t, response.ErrActivityNotFound, f.register(t, f.students[2], 999))
	test.ErrorEqual(t, response.ErrUnauthorized,
		f.s.Do(t, http.MethodPost, fmt.Sprintf("/activities/%d/register", a.ID), "", nil))
}

func TestRegisterRequiresPublished(t *testing.T) {
	f := newFixture(t, 1)
	a := test.CreateActivity(t, f.s.App.DB, f.teacher.ID, 5)
	require.NoError(t, f.s.App.DB.Model(&a).Update("status", model.ActivityDraft).Error)

	test.ErrorEqual(t, response.ErrActivityNotPublished, f.register(t, f.students[0], a.ID))
	assert.Equal(t, 0, enrolled(t, f, a.ID))
}

// 测试库只有一个连接，两个请求实际串行执行，这里只校验结果；
// 多连接下的抢座见 model.TestTakeSeatConcurrent
func TestConcurrentRegistrationSingleSeat(t *testing.T) {
	f := newFixture(t, 2)
	a := test.CreateActivity(t, f.s.App.DB, f.teacher.ID, 1)
	svc := registration.NewService(f.s.App.DB)

	var wg sync.WaitGroup
	errs := make([]error, len(f.students))
	for i, u := range f.students {
		wg.Add(1)
		go func(i int, userID uint) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), userID, a.ID)
		}(i, u.ID)
	}
	wg.Wait()

	var ok, full int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, response.ErrCapacityExceeded):
			full++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, full)

	var pending int64
	require.NoError(t, f.s.App.DB.Model(&model.Registration{}).
		Where("activity_id = ? AND status = ?", a.ID, model.RegistrationPending).Count(&pending).Error)
	assert.Equal(t, int64(1), pending)
	assert.Equal(t, 1, enrolled(t, f, a.ID))
}

func TestCancel(t *testing.T) {
	f := newFixture(t, 2)
	a := test.CreateActivity(t, f.s.App.DB, f.teacher.ID, 1)

	var reg model.Registration
	resp := f.register(t, f.students[0], a.ID)
	test.NoError(t, resp)
	resp.Decode(t, &reg)

	cancelPath := fmt.Sprintf("/registrations/%d/cancel", reg.ID)
	test.ErrorEqual(t, response.ErrForbidden, f.s.Do(t, http.MethodPost, cancelPath, f.token(f.students[1]), nil))
	test.ErrorEqual(t, response.ErrRegistrationNotFound,
		f.s.Do(t, http.MethodPost, "/registrations/999/cancel", f.token(f.students[0]), nil))

	resp = f.s.Do(t, http.MethodPost, cancelPath, f.token(f.students[0]), nil)
	test.NoError(t, resp)
	resp.Decode(t, &reg)
	assert.Equal(t, model.RegistrationCancelled, reg.Status)
	assert.Equal(t, 0, enrolled(t, f, a.ID))

	test.ErrorEqual(t, response.ErrIllegalTransition, f.s.Do(t, http.MethodPost, cancelPath, f.token(f.students[0]), nil))

	// 释放的名额可以被其他人占用，原用户再次报名复用同一行
	test.NoError(t, f.register(t, f.students[1], a.ID))
	test.ErrorEqual(t, response.ErrCapacityExceeded, f.register(t, f.students[0], a.ID))

	var n int64
	require.NoError(t, f.s.App.DB.Model(&model.Registration{}).Where("user_id = ?", f.students[0].ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestReRegisterReusesRow(t *testing.T) {
	f := newFixture(t, 1)
	a := test.CreateActivity(t, f.s.App.DB, f.teacher.ID, 3)

	var first model.Registration
	resp := f.register(t, f.students[0], a.ID)
	test.NoError(t, resp)
	resp.Decode(t, &first)
	test.NoError(t, f.s.Do(t, http.MethodPost, fmt.Sprintf("/registrations/%d/cancel", first.ID), f.token(f.students[0]), nil))

	var second model.Registration
	resp = f.register(t, f.students[0], a.ID)
	test.NoError(t, resp)
	resp.Decode(t, &second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.RegistrationPending, second.Status)
	assert.Equal(t, 1, enrolled(t, f, a.ID))
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t, 2)
	a := test.CreateActivity(t, f.s.App.DB, f.teacher.ID, 1)

	var reg model.Registration
	resp := f.register(t, f.students[0], a.ID)
	test.NoError(t, resp)
	resp.Decode(t, &reg)

	test.ErrorEqual(t, response.ErrForbidden,
		f.setStatus(t, f.students[1], reg.ID, map[string]any{"status": model.RegistrationApproved}))
	test.ErrorEqual(t, response.ErrInvalidRequest,
		f.setStatus(t, f.teacher, reg.ID, map[string]any{"status": "unknown"}))
	test.ErrorEqual(t, response.ErrIllegalTransition,
		f.setStatus(t, f.teacher, reg.ID, map[string]any{"status": model.RegistrationAttended}))

	// 进入候补释放名额
	test.NoError(t, f.setStatus(t, f.teacher, reg.ID, map[string]any{"status": model.RegistrationWaitlist}))
	assert.Equal(t, 0, enrolled(t, f, a.ID))

	test.NoError(t, f.register(t, f.students[1], a.ID))
	test.ErrorEqual(t, response.ErrCapacityExceeded,
		f.setStatus(t, f.teacher, reg.ID, map[string]any{"status": model.RegistrationApproved}))

	require.NoError(t, f.s.App.DB.Model(&a).Update("capacity", 2).Error)
	resp = f.setStatus(t, f.teacher, reg.ID, map[string]any{"status": model.RegistrationApproved, "remark": "ok"})
	test.NoError(t, resp)
	resp.Decode(t, &reg)
	assert.Equal(t, model.RegistrationApproved, reg.Status)
	assert.Equal(t, "ok", reg.Remark)
	assert.Equal(t, 2, enrolled(t, f, a.ID))

	var notices []model.Notification
	require.NoError(t, f.s.App.DB.Where("user_id = ?", f.students[0].ID).Order("id").Find(&notices).Error)
	require.Len(t, notices, 2)
	assert.Equal(t, model.NotifyRegistration, notices[1].Type)
	assert.EqualValues(t, model.RegistrationApproved, notices[1].Meta["status"])
}

func TestForceOverride(t *testing.T) {
	f := newFixture(t, 1)
	a := test.CreateActivity(t, f.s.App.DB, f.teacher.ID, 2)

	var reg model.Registration
	resp := f.register(t, f.students[0], a.ID)
	test.NoError(t, resp)
	resp.Decode(t, &reg)

	body := map[string]any{"status": model.RegistrationAttended, "force": true}
	test.ErrorEqual(t, response.ErrForbidden, f.setStatus(t, f.teacher, reg.ID, body))
	test.NoError(t, f.setStatus(t, f.admin, reg.ID, body))
	assert.Equal(t, 1, enrolled(t, f, a.ID))

	// 强制回到取消同样释放名额
	test.NoError(t, f.setStatus(t, f.admin, reg.ID, map[string]any{"status": model.RegistrationCancelled, "force": true}))
	assert.Equal(t, 0, enrolled(t, f, a.ID))
	test.ErrorEqual(t, response.ErrIllegalTransition,
		f.setStatus(t, f.admin, reg.ID, map[string]any{"status": model.RegistrationCancelled, "force": true}))
}

func TestQueries(t *testing.T) {
	f := newFixture(t, 2)
	a := test.CreateActivity(t, f.s.App.DB, f.teacher.ID, 5)
	test.NoError(t, f.register(t, f.students[0], a.ID))

	statusPath := fmt.Sprintf("/activities/%d/registration-status", a.ID)
	var status struct {
		Registered   bool                `json:"registered"`
		Registration *model.Registration `json:"registration"`
	}
	resp := f.s.Do(t, http.MethodGet, statusPath, f.token(f.students[0]), nil)
	test.NoError(t, resp)
	resp.Decode(t, &status)
	assert.True(t, status.Registered)
	require.NotNil(t, status.Registration)

	status.Registration = nil
	resp = f.s.Do(t, http.MethodGet, statusPath, f.token(f.students[1]), nil)
	test.NoError(t, resp)
	resp.Decode(t, &status)
	assert.False(t, status.Registered)
	assert.Nil(t, status.Registration)

	var count registration.Count
	resp = f.s.Do(t, http.MethodGet, fmt.Sprintf("/activities/%d/registration-count", a.ID), f.token(f.students[1]), nil)
	test.NoError(t, resp)
	resp.Decode(t, &count)
	assert.Equal(t, int64(1), count.Total)
	assert.Equal(t, int64(1), count.Active)
	assert.Equal(t, int64(1), count.ByStatus[model.RegistrationPending])
	assert.Equal(t, int64(0), count.ByStatus[model.RegistrationApproved])

	listPath := fmt.Sprintf("/activities/%d/registrations", a.ID)
	test.ErrorEqual(t, response.ErrForbidden, f.s.Do(t, http.MethodGet, listPath, f.token(f.students[0]), nil))
	var page struct {
		List  []model.Registration `json:"list"`
		Total int64                `json:"total"`
	}
	resp = f.s.Do(t, http.MethodGet, listPath+"?status=pending", f.token(f.teacher), nil)
	test.NoError(t, resp)
	resp.Decode(t, &page)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.List, 1)
	require.NotNil(t, page.List[0].User)
	assert.Equal(t, f.students[0].Email, page.List[0].User.Email)

	resp = f.s.Do(t, http.MethodGet, "/registrations/mine", f.token(f.students[0]), nil)
	test.NoError(t, resp)
	resp.Decode(t, &page)
	require.Len(t, page.List, 1)
	require.NotNil(t, page.List[0].Activity)
	assert.Equal(t, a.ID, page.List[0].Activity.ID)
}

func TestExport(t *testing.T) {
	f := newFixture(t, 2)
	a := test.CreateActivity(t, f.s.App.DB, f.teacher.ID, 5)
	test.NoError(t, f.register(t, f.students[0], a.ID))
	test.NoError(t, f.register(t, f.students[1], a.ID))

	exportPath := fmt.Sprintf("/activities/%d/registrations/export", a.ID)
	test.ErrorEqual(t, response.ErrForbidden, f.s.Do(t, http.MethodGet, exportPath, f.token(f.students[0]), nil))

	w := f.s.Raw(http.MethodGet, exportPath, f.token(f.admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	file, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer file.Close()
	rows, err := file.GetRows("报名名单")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "报名编号", rows[0][0])
	assert.Equal(t, "s0@x.com", rows[1][3])
	assert.Equal(t, model.RegistrationPending, rows[1][4])
}
