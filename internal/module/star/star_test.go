package star_test

import (
	"fmt"
	"net/http"
	"testing"

	"campus-activity/internal/global/response"
	"campus-activity/internal/model"
	"campus-activity/internal/module/star"
	"campus-activity/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStar(t *testing.T) {
	s := test.NewServer(t)
	teacher := test.CreateUser(t, s.App.DB, "teacher@x.com", model.RoleTeacher)
	alice := test.CreateUser(t, s.App.DB, "alice@x.com", model.RoleStudent)
	a := test.CreateActivity(t, s.App.DB, teacher.ID, 10)
	token := test.Token(t, s.App, alice)
	starPath := fmt.Sprintf("/stars/%d", a.ID)
	askPath := fmt.Sprintf("/activities/%d/star", a.ID)

	test.ErrorEqual(t, response.ErrActivityNotFound, s.Do(t, http.MethodPost, "/stars/999", token, nil))
	test.NoError(t, s.Do(t, http.MethodPost, starPath, token, nil))
	test.ErrorEqual(t, response.ErrAlreadyExists, s.Do(t, http.MethodPost, starPath, token, nil))

	var st star.Status
	resp := s.Do(t, http.MethodGet, askPath, token, nil)
	test.NoError(t, resp)
	resp.Decode(t, &st)
	assert.Equal(t, star.Status{Starred: true, Count: 1}, st)

	resp = s.Do(t, http.MethodGet, askPath, "", nil)
	test.NoError(t, resp)
	resp.Decode(t, &st)
	assert.Equal(t, star.Status{Starred: false, Count: 1}, st)

	var page struct {
		List []model.Star `json:"list"`
	}
	resp = s.Do(t, http.MethodGet, "/stars", token, nil)
	test.NoError(t, resp)
	resp.Decode(t, &page)
	require.Len(t, page.List, 1)
	require.NotNil(t, page.List[0].Activity)
	assert.Equal(t, a.ID, page.List[0].Activity.ID)

	test.NoError(t, s.Do(t, http.MethodDelete, starPath, token, nil))
	test.ErrorEqual(t, response.ErrNotFound, s.Do(t, http.MethodDelete, starPath, token, nil))
	// 取消后可以再次收藏
	test.NoError(t, s.Do(t, http.MethodPost, starPath, token, nil))
}
