package user_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"campus-activity/internal/global/response"
	"campus-activity/internal/model"
	"campus-activity/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signInData struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func signUp(t *testing.T, s *test.Server, email, password string) test.Response {
	return s.Do(t, http.MethodPost, "/sign-up", "", map[string]any{
		"email": email, "password": password, "name": "Alice",
	})
}

func TestSignUpSignInTokenCarriesUser(t *testing.T) {
	s := test.NewServer(t)

	resp := signUp(t, s, "a@b.com", "abcdefg1")
	test.NoError(t, resp)
	var created model.User
	resp.Decode(t, &created)
	assert.Equal(t, model.RoleStudent, created.Role)

	resp = s.Do(t, http.MethodPost, "/sign-in", "", map[string]any{"email": "A@B.com", "password": "abcdefg1"})
	test.NoError(t, resp)
	var data signInData
	resp.Decode(t, &data)

	claims, err := s.App.Tokens.ParseToken(context.Background(), data.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.ID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestSignUpRejects(t *testing.T) {
	s := test.NewServer(t)

	test.ErrorEqual(t, response.ErrWeakPassword, signUp(t, s, "a@b.com", "short1"))
	test.ErrorEqual(t, response.ErrWeakPassword, signUp(t, s, "a@b.com", "abcdefgh"))
	test.ErrorEqual(t, response.ErrWeakPassword, signUp(t, s, "a@b.com", strings.Repeat("a", 80)+"1"))
	test.ErrorEqual(t, response.ErrInvalidRequest, signUp(t, s, "not-an-email", "abcdefg1"))

	test.NoError(t, signUp(t, s, "a@b.com", "abcdefg1"))
	test.ErrorEqual(t, response.ErrAlreadyExists, signUp(t, s, "a@b.com", "abcdefg2"))
}

func TestSignInCookie(t *testing.T) {
	s := test.NewServer(t)
	test.CreateUser(t, s.App.DB, "c@d.com", model.RoleStudent)

	w := s.Raw(http.MethodPost, "/sign-in", "", map[string]any{"email": "c@d.com", "password": test.Password})
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, s.App.Config.Auth.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestSignInFailures(t *testing.T) {
	s := test.NewServer(t)
	u := test.CreateUser(t, s.App.DB, "c@d.com", model.RoleStudent)

	resp := s.Do(t, http.MethodPost, "/sign-in", "", map[string]any{"email": "c@d.com", "password": "wrong123"})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)
	resp = s.Do(t, http.MethodPost, "/sign-in", "", map[string]any{"email": "x@d.com", "password": test.Password})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)

	require.NoError(t, s.App.DB.Model(&u).Update("status", model.UserDisabled).Error)
	resp = s.Do(t, http.MethodPost, "/sign-in", "", map[string]any{"email": "c@d.com", "password": test.Password})
	test.ErrorEqual(t, response.ErrUserDisabled, resp)
}

func TestSignOutRevokesToken(t *testing.T) {
	s := test.NewServer(t)
	u := test.CreateUser(t, s.App.DB, "c@d.com", model.RoleStudent)
	token := test.Token(t, s.App, u)

	test.NoError(t, s.Do(t, http.MethodGet, "/user/profile", token, nil))
	test.NoError(t, s.Do(t, http.MethodPost, "/sign-out", token, nil))
	test.ErrorEqual(t, response.ErrTokenRevoked, s.Do(t, http.MethodGet, "/user/profile", token, nil))
}

func TestProfileAndPassword(t *testing.T) {
	s := test.NewServer(t)
	u := test.CreateUser(t, s.App.DB, "c@d.com", model.RoleStudent)
	token := test.Token(t, s.App, u)

	resp := s.Do(t, http.MethodPut, "/user/profile", token, map[string]any{"name": "Carol", "student_id": "2024001"})
	test.NoError(t, resp)
	var got model.User
	resp.Decode(t, &got)
	assert.Equal(t, "Carol", got.Name)
	assert.Equal(t, "2024001", got.StudentID)

	resp = s.Do(t, http.MethodPost, "/user/password", token, map[string]any{"old_password": "nope1234", "new_password": "newpass99"})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)
	resp = s.Do(t, http.MethodPost, "/user/password", token, map[string]any{"old_password": test.Password, "new_password": "weak"})
	test.ErrorEqual(t, response.ErrWeakPassword, resp)
	resp = s.Do(t, http.MethodPost, "/user/password", token, map[string]any{"old_password": test.Password, "new_password": strings.Repeat("b", 72) + "9"})
	test.ErrorEqual(t, response.ErrWeakPassword, resp)
	test.NoError(t, s.Do(t, http.MethodPost, "/user/password", token, map[string]any{"old_password": test.Password, "new_password": "newpass99"}))

	test.NoError(t, s.Do(t, http.MethodPost, "/sign-in", "", map[string]any{"email": "c@d.com", "password": "newpass99"}))
}

func TestAdminManagesUsers(t *testing.T) {
	s := test.NewServer(t)
	admin := test.CreateUser(t, s.App.DB, "admin@x.com", model.RoleAdmin)
	student := test.CreateUser(t, s.App.DB, "stu@x.com", model.RoleStudent)
	adminToken := test.Token(t, s.App, admin)
	studentToken := test.Token(t, s.App, student)

	test.ErrorEqual(t, response.ErrForbidden, s.Do(t, http.MethodGet, "/users", studentToken, nil))
	test.ErrorEqual(t, response.ErrUnauthorized, s.Do(t, http.MethodGet, "/users", "", nil))

	resp := s.Do(t, http.MethodGet, "/users?role=student", adminToken, nil)
	test.NoError(t, resp)
	var page struct {
		List  []model.User `json:"list"`
		Total int64        `json:"total"`
	}
	resp.Decode(t, &page)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, student.ID, page.List[0].ID)

	path := "/users/" + itoa(student.ID)
	test.ErrorEqual(t, response.ErrInvalidRequest, s.Do(t, http.MethodPut, path+"/role", adminToken, map[string]any{"role": "root"}))
	test.NoError(t, s.Do(t, http.MethodPut, path+"/role", adminToken, map[string]any{"role": "teacher"}))

	// 禁用立即生效，旧 token 不再可用
	test.NoError(t, s.Do(t, http.MethodPut, path+"/status", adminToken, map[string]any{"status": "disabled"}))
	test.ErrorEqual(t, response.ErrUserDisabled, s.Do(t, http.MethodGet, "/user/profile", studentToken, nil))

	test.ErrorEqual(t, response.ErrForbidden,
		s.Do(t, http.MethodPut, "/users/"+itoa(admin.ID)+"/status", adminToken, map[string]any{"status": "disabled"}))
	test.ErrorEqual(t, response.ErrUserNotFound,
		s.Do(t, http.MethodPut, "/users/999/role", adminToken, map[string]any{"role": "teacher"}))
}
