package upload_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"campus-activity/internal/global/response"
	"campus-activity/internal/model"
	"campus-activity/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadImage(t *testing.T, s *test.Server, token, filename string, content []byte) test.Response {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/"+s.App.Config.Prefix+"/upload/image", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.Engine.ServeHTTP(rec, req)

	var resp test.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	resp.Status = rec.Code
	return resp
}

func TestUploadImageLocal(t *testing.T) {
	s := test.NewServer(t)
	teacher := test.CreateUser(t, s.App.DB, "teacher@x.com", model.RoleTeacher)
	student := test.CreateUser(t, s.App.DB, "student@x.com", model.RoleStudent)
	token := test.Token(t, s.App, teacher)

	test.ErrorEqual(t, response.ErrForbidden, uploadImage(t, s, test.Token(t, s.App, student), "a.png", []byte("png")))
	test.ErrorEqual(t, response.ErrInvalidRequest, uploadImage(t, s, token, "a.exe", []byte("bin")))

	resp := uploadImage(t, s, token, "cover.PNG", []byte("fake png"))
	test.NoError(t, resp)
	var out struct {
		URL string `json:"url"`
	}
	resp.Decode(t, &out)
	require.True(t, strings.HasPrefix(out.URL, s.App.Config.Storage.BaseURL+"/"), out.URL)
	assert.True(t, strings.HasSuffix(out.URL, ".png"))

	saved, err := os.ReadFile(filepath.Join(s.App.Config.Storage.Home, filepath.Base(out.URL)))
	require.NoError(t, err)
	assert.Equal(t, "fake png", string(saved))

	w := s.Raw(http.MethodPost, "/upload/image", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPresignWithoutS3(t *testing.T) {
	s := test.NewServer(t)
	teacher := test.CreateUser(t, s.App.DB, "teacher@x.com", model.RoleTeacher)
	token := test.Token(t, s.App, teacher)

	test.ErrorEqual(t, response.ErrInvalidRequest, s.Do(t, http.MethodPost, "/upload/presign", token, map[string]any{}))
	test.ErrorEqual(t, response.ErrUnprocessable,
		s.Do(t, http.MethodPost, "/upload/presign", token, map[string]any{"filename": "cover.png"}))
}
