package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/vik9386/backend/internal/db"
	"github.com/vik9386/backend/internal/model"
	"github.com/vik9386/backend/internal/repository"
	"github.com/vik9386/backend/internal/service"
	"github.com/vik9386/backend/internal/testutils"
	"github.com/vik9386/backend/internal/uploader"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type fakeUploader struct{}

func (f *fakeUploader) Upload(_ context.Context, localPath string) (*uploader.Result, error) {
	if localPath == "" {
		return nil, nil
	}
	defer os.Remove(localPath)
	return &uploader.Result{URL: "https://media.test/" + filepath.Base(localPath)}, nil
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutils.SetupConfig(t)
	testutils.SetupDB(t)

	repos := repository.NewRepositories(
		repository.NewUserRepository(db.DB),
		repository.NewSubscriptionRepository(db.DB),
	)
	return NewHandler(service.New(repos, &fakeUploader{}))
}

func seedUser(t *testing.T, username, password string) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	u := &model.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: "User " + username,
		Password: string(hashed),
		Avatar:   "https://media.test/" + username + ".png",
	}
	if err := db.DB.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// multipartBody builds a multipart form with text fields and optional files
// (field name -> file name).
func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for field, name := range files {
		fw, err := w.CreateFormFile(field, name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.WriteString(fw, "fake image bytes"); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, w.Body.String())
	}
	return env
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
