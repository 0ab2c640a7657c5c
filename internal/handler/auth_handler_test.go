package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vik9386/backend/internal/db"
	"github.com/vik9386/backend/internal/middleware"
	"github.com/vik9386/backend/internal/model"

	"github.com/gin-gonic/gin"
)

func TestRegisterHandler_Success(t *testing.T) {
	h := newTestHandler(t)

	r := gin.New()
	r.POST("/register", middleware.StageUploads("avatar", "coverImage"), h.Register)

	body, contentType := multipartBody(t,
		map[string]string{
			"username": "alice",
			"email":    "a@example.com",
			"fullName": "Alice A",
			"password": "abc12345",
		},
		map[string]string{"avatar": "avatar.png"},
	)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if !env.Success || env.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["username"] != "alice" {
		t.Fatalf("unexpected user payload: %v", data)
	}
	if _, leaked := data["password"]; leaked {
		t.Fatalf("password must never be serialized: %v", data)
	}
	if _, leaked := data["refreshToken"]; leaked {
		t.Fatalf("refresh token must never be serialized: %v", data)
	}
}

func TestRegisterHandler_MissingAvatar(t *testing.T) {
	h := newTestHandler(t)

	r := gin.New()
	r.POST("/register", middleware.StageUploads("avatar", "coverImage"), h.Register)

	body, contentType := multipartBody(t,
		map[string]string{
			"username": "alice",
			"email":    "a@example.com",
			"fullName": "Alice A",
			"password": "abc12345",
		},
		nil,
	)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Success || env.Errors == nil {
		t.Fatalf("unexpected error envelope: %+v", env)
	}
}

func TestRegisterHandler_DuplicateConflict(t *testing.T) {
	h := newTestHandler(t)
	seedUser(t, "alice", "abc12345")

	r := gin.New()
	r.POST("/register", middleware.StageUploads("avatar", "coverImage"), h.Register)

	body, contentType := multipartBody(t,
		map[string]string{
			"username": "alice",
			"email":    "fresh@example.com",
			"fullName": "Alice A",
			"password": "abc12345",
		},
		map[string]string{"avatar": "avatar.png"},
	)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestLoginHandler_SetsCookies(t *testing.T) {
	h := newTestHandler(t)
	seedUser(t, "alice", "abc12345")

	r := gin.New()
	r.POST("/login", h.Login)

	body, _ := json.Marshal(gin.H{"username": "alice", "email": "alice@example.com", "password": "abc12345"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	resp := w.Result()
	access := cookieValue(resp, "accessToken")
	refresh := cookieValue(resp, "refreshToken")
	if access == "" || refresh == "" {
		t.Fatalf("expected both auth cookies to be set")
	}
	for _, c := range resp.Cookies() {
		if c.Name == "accessToken" || c.Name == "refreshToken" {
			if !c.HttpOnly || !c.Secure {
				t.Fatalf("expected %s cookie to be HttpOnly and Secure", c.Name)
			}
		}
	}

	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	var data struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.AccessToken != access || data.RefreshToken != refresh {
		t.Fatalf("cookie and body tokens must match")
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	h := newTestHandler(t)
	seedUser(t, "alice", "abc12345")

	r := gin.New()
	r.POST("/login", h.Login)

	body, _ := json.Marshal(gin.H{"username": "alice", "email": "alice@example.com", "password": "wrongpass1"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestLoginHandler_BindError(t *testing.T) {
	h := newTestHandler(t)

	r := gin.New()
	r.POST("/login", h.Login)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte("{bad"))))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestRefreshHandler_CookieRotationAndReplay(t *testing.T) {
	h := newTestHandler(t)
	seedUser(t, "alice", "abc12345")

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/refresh-token", h.RefreshToken)

	body, _ := json.Marshal(gin.H{"username": "alice", "email": "alice@example.com", "password": "abc12345"})
	loginW := httptest.NewRecorder()
	r.ServeHTTP(loginW, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))
	if loginW.Code != http.StatusOK {
		t.Fatalf("login failed: %d body=%s", loginW.Code, loginW.Body.String())
	}
	refresh := cookieValue(loginW.Result(), "refreshToken")

	// first refresh via cookie succeeds
	req := httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: refresh})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	rotated := cookieValue(w.Result(), "refreshToken")
	if rotated == "" || rotated == refresh {
		t.Fatalf("expected a rotated refresh cookie")
	}

	// replaying the stale token must fail
	replay := httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
	replay.AddCookie(&http.Cookie{Name: "refreshToken", Value: refresh})
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, replay)
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for replayed token, got %d body=%s", w2.Code, w2.Body.String())
	}
}

func TestRefreshHandler_BodyTokenAndMissing(t *testing.T) {
	h := newTestHandler(t)
	seedUser(t, "alice", "abc12345")

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/refresh-token", h.RefreshToken)

	loginBody, _ := json.Marshal(gin.H{"username": "alice", "email": "alice@example.com", "password": "abc12345"})
	loginW := httptest.NewRecorder()
	r.ServeHTTP(loginW, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(loginBody)))
	refresh := cookieValue(loginW.Result(), "refreshToken")

	// token in the body instead of the cookie
	body, _ := json.Marshal(gin.H{"refreshToken": refresh})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/refresh-token", bytes.NewReader(body)))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	// no token anywhere
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodPost, "/refresh-token", nil))
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d body=%s", w2.Code, w2.Body.String())
	}
}

func TestLogoutHandler_ClearsSession(t *testing.T) {
	h := newTestHandler(t)
	user := seedUser(t, "alice", "abc12345")

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/logout", middleware.JWTAuth(), h.Logout)
	r.POST("/refresh-token", h.RefreshToken)

	body, _ := json.Marshal(gin.H{"username": "alice", "email": "alice@example.com", "password": "abc12345"})
	loginW := httptest.NewRecorder()
	r.ServeHTTP(loginW, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))
	access := cookieValue(loginW.Result(), "accessToken")
	refresh := cookieValue(loginW.Result(), "refreshToken")

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: access})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	// record survives, slot is empty
	var stored model.User
	if err := db.DB.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("expected user to survive logout: %v", err)
	}
	if stored.RefreshToken != "" {
		t.Fatalf("expected refresh token cleared")
	}

	// the old refresh token is unusable immediately
	replay := httptest.NewRequest(http.MethodPost, "/refresh-token", nil)
	replay.AddCookie(&http.Cookie{Name: "refreshToken", Value: refresh})
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, replay)
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d body=%s", w2.Code, w2.Body.String())
	}
}
