package handler

import (
	"net/http"

	"github.com/vik9386/backend/internal/common/httpx"
	"github.com/vik9386/backend/internal/middleware"
	"github.com/vik9386/backend/internal/service"
	"github.com/vik9386/backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// setAuthCookies attaches the token pair as HTTP-only, secure cookies.
func setAuthCookies(c *gin.Context, pair *service.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("accessToken", pair.AccessToken, int(utils.AccessTokenTTL().Seconds()), "/", "", true, true)
	c.SetCookie("refreshToken", pair.RefreshToken, int(utils.RefreshTokenTTL().Seconds()), "/", "", true, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("accessToken", "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
}

// Register handles multipart registration: text fields plus a mandatory
// avatar file and an optional coverImage file staged by StageUploads.
func (h *Handler) Register(c *gin.Context) {
	in := service.RegisterInput{
		Username:       c.PostForm("username"),
		Email:          c.PostForm("email"),
		FullName:       c.PostForm("fullName"),
		Password:       c.PostForm("password"),
		AvatarPath:     middleware.StagedFile(c, "avatar"),
		CoverImagePath: middleware.StagedFile(c, "coverImage"),
	}

	user, err := h.service.Register(c.Request.Context(), in)
	if err != nil {
		httpx.WriteServiceError(c, err, "failed to register user")
		return
	}

	httpx.WriteSuccess(c, http.StatusCreated, user, "user registered successfully")
}

func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "username, email and password are required")
		return
	}

	result, err := h.service.Login(service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "failed to log in")
		return
	}

	setAuthCookies(c, &service.TokenPair{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
	httpx.WriteSuccess(c, http.StatusOK, result, "user logged in successfully")
}

func (h *Handler) Logout(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "unauthorized request")
		return
	}

	if err := h.service.Logout(userID); err != nil {
		httpx.WriteServiceError(c, err, "failed to log out")
		return
	}

	clearAuthCookies(c)
	httpx.WriteSuccess(c, http.StatusOK, gin.H{}, "user logged out")
}

// RefreshToken rotates the refresh token taken from the refreshToken cookie
// or, failing that, the request body.
func (h *Handler) RefreshToken(c *gin.Context) {
	incoming, _ := c.Cookie("refreshToken")
	if incoming == "" {
		var req struct {
			RefreshToken string `json:"refreshToken"`
		}
		// body is optional when the cookie is present, so binding errors
		// just leave the token empty
		_ = c.ShouldBindJSON(&req)
		incoming = req.RefreshToken
	}

	pair, err := h.service.Refresh(incoming)
	if err != nil {
		httpx.WriteServiceError(c, err, "failed to refresh token")
		return
	}

	setAuthCookies(c, pair)
	httpx.WriteSuccess(c, http.StatusOK, pair, "access token refreshed")
}
