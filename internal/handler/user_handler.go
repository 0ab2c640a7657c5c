package handler

import (
	"net/http"

	"github.com/vik9386/backend/internal/common/httpx"
	"github.com/vik9386/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "unauthorized request")
		return
	}

	user, err := h.service.CurrentUser(userID)
	if err != nil {
		httpx.WriteServiceError(c, err, "failed to fetch current user")
		return
	}

	httpx.WriteSuccess(c, http.StatusOK, user, "current user fetched successfully")
}

func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "unauthorized request")
		return
	}

	var req struct {
		OldPassword string `json:"oldPassword" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "oldPassword and newPassword are required")
		return
	}

	if err := h.service.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		httpx.WriteServiceError(c, err, "failed to change password")
		return
	}

	httpx.WriteSuccess(c, http.StatusOK, gin.H{}, "password changed successfully")
}

func (h *Handler) UpdateAccountDetails(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "unauthorized request")
		return
	}

	var req struct {
		FullName string `json:"fullName" binding:"required"`
		Email    string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.WriteError(c, http.StatusBadRequest, "fullName and email are required")
		return
	}

	user, err := h.service.UpdateAccountDetails(userID, req.FullName, req.Email)
	if err != nil {
		httpx.WriteServiceError(c, err, "failed to update account details")
		return
	}

	httpx.WriteSuccess(c, http.StatusOK, user, "account details updated successfully")
}

func (h *Handler) UpdateAvatar(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "unauthorized request")
		return
	}

	user, err := h.service.UpdateAvatar(c.Request.Context(), userID, middleware.StagedFile(c, "avatar"))
	if err != nil {
		httpx.WriteServiceError(c, err, "failed to update avatar")
		return
	}

	httpx.WriteSuccess(c, http.StatusOK, user, "avatar updated successfully")
}

func (h *Handler) UpdateCoverImage(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		httpx.WriteError(c, http.StatusUnauthorized, "unauthorized request")
		return
	}

	user, err := h.service.UpdateCoverImage(c.Request.Context(), userID, middleware.StagedFile(c, "coverImage"))
	if err != nil {
		httpx.WriteServiceError(c, err, "failed to update cover image")
		return
	}

	httpx.WriteSuccess(c, http.StatusOK, user, "cover image updated successfully")
}
