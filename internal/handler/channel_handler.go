package handler

import (
	"net/http"

	"github.com/vik9386/backend/internal/common/httpx"
	"github.com/vik9386/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GetChannelProfile returns the public channel view for a username with
// subscriber counts. The viewer's identity, when present, drives the
// isSubscribed flag; anonymous viewers always get false.
func (h *Handler) GetChannelProfile(c *gin.Context) {
	username := c.Param("username")
	viewerID, _ := middleware.CurrentUserID(c)

	profile, err := h.service.GetChannelProfile(c.Request.Context(), username, viewerID)
	if err != nil {
		httpx.WriteServiceError(c, err, "failed to fetch channel")
		return
	}

	httpx.WriteSuccess(c, http.StatusOK, profile, "channel fetched successfully")
}
