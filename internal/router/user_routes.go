package router

import (
	"github.com/vik9386/backend/internal/handler"
	"github.com/vik9386/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup, h *handler.Handler) {
	users := api.Group("/users")

	secured := users.Group("")
	secured.Use(middleware.JWTAuth())

	secured.GET("/current-user", h.GetCurrentUser)
	secured.POST("/change-password", h.ChangePassword)
	secured.PATCH("/update-account", h.UpdateAccountDetails)
	secured.PATCH("/avatar", middleware.UploadBodyLimit(), middleware.StageUploads("avatar"), h.UpdateAvatar)
	secured.PATCH("/cover-image", middleware.UploadBodyLimit(), middleware.StageUploads("coverImage"), h.UpdateCoverImage)

	// channel profiles are public; a logged-in viewer gets isSubscribed
	users.GET("/c/:username", middleware.OptionalJWTAuth(), h.GetChannelProfile)
}
