package router

import (
	"github.com/vik9386/backend/internal/handler"
	"github.com/vik9386/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(api *gin.RouterGroup, h *handler.Handler) {
	users := api.Group("/users")

	users.POST("/register", middleware.UploadBodyLimit(), middleware.StageUploads("avatar", "coverImage"), h.Register)
	users.POST("/login", h.Login)
	users.POST("/refresh-token", h.RefreshToken)

	users.POST("/logout", middleware.JWTAuth(), h.Logout)
}
