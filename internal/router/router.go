package router

import (
	"github.com/vik9386/backend/internal/handler"
	"github.com/vik9386/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Router struct {
	handler *handler.Handler
}

func NewRouter(h *handler.Handler) *Router {
	return &Router{handler: h}
}

func (rt *Router) Init(r *gin.Engine) {
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit())

	api := r.Group("/api/v1")

	registerAuthRoutes(api, rt.handler)
	registerUserRoutes(api, rt.handler)
}
