package handler

import "github.com/vik9386/backend/internal/service"

type Handler struct {
	service *service.Service
}

func NewHandler(appService *service.Service) *Handler {
	return &Handler{service: appService}
}
