package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"jsonblog/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	Validate    *validator.Validate
	Log         *zap.Logger
}

func NewHandlers(services *service.Service, log *zap.Logger) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		PostService: services.Post,
		Validate:    validator.New(),
		Log:         log,
	}
}
