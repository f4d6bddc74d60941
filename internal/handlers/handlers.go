package handlers

import (
	"log/slog"

	"github.com/cheetahbyte/keyforge/internal/services"
	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	Services services.ServiceStack
	validate *validator.Validate
	log      *slog.Logger
}

func New(s services.ServiceStack, log *slog.Logger) *Handlers {
	return &Handlers{
		Services: s,
		validate: validator.New(),
		log:      log,
	}
}
