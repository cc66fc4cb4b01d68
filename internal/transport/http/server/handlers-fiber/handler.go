// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"reflect"
	"strings"

	"synergysphere/internal/usecase"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler serves the JSON API on top of the usecase layer.
type Handler struct {
	log      *zap.SugaredLogger
	uc       usecase.InterfaceUsecase
	validate *validator.Validate
}

// NewHandler constructs an HTTP server with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		log:      log,
		uc:       usecase,
		validate: v,
	}
}
