package handlers_fiber

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"synergysphere/internal/entities"
	"synergysphere/internal/transport/http/dto"
	"synergysphere/internal/transport/http/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := dto.Internal
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrNotFound):
		status = http.StatusNotFound
		code = dto.NotFound
		msg = err.Error()
	case errors.Is(err, entities.ErrForbidden):
		status = http.StatusForbidden
		code = dto.Forbidden
		msg = "access denied"
	case errors.Is(err, entities.ErrConflict):
		status = http.StatusBadRequest
		code = dto.Conflict
		msg = err.Error()
	case errors.Is(err, entities.ErrInvariantViolation):
		status = http.StatusBadRequest
		code = dto.InvariantViolation
		msg = err.Error()
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		code = dto.InvalidArgument
		msg = err.Error()
	case errors.Is(err, entities.ErrUnauthorized):
		status = http.StatusUnauthorized
		code = dto.Unauthorized
		msg = err.Error()
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code dto.ErrorCode, msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: msg}}
}

// bind parses the JSON body into dst and runs its validate tags.
func (h *Handler) bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: invalid body", entities.ErrInvalidArgument)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", entities.ErrInvalidArgument, describeValidation(err))
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, field+" must be at least "+fe.Param()+" characters")
		case "email":
			msgs = append(msgs, field+" must be a valid email")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, ", ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// caller returns the identity set by the auth middleware.
func caller(c *fiber.Ctx) entities.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}
