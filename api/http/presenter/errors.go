package presenter

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/user-management/pkg/security/jwt"
	"github.com/artem13815/user-management/pkg/user"
)

// ErrValidation marks request-body validation failures rejected at the
// transport layer, before the flows run.
var ErrValidation = errors.New("validation failed")

// ValidationError wraps the joined field messages into an ErrValidation kind.
func ValidationError(details string) error {
	return &kindError{kind: ErrValidation, msg: "Validation Error(s): " + details}
}

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// ErrorDetail is a single entry of the error payload.
type ErrorDetail struct {
	Timestamp string `json:"timestamp"`
	Code      int    `json:"codigo"`
	Detail    string `json:"detail"`
}

// ErrorResponse is the wire shape of every failure.
type ErrorResponse struct {
	Error []ErrorDetail `json:"error"`
}

func NewErrorResponse(status int, detail string) ErrorResponse {
	return ErrorResponse{Error: []ErrorDetail{{
		Timestamp: FormatTime(time.Now()),
		Code:      status,
		Detail:    detail,
	}}}
}

// NewErrorHandler translates failure kinds to transport status codes in one
// place; handlers and middleware just return domain errors. Only the
// unclassified fallback is logged with full diagnostics, every other kind
// surfaces its specific message directly.
func NewErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var status int
		var detail string

		switch {
		case errors.Is(err, user.ErrInvalidPassword),
			errors.Is(err, user.ErrTokenSubjectMissing),
			errors.Is(err, ErrValidation):
			status = http.StatusBadRequest
			detail = err.Error()
		case errors.Is(err, user.ErrUserAlreadyExists):
			status = http.StatusConflict
			detail = err.Error()
		case errors.Is(err, user.ErrNotFound):
			status = http.StatusNotFound
			detail = err.Error()
		case errors.Is(err, jwt.ErrTokenExpired):
			status = http.StatusUnauthorized
			detail = "Authentication Error: JWT token has expired."
		case errors.Is(err, jwt.ErrTokenInvalid):
			status = http.StatusBadRequest
			detail = "Authentication Error: Invalid JWT token."
		case errors.Is(err, jwt.ErrAuthHeaderMissing):
			status = http.StatusBadRequest
			detail = err.Error()
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				if fiberErr.Code == http.StatusMethodNotAllowed {
					status = http.StatusMethodNotAllowed
					detail = fmt.Sprintf("Request method '%s' not supported.", c.Method())
				} else {
					status = fiberErr.Code
					detail = fiberErr.Message
				}
			} else {
				log.Error("unhandled error",
					slog.String("method", c.Method()),
					slog.String("path", c.Path()),
					slog.Any("error", err),
				)
				status = http.StatusInternalServerError
				detail = "An unexpected error occurred: " + err.Error()
			}
		}

		return c.Status(status).JSON(NewErrorResponse(status, detail))
	}
}
