package response

import (
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"
)

var hideInternalDetails atomic.Bool

// HideInternalDetails stops RenderErr from echoing the cause of 5xx errors
// back to clients. Enabled in production.
func HideInternalDetails(hide bool) {
	hideInternalDetails.Store(hide)
}

// Envelope wraps every successful response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Created(message string, data any) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

func List[T any](items []T) Envelope {
	if items == nil {
		items = []T{}
	}
	count := len(items)

	return Envelope{Success: true, Count: &count, Data: items}
}

func Message(message string) Envelope {
	return Envelope{Success: true, Message: message}
}

// Err is the failure envelope. Err holds the cause, which is never
// serialized directly.
type Err struct {
	Success        bool   `json:"success"`
	HTTPStatusCode int    `json:"-"`
	Message        string `json:"error"`
	Details        any    `json:"details,omitempty"`
	Err            error  `json:"-"`
}

func (e *Err) Error() string {
	if e.Err == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Err) Unwrap() error {
	return e.Err
}

// ErrBadRequest reports a malformed or invalid request. ozzo validation
// errors are expanded field by field into Details.
func ErrBadRequest(err error) *Err {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for field, fieldErr := range fieldErrs {
			details[field] = fieldErr.Error()
		}

		return &Err{
			HTTPStatusCode: http.StatusBadRequest,
			Message:        "Validation failed",
			Details:        details,
			Err:            err,
		}
	}

	return &Err{
		HTTPStatusCode: http.StatusBadRequest,
		Message:        err.Error(),
		Err:            err,
	}
}

// ErrValidation reports the first rule a submission broke. field may be
// empty when the rule is not about a single field.
func ErrValidation(field, message string) *Err {
	e := &Err{
		HTTPStatusCode: http.StatusBadRequest,
		Message:        message,
	}
	if field != "" {
		e.Details = map[string]string{field: message}
	}

	return e
}

func ErrConflict(message string, err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusConflict,
		Message:        message,
		Err:            err,
	}
}

func ErrNotFound(resource, key string, value any) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		Message:        fmt.Sprintf("%s with %s %v not found", resource, key, value),
	}
}

func ErrUnauthorized(message string) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		Message:        message,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusUnauthorized,
		Message:        "Invalid password",
		Err:            err,
	}
}

// ErrInternalServerError hides err behind message. The cause is logged and,
// outside production, returned in Details.
func ErrInternalServerError(message string, err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusInternalServerError,
		Message:        message,
		Err:            err,
	}
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(e.Message,
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(e.Err),
		)

		if e.Err != nil && e.Details == nil && !hideInternalDetails.Load() {
			e.Details = e.Err.Error()
		}
	}

	e.Success = false
	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}
