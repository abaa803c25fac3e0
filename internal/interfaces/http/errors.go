package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmanzanog/finrecords/internal/domain"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// RequestBodyError reports a body that could not be decoded into the request type.
type RequestBodyError struct {
	Err error
}

func (e *RequestBodyError) Error() string { return "malformed request body: " + e.Err.Error() }
func (e *RequestBodyError) Unwrap() error { return e.Err }

// InvalidQueryParameterError reports a query parameter of the wrong shape.
type InvalidQueryParameterError struct {
	Name  string
	Value string
	Err   error
}

func (e *InvalidQueryParameterError) Error() string {
	return fmt.Sprintf("invalid value %q for query parameter %s", e.Value, e.Name)
}

func (e *InvalidQueryParameterError) Unwrap() error { return e.Err }

type MethodNotAllowedError struct {
	Method  string
	Allowed []string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %s is not supported for this resource", e.Method)
}

type RouteNotFoundError struct {
	Path string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("no handler found for %s", e.Path)
}

type AccessDeniedError struct{}

func (e *AccessDeniedError) Error() string { return "access denied" }

// PanicError carries a value recovered from a panicking handler.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// rule renders err when it recognises it.
type rule func(err error, path string) (int, ErrorResponse, bool)

// rules is evaluated in order; the first match wins.
var rules = []rule{
	validationRule,
	requestBodyRule,
	queryParameterRule,
	constraintRule,
	methodNotAllowedRule,
	routeNotFoundRule,
	accessDeniedRule,
	notFoundRule(domain.KindTransaction, "TRANSACTION_ERROR"),
	portfolioRule,
	notFoundRule(domain.KindNotification, "NOTIFICATION_ERROR"),
	notFoundRule(domain.KindUser, "USER_ERROR"),
	notFoundRule(domain.KindFinancingProfile, "FINANCING_PROFILE_ERROR"),
	badContentRule,
}

// Classify maps err to a status and response body. Anything no rule
// recognises is a SERVER_ERROR.
func Classify(err error, path string) (int, ErrorResponse) {
	for _, r := range rules {
		if status, body, ok := r(err, path); ok {
			return status, body
		}
	}
	return http.StatusInternalServerError, ErrorResponse{
		Code:    "SERVER_ERROR",
		Message: "An unexpected error occurred",
		Details: []string{
			"Error: " + err.Error(),
			"Path: " + path,
			"Type: " + kindName(err),
		},
	}
}

func validationRule(err error, _ string) (int, ErrorResponse, bool) {
	var details []string

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			details = append(details, fe.Field()+": "+fieldMessage(fe))
		}
	case errors.As(err, &typeErr) && typeErr.Field != "":
		details = []string{fmt.Sprintf("%s: must be of type %s", typeErr.Field, typeErr.Type.Kind())}
	default:
		return 0, ErrorResponse{}, false
	}

	return http.StatusBadRequest, ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "Request validation failed",
		Details: details,
	}, true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "max":
		return fmt.Sprintf("size must be at most %s", fe.Param())
	case "email":
		return "must be a well-formed email address"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

func requestBodyRule(err error, _ string) (int, ErrorResponse, bool) {
	var bodyErr *RequestBodyError
	if !errors.As(err, &bodyErr) {
		return 0, ErrorResponse{}, false
	}
	return http.StatusBadRequest, ErrorResponse{
		Code:    "INVALID_REQUEST_BODY",
		Message: "The request body could not be read",
		Details: []string{"Check that the body is well-formed JSON and that field types match the resource"},
	}, true
}

func queryParameterRule(err error, _ string) (int, ErrorResponse, bool) {
	var qpErr *InvalidQueryParameterError
	if !errors.As(err, &qpErr) {
		return 0, ErrorResponse{}, false
	}
	cause := error(qpErr)
	for next := errors.Unwrap(cause); next != nil; next = errors.Unwrap(cause) {
		cause = next
	}
	return http.StatusBadRequest, ErrorResponse{
		Code:    "INVALID_QUERY_PARAMETER",
		Message: qpErr.Error(),
		Details: []string{cause.Error()},
	}, true
}

func constraintRule(err error, _ string) (int, ErrorResponse, bool) {
	var cvErr *domain.ConstraintViolationError
	if !errors.As(err, &cvErr) {
		return 0, ErrorResponse{}, false
	}
	details := make([]string, len(cvErr.Violations))
	for i, v := range cvErr.Violations {
		details[i] = v.Path + ": " + v.Message
	}
	return http.StatusBadRequest, ErrorResponse{
		Code:    "CONSTRAINT_VIOLATION",
		Message: "Constraint violation",
		Details: details,
	}, true
}

func methodNotAllowedRule(err error, _ string) (int, ErrorResponse, bool) {
	var mnaErr *MethodNotAllowedError
	if !errors.As(err, &mnaErr) {
		return 0, ErrorResponse{}, false
	}
	details := make([]string, len(mnaErr.Allowed))
	copy(details, mnaErr.Allowed)
	return http.StatusMethodNotAllowed, ErrorResponse{
		Code:    "METHOD_NOT_ALLOWED",
		Message: mnaErr.Error(),
		Details: details,
	}, true
}

func routeNotFoundRule(err error, _ string) (int, ErrorResponse, bool) {
	var rnfErr *RouteNotFoundError
	if !errors.As(err, &rnfErr) {
		return 0, ErrorResponse{}, false
	}
	return http.StatusNotFound, ErrorResponse{
		Code:    "RESOURCE_NOT_FOUND",
		Message: "The requested resource was not found",
		Details: []string{"Path: " + rnfErr.Path},
	}, true
}

func accessDeniedRule(err error, _ string) (int, ErrorResponse, bool) {
	var adErr *AccessDeniedError
	if !errors.As(err, &adErr) {
		return 0, ErrorResponse{}, false
	}
	return http.StatusForbidden, ErrorResponse{
		Code:    "ACCESS_DENIED",
		Message: "Access denied",
		Details: []string{"A valid X-API-Key header is required"},
	}, true
}

func notFoundRule(kind domain.EntityKind, code string) rule {
	return func(err error, _ string) (int, ErrorResponse, bool) {
		var nfErr *domain.NotFoundError
		if !errors.As(err, &nfErr) || nfErr.Kind != kind {
			return 0, ErrorResponse{}, false
		}
		return http.StatusNotFound, ErrorResponse{
			Code:    code,
			Message: "An error occurred with the " + string(kind),
			Details: []string{nfErr.Error()},
		}, true
	}
}

func portfolioRule(err error, path string) (int, ErrorResponse, bool) {
	if status, body, ok := notFoundRule(domain.KindPortfolio, "PORTFOLIO_ERROR")(err, path); ok {
		return status, body, true
	}
	var depErr *domain.DependentsExistError
	if !errors.As(err, &depErr) {
		return 0, ErrorResponse{}, false
	}
	return http.StatusBadRequest, ErrorResponse{
		Code:    "PORTFOLIO_ERROR",
		Message: "The portfolio has transactions",
		Details: []string{depErr.Error()},
	}, true
}

func badContentRule(err error, _ string) (int, ErrorResponse, bool) {
	var (
		enumErr  *domain.InvalidEnumValueError
		fileErr  *domain.InvalidFileError
		instrErr *domain.InsufficientInstrumentsError
		resp     ErrorResponse
	)
	switch {
	case errors.As(err, &enumErr):
		resp = ErrorResponse{Code: "INVALID_ENUM_VALUE", Message: "Invalid enum value", Details: []string{enumErr.Error()}}
	case errors.As(err, &fileErr):
		resp = ErrorResponse{Code: "INVALID_FILE", Message: "An error occurred with the file", Details: []string{fileErr.Error()}}
	case errors.As(err, &instrErr):
		resp = ErrorResponse{Code: "INSUFFICIENT_INSTRUMENTS", Message: "An error occurred with the portfolio", Details: []string{instrErr.Error()}}
	default:
		return 0, ErrorResponse{}, false
	}
	return http.StatusBadRequest, resp, true
}

// kindName is the Go type of the innermost wrapped error.
func kindName(err error) string {
	for next := errors.Unwrap(err); next != nil; next = errors.Unwrap(err) {
		err = next
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}

// ErrorHandler renders the last error attached to the context. Handlers report
// failures with c.Error and never write error bodies themselves.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		path := c.Request.URL.Path
		status, body := Classify(err, path)

		if status >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request.Context(), "Request failed",
				"path", path, "method", c.Request.Method, "type", kindName(err), "error", err)
		} else {
			slog.WarnContext(c.Request.Context(), "Request rejected",
				"path", path, "method", c.Request.Method, "code", body.Code, "error", err)
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// Recovery turns a panic into a PanicError for ErrorHandler.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		err, ok := recovered.(error)
		if !ok {
			err = &PanicError{Value: recovered}
		}
		_ = c.Error(err)
		c.Abort()
	})
}
