package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmanzanog/finrecords/internal/application"
	"github.com/jmanzanog/finrecords/internal/domain"
)

// ResourceService is the CRUD surface shared by every paged resource.
type ResourceService[V, C, U any] interface {
	List(ctx context.Context, pageIndex, pageSize int) (application.PageEnvelope[V], error)
	Get(ctx context.Context, id string) (*V, error)
	Create(ctx context.Context, req C) (*V, error)
	Update(ctx context.Context, id string, req U) (*V, error)
	Delete(ctx context.Context, id string) error
}

type TransactionService interface {
	ResourceService[application.TransactionView, application.CreateTransactionRequest, application.UpdateTransactionRequest]
	Import(ctx context.Context, lines []application.ImportLine) *application.ImportResult
}

type (
	NotificationService = ResourceService[application.NotificationView, application.CreateNotificationRequest, application.UpdateNotificationRequest]
	ProfileService      = ResourceService[application.ProfileView, application.CreateProfileRequest, application.UpdateProfileRequest]
	PortfolioService    = ResourceService[application.PortfolioView, application.CreatePortfolioRequest, application.UpdatePortfolioRequest]
)

type UserService interface {
	List(ctx context.Context, pageIndex, pageSize int) (application.PageEnvelope[application.UserView], error)
	Get(ctx context.Context, id string) (*application.UserView, error)
	Create(ctx context.Context, req application.CreateUserRequest) (*application.UserView, error)
}

type Services struct {
	Transactions  TransactionService
	Notifications NotificationService
	Profiles      ProfileService
	Portfolios    PortfolioService
	Users         UserService
}

// PageLimits bounds the size query parameter.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

type Handler struct {
	services Services
	limits   PageLimits
}

func NewHandler(services Services, limits PageLimits) *Handler {
	return &Handler{
		services: services,
		limits:   limits,
	}
}

// pageParams reads page and size. Non-integers are query parameter errors;
// out-of-range integers are constraint violations.
func (h *Handler) pageParams(c *gin.Context) (int, int, error) {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		return 0, 0, err
	}
	size, err := intQuery(c, "size", h.limits.DefaultSize)
	if err != nil {
		return 0, 0, err
	}

	var cons domain.Constraints
	cons.Check(page >= 0, "page", "must be greater than or equal to 0")
	cons.Check(size >= 1, "size", "must be greater than or equal to 1")
	cons.Check(size <= h.limits.MaxSize, "size", "must be less than or equal to "+strconv.Itoa(h.limits.MaxSize))
	if err := cons.Err(); err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &InvalidQueryParameterError{Name: name, Value: raw, Err: err}
	}
	return n, nil
}

// bindJSON decodes the body. Decoding failures other than field validation
// become RequestBodyError.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return err
	}
	return &RequestBodyError{Err: err}
}

func list[V any](h *Handler, fn func(context.Context, int, int) (application.PageEnvelope[V], error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, size, err := h.pageParams(c)
		if err != nil {
			_ = c.Error(err)
			return
		}

		envelope, err := fn(c.Request.Context(), page, size)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, envelope)
	}
}

func get[V any](fn func(context.Context, string) (*V, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := fn(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, view)
	}
}

func create[C, V any](fn func(context.Context, C) (*V, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req C
		if err := bindJSON(c, &req); err != nil {
			_ = c.Error(err)
			return
		}

		view, err := fn(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusCreated, view)
	}
}

func update[U, V any](fn func(context.Context, string, U) (*V, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req U
		if err := bindJSON(c, &req); err != nil {
			_ = c.Error(err)
			return
		}

		view, err := fn(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, view)
	}
}

func remove(fn func(context.Context, string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := fn(c.Request.Context(), id); err != nil {
			_ = c.Error(err)
			return
		}

		slog.DebugContext(c.Request.Context(), "Record deleted", "path", c.FullPath(), "id", id)
		c.Status(http.StatusNoContent)
	}
}

// ImportTransactions reads a JSON-lines upload from the "file" form field.
func (h *Handler) ImportTransactions(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(&RequestBodyError{Err: err})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(&domain.InvalidFileError{Name: fileHeader.Filename, Reason: err.Error()})
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("Failed to close upload", "error", err)
		}
	}()

	lines, err := application.ParseTransactionLines(fileHeader.Filename, file)
	if err != nil {
		_ = c.Error(err)
		return
	}

	result := h.services.Transactions.Import(c.Request.Context(), lines)
	for i := range result.Failed {
		_, body := Classify(result.Failed[i].Err, c.Request.URL.Path)
		result.Failed[i].Code = body.Code
	}

	c.JSON(http.StatusOK, result)
}
