package http

import (
	"crypto/subtle"
	"net/http"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RouterOptions holds the optional parts of the router.
type RouterOptions struct {
	// APIKey, when set, is required in the X-API-Key header on /api/v1.
	APIKey string
	// Metrics, when set, instruments every route and serves /metrics.
	Metrics MetricsProvider
}

type MetricsProvider interface {
	Middleware() gin.HandlerFunc
	Handler() http.Handler
}

func SetupRoutes(router *gin.Engine, handler *Handler, opts RouterOptions) {
	registerJSONFieldNames()

	router.HandleMethodNotAllowed = true
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
	}
	router.Use(ErrorHandler(), Recovery())

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(&RouteNotFoundError{Path: c.Request.URL.Path})
	})
	router.NoMethod(func(c *gin.Context) {
		_ = c.Error(&MethodNotAllowedError{
			Method:  c.Request.Method,
			Allowed: allowedMethods(router.Routes(), c.Request.URL.Path),
		})
	})

	api := router.Group("/api/v1")
	if opts.APIKey != "" {
		api.Use(requireAPIKey(opts.APIKey))
	}

	s := handler.services
	{
		api.GET("/transactions", list(handler, s.Transactions.List))
		api.GET("/transactions/:id", get(s.Transactions.Get))
		api.POST("/transactions", create(s.Transactions.Create))
		api.PATCH("/transactions/:id", update(s.Transactions.Update))
		api.PUT("/transactions/:id", update(s.Transactions.Update))
		api.DELETE("/transactions/:id", remove(s.Transactions.Delete))
		api.POST("/transactions/import", handler.ImportTransactions)

		api.GET("/notifications", list(handler, s.Notifications.List))
		api.GET("/notifications/:id", get(s.Notifications.Get))
		api.POST("/notifications", create(s.Notifications.Create))
		api.PATCH("/notifications/:id", update(s.Notifications.Update))
		api.PUT("/notifications/:id", update(s.Notifications.Update))
		api.DELETE("/notifications/:id", remove(s.Notifications.Delete))

		api.GET("/profiles", list(handler, s.Profiles.List))
		api.GET("/profiles/:id", get(s.Profiles.Get))
		api.POST("/profiles", create(s.Profiles.Create))
		api.PATCH("/profiles/:id", update(s.Profiles.Update))
		api.PUT("/profiles/:id", update(s.Profiles.Update))
		api.DELETE("/profiles/:id", remove(s.Profiles.Delete))

		api.GET("/portfolios", list(handler, s.Portfolios.List))
		api.GET("/portfolios/:id", get(s.Portfolios.Get))
		api.POST("/portfolios", create(s.Portfolios.Create))
		api.PATCH("/portfolios/:id", update(s.Portfolios.Update))
		api.PUT("/portfolios/:id", update(s.Portfolios.Update))
		api.DELETE("/portfolios/:id", remove(s.Portfolios.Delete))

		api.GET("/users", list(handler, s.Users.List))
		api.GET("/users/:id", get(s.Users.Get))
		api.POST("/users", create(s.Users.Create))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
}

func requireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			_ = c.Error(&AccessDeniedError{})
			c.Abort()
			return
		}
		c.Next()
	}
}

// allowedMethods lists the methods registered for routes matching path.
func allowedMethods(routes gin.RoutesInfo, path string) []string {
	seen := make(map[string]bool)
	for _, r := range routes {
		if matchRoute(r.Path, path) {
			seen[r.Method] = true
		}
	}
	methods := make([]string, 0, len(seen))
	for m := range seen {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

func matchRoute(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range ps {
		if strings.HasPrefix(p, "*") {
			return true
		}
		if i >= len(xs) {
			return false
		}
		if !strings.HasPrefix(p, ":") && p != xs[i] {
			return false
		}
	}
	return len(ps) == len(xs)
}

var registerOnce sync.Once

// registerJSONFieldNames makes validation errors name fields by their json tag.
func registerJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}
