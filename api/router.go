package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	appMiddleware "github.com/prasetyowira/qrstudio/api/middleware"
	"github.com/prasetyowira/qrstudio/constant"
	appLogger "github.com/prasetyowira/qrstudio/infrastructure/logger"
)

// Handlers is the set of endpoints the router serves
type Handlers interface {
	GenerateQRCode(w http.ResponseWriter, r *http.Request)
	ListHistory(w http.ResponseWriter, r *http.Request)
}

// Router represents the application router
type Router struct {
	handler Handlers
	router  *chi.Mux
}

// NewRouter creates a new router
func NewRouter(handler Handlers) *Router {
	r := chi.NewRouter()

	// Middleware setup
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(appMiddleware.RequestLogger())

	return &Router{
		handler: handler,
		router:  r,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	r.router.Get(constant.RouteQRCode, r.handler.GenerateQRCode)
	r.router.Post(constant.RouteQRCode, r.handler.GenerateQRCode)
	r.router.Get(constant.RouteHistory, r.handler.ListHistory)

	// Healthcheck
	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, r *http.Request) {
		appLogger.CtxDebug(r.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
