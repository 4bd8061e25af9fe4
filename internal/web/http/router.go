package http

import (
	"log/slog"
	"net/http"

	"github.com/custdesk/custdesk/internal/web/service"
	"github.com/custdesk/custdesk/pkg/httpx"
	"github.com/custdesk/custdesk/pkg/metricsx"
	"github.com/custdesk/custdesk/pkg/slogx"
)

// Router holds shared dependencies for the web tier handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	logger *slog.Logger

	SessionService *service.SessionService
	API            CustomerAPI
}

func NewRouter(logger *slog.Logger) *Router {
	rt := &Router{
		Mux:    http.NewServeMux(),
		logger: logger,
	}

	rt.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(rt.logger),
		metricsx.Middleware("web"),
		VisitorMiddleware,
	}

	return rt
}

// route binds a mux pattern to a handler and the role its session must
// carry. Every protected route goes through the same filter; the table is
// the single place access rules live.
type route struct {
	pattern string
	role    string // "" public, RoleAny any live session, else a named role
	handler http.HandlerFunc
}

func (rt *Router) routes() []route {
	return []route{
		{"GET /{$}", "", rt.HomeHandler},
		{"GET /login", "", rt.LoginFormHandler},
		{"POST /login", "", rt.LoginSubmitHandler},
		{"POST /logout", "", rt.LogoutHandler},
		{"GET /unauthorized", "", rt.UnauthorizedHandler},

		{"GET /customers", RoleAny, rt.CustomersListHandler},
		{"GET /customers/new", "Admin", rt.CustomerNewHandler},
		{"POST /customers", "Admin", rt.CustomerCreateHandler},
		{"GET /customers/{id}/edit", "Admin", rt.CustomerEditHandler},
		{"POST /customers/{id}", "Admin", rt.CustomerUpdateHandler},
		{"POST /customers/{id}/delete", "Admin", rt.CustomerDeleteHandler},
	}
}

func (rt *Router) ApplyRoutes() {
	for _, rr := range rt.routes() {
		var h http.Handler = rr.handler
		if rr.role != "" {
			h = rt.requireRole(rr.role)(h)
		}
		rt.Mux.Handle(rr.pattern, h)
	}

	rt.Mux.Handle("GET /metrics", metricsx.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(rt.Mux, rt.middlewares...).ServeHTTP(w, req)
}
