package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/custdesk/custdesk/internal/api/service"
	"github.com/custdesk/custdesk/internal/api/store"
	"github.com/custdesk/custdesk/pkg/httpx"
	"github.com/custdesk/custdesk/pkg/jwtx"
	"github.com/custdesk/custdesk/pkg/metricsx"
	"github.com/custdesk/custdesk/pkg/slogx"

	_ "github.com/custdesk/custdesk/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	AuthService     *service.AuthService
	CustomerService *service.CustomerService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		metricsx.Middleware("api"),
		ChannelMiddleware(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCustomers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CustDesk Customer API
//	@version		0.1.0
//	@description	Customer resource service with JWT login, role-based
//	@description	authorization, and a session gate consumed by the web tier.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{AuthService: r.AuthService}

	// POST /auth/login - strict rate limit (credential endpoint)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /auth/is-logged-in - the gate endpoint. Validation happens in
	// the handler so the response body can name the rejection kind.
	sessionHandler := &SessionHandler{AuthService: r.AuthService}
	r.Mux.Handle("GET /auth/is-logged-in",
		httpx.Chain(sessionHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerCustomers() {
	h := &CustomersHandler{CustomerService: r.CustomerService}

	// Reads need any authenticated role; writes need Admin.
	read := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}
	write := func(next http.Handler) http.Handler {
		return httpx.Chain(next,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole("Admin"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /api/customers", read(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("GET /api/customers/{id}", read(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("POST /api/customers", write(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("PUT /api/customers/{id}", write(http.HandlerFunc(h.HandleUpdate)))
	r.Mux.Handle("DELETE /api/customers/{id}", write(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /metrics", metricsx.Handler())
}
