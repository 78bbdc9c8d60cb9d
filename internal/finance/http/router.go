// Package http wires the service layer to the network: routing, session
// cookies, request parsing and the uniform response envelope.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/pfennigfuchs/pfennig/internal/finance/service"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
	"github.com/pfennigfuchs/pfennig/pkg/httpx"
	"github.com/pfennigfuchs/pfennig/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	sessionProbe func(context.Context) error

	Sessions        *service.SessionCoordinator
	Categories      *service.LookupService
	Shops           *service.LookupService
	Oneoff          *service.OneoffTransactionService
	Monthly         *service.MonthlyTransactionService
	AnalysisService *service.AnalysisService
}

func NewRouter(buildVersion string, st store.Store, sessionProbe func(context.Context) error, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		store:        st,
		sessionProbe: sessionProbe,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerRecords()
	r.registerAnalysis()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Sessions: r.Sessions}

	// Credential endpoints get the strict profile to slow brute force.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// Session maintenance endpoints authenticate via the cookie themselves
	// rather than through RequireSession: they need the session id, not just
	// the resolved user.
	r.Mux.Handle("GET /api/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/whoami",
		httpx.Chain(http.HandlerFunc(h.HandleWhoami),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerRecords() {
	RegisterResource(r, "categories", r.Categories, parseLookupFilter)
	RegisterResource(r, "shops", r.Shops, parseLookupFilter)
	RegisterResource(r, "transactions/oneoff", r.Oneoff, parseOneoffFilter)
	RegisterResource(r, "transactions/monthly", r.Monthly, parseMonthlyFilter)
}

func (r *Router) registerAnalysis() {
	h := &AnalysisHandler{AnalysisService: r.AnalysisService}
	r.Mux.Handle("GET /api/analysis/year/{year}",
		httpx.Chain(h,
			RequireSession(r.Sessions),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.sessionProbe),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
