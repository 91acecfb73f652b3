package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tally/internal/api/service"
	"github.com/aussiebroadwan/tally/internal/api/store"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/jwtx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
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
	UserService     *service.UserService
	CustomerService *service.CustomerService
	ProductService  *service.ProductService
	SaleService     *service.SaleService
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

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerCustomers()
	r.registerProducts()
	r.registerSales()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			Tally Sales API
//	@version		0.1.0
//	@description	CRUD API for users, customers, products and sales behind
//	@description	cookie-based JWT authentication. Tokens are signed RS256.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/tally
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// Both endpoints are credential surfaces, so they get the strict
	// per-IP limit to slow brute force attempts.
	r.Mux.Handle("POST /api/authenticate",
		httpx.Chain(&AuthenticateHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /api/refresh",
		httpx.Chain(&RefreshHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

// secure wraps a resource handler with the access gate and a per-user rate
// limit. Every /api resource route goes through here; nothing is reachable
// without a valid access cookie.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.CookieAuthMiddleware(r.verifier, AccessTokenCookie),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/users", r.secured(h.List, httpx.LenientLimit))
	r.Mux.Handle("GET /api/users/{id}", r.secured(h.Get, httpx.LenientLimit))
	r.Mux.Handle("POST /api/users", r.secured(h.Create, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/users/{id}", r.secured(h.Update, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/users/{id}", r.secured(h.Delete, httpx.ModerateLimit))
}

func (r *Router) registerCustomers() {
	h := &CustomersHandler{CustomerService: r.CustomerService}

	r.Mux.Handle("GET /api/customers", r.secured(h.List, httpx.LenientLimit))
	r.Mux.Handle("GET /api/customers/{id}", r.secured(h.Get, httpx.LenientLimit))
	r.Mux.Handle("POST /api/customers", r.secured(h.Create, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/customers/{id}", r.secured(h.Update, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/customers/{id}", r.secured(h.Delete, httpx.ModerateLimit))
}

func (r *Router) registerProducts() {
	h := &ProductsHandler{ProductService: r.ProductService}

	r.Mux.Handle("GET /api/products", r.secured(h.List, httpx.LenientLimit))
	r.Mux.Handle("GET /api/products/{id}", r.secured(h.Get, httpx.LenientLimit))
	r.Mux.Handle("POST /api/products", r.secured(h.Create, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/products/{id}", r.secured(h.Update, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/products/{id}", r.secured(h.Delete, httpx.ModerateLimit))
}

func (r *Router) registerSales() {
	h := &SalesHandler{SaleService: r.SaleService}

	r.Mux.Handle("GET /api/sales", r.secured(h.List, httpx.LenientLimit))
	r.Mux.Handle("GET /api/sales/{id}", r.secured(h.Get, httpx.LenientLimit))
	r.Mux.Handle("POST /api/sales", r.secured(h.Create, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/sales/{id}", r.secured(h.Update, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/sales/{id}", r.secured(h.Delete, httpx.ModerateLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, func() bool {
		return r.verifier != nil && r.AuthService != nil && r.AuthService.Signer != nil
	}))
}
