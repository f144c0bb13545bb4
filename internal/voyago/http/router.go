package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/voyago-labs/voyago/internal/voyago/service"
	"github.com/voyago-labs/voyago/internal/voyago/store"
	"github.com/voyago-labs/voyago/pkg/httpx"
	"github.com/voyago-labs/voyago/pkg/jwtx"
	"github.com/voyago-labs/voyago/pkg/slogx"

	_ "github.com/voyago-labs/voyago/api" // Swagger docs
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

	store       store.Store
	AuthService *service.AuthService
	UserService *service.UserService
	TripService *service.TripService
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
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerTrips()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Voyago Travel API
//	@version		0.1.0
//	@description	Travel planning backend with JWT-secured user accounts and
//	@description	IATA city code resolution backed by the Amadeus Self-Service APIs.
//
//	@contact.name	Voyago Labs
//	@contact.url	https://github.com/voyago-labs/voyago
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/register - strict rate limit by IP (account creation)
	registerHandler := &RegisterHandler{Auth: r.AuthService}
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{Auth: r.AuthService}
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /auth/home - authenticated, lenient rate limit
	homeHandler := &HomeHandler{Users: r.UserService}
	r.Mux.Handle("GET /auth/home",
		httpx.Chain(homeHandler,
			httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/exp)
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerTrips() {
	// Both trip endpoints talk to the upstream provider, so keep them at a
	// moderate limit independent of the provider's own quota.
	tripHandler := &TripHandler{Trips: r.TripService}
	r.Mux.Handle("POST /generate-trip-location",
		httpx.Chain(tripHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	cityCodeHandler := &CityCodeHandler{Trips: r.TripService}
	r.Mux.Handle("GET /city-code/{location}",
		httpx.Chain(cityCodeHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
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
}
