package handlers

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"

	"github.com/gdg-garage/mission-registration/internal/middleware"
)

type RouteOptions struct {
	EnableCORS    bool
	CORSOrigins   []string
	CSRFKey       string
	SecureCookies bool
}

func RegisterRoutes(r chi.Router, reg *RegistrationHandler, apiHandler *APIHandler, log zerolog.Logger, opts RouteOptions) huma.API {
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	if opts.EnableCORS {
		r.Use(apiOnly(middleware.NewCORSHandler(opts.CORSOrigins)))
	}

	config := huma.DefaultConfig("Mission Registration API", "1.0.0")
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/registration/{missionID}", func(r chi.Router) {
		if opts.CSRFKey != "" {
			r.Use(csrfProtect(opts.CSRFKey, opts.SecureCookies))
		}
		r.Get("/", reg.HandleShow)
		r.Post("/", reg.HandleSubmit)
		r.Post("/fields", reg.HandleFields)
		r.Get("/done", reg.HandleDone)
	})

	huma.Register(api, huma.Operation{
		OperationID: registerOperationID,
		Method:      http.MethodPost,
		Path:        "/api/register",
		Summary:     "Submit a registration",
		Errors:      []int{http.StatusBadRequest},
	}, apiHandler.HandleRegister)
	huma.Register(api, huma.Operation{
		OperationID: "register-get",
		Method:      http.MethodGet,
		Path:        "/api/register",
		Summary:     "Not supported: registrations are submitted with POST",
		Errors:      []int{http.StatusMethodNotAllowed},
	}, apiHandler.HandleRegisterGet)

	huma.Get(api, "/api/missions", apiHandler.HandleListMissions)
	huma.Register(api, huma.Operation{
		OperationID: "create-mission",
		Method:      http.MethodPost,
		Path:        "/api/missions",
		Summary:     "Not supported in this deployment",
		Errors:      []int{http.StatusMethodNotAllowed},
	}, apiHandler.HandleCreateMission)

	return api
}

// apiOnly applies mw to /api requests and passes the rest through untouched,
// so preflight requests are answered before routing.
func apiOnly(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				wrapped.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func csrfProtect(key string, secure bool) func(http.Handler) http.Handler {
	protect := csrf.Protect([]byte(key),
		csrf.Secure(secure),
		csrf.Path("/registration/"),
		csrf.FieldName("csrf_token"),
	)
	return func(next http.Handler) http.Handler {
		protected := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			protected.ServeHTTP(w, r)
		})
	}
}
