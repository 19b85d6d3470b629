package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/mutix31/Sharebin/internal/logging"
	"github.com/mutix31/Sharebin/internal/server/config"
	"github.com/mutix31/Sharebin/internal/server/services"
)

// Handler carries the services behind the HTTP routes.
type Handler struct {
	users      *services.UserService
	sessions   *services.SessionService
	artifacts  *services.ArtifactService
	shortURLs  *services.ShortURLService
	logger     logging.Logger
	secret     []byte
	shareBase  string
	presignTTL time.Duration
	loginLimit int

	secureCookies bool
	now           func() time.Time
}

func NewHandler(cfg *config.Config, us *services.UserService, ss *services.SessionService,
	as *services.ArtifactService, su *services.ShortURLService, l logging.Logger) *Handler {
	return &Handler{
		users:         us,
		sessions:      ss,
		artifacts:     as,
		shortURLs:     su,
		logger:        l.With("module", "httpapi"),
		secret:        []byte(cfg.SecretKey),
		shareBase:     cfg.ShareBase(),
		presignTTL:    cfg.PresignValidityDuration,
		loginLimit:    cfg.LoginRateLimit,
		secureCookies: strings.HasPrefix(cfg.BaseURL, "https://"),
		now:           time.Now,
	}
}

// Routes builds the chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(h.identify)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	})

	r.Get("/u/{code}", h.redirectShortURL)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if h.loginLimit > 0 {
					r.Use(httprate.Limit(h.loginLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
				}
				r.Post("/register", h.register)
				r.Post("/login", h.login)
			})
			r.Post("/logout", h.logout)
			r.With(h.requireSession).Get("/session", h.currentSession)
		})

		// public reads; each one is an admission
		r.Get("/files/{id}", h.readFile)
		r.Get("/files/{id}/content", h.fileContent)
		r.Get("/notes/{id}", h.readNote)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)

			r.Post("/files", h.uploadFile)
			r.Get("/files", h.listArtifacts(kindFile))
			r.Delete("/files/{id}", h.deleteArtifact(kindFile))

			r.Post("/notes", h.createNote)
			r.Get("/notes", h.listArtifacts(kindNote))
			r.Delete("/notes/{id}", h.deleteArtifact(kindNote))

			r.Post("/urls", h.shortenURL)
			r.Get("/urls", h.listShortURLs)
			r.Delete("/urls/{code}", h.deleteShortURL)

			r.Get("/users", h.listUsers)
			r.Patch("/users/{id}", h.updateUser)
		})
	})

	return r
}
