package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soundrift/soundrift-backend/api/controllers"
	"github.com/soundrift/soundrift-backend/api/middleware"
	accountsvc "github.com/soundrift/soundrift-backend/internal/accounts"
	albumsvc "github.com/soundrift/soundrift-backend/internal/albums"
	songsvc "github.com/soundrift/soundrift-backend/internal/songs"
	"github.com/soundrift/soundrift-backend/pkg/config"
	"github.com/soundrift/soundrift-backend/pkg/logger"
	"github.com/soundrift/soundrift-backend/pkg/redis"
)

// NewRouter wires middleware, health checks and the versioned API surface.
// A nil redis client disables auth rate limiting.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisClient *redis.Client,
	storagePinger controllers.Pinger,
	accountService accountsvc.Service,
	albumService albumsvc.Service,
	songService songsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	passthrough := func(next http.Handler) http.Handler { return next }
	loginLimit := passthrough
	registerLimit := passthrough
	if redisClient != nil {
		loginPolicy := middleware.NewAuthRateLimitPolicy(
			"login",
			cfg.AuthRateLimit.LoginWindow,
			cfg.AuthRateLimit.LoginIPLimit,
			cfg.AuthRateLimit.LoginEmailLimit,
		)
		registerPolicy := middleware.NewAuthRateLimitPolicy(
			"register",
			cfg.AuthRateLimit.RegisterWindow,
			cfg.AuthRateLimit.RegisterIPLimit,
			cfg.AuthRateLimit.RegisterEmailLimit,
		)
		loginLimit = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
		registerLimit = middleware.AuthRateLimit(registerPolicy, redisClient, logg)
	}

	deps := map[string]controllers.Pinger{
		"db":      dbPinger,
		"storage": storagePinger,
	}
	if redisClient != nil {
		deps["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.With(registerLimit).Post("/register", controllers.Register(accountService, logg))
			r.With(loginLimit).Post("/login", controllers.Login(accountService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, logg))
				r.Get("/hello", controllers.Hello(accountService, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			albumRoutes := func(r chi.Router) {
				r.Get("/", controllers.ListAlbums(albumService, logg))
				r.Post("/", controllers.CreateAlbum(albumService, logg))
				r.Route("/{albumID}", func(r chi.Router) {
					r.Get("/", controllers.GetAlbum(albumService, logg))
					r.Patch("/", controllers.UpdateAlbum(albumService, logg))
					r.Delete("/", controllers.DeleteAlbum(albumService, logg))
					r.Put("/cover", controllers.UpdateAlbumCoverArt(albumService, logg))
					r.Patch("/submit", controllers.SubmitAlbum(albumService, logg))
				})
			}
			r.Route("/albums", albumRoutes)
			// Label-ops tooling reaches the same album surface under a
			// separate path.
			r.Route("/admin/tracks", albumRoutes)

			r.Route("/songs", func(r chi.Router) {
				r.Get("/", controllers.ListSongs(songService, logg))
				r.Post("/", controllers.CreateSong(songService, logg))
				r.Route("/{songID}", func(r chi.Router) {
					r.Get("/", controllers.GetSong(songService, logg))
					r.Patch("/", controllers.UpdateSong(songService, logg))
					r.Delete("/", controllers.DeleteSong(songService, logg))
					r.Put("/master", controllers.UpdateSongMasterFile(songService, logg))
				})
			})
		})
	})

	return r
}
