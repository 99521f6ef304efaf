package router

import (
	"database/sql"
	"net/http"

	filemem "vetco/internal/adapters/files/memory"
	filesupa "vetco/internal/adapters/files/supabase"
	mem "vetco/internal/adapters/storage/memory"
	pg "vetco/internal/adapters/storage/postgres"
	"vetco/internal/domain/accounts"
	"vetco/internal/domain/animals"
	"vetco/internal/domain/healthrecords"
	"vetco/internal/domain/notifications"
	"vetco/internal/domain/settings"
	"vetco/internal/domain/uploads"
	"vetco/internal/domain/users"
	"vetco/internal/middleware"
	"vetco/internal/platform/config"
	"vetco/internal/platform/metrics"
	"vetco/internal/ports/auth"
	"vetco/internal/ports/files"

	_ "vetco/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	Config config.Config

	Authenticator auth.Authenticator
	AuthVerifier  auth.AuthVerifier // nil => modo dev (X-Debug-User-ID)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: override del object store (tests). Si es nil se arma el
	// adapter de Supabase Storage, o el de memoria cuando no hay config.
	ObjectStore files.ObjectStore

	Logger *zap.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Middleware)

	// Cache de sesiones proceso-wide: evita re-verificar el token contra
	// GoTrue en cada request. Se invalida en sign-in/sign-out.
	var resolver middleware.SessionResolver
	var sessions *accounts.SessionCache
	if opts.AuthVerifier != nil {
		sessions = accounts.NewSessionCache(opts.AuthVerifier)
		resolver = sessions
	}
	r.Use(middleware.AuthContext(resolver))
	r.Use(middleware.Guard)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		usersRepo   users.Repository
		animalsRepo animals.Repository
		recordsRepo healthrecords.Repository
	)

	if opts.DB != nil {
		usersRepo = pg.NewUsersRepo(opts.DB)
		animalsRepo = pg.NewAnimalsRepo(opts.DB)
		recordsRepo = pg.NewHealthRecordsRepo(opts.DB)
	} else {
		usersRepo = mem.NewUsersRepo()
		animalsRepo = mem.NewAnimalsRepo()
		recordsRepo = mem.NewHealthRecordsRepo()
	}

	store := opts.ObjectStore
	if store == nil {
		if s, err := filesupa.NewStore(opts.Config.SupabaseURL, opts.Config.SupabaseAnonKey); err == nil {
			store = s
		} else {
			store = filemem.NewStore()
		}
	}

	// Services por módulo
	usersSvc := users.NewService(usersRepo)
	recordsSvc := healthrecords.NewService(recordsRepo)
	animalsSvc := animals.NewService(animalsRepo, recordsSvc)
	accountsSvc := accounts.NewService(opts.Authenticator, usersSvc, sessions)
	uploadsSvc := uploads.NewService(store, opts.Config.AvatarsBucket, opts.Config.MaxUploadMB)
	notifStore := notifications.NewStore()
	settingsStore := settings.NewStore()

	// Rutas por módulo
	accounts.RegisterRoutes(r, accountsSvc, usersSvc, animalsSvc, log)
	users.RegisterRoutes(r, usersSvc, uploadsSvc, log)
	animals.RegisterRoutes(r, animalsSvc)
	healthrecords.RegisterRoutes(r, recordsSvc, animalsSvc, usersSvc)
	notifications.RegisterRoutes(r, notifStore)
	settings.RegisterRoutes(r, settingsStore)

	return r
}
