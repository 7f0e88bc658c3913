package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "livestock-registry/internal/adapters/storage/memory"
	pg "livestock-registry/internal/adapters/storage/postgres"
	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/backup"
	"livestock-registry/internal/domain/feedings"
	"livestock-registry/internal/domain/reproduction"
	"livestock-registry/internal/domain/schedule"
	"livestock-registry/internal/domain/species"
	"livestock-registry/internal/domain/vaccinations"
	"livestock-registry/internal/middleware"
	"livestock-registry/internal/platform/logger"
)

type Options struct {
	Logger logger.Logger // puede ser nil

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		speciesRepo species.Repository
		animalsRepo animals.Repository
		vaccRepo    vaccinations.Repository
		feedRepo    feedings.Repository
		reproRepo   reproduction.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		speciesRepo = pg.NewSpeciesRepo(db)
		animalsRepo = pg.NewAnimalsRepo(db)
		vaccRepo = pg.NewVaccinationsRepo(db)
		feedRepo = pg.NewFeedingsRepo(db)
		reproRepo = pg.NewReproductionRepo(db)
	} else {
		speciesRepo = mem.NewSpeciesRepo()
		animalsRepo = mem.NewAnimalsRepo()
		vaccRepo = mem.NewVaccinationsRepo()
		feedRepo = mem.NewFeedingsRepo()
		reproRepo = mem.NewReproductionRepo()
	}

	// Services por módulo
	speciesSvc := species.NewService(speciesRepo)
	animalsSvc := animals.NewService(animalsRepo)
	vaccSvc := vaccinations.NewService(vaccRepo)
	feedSvc := feedings.NewService(feedRepo)
	reproSvc := reproduction.NewService(reproRepo)
	backupSvc := backup.NewService(speciesSvc, animalsSvc, vaccSvc, feedSvc, reproSvc)

	// Rutas por módulo
	species.RegisterRoutes(r, speciesSvc, animalsSvc)
	animals.RegisterRoutes(r, animalsSvc, speciesSvc, vaccSvc, feedSvc, reproSvc)
	vaccinations.RegisterRoutes(r, vaccSvc, animalsSvc)
	feedings.RegisterRoutes(r, feedSvc, animalsSvc)
	reproduction.RegisterRoutes(r, reproSvc, animalsSvc, speciesSvc)
	schedule.RegisterRoutes(r, animalsSvc, speciesSvc, vaccSvc, reproSvc)
	backup.RegisterRoutes(r, backupSvc)

	return r
}
