package router

import (
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-adoption-backend/docs"
	"pet-adoption-backend/internal/adapters/blobstore/memstore"
	mem "pet-adoption-backend/internal/adapters/storage/memory"
	pg "pet-adoption-backend/internal/adapters/storage/postgres"
	"pet-adoption-backend/internal/domain/adoptionforms"
	"pet-adoption-backend/internal/domain/adoptionposts"
	"pet-adoption-backend/internal/domain/pets"
	"pet-adoption-backend/internal/domain/users"
	"pet-adoption-backend/internal/middleware"
	"pet-adoption-backend/internal/platform/logger"
	"pet-adoption-backend/internal/ports/auth"
	"pet-adoption-backend/internal/ports/blobstore"
	"pet-adoption-backend/internal/ports/moderation"
	"pet-adoption-backend/internal/ports/notify"
)

// Stores agrupa los repositorios de todos los módulos.
type Stores struct {
	Users  users.Repository
	Pets   pets.Repository
	Posts  adoptionposts.Repository
	Forms  adoptionforms.Repository
	Checks adoptionforms.CheckRepository
}

func NewMemoryStores() *Stores {
	return &Stores{
		Users:  mem.NewUserRepo(),
		Pets:   mem.NewPetRepo(),
		Posts:  mem.NewAdoptionPostRepo(),
		Forms:  mem.NewAdoptionFormRepo(),
		Checks: mem.NewPeriodicCheckRepo(),
	}
}

func NewPostgresStores(db *sql.DB) *Stores {
	return &Stores{
		Users:  pg.NewUsersRepo(db),
		Pets:   pg.NewPetsRepo(db),
		Posts:  pg.NewAdoptionPostsRepo(db),
		Forms:  pg.NewAdoptionFormsRepo(db),
		Checks: pg.NewPeriodicChecksRepo(db),
	}
}

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: repos ya armados (tests). Gana sobre DB.
	Stores *Stores

	Blobs      blobstore.Store       // nil => memstore
	Publisher  notify.Publisher      // nil => nop
	Classifier moderation.Classifier // nil => nop
	Log        logger.Logger         // nil => desde env
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	st := opts.Stores
	if st == nil {
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
			st = NewPostgresStores(db)
		} else {
			st = NewMemoryStores()
		}
	}

	blobs := opts.Blobs
	if blobs == nil {
		blobs = memstore.New()
	}
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	// Services por módulo
	petsSvc := pets.NewService(st.Pets, blobs)
	postsSvc := adoptionposts.NewService(st.Posts, st.Pets, opts.Classifier, blobs)
	formsSvc := adoptionforms.NewService(
		st.Forms,
		st.Checks,
		st.Pets,
		st.Posts,
		st.Users,
		blobs,
		opts.Publisher,
	)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	adoptionposts.RegisterRoutes(r, postsSvc)
	adoptionforms.RegisterRoutes(r, formsSvc, log)

	return r
}
