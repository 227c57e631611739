package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"pet-adoption-backend/internal/adapters/auth/tokens"
	"pet-adoption-backend/internal/adapters/blobstore/cloudinary"
	"pet-adoption-backend/internal/adapters/moderation/gemini"
	"pet-adoption-backend/internal/adapters/notify/redispub"
	pg "pet-adoption-backend/internal/adapters/storage/postgres"
	"pet-adoption-backend/internal/platform/logger"
	"pet-adoption-backend/internal/ports/auth"
	"pet-adoption-backend/internal/ports/blobstore"
	"pet-adoption-backend/internal/ports/moderation"
	"pet-adoption-backend/internal/ports/notify"
	"pet-adoption-backend/internal/router"
	"pet-adoption-backend/internal/scheduler"
)

// @title Pet Adoption Backend API
// @version 1.0
// @description API del backend de adopción de mascotas.
func main() {
	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	// Repos: Postgres si hay DSN, si no in-memory (dev).
	stores := router.NewMemoryStores()
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := pg.Open(dsn)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		stores = router.NewPostgresStores(db)
		log.Info("using postgres storage", nil)
	} else {
		log.Info("using in-memory storage", nil)
	}

	// Verifier opcional: sin JWT_SECRET queda el modo dev (X-Debug-User-ID).
	var verifier auth.AuthVerifier
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		v, err := tokens.NewVerifier(secret)
		if err != nil {
			log.Error("jwt verifier init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = v
	}

	// Cloudinary opcional: sin credenciales se usa el store in-memory.
	var blobs blobstore.Store
	if cloud := os.Getenv("CLOUDINARY_CLOUD_NAME"); cloud != "" {
		c, err := cloudinary.New(cloudinary.Config{
			BaseURL:      os.Getenv("CLOUDINARY_BASE_URL"),
			CloudName:    cloud,
			UploadPreset: os.Getenv("CLOUDINARY_UPLOAD_PRESET"),
		})
		if err != nil {
			log.Error("cloudinary init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		blobs = c
	}

	// Gemini opcional: sin api key no se modera.
	var classifier moderation.Classifier
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		g, err := gemini.New(gemini.Config{
			BaseURL: os.Getenv("GEMINI_BASE_URL"),
			APIKey:  apiKey,
			Model:   os.Getenv("GEMINI_MODEL"),
		})
		if err != nil {
			log.Error("gemini init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		classifier = g
	}

	// Redis opcional: sin addr las notificaciones se descartan.
	var publisher notify.Publisher
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		p, err := redispub.New(redispub.Config{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		})
		if err != nil {
			log.Error("redis init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer p.Close()
		publisher = p
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Stores:       stores,
		Blobs:        blobs,
		Publisher:    publisher,
		Classifier:   classifier,
		Log:          log,
	})

	// Recordatorios de chequeo de bienestar.
	reminder := scheduler.NewCheckReminder(stores.Forms, publisher, log)
	if err := reminder.Start(os.Getenv("CHECK_REMINDER_SCHEDULE")); err != nil {
		log.Error("check reminder start failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer reminder.Stop()

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
