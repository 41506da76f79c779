package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	api "github.com/deedlab/deedtrainer/internal/api/http"
	auth "github.com/deedlab/deedtrainer/internal/auth/middleware"
	"github.com/deedlab/deedtrainer/internal/config"
	"github.com/deedlab/deedtrainer/internal/db"
	"github.com/deedlab/deedtrainer/internal/deed"
	"github.com/deedlab/deedtrainer/internal/metrics"
	"github.com/deedlab/deedtrainer/internal/rbac"
	"github.com/deedlab/deedtrainer/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := deed.NewSQLStore(dbh, cfg.DBDriver)

	// --- Blob storage (local disk or S3-compatible) ---
	var bs storage.BlobStore
	switch cfg.BlobDriver {
	case "minio":
		bs, err = storage.NewMinIOStore(storage.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
	default:
		bs, err = storage.NewFSStore(cfg.BlobBasePath)
	}
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	svc := deed.NewService(store, store, bs)
	m := metrics.New()
	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.TokenTTL)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Throttle(cfg.ThrottleLimit))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public auth surface
	r.Post("/api/auth/signup", api.SignupHandler(dbh, authSvc))
	r.Post("/api/auth/login", api.LoginHandler(dbh, authSvc))
	r.Post("/api/auth/logout", api.LogoutHandler())

	// Protected API (JWT → role from DB → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, cfg.Mode == config.ModeDev))

		pr.Get("/api/auth/me", api.MeHandler(dbh))

		pr.With(rbac.Require("deed:upload")).
			Post("/api/deeds/upload", api.UploadDeedHandler(store, bs, m, cfg.MaxUploadMB))
		pr.With(rbac.Require("deed:update")).
			Patch("/api/deeds/{deedID}", api.UpdateDeedHandler(store))
		pr.With(rbac.Require("deed:next")).
			Get("/api/deeds/next", api.NextDeedHandler(svc))
		pr.With(rbac.Require("deed:view")).
			Get("/api/deeds/{deedID}", api.GetDeedHandler(store))
		pr.With(rbac.Require("deed:view")).
			Get("/api/deeds/{deedID}/file", api.DeedFileHandler(store, bs))

		pr.With(rbac.Require("attempt:create")).
			Post("/api/attempts", api.SubmitAttemptHandler(svc, m))
		pr.With(rbac.Require("attempt:view-own")).
			Get("/api/attempts/my", api.MyAttemptsHandler(store))

		pr.With(rbac.Require("dashboard:view")).
			Get("/api/dashboard/stats", api.StatsHandler(store))
		pr.With(rbac.Require("attempt:view-all")).
			Get("/api/dashboard/attempts", api.ListAttemptsHandler(store))
		pr.With(rbac.Require("dashboard:view")).
			Get("/api/dashboard/export", api.ExportAttemptsHandler(store))

		pr.With(rbac.Require("users:manage")).
			Get("/api/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("users:manage")).
			Post("/api/users", api.CreateUserHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := dbh.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})
	r.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("listening on %s (mode=%s, db=%s, blob=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, cfg.BlobDriver)

	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop, stopCancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopCancel()
	<-stop.Done()

	log.Printf("shutting down")
	shCtx, shCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shCancel()
	if err := s.Shutdown(shCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
