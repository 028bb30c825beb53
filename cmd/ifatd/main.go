package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/mind-engage/ifat/internal/api/http"
	auth "github.com/mind-engage/ifat/internal/auth/middleware"
	"github.com/mind-engage/ifat/internal/auth/session"
	"github.com/mind-engage/ifat/internal/config"
	"github.com/mind-engage/ifat/internal/console"
	"github.com/mind-engage/ifat/internal/db"
	"github.com/mind-engage/ifat/internal/quiz"
	"github.com/mind-engage/ifat/internal/rbac"
	syncx "github.com/mind-engage/ifat/internal/sync"
	"github.com/mind-engage/ifat/internal/teacher"
	"github.com/mind-engage/ifat/internal/view"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	driver, err := db.ParseDriver(cfg.DBDriver)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	dbh, err := db.Open(ctx, driver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer dbh.Close()

	teachers := teacher.NewSQLStore(dbh)
	seeded, err := teacher.SeedAdmin(ctx, teachers, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if seeded {
		log.Printf("WARNING: seeded admin account %s with the configured initial password; rotate it before going live", cfg.AdminEmail)
	}

	sessions, err := sessionStore(ctx, cfg, dbh)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	svc := console.New(console.Deps{
		Teachers: teachers,
		Quizzes:  quiz.NewSQLStore(dbh),
		Sessions: sessions,
		Events:   syncx.NewEventRepo(dbh, ""),
		Checker:  rbac.NewChecker(nil),
	}, console.Options{
		SessionTTL:   cfg.SessionTTL,
		CodeAttempts: cfg.CodeAttempts,
		BcryptCost:   cfg.BcryptCost,
	})

	views, err := view.NewTemplates()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	api.Mount(r, api.Deps{
		Console:      svc,
		Auth:         auth.NewAuthService(cfg.SessionSecret, cfg.SecureCookies()),
		Views:        views,
		DB:           dbh,
		PublicURL:    cfg.PublicURL,
		EnableSignup: cfg.EnableSignup,
	})

	log.Printf("IF-AT listening on %s (mode=%s, db=%s, sessions=%s)", cfg.HTTPAddr, cfg.Mode, driver, cfg.SessionDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

// sessionStore picks the backend named by SESSION_DRIVER.
func sessionStore(ctx context.Context, cfg config.Config, dbh *sql.DB) (session.Store, error) {
	switch cfg.SessionDriver {
	case "sql", "":
		return session.NewSQLStore(dbh), nil
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		rdb, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(rdb), nil
	default:
		return nil, fmt.Errorf("unknown SESSION_DRIVER %q (want sql, memory or redis)", cfg.SessionDriver)
	}
}
