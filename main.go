package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/birdquest/birdquest/classifier"
	"github.com/birdquest/birdquest/controllers"
	"github.com/birdquest/birdquest/database"
	"github.com/birdquest/birdquest/imagestore"
	"github.com/birdquest/birdquest/lang"
	"github.com/birdquest/birdquest/metrics"
	appmiddleware "github.com/birdquest/birdquest/middleware"
	"github.com/birdquest/birdquest/repositories"
	"github.com/birdquest/birdquest/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using process environment")
	}

	// Initialize database
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "birdquest.db"
	}
	if err := database.InitializeDatabase(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Get database connection
	db := database.GetDB()

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize classifier client
	cls := classifier.New(classifier.Config{
		BaseURL: envOrDefault("MODEL_API_URL", "http://localhost:3000"),
		Timeout: classifierTimeout(),
	})

	// Initialize image store
	store, err := imagestore.NewCloudinaryStore(imagestore.Config{
		CloudName: os.Getenv("CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	})
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// Initialize services
	srvs := services.NewServices(repos, cls, store)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs)

	// Set up router
	r, err := setupRouter(ctrl, repos)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("🦜 Bird Quest server starting on port %s\n", port)
	fmt.Printf("🗃️  Database: %s\n", dbPath)

	log.Fatal(http.ListenAndServe(":"+port, r))
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, repos *repositories.Repositories) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(appmiddleware.Metrics)

	// Determine if we should use secure cookies (HTTPS)
	useSecureCookies := os.Getenv("USE_HTTPS") == "true"

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "birdquest_session",
		Secure:         useSecureCookies,
		Gclifetime:     3600,
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// PUBLIC ROUTES (no authentication required)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"msg": %q, "ok": true}`, lang.Welcome)
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "birdquest"}`)
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", ctrl.Auth.Login)
		r.Post("/logout", ctrl.Auth.Logout)
		r.Get("/check-auth", ctrl.Auth.CheckAuth)
	})

	// GATED ROUTES (identity resolution + request audit log)
	r.Route("/api", func(r chi.Router) {
		r.Use(appmiddleware.RequireUser(repos.User))
		r.Use(appmiddleware.AuditLogger(repos.Audit))

		r.Post("/analyze-bird", ctrl.Bird.AnalyzeBird)
		r.Get("/birds", ctrl.Bird.Index)
		r.Post("/profile-image", ctrl.Image.UploadProfileImage)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", ctrl.Admin.Users)
			r.Get("/api-stats", ctrl.Admin.APIStats)
			r.Get("/user-consumption", ctrl.Admin.UserConsumption)
		})
	})

	return r, nil
}

// envOrDefault reads an environment variable with a fallback
func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// classifierTimeout reads the classifier deadline from the environment
func classifierTimeout() time.Duration {
	raw := os.Getenv("CLASSIFIER_TIMEOUT_SECONDS")
	if raw == "" {
		return 30 * time.Second
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		log.Printf("Invalid CLASSIFIER_TIMEOUT_SECONDS %q, using default", raw)
		return 30 * time.Second
	}
	return time.Duration(seconds) * time.Second
}
