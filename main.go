package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"feedback-server/common"
	"feedback-server/database"
	"feedback-server/modules"
	"feedback-server/routes"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const staticDir = "static"

func main() {
	if err := common.LoadConfig(); err != nil {
		log.Fatal(err)
	}

	if common.Config.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         common.Config.SentryDSN,
			Environment: common.Config.AppEnv,
		})
		if err != nil {
			log.Println("sentry init failed:", err)
		}
	}

	database.InitDB()
	modules.InitSessions()

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(countRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/config/redirect-uri", routes.RedirectURI)

		r.Route("/auth", func(r chi.Router) {
			r.Get("/discord", routes.DiscordAuth)
			r.Get("/discord/callback", routes.DiscordCallback)
			r.Get("/me", routes.Me)
			r.Get("/logout", routes.Logout)
		})

		r.Route("/feedbacks", func(r chi.Router) {
			r.Get("/", routes.GetFeedbacks)
			r.Get("/stats", routes.GetFeedbackStats)
			r.Post("/", routes.AddFeedback)
			r.Patch("/{id}", routes.UpdateFeedback)
			r.Delete("/{id}", routes.DeleteFeedback)
		})
	})

	r.NotFound(serveStatic)

	log.Println("listening on port", common.Config.Port)
	err := http.ListenAndServe(":"+common.Config.Port, r)
	if errors.Is(err, http.ErrServerClosed) {
		log.Println("server closed")
	} else if err != nil {
		log.Fatalf("error starting server: %s", err)
	}
}

// serveStatic serves the built frontend, falling back to index.html so
// client-side routes resolve.
func serveStatic(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}

	index := filepath.Join(staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, index)
}
