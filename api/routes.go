package api

import (
	"github.com/gorilla/mux"

	"github.com/gigbid/server/internal/bidgen"
	"github.com/gigbid/server/internal/config"
	"github.com/gigbid/server/internal/db"
	"github.com/gigbid/server/internal/marketplace"
	"github.com/gigbid/server/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, repo, repo, cfg.JWTSecret, cfg.TokenDuration)
	settingsHandler := NewSettingsHandler(repo, repo)
	projectsHandler := NewProjectsHandler(repo, repo, repo)
	generateHandler := NewGenerateHandler(bidgen.New(cfg.LLM), repo, repo, repo, repo)
	marketHandler := NewMarketplaceHandler(marketplace.New(cfg.Marketplace, nil))

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	authV1 := apiV1.PathPrefix("/auth").Subrouter()
	authV1.HandleFunc("/signout", authHandler.Signout).Methods("POST")

	// Settings endpoints
	apiV1.HandleFunc("/settings/profile", settingsHandler.GetProfile).Methods("GET")
	apiV1.HandleFunc("/settings/profile", settingsHandler.UpdateProfile).Methods("PUT")
	apiV1.HandleFunc("/settings/ai", settingsHandler.GetAISettings).Methods("GET")
	apiV1.HandleFunc("/settings/ai", settingsHandler.UpdateAISettings).Methods("PUT")

	// Project endpoints
	apiV1.HandleFunc("/projects", projectsHandler.ListProjects).Methods("GET")
	apiV1.HandleFunc("/projects", projectsHandler.CreateProject).Methods("POST")
	apiV1.HandleFunc("/projects/{id}", projectsHandler.GetProject).Methods("GET")
	apiV1.HandleFunc("/projects/{id}", projectsHandler.DeleteProject).Methods("DELETE")
	apiV1.HandleFunc("/projects/{id}/messages", projectsHandler.ListMessages).Methods("GET")
	apiV1.HandleFunc("/projects/{id}/messages", projectsHandler.AppendMessage).Methods("POST")
	apiV1.HandleFunc("/stats", projectsHandler.Stats).Methods("GET")

	// Generation endpoints
	apiV1.HandleFunc("/generate/bid", generateHandler.GenerateBid).Methods("POST")
	apiV1.HandleFunc("/generate/answers", generateHandler.GenerateAnswers).Methods("POST")
	apiV1.HandleFunc("/generate/reply", generateHandler.GenerateReply).Methods("POST")

	// Marketplace proxy endpoints
	apiV1.HandleFunc("/marketplace/projects", marketHandler.SearchProjects).Methods("GET")
	apiV1.HandleFunc("/marketplace/projects", marketHandler.GetProject).Methods("POST")
	apiV1.HandleFunc("/marketplace/bids", marketHandler.SubmitBid).Methods("POST")
	apiV1.HandleFunc("/marketplace/bids", marketHandler.ListBids).Methods("GET")

	return r
}
