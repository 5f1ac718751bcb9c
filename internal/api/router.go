package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/campustrade/campustrade/internal/api/recovery"
	"github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/services"
	"github.com/campustrade/campustrade/internal/store"
)

// NewRouter wires all API routes over the given store.
// isHealthy reports aggregate service health for /api/health; nil means
// always healthy (used by tests).
func NewRouter(st store.Store, tokens *auth.TokenManager, log zerolog.Logger, isHealthy func() bool) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)
	router.Use(auth.Middleware(tokens))

	// Domain services
	authService := services.NewAuthService(st, tokens)
	itemService := services.NewItemService(st)
	messageService := services.NewMessageService(st)
	notificationService := services.NewNotificationService(st)
	reviewService := services.NewReviewService(st)
	profileService := services.NewProfileService(st, log)

	// Handlers
	healthHandler := NewHealthHandler(isHealthy, st)
	authHandler := NewAuthHandler(authService)
	itemHandler := NewItemHandler(itemService)
	messageHandler := NewMessageHandler(messageService)
	notificationHandler := NewNotificationHandler(notificationService)
	reviewHandler := NewReviewHandler(reviewService)
	profileHandler := NewProfileHandler(profileService)

	// Health endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStoreHealth).Methods("GET")

	// Auth endpoints
	router.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Item endpoints
	router.HandleFunc("/api/items", itemHandler.List).Methods("GET")
	router.HandleFunc("/api/items", itemHandler.Create).Methods("POST")
	router.HandleFunc("/api/items/{id}", itemHandler.Get).Methods("GET")
	router.HandleFunc("/api/items/{id}", itemHandler.UpdateStatus).Methods("PATCH")

	// Message and conversation endpoints
	router.HandleFunc("/api/messages", messageHandler.ListByConversation).Methods("GET")
	router.HandleFunc("/api/messages", messageHandler.Send).Methods("POST")
	router.HandleFunc("/api/conversations", messageHandler.ListConversations).Methods("GET")

	// Notification endpoints
	router.HandleFunc("/api/notifications", notificationHandler.List).Methods("GET")
	router.HandleFunc("/api/notifications", notificationHandler.Create).Methods("POST")
	router.HandleFunc("/api/notifications/mark-all-read", notificationHandler.MarkAllRead).Methods("POST")
	router.HandleFunc("/api/notifications/{id}", notificationHandler.SetRead).Methods("PATCH")

	// Review endpoints
	router.HandleFunc("/api/reviews", reviewHandler.Create).Methods("POST")

	// Profile endpoints
	router.HandleFunc("/api/profile/{id}", profileHandler.Get).Methods("GET")
	router.HandleFunc("/api/profile/{id}", profileHandler.Update).Methods("PATCH")

	return router
}
