package main

import (
	"fmt"
	"log"
	"net/http"

	"ticket-storefront/internal/config"
	"ticket-storefront/internal/handlers"
	"ticket-storefront/internal/middleware"
	"ticket-storefront/internal/models"
	"ticket-storefront/internal/services"
	"ticket-storefront/internal/session"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // session-scoped: the cookie dies with the browser session
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	// One shared client for all backend calls
	client := &http.Client{Timeout: cfg.Backend.Timeout}

	catalog := services.NewCatalogService(cfg.Backend.BaseURL, client)
	metadata := services.NewMetadataService(cfg.Backend.BaseURL, client)
	checkout := services.NewCheckoutService(cfg.Backend.BaseURL, client)
	search := services.NewSearchService(cfg.Search.Threshold)
	selections := session.NewSelectionStore(sessionStore)

	bounds := models.QuantityBounds{
		Min: cfg.Tickets.MinQuantity,
		Max: cfg.Tickets.MaxQuantity,
	}

	eventHandler := handlers.NewEventHandler(catalog, search)
	cartHandler := handlers.NewCartHandler(catalog, metadata, checkout, selections, bounds)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.LoggingMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", handlers.Health)
	r.Get("/events", eventHandler.ListEvents)
	r.Get("/events/{id}", eventHandler.GetEvent)
	r.Post("/events/{id}/selection", cartHandler.UpdateSelection)
	r.Get("/cart", cartHandler.ViewCart)
	r.Post("/cart/clear", cartHandler.ClearCart)
	r.Post("/checkout", cartHandler.Checkout)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Storefront listening on %s (backend %s)", addr, cfg.Backend.BaseURL)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
