// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/hydrogen-intake/cliparse"
	"github.com/danielhkuo/hydrogen-intake/handlers"
	"github.com/danielhkuo/hydrogen-intake/middleware"
	"github.com/danielhkuo/hydrogen-intake/session"
)

func NewRouter(manager *session.Manager, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	formHandler := handlers.NewFormHandler(manager, cfg)
	hostHandler := handlers.NewHostHandler(manager, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Form sessions
	mux.HandleFunc("POST /forms", middleware.WithLogging(formHandler.CreateForm))
	mux.HandleFunc("GET /forms/{id}", middleware.WithLogging(formHandler.GetForm))
	mux.HandleFunc("DELETE /forms/{id}", middleware.WithLogging(formHandler.CloseForm))

	// Editing
	mux.HandleFunc("POST /forms/{id}/commands", middleware.WithLogging(formHandler.ApplyCommand))
	mux.HandleFunc("POST /forms/{id}/reset", middleware.WithLogging(formHandler.ResetForm))
	mux.HandleFunc("GET /forms/{id}/mirror", middleware.WithLogging(formHandler.GetMirror))

	// Export and submission log
	mux.HandleFunc("POST /forms/{id}/submit", middleware.WithLogging(formHandler.Submit))
	mux.HandleFunc("GET /forms/{id}/submissions", middleware.WithLogging(formHandler.ListFormSubmissions))
	mux.HandleFunc("GET /submissions", middleware.WithLogging(formHandler.ListSubmissions))

	// Hosting page connection
	mux.HandleFunc("GET /forms/{id}/host", middleware.WithLogging(hostHandler.Connect))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hydrogen-intake API v1"))
	})

	return mux
}
