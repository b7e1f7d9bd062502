package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lukev/hanabisolve/internal/api"
	"github.com/lukev/hanabisolve/internal/live"
	"github.com/lukev/hanabisolve/internal/store"
)

func main() {
	// Create the batch-progress websocket hub
	hub := live.NewHub()
	go hub.Run()

	st := store.NewInMemoryStore()
	handler := api.NewHandler(st, hub)

	// Set up router
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// CORS middleware for development
	router.Use(corsMiddleware)

	handler.RegisterRoutes(router)

	// Start server
	addr := ":8080"
	log.Printf("hanabisolve server starting on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
