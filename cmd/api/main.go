// Command api runs the backend HTTP server.
package main

import (
	"errors"
	"log"
	"net/http"

	"cofoundry-backend/internal/server"
)

// @title CoFoundry API
// @version 1.0
// @description Backend for the co-founder and investment matching platform.
// @BasePath /api/v1
func main() {
	srv := server.NewServer()

	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %s", err)
	}
}
