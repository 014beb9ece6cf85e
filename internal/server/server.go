package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"cofoundry-backend/internal/auth"
	"cofoundry-backend/internal/database"
	"cofoundry-backend/internal/savedstore"
)

// MyServer holds the shared dependencies every route handler draws from.
type MyServer struct {
	DB        *database.DBinstanceStruct
	Saved     *savedstore.Store
	Blacklist auth.JwtBlacklistStore
}

// NewServer construct new Server instance
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}

	saved, err := savedstore.NewFromEnv(context.Background())
	if err != nil {
		log.Fatalf("Saved-listing store failed to initialize: %s", err)
	}

	s := &MyServer{
		DB:        db,
		Saved:     saved,
		Blacklist: auth.NewInMemoryBlacklistStore(),
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
