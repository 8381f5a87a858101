// cmd/server runs the Mathematico game server: round creation, seat
// WebSockets, accounts and the leaderboard.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/mathematico/server/internal/auth"
	"github.com/mathematico/server/internal/cache"
	"github.com/mathematico/server/internal/database"
	"github.com/mathematico/server/internal/handlers"
	"github.com/mathematico/server/internal/middleware"
)

func main() {
	logger := logrus.New()
	if os.Getenv("DEBUG") != "" {
		logger.SetLevel(logrus.DebugLevel)
	}

	if err := auth.Init(); err != nil {
		log.Fatalf("auth init: %v", err)
	}

	ctx := context.Background()
	if err := database.Connect(ctx); err != nil {
		logger.WithError(err).Warn("postgres unavailable, accounts and round history disabled")
	} else {
		defer database.DB.Close()
	}
	if err := cache.Connect(ctx); err != nil {
		logger.WithError(err).Warn("redis unavailable, leaderboard and historian queue disabled")
	}

	gs := handlers.NewGameServer(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/", handlers.PingHandler)

	mux.HandleFunc("/user/create", handlers.CreateUserHandler)
	mux.HandleFunc("/user/login", handlers.LoginHandler)

	mux.Handle("/game/create", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.CreateGameHandler(gs),
	)))
	mux.Handle("/game/ws/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.GameWSHandler(logger, gs),
	)))
	mux.Handle("/leaderboard", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.LeaderboardHandler,
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
