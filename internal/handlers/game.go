package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mathematico/server/internal/cache"
)

// maxSeatsPerRound caps the roster so every board can still be filled from
// one 52-card deck broadcast.
const maxSeatsPerRound = 8

type createGameRequest struct {
	Bots  []string `json:"bots"`
	Seats int      `json:"seats"`
}

type createGameResponse struct {
	GameID string `json:"game_id"`
	WSPath string `json:"ws_path,omitempty"`
}

// CreateGameHandler creates a round with the requested bot lineup and number
// of open human seats. Rounds with human seats start once every seat has a
// WebSocket connection; bot-only rounds run immediately.
func CreateGameHandler(gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req createGameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if req.Seats < 0 || len(req.Bots)+req.Seats == 0 || len(req.Bots)+req.Seats > maxSeatsPerRound {
			http.Error(w, fmt.Sprintf("between 1 and %d seats required", maxSeatsPerRound), http.StatusBadRequest)
			return
		}

		lr, err := gs.createRound(req.Bots, req.Seats)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := createGameResponse{GameID: lr.game.ID.String()}
		if req.Seats > 0 {
			resp.WSPath = "/game/ws/" + resp.GameID
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(resp)
	}
}

// LeaderboardHandler returns the best round scores, highest first. The n
// query parameter bounds the page size (default 10, max 100).
func LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	if cache.Rdb == nil {
		http.Error(w, "leaderboard unavailable", http.StatusServiceUnavailable)
		return
	}

	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			http.Error(w, "n must be between 1 and 100", http.StatusBadRequest)
			return
		}
		n = v
	}

	entries, err := cache.TopScores(r.Context(), n)
	if err != nil {
		http.Error(w, "leaderboard unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// PingHandler is the liveness endpoint.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}
