package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mathematico/server/internal/board"
	"github.com/mathematico/server/internal/game"
	"github.com/mathematico/server/internal/players"
)

// wsWriteTimeout bounds a single outbound WebSocket write.
const wsWriteTimeout = 3 * time.Second

// placementMessage is the only message a seated client sends during play:
// where to put the current card.
type placementMessage struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// seatMessage is sent once when a client claims a seat.
type seatMessage struct {
	Type   string    `json:"type"`
	GameID uuid.UUID `json:"game_id"`
	Seat   int       `json:"seat"`
}

// promptMessage asks the client to place the current card.
type promptMessage struct {
	Type string `json:"type"`
	players.PlacementPrompt
}

// GameWSHandler upgrades the connection, authenticates the user (minting an
// ephemeral guest if needed), claims an open seat in the round and runs the
// placement read loop until the round ends or the client disconnects.
func GameWSHandler(logger *logrus.Logger, gs *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimPrefix(r.URL.Path, "/game/ws/")
		gameID, err := uuid.Parse(strings.SplitN(idStr, "/", 2)[0])
		if err != nil {
			http.Error(w, "invalid game id", http.StatusBadRequest)
			return
		}

		lr, ok := gs.round(gameID)
		if !ok {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		userID, err := EnsureGuest(w, r)
		if err != nil {
			logger.WithError(err).Warn("guest auth failed")
			http.Error(w, "authentication failed", http.StatusForbidden)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"mathematico"},
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			logger.WithError(err).Warn("websocket accept")
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler exit")

		st := lr.claimSeat(c, userID)
		if st == nil {
			c.Close(websocket.StatusPolicyViolation, "no open seats")
			return
		}

		logger.WithFields(logrus.Fields{
			"game_id": gameID,
			"seat":    st.index,
			"user_id": userID,
		}).Info("seat claimed")

		writeJSON(c, logger, seatMessage{Type: "seat", GameID: gameID, Seat: st.index})

		gs.maybeStart(lr)
		readPlacements(r.Context(), c, st, logger)

		st.mu.Lock()
		st.conn = nil
		st.mu.Unlock()
		logger.WithFields(logrus.Fields{
			"game_id": gameID,
			"seat":    st.index,
		}).Info("seat disconnected")
	}
}

// readPlacements feeds client placements into the seat's Remote player until
// the connection goes away. Illegal coordinates are dropped; the Remote
// player itself retries until its move timeout.
func readPlacements(ctx context.Context, c *websocket.Conn, st *seat, logger *logrus.Logger) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Debug("websocket closed")
			} else {
				logger.WithError(err).Debug("websocket read")
			}
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		var msg placementMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.WithError(err).Warn("invalid placement payload")
			continue
		}

		// Unsolicited moves (no placement pending) are dropped after a
		// short grace window.
		select {
		case st.player.Moves <- board.Pos{Row: msg.Row, Col: msg.Col}:
		case <-time.After(time.Second):
		case <-ctx.Done():
			return
		}
	}
}

// promptSeat returns the PromptFn for a seat: it forwards the placement
// prompt to the connected client, if any. With no client the Remote player's
// timeout fallback keeps the round moving.
func (gs *GameServer) promptSeat(st *seat) func(players.PlacementPrompt) {
	return func(p players.PlacementPrompt) {
		st.mu.Lock()
		c := st.conn
		st.mu.Unlock()
		if c == nil {
			return
		}
		writeJSON(c, gs.Logger, promptMessage{Type: "prompt", PlacementPrompt: p})
	}
}

// broadcastToSeats fans a game event out to every connected seat.
func (gs *GameServer) broadcastToSeats(lr *liveRound) func(ev game.Event) {
	return func(ev game.Event) {
		for _, st := range lr.seats {
			st.mu.Lock()
			c := st.conn
			st.mu.Unlock()
			if c == nil {
				continue
			}
			writeJSON(c, gs.Logger, ev)
		}
	}
}

func writeJSON(c *websocket.Conn, logger *logrus.Logger, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.WithError(err).Error("marshal ws message")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), wsWriteTimeout)
	defer cancel()
	if err := c.Write(ctx, websocket.MessageText, data); err != nil {
		logger.WithError(err).Debug("ws write")
	}
}
