// Package handlers exposes the HTTP and WebSocket surface of the Mathematico
// game server: creating rounds, joining seats, accounts and the leaderboard.
package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mathematico/server/internal/cache"
	"github.com/mathematico/server/internal/game"
	"github.com/mathematico/server/internal/models"
	"github.com/mathematico/server/internal/players"
)

// seat is one human slot in a live round. The websocket handler claims a
// seat, wires its connection and feeds placements into the Remote player.
type seat struct {
	index    int
	player   *players.Remote
	strategy string

	mu     sync.Mutex
	userID uuid.UUID
	conn   *websocket.Conn
}

// liveRound tracks a created game until its scores are collected.
type liveRound struct {
	game  *game.Game
	seats []*seat
	bots  []string // strategy name per bot seat, index-aligned with scores

	mu      sync.Mutex
	started bool
}

// openSeat returns the first unclaimed seat, or nil.
func (lr *liveRound) openSeat() *seat {
	for _, s := range lr.seats {
		s.mu.Lock()
		free := s.conn == nil
		s.mu.Unlock()
		if free {
			return s
		}
	}
	return nil
}

// claimSeat assigns the connection to the first unclaimed seat, holding each
// seat lock across the check and the set so two concurrent joins can never
// claim the same seat. Returns nil when every seat is taken.
func (lr *liveRound) claimSeat(c *websocket.Conn, userID uuid.UUID) *seat {
	for _, s := range lr.seats {
		s.mu.Lock()
		if s.conn == nil {
			s.conn = c
			s.userID = userID
			s.mu.Unlock()
			return s
		}
		s.mu.Unlock()
	}
	return nil
}

// allSeatsClaimed reports whether every human seat has a connection.
func (lr *liveRound) allSeatsClaimed() bool {
	for _, s := range lr.seats {
		s.mu.Lock()
		free := s.conn == nil
		s.mu.Unlock()
		if free {
			return false
		}
	}
	return true
}

// GameServer owns the store of live rounds.
type GameServer struct {
	Store  *game.Store
	Logger *logrus.Logger

	mu     sync.Mutex
	rounds map[uuid.UUID]*liveRound
}

func NewGameServer(logger *logrus.Logger) *GameServer {
	if logger == nil {
		logger = logrus.New()
	}
	return &GameServer{
		Store:  game.NewStore(),
		Logger: logger,
		rounds: make(map[uuid.UUID]*liveRound),
	}
}

func (gs *GameServer) round(id uuid.UUID) (*liveRound, bool) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	lr, ok := gs.rounds[id]
	return lr, ok
}

// createRound builds a game with the requested bot lineup and number of open
// human seats. Bot seats are registered first, then human seats, so scores
// are ordered bots-then-humans.
func (gs *GameServer) createRound(bots []string, humanSeats int) (*liveRound, error) {
	g := game.New()
	lr := &liveRound{game: g, bots: bots}

	for _, strategy := range bots {
		bot, err := players.New(strategy, nil)
		if err != nil {
			return nil, err
		}
		if _, err := g.Register(bot); err != nil {
			return nil, err
		}
	}
	for i := 0; i < humanSeats; i++ {
		remote := players.NewRemote(nil)
		st := &seat{index: len(bots) + i, player: remote, strategy: "human"}
		remote.PromptFn = gs.promptSeat(st)
		if _, err := g.Register(remote); err != nil {
			return nil, err
		}
		lr.seats = append(lr.seats, st)
	}

	g.BroadcastFn = gs.broadcastToSeats(lr)

	gs.mu.Lock()
	gs.rounds[g.ID] = lr
	gs.mu.Unlock()
	gs.Store.Add(g)

	// Bot-only rounds have nothing to wait for.
	if humanSeats == 0 {
		gs.startRound(lr)
	}
	return lr, nil
}

// maybeStart launches the round once every human seat is claimed.
func (gs *GameServer) maybeStart(lr *liveRound) {
	if !lr.allSeatsClaimed() {
		return
	}
	gs.startRound(lr)
}

// startRound runs the draw loop in its own goroutine and handles scoring,
// result publication and cleanup when it completes.
func (gs *GameServer) startRound(lr *liveRound) {
	lr.mu.Lock()
	if lr.started {
		lr.mu.Unlock()
		return
	}
	lr.started = true
	lr.mu.Unlock()

	go func() {
		g := lr.game
		scores, err := g.Run(false)
		if err != nil {
			gs.Logger.WithError(err).WithField("game_id", g.ID).Error("round failed")
			gs.cleanup(lr)
			return
		}
		gs.Logger.WithFields(logrus.Fields{
			"game_id": g.ID,
			"scores":  scores,
		}).Info("round finished")

		gs.publishResults(lr, scores)
		gs.cleanup(lr)
	}()
}

// publishResults pushes the round record onto the historian queue and
// submits human scores to the leaderboard. Both stores are optional in
// development mode.
func (gs *GameServer) publishResults(lr *liveRound, scores []int) {
	record := models.RoundRecord{
		GameID:    lr.game.ID,
		Timestamp: time.Now().UnixMilli(),
	}
	for i, strategy := range lr.bots {
		record.Results = append(record.Results, models.SeatResult{
			Seat: i, Strategy: strategy, Score: scores[i],
		})
	}
	for _, s := range lr.seats {
		s.mu.Lock()
		userID := s.userID
		s.mu.Unlock()
		record.Results = append(record.Results, models.SeatResult{
			Seat: s.index, UserID: userID, Strategy: s.strategy, Score: scores[s.index],
		})
	}

	if cache.Rdb == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cache.PublishRoundRecord(ctx, record); err != nil {
		gs.Logger.WithError(err).Error("publish round record")
	}
	for _, res := range record.Results {
		if res.UserID == uuid.Nil {
			continue
		}
		if err := cache.SubmitScore(ctx, res.UserID.String(), res.Score); err != nil {
			gs.Logger.WithError(err).Error("submit leaderboard score")
		}
	}
}

func (gs *GameServer) cleanup(lr *liveRound) {
	for _, s := range lr.seats {
		s.mu.Lock()
		if s.conn != nil {
			s.conn.Close(websocket.StatusNormalClosure, "round over")
			s.conn = nil
		}
		s.mu.Unlock()
	}
	gs.Store.Delete(lr.game.ID)
	gs.mu.Lock()
	delete(gs.rounds, lr.game.ID)
	gs.mu.Unlock()
}
