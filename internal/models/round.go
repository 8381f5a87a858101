package models

import (
	"github.com/google/uuid"
)

// SeatResult is one player's outcome in a finished round.
type SeatResult struct {
	Seat     int       `json:"seat"`
	UserID   uuid.UUID `json:"user_id"`
	Strategy string    `json:"strategy"`
	Score    int       `json:"score"`
}

// RoundRecord is the unit the game server publishes to the historian queue
// once a round has been scored. Only the final outcome is persisted, never
// in-progress game state.
type RoundRecord struct {
	GameID    uuid.UUID    `json:"game_id"`
	Results   []SeatResult `json:"results"`
	Timestamp int64        `json:"timestamp"`
}
