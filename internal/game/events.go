package game

// EventType identifies a broadcast game event.
type EventType string

const (
	// EventCardDrawn is sent once per draw, after the move counter has
	// advanced. Move is therefore the 1-based number of the move being
	// played.
	EventCardDrawn EventType = "card_drawn"

	// EventRoundEnd is sent once after scoring. Scores are ordered by
	// registration index.
	EventRoundEnd EventType = "round_end"
)

// Event is the wire format delivered to remote clients and spectators. It
// only ever carries information a player at the table could see: the current
// card and the past, never the undrawn deck.
type Event struct {
	Type   EventType `json:"type"`
	Card   int       `json:"card,omitempty"`
	Move   int       `json:"move,omitempty"`
	Scores []int     `json:"scores,omitempty"`
}
