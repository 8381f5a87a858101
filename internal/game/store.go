package game

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps live rounds in memory, keyed by game ID. The server layer adds
// a round when it is created and deletes it once scores are collected.
type Store struct {
	mu    sync.Mutex
	games map[uuid.UUID]*Game
}

func NewStore() *Store {
	return &Store{
		games: make(map[uuid.UUID]*Game),
	}
}

func (s *Store) Add(g *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

func (s *Store) Get(id uuid.UUID) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	return g, ok
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}
