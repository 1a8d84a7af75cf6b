// Package uuid hands out request ids behind an interface so tests can
// script them
package uuid

import (
	"sync"

	"github.com/google/uuid"
)

type Generator interface {
	New() string
}

// Random returns version 4 UUIDs
type Random struct{}

func (Random) New() string {
	return uuid.NewString()
}

func NewRandom() Generator {
	return Random{}
}

// StaticGenerator hands out a fixed sequence of IDs, then repeats the last one
type StaticGenerator struct {
	IDs []string

	mu   sync.Mutex
	next int
}

func (s *StaticGenerator) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.IDs) == 0 {
		return ""
	}
	if s.next >= len(s.IDs) {
		return s.IDs[len(s.IDs)-1]
	}
	id := s.IDs[s.next]
	s.next++
	return id
}
